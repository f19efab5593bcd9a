package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/superbmd/bmd-cli/internal/core/domain"
	"github.com/superbmd/bmd-cli/internal/core/services"
	"github.com/superbmd/bmd-cli/pkg/ui"
)

var (
	reportStartDate string
	reportEndDate   string
	reportLocation  int
	reportCondition string
	reportExport    string
	reportOut       string
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report <by-location|by-condition|in-out>",
	Short: "Show or export a pre-aggregated report",
	Long: `Fetch one of the aggregate reports and print it, or export it
with --export. Rows are exported exactly as loaded; no client-side
aggregation happens.

The location and condition filters only apply to the in-out movement
report; the grouped reports ignore them.

Examples:
  bmd report by-location
  bmd report by-condition --export pdf
  bmd report in-out --start-date 2026-01-01 --end-date 2026-06-30 --export xlsx --out /tmp/movements.xlsx`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportStartDate, "start-date", "", "Filter from date (YYYY-MM-DD)")
	reportCmd.Flags().StringVar(&reportEndDate, "end-date", "", "Filter to date (YYYY-MM-DD)")
	reportCmd.Flags().IntVar(&reportLocation, "location", 0, "Filter by location id (in-out report only)")
	reportCmd.Flags().StringVar(&reportCondition, "condition", "", "Filter by condition (in-out report only)")
	reportCmd.Flags().StringVar(&reportExport, "export", "", "Export instead of printing (xlsx, pdf, csv)")
	reportCmd.Flags().StringVar(&reportOut, "out", "", "Output path (default: exports dir, named after the report)")
}

func parseReportType(s string) (domain.ReportType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "by-location", "assets-by-location":
		return domain.ReportByLocation, nil
	case "by-condition", "assets-by-condition":
		return domain.ReportByCondition, nil
	case "in-out", "assets-in-out":
		return domain.ReportInOut, nil
	}
	return "", fmt.Errorf("unknown report %q (valid: by-location, by-condition, in-out)", s)
}

func runReport(cmd *cobra.Command, args []string) error {
	if err := requireLogin(); err != nil {
		return err
	}

	reportType, err := parseReportType(args[0])
	if err != nil {
		return err
	}

	filter := domain.ReportFilter{
		StartDate:  reportStartDate,
		EndDate:    reportEndDate,
		LocationID: reportLocation,
	}
	if reportCondition != "" {
		cond, err := domain.ParseCondition(reportCondition)
		if err != nil {
			return err
		}
		filter.Condition = cond
	}

	var (
		title string
		keys  []string
		rows  [][]string
	)
	ctx := getContext()
	switch reportType {
	case domain.ReportByLocation:
		title = "Assets by Location"
		data, err := apiClient.Reports().AssetsByLocation(ctx, filter)
		if err != nil {
			fmt.Println(ui.FormatError("Failed to load report"))
			return err
		}
		keys, rows = services.ReportTable(data)
	case domain.ReportByCondition:
		title = "Assets by Condition"
		data, err := apiClient.Reports().AssetsByCondition(ctx, filter)
		if err != nil {
			fmt.Println(ui.FormatError("Failed to load report"))
			return err
		}
		keys, rows = services.ReportTable(data)
	case domain.ReportInOut:
		title = "Asset Movements"
		data, err := apiClient.Reports().AssetsInOut(ctx, filter)
		if err != nil {
			fmt.Println(ui.FormatError("Failed to load report"))
			return err
		}
		keys, rows = services.ReportTable(data)
	}

	if reportExport != "" {
		return exportReport(reportType, title, keys, rows)
	}

	if len(rows) == 0 {
		fmt.Println(ui.FormatWarning("No report data"))
		return nil
	}

	fmt.Println(ui.FormatTitle(title))
	fmt.Println()

	columns := make([]ui.TableColumn, len(keys))
	for i, k := range keys {
		columns[i] = ui.TableColumn{Header: services.HumanizeHeader(k), Align: "left"}
	}
	table := ui.NewTable(columns)
	for _, row := range rows {
		table.AddRow(row)
	}
	table.Footer = fmt.Sprintf("%d rows", len(rows))
	fmt.Print(table.Render())
	return nil
}

func exportReport(reportType domain.ReportType, title string, keys []string, rows [][]string) error {
	format, err := services.ParseExportFormat(reportExport)
	if err != nil {
		return err
	}

	path := reportOut
	if path == "" {
		dir := appConfig.ExportDir
		if dir == "" {
			dir = appDirs.ExportsPath
		}
		path = filepath.Join(dir, exportService.DefaultFilename(string(reportType), format))
	}

	written, err := exportService.Export(format, title, keys, rows, path)
	if err != nil {
		fmt.Println(ui.FormatError("Export failed"))
		return err
	}
	if written {
		fmt.Println(ui.FormatSuccess("Exported report to " + path))
	}
	return nil
}

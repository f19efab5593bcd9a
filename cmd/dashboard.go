package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/spf13/cobra"

	"github.com/superbmd/bmd-cli/internal/core/domain"
	"github.com/superbmd/bmd-cli/pkg/ui"
)

var dashboardHTML string

// dashboardCmd represents the dashboard command
var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"dash"},
	Short:   "Show the asset dashboard aggregates (alias: dash)",
	Long: `Show the pre-aggregated dashboard: total counts plus asset
breakdowns by condition and by location. All numbers come from the
backend; nothing is recomputed locally.

With --html, additionally render the breakdowns as an interactive
chart page.

Examples:
  bmd dashboard
  bmd dashboard --html dashboard.html`,
	RunE: runDashboard,
}

func init() {
	dashboardCmd.Flags().StringVar(&dashboardHTML, "html", "", "Also write an HTML chart page to this path")
}

func runDashboard(cmd *cobra.Command, args []string) error {
	if err := requireLogin(); err != nil {
		return err
	}

	summary, err := apiClient.Reports().Dashboard(getContext())
	if err != nil {
		fmt.Println(ui.FormatError("Failed to load dashboard"))
		return err
	}

	fmt.Println(ui.FormatTitle("SUPER BMD Dashboard"))
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("Total Assets", strconv.Itoa(summary.TotalAssets)))
	fmt.Println(ui.RenderKeyValue("Total Locations", strconv.Itoa(summary.TotalLocations)))
	fmt.Println()

	printBreakdown("By Condition", summary.AssetsByCondition)
	printBreakdown("By Location", summary.AssetsByLocation)

	if dashboardHTML != "" {
		if err := writeDashboardHTML(summary, dashboardHTML); err != nil {
			return err
		}
		fmt.Println(ui.FormatSuccess("Wrote chart page to " + dashboardHTML))
	}
	return nil
}

func printBreakdown(title string, buckets []domain.NameValue) {
	fmt.Println(ui.FormatBold(title))
	if len(buckets) == 0 {
		fmt.Println(ui.FormatMuted("  (no data)"))
		fmt.Println()
		return
	}

	table := ui.NewTable([]ui.TableColumn{
		{Header: "Name", Width: 28, Align: "left"},
		{Header: "Assets", Width: 8, Align: "right"},
	})
	for _, b := range buckets {
		table.AddRow([]string{truncate(b.Name, 28), strconv.Itoa(b.Value)})
	}
	fmt.Print(table.Render())
	fmt.Println()
}

// writeDashboardHTML renders the two breakdowns as an echarts page: a
// pie for conditions and a bar chart for locations.
func writeDashboardHTML(summary *domain.DashboardSummary, path string) error {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Assets by Condition"}),
	)
	pieData := make([]opts.PieData, 0, len(summary.AssetsByCondition))
	for _, b := range summary.AssetsByCondition {
		pieData = append(pieData, opts.PieData{Name: b.Name, Value: b.Value})
	}
	pie.AddSeries("condition", pieData)

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Assets by Location"}),
	)
	names := make([]string, 0, len(summary.AssetsByLocation))
	barData := make([]opts.BarData, 0, len(summary.AssetsByLocation))
	for _, b := range summary.AssetsByLocation {
		names = append(names, b.Name)
		barData = append(barData, opts.BarData{Value: b.Value})
	}
	bar.SetXAxis(names).AddSeries("assets", barData)

	page := components.NewPage()
	page.AddCharts(pie, bar)

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart page: %w", err)
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		return fmt.Errorf("failed to render chart page: %w", err)
	}
	return nil
}

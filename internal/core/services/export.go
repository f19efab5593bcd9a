package services

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"github.com/superbmd/bmd-cli/pkg/notify"
)

// ExportFormat selects the serialization target of a report export.
type ExportFormat string

const (
	FormatXLSX ExportFormat = "xlsx"
	FormatPDF  ExportFormat = "pdf"
	FormatCSV  ExportFormat = "csv"
)

// ParseExportFormat validates a format string.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch ExportFormat(strings.ToLower(strings.TrimSpace(s))) {
	case FormatXLSX:
		return FormatXLSX, nil
	case FormatPDF:
		return FormatPDF, nil
	case FormatCSV:
		return FormatCSV, nil
	}
	return "", fmt.Errorf("unsupported export format %q (valid: xlsx, pdf, csv)", s)
}

// TableRow is a flat record that can be serialized into a report
// table. Keys mirror the wire field names of the row.
type TableRow interface {
	Keys() []string
	Cells() []string
}

// ReportTable flattens typed report rows into keys plus cell rows for
// the export pipeline.
func ReportTable[R TableRow](rows []R) (keys []string, cells [][]string) {
	if len(rows) == 0 {
		return nil, nil
	}
	keys = rows[0].Keys()
	cells = make([][]string, len(rows))
	for i, r := range rows {
		cells[i] = r.Cells()
	}
	return keys, cells
}

// HumanizeHeader turns a wire field key into a column header:
// underscores become spaces and each word is title-cased.
func HumanizeHeader(key string) string {
	words := strings.Split(strings.ReplaceAll(key, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// ExportService serializes whatever report rows are currently in
// memory into a file. No aggregation or pagination happens here; the
// rows pass through exactly as loaded.
type ExportService struct{}

// NewExportService creates the export service.
func NewExportService() *ExportService {
	return &ExportService{}
}

// DefaultFilename derives an output name from the report type.
func (s *ExportService) DefaultFilename(reportType string, format ExportFormat) string {
	return fmt.Sprintf("%s_report.%s", reportType, format)
}

// Export writes the rows to path in the requested format. Exporting
// zero rows is a no-op: a warning notification is queued, no file is
// written and written is false.
func (s *ExportService) Export(format ExportFormat, title string, keys []string, rows [][]string, path string) (written bool, err error) {
	if len(rows) == 0 {
		notify.Warning("No data to export.")
		return false, nil
	}

	headers := make([]string, len(keys))
	for i, k := range keys {
		headers[i] = HumanizeHeader(k)
	}

	switch format {
	case FormatXLSX:
		err = s.writeXLSX(headers, rows, path)
	case FormatPDF:
		err = s.writePDF(title, headers, rows, path)
	case FormatCSV:
		err = s.writeCSV(headers, rows, path)
	default:
		return false, fmt.Errorf("unsupported export format %q", format)
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *ExportService) writeXLSX(headers []string, rows [][]string, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Report"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to prepare sheet: %w", err)
	}

	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write spreadsheet: %w", err)
	}
	return nil
}

func (s *ExportService) writePDF(title string, headers []string, rows [][]string, path string) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, title, "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	colWidth := (pageWidth - left - right) / float64(len(headers))

	// Header row, filled with the report accent color.
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(52, 189, 137)
	pdf.SetTextColor(255, 255, 255)
	for _, h := range headers {
		pdf.CellFormat(colWidth, 8, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	// Striped body.
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(0, 0, 0)
	for i, row := range rows {
		if i%2 == 0 {
			pdf.SetFillColor(255, 255, 255)
		} else {
			pdf.SetFillColor(240, 240, 240)
		}
		for _, cell := range row {
			pdf.CellFormat(colWidth, 7, cell, "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

func (s *ExportService) writeCSV(headers []string, rows [][]string, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(headers); err != nil {
		return err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

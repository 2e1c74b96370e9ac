package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

const (
	reportTableWidth = 190.0
	reportHeaderRowH = 8.0
	reportBodyRowH   = 7.0
)

// PDFExporter renders a dataset as a one-page overview report: a title
// block with a generation stamp, then a striped table.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render produces the report document.
func (e *PDFExporter) Render(data Dataset, title string) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("pdf requires at least one header")
	}

	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetMargins(10, 15, 10)
	doc.AddPage()

	e.writeTitle(doc, title)
	e.writeTable(doc, data)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *PDFExporter) writeTitle(doc *gofpdf.Fpdf, title string) {
	if title == "" {
		return
	}
	doc.SetFont("Helvetica", "B", 16)
	doc.CellFormat(0, 10, title, "", 1, "L", false, 0, "")

	doc.SetFont("Helvetica", "", 9)
	doc.SetTextColor(120, 120, 120)
	stamp := "Generated " + time.Now().UTC().Format("2 Jan 2006 15:04 UTC")
	doc.CellFormat(0, 6, stamp, "", 1, "L", false, 0, "")
	doc.SetTextColor(0, 0, 0)
	doc.Ln(4)
}

func (e *PDFExporter) writeTable(doc *gofpdf.Fpdf, data Dataset) {
	colWidth := reportTableWidth / float64(len(data.Headers))

	doc.SetFont("Helvetica", "B", 10)
	doc.SetFillColor(33, 37, 41)
	doc.SetTextColor(255, 255, 255)
	for _, header := range data.Headers {
		doc.CellFormat(colWidth, reportHeaderRowH, header, "", 0, "L", true, 0, "")
	}
	doc.Ln(-1)

	// First column is the label, the rest are figures.
	doc.SetFont("Helvetica", "", 9)
	doc.SetTextColor(0, 0, 0)
	doc.SetFillColor(241, 243, 245)
	for i, row := range data.Rows {
		striped := i%2 == 1
		for j, header := range data.Headers {
			align := "L"
			if j > 0 {
				align = "R"
			}
			doc.CellFormat(colWidth, reportBodyRowH, row[header], "B", 0, align, striped, 0, "")
		}
		doc.Ln(-1)
	}
}

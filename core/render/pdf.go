// Package render — PDF renderer.
// Lays a page out the way the archive displays it: title, location, then
// the text in a monospace block wrapped at LineWidth.
package render

import (
	"bytes"
	"fmt"

	"github.com/gaurav-prasanna/babelpipe/core"
	"github.com/jung-kurt/gofpdf"
)

// PDFRenderer renders a page as a PDF document.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render converts the page into PDF bytes.
func (r *PDFRenderer) Render(page core.Page) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetTitle(page.Coordinate.Location(), false)
	pdf.AddPage()

	if page.Title != "" {
		pdf.SetFont("Helvetica", "B", 18)
		pdf.MultiCell(0, 8, page.Title, "", "L", false)
		pdf.Ln(4)
	}

	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.MultiCell(0, 5, "Location: "+page.Coordinate.Location(), "", "L", false)
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(6)

	pdf.SetFont("Courier", "", 9)
	pdf.SetFillColor(245, 245, 245)
	for _, line := range Wrap(page.Text, LineWidth) {
		pdf.CellFormat(0, 4.5, line, "", 1, "L", true, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

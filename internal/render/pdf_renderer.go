package render

import (
	"bytes"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"proformagen/internal/models"
)

// Page geometry: A4 portrait in millimetres with half-inch margins.
const (
	pageMargin   = 12.7
	contentWidth = 210 - 2*pageMargin
)

// lineItemColWidths lays out the nine invoice table columns across the
// content width.
var lineItemColWidths = []float64{22, 33, 18, 15, 27, 17, 15, 18, 19.6}

// PDFRenderer paints the block model onto a paginated A4 document.
type PDFRenderer struct{}

// NewPDFRenderer creates a new PDF renderer instance.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

func (r *PDFRenderer) ContentType() string {
	return "application/pdf"
}

func (r *PDFRenderer) FileExtension() string {
	return ".pdf"
}

func (r *PDFRenderer) Render(doc *models.InvoiceDocument) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, block := range doc.Blocks {
		switch block.Type {
		case models.BlockKeyValue:
			r.renderKeyValue(pdf, tr, block.KeyValue)
		case models.BlockParagraph:
			r.renderParagraph(pdf, tr, block.Paragraph)
		case models.BlockTable:
			r.renderTable(pdf, tr, block.Table)
		}
		pdf.Ln(4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, &RenderError{Backend: "pdf", Err: err}
	}
	return buf.Bytes(), nil
}

func (r *PDFRenderer) renderKeyValue(pdf *gofpdf.Fpdf, tr func(string) string, block *models.KeyValueBlock) {
	pdf.SetFont("Arial", "", 8)
	pdf.SetTextColor(0, 0, 0)
	colWidth := contentWidth / 2

	for _, row := range block.Rows {
		left := strings.Split(row[0], "\n")
		right := strings.Split(row[1], "\n")
		lines := len(left)
		if len(right) > lines {
			lines = len(right)
		}
		for i := 0; i < lines; i++ {
			var l, rr string
			if i < len(left) {
				l = left[i]
			}
			if i < len(right) {
				rr = right[i]
			}
			pdf.CellFormat(colWidth, 4, tr(l), "", 0, "L", false, 0, "")
			pdf.CellFormat(colWidth, 4, tr(rr), "", 1, "L", false, 0, "")
		}
	}
}

func (r *PDFRenderer) renderParagraph(pdf *gofpdf.Fpdf, tr func(string) string, block *models.ParagraphBlock) {
	style := ""
	if block.Bold {
		style = "B"
	}
	align := "L"
	if block.Centered {
		align = "C"
	}
	pdf.SetFont("Arial", style, 10)
	pdf.CellFormat(contentWidth, 6, tr(block.Text), "", 1, align, false, 0, "")
}

func (r *PDFRenderer) renderTable(pdf *gofpdf.Fpdf, tr func(string) string, block *models.TableBlock) {
	// Header row, bold on a light grey fill.
	pdf.SetFont("Arial", "B", 7)
	pdf.SetFillColor(211, 211, 211)
	for i, label := range block.Header {
		label = strings.ReplaceAll(label, "\n", " ")
		pdf.CellFormat(r.colWidth(i, len(block.Header)), 10, tr(label), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 7)
	pdf.SetFillColor(255, 255, 255)
	for _, row := range block.Rows {
		for i, cell := range row {
			pdf.CellFormat(r.colWidth(i, len(row)), 7, tr(cell), "1", 0, r.cellAlign(i, len(row)), false, 0, "")
		}
		pdf.Ln(-1)
	}

	if len(block.TotalRow) > 0 {
		pdf.SetFont("Arial", "B", 8)
		pdf.SetFillColor(211, 211, 211)
		for i, cell := range block.TotalRow {
			pdf.CellFormat(r.colWidth(i, len(block.TotalRow)), 8, tr(cell), "1", 0, r.cellAlign(i, len(block.TotalRow)), true, 0, "")
		}
		pdf.Ln(-1)
	}
}

// colWidth returns the layout width for a column. Tables other than the
// nine-column line-item grid share the content width evenly.
func (r *PDFRenderer) colWidth(index, count int) float64 {
	if count == len(lineItemColWidths) {
		return lineItemColWidths[index]
	}
	return contentWidth / float64(count)
}

// cellAlign right-aligns the trailing quantity, price and amount columns.
func (r *PDFRenderer) cellAlign(index, count int) string {
	if count == len(lineItemColWidths) && index >= count-3 {
		return "R"
	}
	return "C"
}

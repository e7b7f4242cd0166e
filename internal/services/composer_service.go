package services

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"proformagen/internal/config"
	"proformagen/internal/models"
)

// invoiceTableHeader is the fixed nine-column layout of the line-item table.
// Newlines mark the preferred wrap points for renderers that support them.
var invoiceTableHeader = []string{
	"STYLE NO.",
	"ITEM DESCRIPTION",
	"FABRIC TYPE\nKNITTED /\nWOVEN",
	"H.S NO\n(8digit)",
	"COMPOSITION OF\nMATERIAL",
	"COUNTRY OF\nORIGIN",
	"QTY",
	"UNIT PRICE\nFOB",
	"AMOUNT",
}

// ComposerService assembles aggregated line items and invoice metadata into
// a renderer-agnostic proforma invoice document.
type ComposerService interface {
	// Compose builds the full document: header boilerplate, title, line-item
	// table with totals row, totals-in-words sentence and signature footer.
	// An empty item slice yields a document with zero data rows and zero
	// totals; Compose never fails.
	Compose(items []models.AggregatedLineItem, meta models.InvoiceMetadata) *models.InvoiceDocument

	// ResolveMetadata fills empty metadata fields from the configured
	// defaults: PI number from the prefix plus current MMDD, invoice date
	// from today, PO reference and shipment date from the template.
	ResolveMetadata(meta models.InvoiceMetadata) models.InvoiceMetadata
}

type composerService struct {
	template *config.InvoiceTemplate
	now      func() time.Time
}

// NewComposerService creates a composer bound to an invoice template. A nil
// template falls back to the compiled-in defaults.
func NewComposerService(template *config.InvoiceTemplate) ComposerService {
	if template == nil {
		template = config.DefaultInvoiceTemplate()
	}
	return &composerService{template: template, now: time.Now}
}

func (s *composerService) ResolveMetadata(meta models.InvoiceMetadata) models.InvoiceMetadata {
	if meta.PINumber == "" {
		meta.PINumber = s.template.Defaults.PINumberPrefix + s.now().Format("0102")
	}
	if meta.InvoiceDate == "" {
		meta.InvoiceDate = s.now().Format("02-01-2006")
	}
	if meta.POReference == "" {
		meta.POReference = s.template.Defaults.POReference
	}
	if meta.ShipmentDate == "" {
		meta.ShipmentDate = s.template.Defaults.ShipmentDate
	}
	return meta
}

func (s *composerService) Compose(items []models.AggregatedLineItem, meta models.InvoiceMetadata) *models.InvoiceDocument {
	meta = s.ResolveMetadata(meta)

	totalQuantity := decimal.Zero
	totalAmount := decimal.Zero
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		totalQuantity = totalQuantity.Add(item.Quantity)
		totalAmount = totalAmount.Add(item.Amount)
		rows = append(rows, []string{
			item.StyleID,
			item.Description,
			item.FabricType,
			item.HSCode,
			item.Composition,
			item.CountryOfOrigin,
			formatQuantity(item.Quantity),
			formatMoney(item.UnitPrice),
			formatMoney(item.Amount),
		})
	}

	totalRow := []string{
		"", "", "", "", "",
		"Total",
		formatGroupedInt(totalQuantity.IntPart()),
		"",
		totalAmount.StringFixed(2) + s.template.Currency,
	}

	blocks := []models.Block{
		{Type: models.BlockKeyValue, KeyValue: s.headerBlock(meta)},
		{Type: models.BlockParagraph, Paragraph: &models.ParagraphBlock{
			Text:     "Proforma Invoice",
			Bold:     true,
			Centered: true,
		}},
		{Type: models.BlockTable, Table: &models.TableBlock{
			Header:   invoiceTableHeader,
			Rows:     rows,
			TotalRow: totalRow,
		}},
		{Type: models.BlockParagraph, Paragraph: &models.ParagraphBlock{
			Text:     "TOTAL US DOLLAR " + AmountInWords(totalAmount),
			Bold:     true,
			Centered: true,
		}},
		{Type: models.BlockKeyValue, KeyValue: s.footerBlock(totalQuantity)},
	}

	return &models.InvoiceDocument{
		Blocks:        blocks,
		TotalQuantity: totalQuantity,
		TotalAmount:   totalAmount,
	}
}

// headerBlock lays out the supplier, consignee, bank and shipment
// boilerplate as a two-column grid, interpolating each metadata field once.
func (s *composerService) headerBlock(meta models.InvoiceMetadata) *models.KeyValueBlock {
	t := s.template

	left := []string{
		"Supplier Name",
		t.SupplierName,
		"ADDRESS : " + t.SupplierAddress,
		"PHONE : " + t.SupplierPhone,
		"FAX : " + t.SupplierFax,
		"",
		"Consignee:-",
	}
	left = append(left, t.ConsigneeLines...)
	left = append(left,
		"Loading Country: "+t.LoadingCountry,
		"Port of loading: "+t.PortOfLoading,
		"Agreed Shipment Date: "+meta.ShipmentDate,
		"REMARKS if ANY:-",
		"Description of goods: "+t.GoodsDescription,
	)

	right := []string{
		"No. & date of PI",
		fmt.Sprintf("%s Dt. %s", meta.PINumber, meta.InvoiceDate),
		fmt.Sprintf("%s: %s", t.OrderReferenceLabel, meta.POReference),
		"Buyer Name: " + t.BuyerName,
		"Brand Name: " + t.BrandName,
		"Payment Term: " + t.PaymentTerm,
		"",
		"Bank Details (Including Swift/IBAN)",
	}
	right = append(right, t.BankLines...)
	right = append(right,
		"L/C Advicing Bank (If Payment term LC Applicable )",
		"",
		"",
		"",
		"CURRENCY: "+t.Currency,
	)

	height := len(left)
	if len(right) > height {
		height = len(right)
	}
	block := &models.KeyValueBlock{Rows: make([][2]string, height)}
	for i := 0; i < height; i++ {
		var row [2]string
		if i < len(left) {
			row[0] = left[i]
		}
		if i < len(right) {
			row[1] = right[i]
		}
		block.Rows[i] = row
	}
	return block
}

// footerBlock carries the total quantity, terms placeholder and signature
// lines.
func (s *composerService) footerBlock(totalQuantity decimal.Decimal) *models.KeyValueBlock {
	return &models.KeyValueBlock{Rows: [][2]string{
		{"Total\n" + formatGroupedInt(totalQuantity.IntPart()), "Terms & Conditions (If Any)"},
		{"", ""},
		{"", ""},
		{s.template.SignatureLine, s.template.CountersignLine},
	}}
}

// formatQuantity renders a quantity as a thousands-grouped integer; a zero
// quantity renders as an empty cell, not "0".
func formatQuantity(q decimal.Decimal) string {
	if q.IsZero() {
		return ""
	}
	return formatGroupedInt(q.IntPart())
}

// formatMoney renders a monetary value with two fixed decimals and no
// grouping; exact zero renders as an empty cell.
func formatMoney(v decimal.Decimal) string {
	if v.IsZero() {
		return ""
	}
	return v.StringFixed(2)
}

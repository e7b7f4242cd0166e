package models

import "github.com/shopspring/decimal"

// InvoiceMetadata carries the caller-supplied header fields of a proforma
// invoice. Empty fields are filled from configured defaults before
// composition; no validation is applied beyond that.
type InvoiceMetadata struct {
	PINumber     string `json:"pi_number"`
	InvoiceDate  string `json:"invoice_date"`
	POReference  string `json:"po_reference"`
	ShipmentDate string `json:"shipment_date"`
}

// BlockType discriminates the renderer-agnostic document elements.
type BlockType string

const (
	BlockKeyValue  BlockType = "key_value"
	BlockTable     BlockType = "table"
	BlockParagraph BlockType = "paragraph"
)

// Block is one element of an invoice document. Exactly one of KeyValue,
// Table and Paragraph is set, matching Type.
type Block struct {
	Type      BlockType       `json:"type"`
	KeyValue  *KeyValueBlock  `json:"key_value,omitempty"`
	Table     *TableBlock     `json:"table,omitempty"`
	Paragraph *ParagraphBlock `json:"paragraph,omitempty"`
}

// KeyValueBlock is a two-column text grid used for the header and footer
// boilerplate. Cell text may contain newlines.
type KeyValueBlock struct {
	Rows [][2]string `json:"rows"`
}

// TableBlock is the line-item table: a header row, one data row per
// aggregated style, and a totals row rendered bold and shaded.
type TableBlock struct {
	Header   []string   `json:"header"`
	Rows     [][]string `json:"rows"`
	TotalRow []string   `json:"total_row,omitempty"`
}

// ParagraphBlock is a standalone line of text such as the document title or
// the totals-in-words sentence.
type ParagraphBlock struct {
	Text     string `json:"text"`
	Bold     bool   `json:"bold"`
	Centered bool   `json:"centered"`
}

// InvoiceDocument is a composed proforma invoice, ready for any renderer
// backend. It is built per request, serialized once and discarded.
type InvoiceDocument struct {
	Blocks        []Block         `json:"blocks"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}

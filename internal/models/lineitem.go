package models

import "github.com/shopspring/decimal"

// RawRecord is one parsed worksheet row: source column header -> cell value.
// Missing cells are absent keys. The spreadsheet parser delivers every value
// as a string; numeric interpretation happens during normalization.
type RawRecord map[string]string

// CanonicalLineItem is a single order row after schema normalization.
// StyleID is always non-empty; rows without a resolvable style identifier
// never become canonical items. Amount is either the supplied total value or
// the Quantity*UnitPrice product when the source left the total blank.
type CanonicalLineItem struct {
	StyleID         string          `json:"style_id"`
	Description     string          `json:"description"`
	Composition     string          `json:"composition"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	Quantity        decimal.Decimal `json:"quantity"`
	Amount          decimal.Decimal `json:"amount"`
	FabricType      string          `json:"fabric_type"`
	HSCode          string          `json:"hs_code"`
	CountryOfOrigin string          `json:"country_of_origin"`
}

// AggregatedLineItem is one invoice table row: all canonical rows sharing a
// style collapsed together. Quantity and Amount are group sums; every other
// field is copied from the first contributing row in input order.
type AggregatedLineItem struct {
	StyleID         string          `json:"style_id"`
	Description     string          `json:"description"`
	Composition     string          `json:"composition"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	Quantity        decimal.Decimal `json:"quantity"`
	Amount          decimal.Decimal `json:"amount"`
	FabricType      string          `json:"fabric_type"`
	HSCode          string          `json:"hs_code"`
	CountryOfOrigin string          `json:"country_of_origin"`
}

// RowIssue records why a raw record was excluded from the invoice.
type RowIssue struct {
	Row    int    `json:"row"` // 1-indexed position among the data rows
	Reason string `json:"reason"`
}

// NormalizeReport summarizes a normalization pass so that skipped rows are
// reportable to the caller instead of silently disappearing from totals.
type NormalizeReport struct {
	TotalRows    int        `json:"total_rows"`
	AcceptedRows int        `json:"accepted_rows"`
	DroppedRows  []RowIssue `json:"dropped_rows,omitempty"`
}

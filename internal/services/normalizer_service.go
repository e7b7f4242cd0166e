package services

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"proformagen/internal/models"
)

// Canonical field names. These are the schema the composer works against;
// source spreadsheets reach them through the alias table below.
const (
	FieldStyleID         = "style_id"
	FieldDescription     = "description"
	FieldComposition     = "composition"
	FieldUnitPrice       = "unit_price"
	FieldQuantity        = "quantity"
	FieldAmount          = "amount"
	FieldFabricType      = "fabric_type"
	FieldHSCode          = "hs_code"
	FieldCountryOfOrigin = "country_of_origin"
)

// fieldAliases maps each canonical field to the source column names it may
// arrive under, probed in priority order: the primary name first, legacy
// spellings after. Supporting a new source schema means adding entries here,
// not new branching code.
var fieldAliases = map[string][]string{
	FieldStyleID:         {"StyleID", "Style"},
	FieldDescription:     {"Item Description", "Description"},
	FieldComposition:     {"Composition", "Material Composition"},
	FieldUnitPrice:       {"Unit Price", "USD FOB$", "USD Fob$"},
	FieldQuantity:        {"Qty", "Total Qty"},
	FieldAmount:          {"Amount", "Total Value"},
	FieldFabricType:      {"Fabric Type"},
	FieldHSCode:          {"HS Code"},
	FieldCountryOfOrigin: {"Country of Origin"},
}

// requiredFields must each be present, under some alias, somewhere in the
// input before any per-row processing is attempted.
var requiredFields = []string{
	FieldStyleID,
	FieldDescription,
	FieldComposition,
	FieldUnitPrice,
	FieldQuantity,
	FieldAmount,
}

// Defaults applied when a source never carries the optional columns.
const (
	defaultFabricType      = "KNITTED"
	defaultHSCode          = "61112000"
	defaultCountryOfOrigin = "India"
)

// InputSchemaError reports required canonical fields for which no recognized
// column alias appears anywhere in the input.
type InputSchemaError struct {
	MissingFields []string
}

func (e *InputSchemaError) Error() string {
	return fmt.Sprintf("input schema missing required fields: %s", strings.Join(e.MissingFields, ", "))
}

// NormalizerService maps heterogeneous spreadsheet rows onto the canonical
// line-item schema and aggregates them by style.
type NormalizerService interface {
	// NormalizeAndAggregate returns one aggregated item per distinct style,
	// ordered by first appearance, plus a report of rows that were dropped.
	// It fails with *InputSchemaError when a required field has no alias
	// anywhere in the input.
	NormalizeAndAggregate(records []models.RawRecord) ([]models.AggregatedLineItem, *models.NormalizeReport, error)

	// Normalize maps raw records onto canonical line items without
	// aggregating, dropping rows that lack a style identifier.
	Normalize(records []models.RawRecord) ([]models.CanonicalLineItem, *models.NormalizeReport, error)
}

type normalizerService struct{}

// NewNormalizerService creates a new normalizer service instance.
func NewNormalizerService() NormalizerService {
	return &normalizerService{}
}

func (s *normalizerService) NormalizeAndAggregate(records []models.RawRecord) ([]models.AggregatedLineItem, *models.NormalizeReport, error) {
	items, report, err := s.Normalize(records)
	if err != nil {
		return nil, nil, err
	}
	return s.aggregate(items), report, nil
}

func (s *normalizerService) Normalize(records []models.RawRecord) ([]models.CanonicalLineItem, *models.NormalizeReport, error) {
	report := &models.NormalizeReport{TotalRows: len(records)}
	if len(records) == 0 {
		return nil, report, nil
	}

	if missing := missingRequiredFields(records); len(missing) > 0 {
		return nil, nil, &InputSchemaError{MissingFields: missing}
	}

	items := make([]models.CanonicalLineItem, 0, len(records))
	for i, record := range records {
		styleID := resolveText(record, FieldStyleID)
		if styleID == "" {
			report.DroppedRows = append(report.DroppedRows, models.RowIssue{
				Row:    i + 1,
				Reason: "no resolvable style identifier",
			})
			continue
		}

		item := models.CanonicalLineItem{
			StyleID:         styleID,
			Description:     resolveText(record, FieldDescription),
			Composition:     resolveText(record, FieldComposition),
			UnitPrice:       resolveNumber(record, FieldUnitPrice),
			Quantity:        resolveNumber(record, FieldQuantity),
			Amount:          resolveNumber(record, FieldAmount),
			FabricType:      resolveTextDefault(record, FieldFabricType, defaultFabricType),
			HSCode:          cleanHSCode(resolveTextDefault(record, FieldHSCode, defaultHSCode)),
			CountryOfOrigin: resolveTextDefault(record, FieldCountryOfOrigin, defaultCountryOfOrigin),
		}

		// Recover the row total when the source never populated a value
		// column but quantity and price are both known.
		if item.Amount.IsZero() && item.Quantity.IsPositive() && item.UnitPrice.IsPositive() {
			item.Amount = item.Quantity.Mul(item.UnitPrice)
		}

		items = append(items, item)
	}

	report.AcceptedRows = len(items)
	return items, report, nil
}

// aggregate collapses canonical items sharing a style into one row each,
// summing quantity and amount. Descriptive fields come from the first item
// seen for the style; output order is order of first appearance.
func (s *normalizerService) aggregate(items []models.CanonicalLineItem) []models.AggregatedLineItem {
	index := make(map[string]int, len(items))
	aggregated := make([]models.AggregatedLineItem, 0, len(items))

	for _, item := range items {
		if at, seen := index[item.StyleID]; seen {
			aggregated[at].Quantity = aggregated[at].Quantity.Add(item.Quantity)
			aggregated[at].Amount = aggregated[at].Amount.Add(item.Amount)
			continue
		}
		index[item.StyleID] = len(aggregated)
		aggregated = append(aggregated, models.AggregatedLineItem{
			StyleID:         item.StyleID,
			Description:     item.Description,
			Composition:     item.Composition,
			UnitPrice:       item.UnitPrice,
			Quantity:        item.Quantity,
			Amount:          item.Amount,
			FabricType:      item.FabricType,
			HSCode:          item.HSCode,
			CountryOfOrigin: item.CountryOfOrigin,
		})
	}

	return aggregated
}

// missingRequiredFields scans the union of column names across all records
// and returns the canonical fields with no recognized alias anywhere.
func missingRequiredFields(records []models.RawRecord) []string {
	present := make(map[string]bool)
	for _, record := range records {
		for column := range record {
			present[column] = true
		}
	}

	var missing []string
	for _, field := range requiredFields {
		found := false
		for _, alias := range fieldAliases[field] {
			if present[alias] {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, field)
		}
	}
	return missing
}

// resolveText probes a field's aliases in priority order and returns the
// first present, non-blank value, trimmed.
func resolveText(record models.RawRecord, field string) string {
	for _, alias := range fieldAliases[field] {
		if value, ok := record[alias]; ok {
			if trimmed := strings.TrimSpace(value); trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}

func resolveTextDefault(record models.RawRecord, field, fallback string) string {
	if value := resolveText(record, field); value != "" {
		return value
	}
	return fallback
}

// resolveNumber resolves a numeric field. Absent, blank or unparseable
// values become zero so downstream arithmetic never faults on missing data.
func resolveNumber(record models.RawRecord, field string) decimal.Decimal {
	raw := resolveText(record, field)
	if raw == "" {
		return decimal.Zero
	}
	// Tolerate grouped renderings like "4,107" and currency-ish prefixes.
	raw = strings.ReplaceAll(raw, ",", "")
	raw = strings.TrimPrefix(raw, "$")
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return value
}

// cleanHSCode strips literal dot characters: sources sometimes encode HS
// codes as decimal-looking numbers, e.g. "6111.20" for 611120.
func cleanHSCode(code string) string {
	return strings.ReplaceAll(code, ".", "")
}

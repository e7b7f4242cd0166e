package services

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proformagen/internal/config"
	"proformagen/internal/models"
)

func fixedClockComposer() *composerService {
	return &composerService{
		template: config.DefaultInvoiceTemplate(),
		now:      func() time.Time { return time.Date(2025, 2, 7, 10, 30, 0, 0, time.UTC) },
	}
}

func sampleItems() []models.AggregatedLineItem {
	return []models.AggregatedLineItem{
		{
			StyleID:         "SS101",
			Description:     "Romper",
			Composition:     "100% Cotton",
			UnitPrice:       decimal.RequireFromString("6.00"),
			Quantity:        decimal.NewFromInt(2607),
			Amount:          decimal.RequireFromString("15642.00"),
			FabricType:      "KNITTED",
			HSCode:          "61112000",
			CountryOfOrigin: "India",
		},
		{
			StyleID:         "SS102",
			Description:     "Bodysuit",
			Composition:     "100% Cotton",
			UnitPrice:       decimal.RequireFromString("6.00"),
			Quantity:        decimal.NewFromInt(2000),
			Amount:          decimal.RequireFromString("12000.00"),
			FabricType:      "KNITTED",
			HSCode:          "61112000",
			CountryOfOrigin: "India",
		},
	}
}

func findTable(t *testing.T, doc *models.InvoiceDocument) *models.TableBlock {
	t.Helper()
	for _, block := range doc.Blocks {
		if block.Type == models.BlockTable {
			return block.Table
		}
	}
	t.Fatal("document has no table block")
	return nil
}

func keyValueText(doc *models.InvoiceDocument) string {
	var sb strings.Builder
	for _, block := range doc.Blocks {
		if block.Type != models.BlockKeyValue {
			continue
		}
		for _, row := range block.KeyValue.Rows {
			sb.WriteString(row[0])
			sb.WriteString("\n")
			sb.WriteString(row[1])
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func TestResolveMetadata_AppliesDefaults(t *testing.T) {
	svc := fixedClockComposer()

	meta := svc.ResolveMetadata(models.InvoiceMetadata{})
	assert.Equal(t, "SAR/LG/0207", meta.PINumber)
	assert.Equal(t, "07-02-2025", meta.InvoiceDate)
	assert.Equal(t, "CPO/47062/25", meta.POReference)
	assert.Equal(t, "07-02-2025", meta.ShipmentDate)
}

func TestResolveMetadata_KeepsProvidedValues(t *testing.T) {
	svc := fixedClockComposer()

	meta := svc.ResolveMetadata(models.InvoiceMetadata{
		PINumber:     "SAR/LG/9999",
		InvoiceDate:  "01-01-2025",
		POReference:  "CPO/123/99",
		ShipmentDate: "15-03-2025",
	})
	assert.Equal(t, "SAR/LG/9999", meta.PINumber)
	assert.Equal(t, "01-01-2025", meta.InvoiceDate)
	assert.Equal(t, "CPO/123/99", meta.POReference)
	assert.Equal(t, "15-03-2025", meta.ShipmentDate)
}

func TestCompose_TotalsRow(t *testing.T) {
	svc := fixedClockComposer()

	doc := svc.Compose(sampleItems(), models.InvoiceMetadata{})
	table := findTable(t, doc)

	require.Len(t, table.TotalRow, len(invoiceTableHeader))
	assert.Equal(t, "Total", table.TotalRow[5])
	assert.Equal(t, "4,607", table.TotalRow[6])
	assert.Equal(t, "", table.TotalRow[7])
	assert.Equal(t, "27642.00USD", table.TotalRow[8])

	assert.True(t, doc.TotalQuantity.Equal(decimal.NewFromInt(4607)))
	assert.True(t, doc.TotalAmount.Equal(decimal.RequireFromString("27642")))
}

func TestCompose_LineItemCells(t *testing.T) {
	svc := fixedClockComposer()

	doc := svc.Compose(sampleItems(), models.InvoiceMetadata{})
	table := findTable(t, doc)

	require.Len(t, table.Rows, 2)
	require.Len(t, table.Rows[0], len(invoiceTableHeader))
	assert.Equal(t, []string{
		"SS101", "Romper", "KNITTED", "61112000", "100% Cotton", "India",
		"2,607", "6.00", "15642.00",
	}, table.Rows[0])
}

func TestCompose_ZeroValuesRenderAsBlankCells(t *testing.T) {
	svc := fixedClockComposer()
	items := []models.AggregatedLineItem{{
		StyleID:         "SS103",
		Description:     "Placeholder",
		FabricType:      "KNITTED",
		HSCode:          "61112000",
		CountryOfOrigin: "India",
	}}

	doc := svc.Compose(items, models.InvoiceMetadata{})
	table := findTable(t, doc)

	require.Len(t, table.Rows, 1)
	assert.Equal(t, "", table.Rows[0][6], "zero quantity renders blank")
	assert.Equal(t, "", table.Rows[0][7], "zero unit price renders blank")
	assert.Equal(t, "", table.Rows[0][8], "zero amount renders blank")
}

func TestCompose_EmptyItems(t *testing.T) {
	svc := fixedClockComposer()

	doc := svc.Compose(nil, models.InvoiceMetadata{})
	table := findTable(t, doc)

	assert.Empty(t, table.Rows)
	assert.Equal(t, "0", table.TotalRow[6])
	assert.Equal(t, "0.00USD", table.TotalRow[8])
	assert.True(t, doc.TotalAmount.IsZero())

	var words *models.ParagraphBlock
	for _, block := range doc.Blocks {
		if block.Type == models.BlockParagraph && strings.HasPrefix(block.Paragraph.Text, "TOTAL US DOLLAR ") {
			words = block.Paragraph
		}
	}
	require.NotNil(t, words, "totals-in-words paragraph must be present even with no items")
}

func TestCompose_MetadataAppearsOnce(t *testing.T) {
	svc := fixedClockComposer()
	meta := models.InvoiceMetadata{
		PINumber:     "SAR/LG/4242",
		InvoiceDate:  "24-08-2026",
		POReference:  "CPO/555/26",
		ShipmentDate: "30-09-2026",
	}

	doc := svc.Compose(sampleItems(), meta)
	text := keyValueText(doc)

	assert.Equal(t, 1, strings.Count(text, "SAR/LG/4242"))
	assert.Equal(t, 1, strings.Count(text, "24-08-2026"))
	assert.Equal(t, 1, strings.Count(text, "CPO/555/26"))
	assert.Equal(t, 1, strings.Count(text, "30-09-2026"))
}

func TestCompose_WordsSentenceMatchesTotal(t *testing.T) {
	svc := fixedClockComposer()

	doc := svc.Compose(sampleItems(), models.InvoiceMetadata{})

	var sentence string
	for _, block := range doc.Blocks {
		if block.Type == models.BlockParagraph && strings.HasPrefix(block.Paragraph.Text, "TOTAL US DOLLAR ") {
			sentence = block.Paragraph.Text
		}
	}
	require.NotEmpty(t, sentence)
	assert.Contains(t, sentence, "TWENTY")
	assert.Contains(t, sentence, "THOUSAND")
	assert.True(t, strings.HasSuffix(sentence, "DOLLARS"), "got %q", sentence)
}

func TestCompose_FooterCarriesGroupedQuantity(t *testing.T) {
	svc := fixedClockComposer()

	doc := svc.Compose(sampleItems(), models.InvoiceMetadata{})
	footer := doc.Blocks[len(doc.Blocks)-1]
	require.Equal(t, models.BlockKeyValue, footer.Type)
	assert.Equal(t, "Total\n4,607", footer.KeyValue.Rows[0][0])
	assert.Equal(t, "Terms & Conditions (If Any)", footer.KeyValue.Rows[0][1])
}

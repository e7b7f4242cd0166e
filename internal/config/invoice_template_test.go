package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultInvoiceTemplate(t *testing.T) {
	template := DefaultInvoiceTemplate()

	assert.Equal(t, "SAR APPARELS INDIA PVT.LTD.", template.SupplierName)
	assert.Equal(t, "USD", template.Currency)
	assert.Equal(t, "SAR/LG/", template.Defaults.PINumberPrefix)
	assert.Equal(t, "CPO/47062/25", template.Defaults.POReference)
	assert.NotEmpty(t, template.ConsigneeLines)
	assert.NotEmpty(t, template.BankLines)
}

func TestLoadInvoiceTemplate_EmptyPathReturnsDefaults(t *testing.T) {
	template, err := LoadInvoiceTemplate("")
	require.NoError(t, err)
	assert.Equal(t, DefaultInvoiceTemplate(), template)
}

func TestLoadInvoiceTemplate_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "template.toml")
	contents := `
supplier_name = "ACME EXPORTS LTD."
currency = "EUR"

[defaults]
pi_number_prefix = "ACME/EU/"
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	template, err := LoadInvoiceTemplate(path)
	require.NoError(t, err)

	assert.Equal(t, "ACME EXPORTS LTD.", template.SupplierName)
	assert.Equal(t, "EUR", template.Currency)
	assert.Equal(t, "ACME/EU/", template.Defaults.PINumberPrefix)

	// Fields the file omits keep their compiled-in values.
	assert.Equal(t, "LANDMARK GROUP", template.BuyerName)
	assert.Equal(t, "CPO/47062/25", template.Defaults.POReference)
}

func TestLoadInvoiceTemplate_MissingFile(t *testing.T) {
	_, err := LoadInvoiceTemplate(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load invoice template")
}

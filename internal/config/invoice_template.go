package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// InvoiceTemplate holds the business-identity boilerplate that frames every
// proforma invoice. It is configuration, not pipeline logic: swapping the
// supplier or buyer means editing the TOML file, not the composer.
type InvoiceTemplate struct {
	SupplierName        string   `toml:"supplier_name"`
	SupplierAddress     string   `toml:"supplier_address"`
	SupplierPhone       string   `toml:"supplier_phone"`
	SupplierFax         string   `toml:"supplier_fax"`
	ConsigneeLines      []string `toml:"consignee_lines"`
	BuyerName           string   `toml:"buyer_name"`
	BrandName           string   `toml:"brand_name"`
	PaymentTerm         string   `toml:"payment_term"`
	OrderReferenceLabel string   `toml:"order_reference_label"`
	BankLines           []string `toml:"bank_lines"`
	LoadingCountry      string   `toml:"loading_country"`
	PortOfLoading       string   `toml:"port_of_loading"`
	GoodsDescription    string   `toml:"goods_description"`
	Currency            string   `toml:"currency"`
	SignatureLine       string   `toml:"signature_line"`
	CountersignLine     string   `toml:"countersign_line"`

	Defaults MetadataDefaults `toml:"defaults"`
}

// MetadataDefaults supplies invoice metadata when the caller omits it.
type MetadataDefaults struct {
	// PINumberPrefix is completed with the current MMDD, e.g. "SAR/LG/0824".
	PINumberPrefix string `toml:"pi_number_prefix"`
	POReference    string `toml:"po_reference"`
	ShipmentDate   string `toml:"shipment_date"`
}

// DefaultInvoiceTemplate returns the compiled-in SAR Apparels / Landmark
// template used when no TOML file is configured.
func DefaultInvoiceTemplate() *InvoiceTemplate {
	return &InvoiceTemplate{
		SupplierName:    "SAR APPARELS INDIA PVT.LTD.",
		SupplierAddress: "6, Picaso Bithi, KOLKATA - 700017.",
		SupplierPhone:   "9874173373",
		SupplierFax:     "N.A.",
		ConsigneeLines: []string{
			"RNA Resources Group Ltd- Landmark (Babyshop),",
			"P O Box 25030, Dubai, UAE,",
			"Tel: 00971 4 8095500, Fax: 00971 4 8095555/66",
		},
		BuyerName:           "LANDMARK GROUP",
		BrandName:           "Juniors",
		PaymentTerm:         "T/T",
		OrderReferenceLabel: "Landmark order Reference",
		BankLines: []string{
			":- SAR APPARELS INDIA PVT.LTD",
			"BENEFICIARY",
			"ACCOUNT NO :- 2112819952",
			"BANK'S NAME :- KOTAK MAHINDRA BANK LTD",
			"BANK ADDRESS :- 2 BRABOURNE ROAD, GOVIND BHAVAN, GROUND FLOOR,",
			"KOLKATA-700001",
			"SWIFT CODE :- KKBKINBBCPC",
			"BANK CODE :- 0323",
		},
		LoadingCountry:   "India",
		PortOfLoading:    "Mumbai",
		GoodsDescription: "Value Packs",
		Currency:         "USD",
		SignatureLine:    "Signed by …………………….(Affix Stamp here)",
		CountersignLine:  "for RNA Resources Group Ltd-Landmark (Babyshop)",
		Defaults: MetadataDefaults{
			PINumberPrefix: "SAR/LG/",
			POReference:    "CPO/47062/25",
			ShipmentDate:   "07-02-2025",
		},
	}
}

// LoadInvoiceTemplate reads an invoice template from a TOML file. Fields the
// file omits keep their compiled-in defaults. An empty path returns the
// defaults unchanged.
func LoadInvoiceTemplate(filename string) (*InvoiceTemplate, error) {
	template := DefaultInvoiceTemplate()
	if filename == "" {
		return template, nil
	}
	if _, err := toml.DecodeFile(filename, template); err != nil {
		return nil, fmt.Errorf("failed to load invoice template: %w", err)
	}
	return template, nil
}

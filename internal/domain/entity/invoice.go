package entity

import (
	"strings"

	"github.com/garyjia/invoice-renderer/pkg/utils"
)

// InvoiceRecord is the complete input of one render pass.
// It is treated as immutable while a render is in progress.
type InvoiceRecord struct {
	InvoiceNo string `json:"invoice_no"`
	Date      string `json:"date"`

	IssuerCompany string `json:"issuer_company"`
	IssuerAddress string `json:"issuer_address"`
	IssuerEmail   string `json:"issuer_email"`

	RecipientName    string `json:"recipient_name"`
	RecipientAddress string `json:"recipient_address"`
	RecipientEmail   string `json:"recipient_email"`
	RecipientPhone   string `json:"recipient_phone"`

	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	TaxRate     float64 `json:"tax_rate"`

	Logo      *AssetRef `json:"logo,omitempty"`
	Signature *AssetRef `json:"signature,omitempty"`
}

// DerivedTotals holds the monetary summary of a record
type DerivedTotals struct {
	LineTotal  float64 `json:"line_total"`
	TaxAmount  float64 `json:"tax_amount"`
	GrandTotal float64 `json:"grand_total"`
}

// Totals computes the line total, tax amount and grand total.
// Values are recomputed on every call.
func (r InvoiceRecord) Totals() DerivedTotals {
	lineTotal := r.Quantity * r.UnitPrice
	taxAmount := lineTotal * r.TaxRate / 100
	return DerivedTotals{
		LineTotal:  lineTotal,
		TaxAmount:  taxAmount,
		GrandTotal: lineTotal + taxAmount,
	}
}

// IssuerLines returns the non-empty issuer fields in display order
func (r InvoiceRecord) IssuerLines() []string {
	return nonEmpty(r.IssuerCompany, r.IssuerAddress, r.IssuerEmail)
}

// RecipientLines returns the non-empty recipient fields in display order
func (r InvoiceRecord) RecipientLines() []string {
	return nonEmpty(r.RecipientName, r.RecipientAddress, r.RecipientEmail, r.RecipientPhone)
}

func nonEmpty(values ...string) []string {
	lines := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			lines = append(lines, v)
		}
	}
	return lines
}

// InvoiceForm is the record as it arrives from the form editor.
// Numeric fields are raw strings; assets are data URLs, URLs or paths.
type InvoiceForm struct {
	InvoiceNo        string `json:"invoiceNo"`
	Date             string `json:"date"`
	IssuerCompany    string `json:"issuerCompany"`
	IssuerAddress    string `json:"issuerAddress"`
	IssuerEmail      string `json:"issuerEmail"`
	RecipientName    string `json:"recipientName"`
	RecipientAddress string `json:"recipientAddress"`
	RecipientEmail   string `json:"recipientEmail"`
	RecipientPhone   string `json:"recipientPhone"`
	Description      string `json:"description"`
	Quantity         string `json:"quantity"`
	UnitPrice        string `json:"unitPrice"`
	TaxRate          string `json:"taxRate"`
	Logo             string `json:"logo,omitempty"`
	Signature        string `json:"signature,omitempty"`
}

// ToRecord converts the form into a record. Unparsable numbers become 0.
func (f InvoiceForm) ToRecord() InvoiceRecord {
	return InvoiceRecord{
		InvoiceNo:        strings.TrimSpace(f.InvoiceNo),
		Date:             strings.TrimSpace(f.Date),
		IssuerCompany:    strings.TrimSpace(f.IssuerCompany),
		IssuerAddress:    strings.TrimSpace(f.IssuerAddress),
		IssuerEmail:      strings.TrimSpace(f.IssuerEmail),
		RecipientName:    strings.TrimSpace(f.RecipientName),
		RecipientAddress: strings.TrimSpace(f.RecipientAddress),
		RecipientEmail:   strings.TrimSpace(f.RecipientEmail),
		RecipientPhone:   strings.TrimSpace(f.RecipientPhone),
		Description:      strings.TrimSpace(f.Description),
		Quantity:         utils.ParseNumber(f.Quantity),
		UnitPrice:        utils.ParseNumber(f.UnitPrice),
		TaxRate:          utils.ParseNumber(f.TaxRate),
		Logo:             NewAssetRef(f.Logo),
		Signature:        NewAssetRef(f.Signature),
	}
}

// DefaultInvoiceForm returns the sample invoice shown on first load
func DefaultInvoiceForm(today string) InvoiceForm {
	return InvoiceForm{
		InvoiceNo:        "2025-001",
		Date:             today,
		IssuerCompany:    "NovaPay Solutions",
		IssuerAddress:    "742 Evergreen Terrace, Suite 200, Austin, TX 78701",
		IssuerEmail:      "billing@novapay.io",
		RecipientName:    "James Mitchell",
		RecipientAddress: "350 Fifth Avenue, New York, NY 10118",
		RecipientEmail:   "j.mitchell@acmecorp.com",
		RecipientPhone:   "+1 212 555 0147",
		Description:      "Software Development (hours)",
		Quantity:         "80",
		UnitPrice:        "75",
		TaxRate:          "8.25",
	}
}

// DownloadFileName is the file name offered when the PDF is downloaded
func (r InvoiceRecord) DownloadFileName() string {
	no := sanitizeFileName(r.InvoiceNo)
	if no == "" {
		no = "draft"
	}
	return "invoice_" + no + ".pdf"
}

func sanitizeFileName(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_' || r == '.':
			return r
		case r == ' ' || r == '/' || r == '\\':
			return '_'
		}
		return -1
	}, strings.TrimSpace(s))
}

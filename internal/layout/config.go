package layout

import (
	"time"

	"github.com/garyjia/invoice-renderer/pkg/utils"
)

// Page geometry in millimetres (A4 portrait)
const (
	PageWidth  = 210.0
	PageHeight = 297.0
	LeftMargin = 10.0
)

const (
	fontFamily = "Helvetica"
	title      = "Invoice"

	logoX, logoY, logoW                = 10.0, 8.0, 33.0
	signatureX, signatureY, signatureW = 10.0, 250.0, 40.0

	titleY       = 15.0
	titleSize    = 20.0
	bodySize     = 10.0
	totalSize    = 12.0
	labelInset   = 60.0
	invoiceNoY   = 23.0
	dateY        = 28.0
	sectionY     = 42.0
	recipientX   = 110.0
	partyGap     = 6.0
	partyLineH   = 5.0
	tableY       = 80.0
	rowH         = 10.0
	cellPad      = 2.0
	textDrop     = 7.0
	summaryGap   = 10.0
	summaryRowH  = 8.0
	summaryDrop  = 6.0
	summaryStep  = 10.0
	totalRowDrop = 30.0
)

// Column widths of the line-item table
var columns = struct{ Desc, Qty, Price, Total float64 }{90, 30, 35, 35}

// tableWidth is the combined width of every column
func tableWidth() float64 {
	return columns.Desc + columns.Qty + columns.Price + columns.Total
}

// epoch is stamped on documents whose record date does not parse
var epoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// Config holds layout settings that may vary per deployment
type Config struct {
	RightMargin    float64
	TaxLabel       string
	CurrencySymbol string
	Producer       string
}

// DefaultConfig returns the stock invoice layout
func DefaultConfig() Config {
	return Config{
		RightMargin:    10,
		TaxLabel:       "NY Income Tax",
		CurrencySymbol: utils.CurrencySymbol,
		Producer:       "invoice-renderer",
	}
}

// withDefaults fills zero values from DefaultConfig
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.RightMargin <= 0 {
		c.RightMargin = d.RightMargin
	}
	if c.TaxLabel == "" {
		c.TaxLabel = d.TaxLabel
	}
	if c.CurrencySymbol == "" {
		c.CurrencySymbol = d.CurrencySymbol
	}
	if c.Producer == "" {
		c.Producer = d.Producer
	}
	return c
}

// rightEdge is the x coordinate right-aligned header text ends at
func (c Config) rightEdge() float64 {
	return PageWidth - c.RightMargin
}

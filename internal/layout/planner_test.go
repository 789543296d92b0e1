package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garyjia/invoice-renderer/internal/domain/entity"
)

func sampleRecord() entity.InvoiceRecord {
	return entity.DefaultInvoiceForm("07/03/2025").ToRecord()
}

func texts(cmds []Command) []Text {
	var out []Text
	for _, c := range cmds {
		if t, ok := c.(Text); ok {
			out = append(out, t)
		}
	}
	return out
}

func findText(t *testing.T, cmds []Command, value string) Text {
	t.Helper()
	for _, tx := range texts(cmds) {
		if tx.Value == value {
			return tx
		}
	}
	require.Failf(t, "text not found", "%q", value)
	return Text{}
}

func TestPlan_TitleBlock(t *testing.T) {
	cmds := Plan(sampleRecord(), Assets{}, DefaultConfig())

	heading := findText(t, cmds, "Invoice")
	assert.Equal(t, Text{X: 200, Y: 15, Value: "Invoice", Bold: true, Size: 20, Color: black, Align: AlignRight}, heading)

	label := findText(t, cmds, "Invoice No.")
	assert.Equal(t, 140.0, label.X)
	assert.Equal(t, 23.0, label.Y)
	assert.False(t, label.Bold)

	no := findText(t, cmds, "2025-001")
	assert.Equal(t, AlignRight, no.Align)
	assert.Equal(t, 200.0, no.X)

	date := findText(t, cmds, "07/03/2025")
	assert.Equal(t, 28.0, date.Y)
	assert.Equal(t, AlignRight, date.Align)
}

func TestPlan_RightMarginMovesTitleBlock(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RightMargin = 20

	cmds := Plan(sampleRecord(), Assets{}, cfg)

	assert.Equal(t, 190.0, findText(t, cmds, "Invoice").X)
	assert.Equal(t, 130.0, findText(t, cmds, "Date").X)
}

func TestPlan_PartyColumns(t *testing.T) {
	cmds := Plan(sampleRecord(), Assets{}, DefaultConfig())

	issuer := findText(t, cmds, "ISSUER")
	assert.True(t, issuer.Bold)
	assert.Equal(t, 10.0, issuer.X)
	assert.Equal(t, 42.0, issuer.Y)

	recipient := findText(t, cmds, "RECIPIENT")
	assert.Equal(t, 110.0, recipient.X)
	assert.Equal(t, 42.0, recipient.Y)

	assert.Equal(t, 48.0, findText(t, cmds, "NovaPay Solutions").Y)
	assert.Equal(t, 53.0, findText(t, cmds, "742 Evergreen Terrace, Suite 200, Austin, TX 78701").Y)
	assert.Equal(t, 58.0, findText(t, cmds, "billing@novapay.io").Y)
	assert.Equal(t, 63.0, findText(t, cmds, "+1 212 555 0147").Y)
}

func TestPlan_SkipsEmptyPartyFields(t *testing.T) {
	record := sampleRecord()
	record.IssuerCompany = ""
	record.RecipientAddress = ""
	record.RecipientEmail = ""

	cmds := Plan(record, Assets{}, DefaultConfig())

	address := findText(t, cmds, "742 Evergreen Terrace, Suite 200, Austin, TX 78701")
	assert.Equal(t, 48.0, address.Y)
	assert.Equal(t, 53.0, findText(t, cmds, "billing@novapay.io").Y)

	phone := findText(t, cmds, "+1 212 555 0147")
	assert.Equal(t, 110.0, phone.X)
	assert.Equal(t, 53.0, phone.Y)
}

func TestPlan_AllOptionalFieldsAbsent(t *testing.T) {
	cmds := Plan(entity.InvoiceRecord{}, Assets{}, DefaultConfig())

	for _, tx := range texts(cmds) {
		if tx.X == 10 || tx.X == 110 {
			if tx.Y > 42 && tx.Y < 80 {
				t.Errorf("unexpected party line %q at y=%v", tx.Value, tx.Y)
			}
		}
	}

	findText(t, cmds, "Invoice")
	findText(t, cmds, "Description")
	findText(t, cmds, "Subtotal")
	findText(t, cmds, "NY Income Tax 0,00%")
	findText(t, cmds, "Total")
	for _, c := range cmds {
		_, isImage := c.(Image)
		assert.False(t, isImage)
	}
}

func TestPlan_Table(t *testing.T) {
	cmds := Plan(sampleRecord(), Assets{}, DefaultConfig())

	require.IsType(t, FilledRect{}, firstOf[FilledRect](cmds))
	header := firstOf[FilledRect](cmds)
	assert.Equal(t, FilledRect{X: 10, Y: 80, W: 190, H: 10, Fill: headerFill}, header)

	assert.Equal(t, Text{X: 12, Y: 87, Value: "Description", Size: 10, Color: black}, findText(t, cmds, "Description"))
	assert.Equal(t, Text{X: 102, Y: 87, Value: "Quantity", Size: 10, Color: black}, findText(t, cmds, "Quantity"))
	assert.Equal(t, Text{X: 163, Y: 87, Value: "Unit Price", Size: 10, Color: black, Align: AlignRight}, findText(t, cmds, "Unit Price"))

	line := firstOf[Line](cmds)
	assert.Equal(t, Line{X1: 10, Y1: 100, X2: 200, Y2: 100, Color: separator}, line)

	assert.Equal(t, 97.0, findText(t, cmds, "Software Development (hours)").Y)
	qty := findText(t, cmds, "80")
	assert.Equal(t, 102.0, qty.X)
	price := findText(t, cmds, "$ 75,00")
	assert.Equal(t, 163.0, price.X)
	assert.Equal(t, AlignRight, price.Align)
}

func TestPlan_SummaryScenario(t *testing.T) {
	cmds := Plan(sampleRecord(), Assets{}, DefaultConfig())

	var subtotal, tax, total []Text
	for _, tx := range texts(cmds) {
		switch tx.Y {
		case 116:
			subtotal = append(subtotal, tx)
		case 126:
			tax = append(tax, tx)
		case 140:
			total = append(total, tx)
		}
	}

	require.Len(t, subtotal, 2)
	assert.Equal(t, "Subtotal", subtotal[0].Value)
	assert.Equal(t, "$ 6.000,00", subtotal[1].Value)
	assert.True(t, subtotal[1].Bold)
	assert.Equal(t, 198.0, subtotal[1].X)

	require.Len(t, tax, 2)
	assert.Equal(t, "NY Income Tax 8,25%", tax[0].Value)
	assert.Equal(t, "$ 495,00", tax[1].Value)

	require.Len(t, total, 2)
	assert.Equal(t, "Total", total[0].Value)
	assert.Equal(t, "$ 6.495,00", total[1].Value)
	assert.Equal(t, 12.0, total[1].Size)
	assert.True(t, total[1].Bold)

	var fills []FilledRect
	for _, c := range cmds {
		if r, ok := c.(FilledRect); ok {
			fills = append(fills, r)
		}
	}
	require.Len(t, fills, 3)
	assert.Equal(t, FilledRect{X: 10, Y: 110, W: 190, H: 8, Fill: summaryFill}, fills[1])
	assert.Equal(t, FilledRect{X: 10, Y: 120, W: 190, H: 8, Fill: summaryFill}, fills[2])
}

func TestPlan_ZeroValuesStillRenderSummary(t *testing.T) {
	record := entity.InvoiceForm{Quantity: "x", UnitPrice: "y", TaxRate: "z"}.ToRecord()
	cmds := Plan(record, Assets{}, DefaultConfig())

	var zeros int
	for _, tx := range texts(cmds) {
		if tx.Value == "$ 0,00" {
			zeros++
		}
	}
	// unit price, line total, subtotal, tax, grand total
	assert.Equal(t, 5, zeros)
	findText(t, cmds, "0")
}

func TestPlan_CustomTaxLabelAndCurrency(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TaxLabel = "VAT"
	cfg.CurrencySymbol = "€"

	cmds := Plan(sampleRecord(), Assets{}, cfg)

	findText(t, cmds, "VAT 8,25%")
	findText(t, cmds, "€ 6.495,00")
}

func TestPlan_Images(t *testing.T) {
	logo := &entity.Image{PNG: []byte{1}, Width: 200, Height: 100}
	sig := &entity.Image{PNG: []byte{1}, Width: 100, Height: 50}

	cmds := Plan(sampleRecord(), Assets{Logo: logo, Signature: sig}, DefaultConfig())

	first, ok := cmds[0].(Image)
	require.True(t, ok, "logo is drawn first")
	assert.Equal(t, "logo", first.Name)
	assert.Equal(t, 10.0, first.X)
	assert.Equal(t, 8.0, first.Y)
	assert.Equal(t, 33.0, first.W)
	assert.Equal(t, 16.5, first.H)

	last, ok := cmds[len(cmds)-1].(Image)
	require.True(t, ok, "signature is drawn last")
	assert.Equal(t, "signature", last.Name)
	assert.Equal(t, 250.0, last.Y)
	assert.Equal(t, 40.0, last.W)
	assert.Equal(t, 20.0, last.H)
}

func TestPlan_IgnoresEmptyImages(t *testing.T) {
	cmds := Plan(sampleRecord(), Assets{Logo: &entity.Image{}}, DefaultConfig())
	_, isImage := cmds[0].(Image)
	assert.False(t, isImage)
}

func TestPlan_Deterministic(t *testing.T) {
	a := Plan(sampleRecord(), Assets{}, DefaultConfig())
	b := Plan(sampleRecord(), Assets{}, DefaultConfig())
	assert.Equal(t, a, b)
}

func firstOf[T Command](cmds []Command) T {
	var zero T
	for _, c := range cmds {
		if v, ok := c.(T); ok {
			return v
		}
	}
	return zero
}

package layout

import (
	"github.com/garyjia/invoice-renderer/internal/domain/entity"
	"github.com/garyjia/invoice-renderer/pkg/utils"
)

// Assets are the resolved raster images for one render; nil means absent
type Assets struct {
	Logo      *entity.Image
	Signature *entity.Image
}

// planner accumulates draw commands in visual order
type planner struct {
	cfg  Config
	cmds []Command
}

// Plan lays out a record on a single page. It is a pure function of its
// inputs: the same record, assets and config always give the same commands.
func Plan(record entity.InvoiceRecord, assets Assets, cfg Config) []Command {
	p := &planner{cfg: cfg.withDefaults()}

	p.logo(assets.Logo)
	p.titleBlock(record)
	p.parties(record)
	totals := record.Totals()
	p.table(record, totals)
	p.summary(record, totals)
	p.signature(assets.Signature)

	return p.cmds
}

func (p *planner) add(c Command) {
	p.cmds = append(p.cmds, c)
}

func (p *planner) text(x, y float64, value string, bold bool, size float64, align Align) {
	p.add(Text{X: x, Y: y, Value: value, Bold: bold, Size: size, Color: black, Align: align})
}

func (p *planner) money(amount float64) string {
	return utils.FormatCurrencySymbol(p.cfg.CurrencySymbol, amount)
}

// image places a raster at a fixed width with proportional height
func (p *planner) image(name string, x, y, w float64, img *entity.Image) {
	if img == nil || len(img.PNG) == 0 || img.Width <= 0 || img.Height <= 0 {
		return
	}
	p.add(Image{Name: name, X: x, Y: y, W: w, H: w * img.AspectRatio(), Data: img})
}

func (p *planner) logo(img *entity.Image) {
	p.image(string(entity.AssetLogo), logoX, logoY, logoW, img)
}

func (p *planner) signature(img *entity.Image) {
	p.image(string(entity.AssetSignature), signatureX, signatureY, signatureW, img)
}

func (p *planner) titleBlock(record entity.InvoiceRecord) {
	right := p.cfg.rightEdge()
	labelX := right - labelInset

	p.text(right, titleY, title, true, titleSize, AlignRight)

	p.text(labelX, invoiceNoY, "Invoice No.", false, bodySize, AlignLeft)
	p.text(right, invoiceNoY, record.InvoiceNo, false, bodySize, AlignRight)

	p.text(labelX, dateY, "Date", false, bodySize, AlignLeft)
	p.text(right, dateY, record.Date, false, bodySize, AlignRight)
}

func (p *planner) parties(record entity.InvoiceRecord) {
	p.party(LeftMargin, "ISSUER", record.IssuerLines())
	p.party(recipientX, "RECIPIENT", record.RecipientLines())
}

// party draws a bold header and the non-empty lines under it
func (p *planner) party(x float64, header string, lines []string) {
	p.text(x, sectionY, header, true, bodySize, AlignLeft)
	for i, line := range lines {
		p.text(x, sectionY+partyGap+float64(i)*partyLineH, line, false, bodySize, AlignLeft)
	}
}

func (p *planner) table(record entity.InvoiceRecord, totals entity.DerivedTotals) {
	width := tableWidth()
	qtyX := LeftMargin + columns.Desc
	priceRight := qtyX + columns.Qty + columns.Price - cellPad
	totalRight := LeftMargin + width - cellPad

	p.add(FilledRect{X: LeftMargin, Y: tableY, W: width, H: rowH, Fill: headerFill})

	headerY := tableY + textDrop
	p.text(LeftMargin+cellPad, headerY, "Description", false, bodySize, AlignLeft)
	p.text(qtyX+cellPad, headerY, "Quantity", false, bodySize, AlignLeft)
	p.text(priceRight, headerY, "Unit Price", false, bodySize, AlignRight)
	p.text(totalRight, headerY, "Total", false, bodySize, AlignRight)

	dataY := tableY + rowH
	p.add(Line{X1: LeftMargin, Y1: dataY + rowH, X2: LeftMargin + width, Y2: dataY + rowH, Color: separator})

	rowY := dataY + textDrop
	p.text(LeftMargin+cellPad, rowY, record.Description, false, bodySize, AlignLeft)
	p.text(qtyX+cellPad, rowY, utils.FormatQuantity(record.Quantity), false, bodySize, AlignLeft)
	p.text(priceRight, rowY, p.money(record.UnitPrice), false, bodySize, AlignRight)
	p.text(totalRight, rowY, p.money(totals.LineTotal), false, bodySize, AlignRight)
}

func (p *planner) summary(record entity.InvoiceRecord, totals entity.DerivedTotals) {
	width := tableWidth()
	labelX := LeftMargin + cellPad
	valueX := LeftMargin + width - cellPad
	y := tableY + 2*rowH + summaryGap

	p.add(FilledRect{X: LeftMargin, Y: y, W: width, H: summaryRowH, Fill: summaryFill})
	p.text(labelX, y+summaryDrop, "Subtotal", true, bodySize, AlignLeft)
	p.text(valueX, y+summaryDrop, p.money(totals.LineTotal), true, bodySize, AlignRight)

	taxY := y + summaryStep
	taxLabel := p.cfg.TaxLabel + " " + utils.FormatRate(record.TaxRate) + "%"
	p.add(FilledRect{X: LeftMargin, Y: taxY, W: width, H: summaryRowH, Fill: summaryFill})
	p.text(labelX, taxY+summaryDrop, taxLabel, true, bodySize, AlignLeft)
	p.text(valueX, taxY+summaryDrop, p.money(totals.TaxAmount), true, bodySize, AlignRight)

	p.text(labelX, y+totalRowDrop, "Total", true, totalSize, AlignLeft)
	p.text(valueX, y+totalRowDrop, p.money(totals.GrandTotal), true, totalSize, AlignRight)
}

package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/garyjia/invoice-renderer/internal/domain/entity"
	"github.com/garyjia/invoice-renderer/pkg/utils"
)

// SheetName is the single worksheet written by the exporter
const SheetName = "Invoice"

// XLSXExporter writes an invoice summary workbook
type XLSXExporter struct {
	taxLabel string
	logger   *zap.Logger
}

// NewXLSXExporter creates an exporter; the tax label matches the PDF summary
func NewXLSXExporter(taxLabel string, logger *zap.Logger) *XLSXExporter {
	return &XLSXExporter{
		taxLabel: taxLabel,
		logger:   logger,
	}
}

// Export builds the workbook for record and returns its bytes.
// Amounts are written as numbers; the PDF strings sit alongside for reference.
func (e *XLSXExporter) Export(record entity.InvoiceRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			e.logger.Warn("Failed to close workbook", zap.Error(err))
		}
	}()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	totals := record.Totals()
	rows := [][]interface{}{
		{"Invoice No.", record.InvoiceNo},
		{"Date", record.Date},
		{"From", strings.Join(record.IssuerLines(), "\n")},
		{"Bill To", strings.Join(record.RecipientLines(), "\n")},
		{},
		{"Description", "Quantity", "Unit Price", "Amount"},
		{record.Description, record.Quantity, record.UnitPrice, totals.LineTotal},
		{},
		{"Subtotal", totals.LineTotal, utils.FormatCurrency(totals.LineTotal)},
		{e.taxLabel + " " + utils.FormatRate(record.TaxRate) + "%", totals.TaxAmount, utils.FormatCurrency(totals.TaxAmount)},
		{"Total", totals.GrandTotal, utils.FormatCurrency(totals.GrandTotal)},
	}

	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := e.applyStyles(f); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	e.logger.Debug("Invoice exported",
		zap.String("invoice_no", record.InvoiceNo),
		zap.Int("size", buf.Len()))

	return buf.Bytes(), nil
}

func (e *XLSXExporter) applyStyles(f *excelize.File) error {
	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"E6E6E6"}},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return fmt.Errorf("failed to create money style: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create bold style: %w", err)
	}
	wrap, err := f.NewStyle(&excelize.Style{Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"}})
	if err != nil {
		return fmt.Errorf("failed to create wrap style: %w", err)
	}

	styles := []struct {
		from, to string
		style    int
	}{
		{"A6", "D6", header},
		{"C7", "D7", money},
		{"B9", "B11", money},
		{"A10", "A10", bold},
		{"A11", "C11", bold},
		{"B3", "B4", wrap},
	}
	for _, s := range styles {
		if err := f.SetCellStyle(SheetName, s.from, s.to, s.style); err != nil {
			return fmt.Errorf("failed to style %s:%s: %w", s.from, s.to, err)
		}
	}

	if err := f.SetColWidth(SheetName, "A", "A", 36); err != nil {
		return err
	}
	return f.SetColWidth(SheetName, "B", "D", 18)
}

package service

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/garyjia/invoice-renderer/internal/application/port"
	"github.com/garyjia/invoice-renderer/internal/domain/entity"
	"github.com/garyjia/invoice-renderer/pkg/utils"
)

// Logger interface for minimal logging dependency
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// RenderResult is a rendered invoice ready to be served
type RenderResult struct {
	PDF      []byte
	FileName string
	Totals   entity.DerivedTotals
}

// InvoiceService is the application surface around the layout engine
type InvoiceService interface {
	Default() entity.InvoiceForm
	Render(ctx context.Context, form entity.InvoiceForm) (*RenderResult, error)
	Preview(ctx context.Context, form entity.InvoiceForm) ([]byte, error)
	Export(ctx context.Context, form entity.InvoiceForm) ([]byte, string, error)
	Save(ctx context.Context, form entity.InvoiceForm) (*entity.SavedInvoice, error)
	List(ctx context.Context, limit, offset int) ([]*entity.SavedInvoice, error)
	GetFile(ctx context.Context, uuid string) (*entity.SavedInvoice, []byte, error)
}

// InvoiceDeps lists the collaborators of the invoice service.
// Rasterizer, Exporter, Storage and Repo are optional; the operations that
// need them return ErrFeatureDisabled when absent.
type InvoiceDeps struct {
	Renderer   port.InvoiceRenderer
	Rasterizer port.PreviewRasterizer
	Exporter   port.SpreadsheetExporter
	Storage    port.FileStorage
	Repo       port.SavedInvoiceRepository
	TxManager  port.TransactionManager
	Logger     Logger

	Now   func() time.Time
	NewID func() string
}

type invoiceServiceImpl struct {
	deps InvoiceDeps
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(deps InvoiceDeps) InvoiceService {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.NewID == nil {
		deps.NewID = uuid.NewString
	}
	return &invoiceServiceImpl{deps: deps}
}

// Default returns the sample form dated today
func (s *invoiceServiceImpl) Default() entity.InvoiceForm {
	return entity.DefaultInvoiceForm(utils.FormatDate(s.deps.Now()))
}

// Render converts the form and renders it
func (s *invoiceServiceImpl) Render(ctx context.Context, form entity.InvoiceForm) (*RenderResult, error) {
	record := form.ToRecord()

	pdf, err := s.deps.Renderer.Render(ctx, record)
	if err != nil {
		s.deps.Logger.Error("Failed to render invoice", "invoice_no", record.InvoiceNo, "error", err)
		return nil, fmt.Errorf("failed to render invoice: %w", err)
	}

	return &RenderResult{
		PDF:      pdf,
		FileName: record.DownloadFileName(),
		Totals:   record.Totals(),
	}, nil
}

// Preview renders the form and rasterizes the page to PNG
func (s *invoiceServiceImpl) Preview(ctx context.Context, form entity.InvoiceForm) ([]byte, error) {
	if s.deps.Rasterizer == nil {
		return nil, fmt.Errorf("%w: preview", ErrFeatureDisabled)
	}

	result, err := s.Render(ctx, form)
	if err != nil {
		return nil, err
	}

	png, err := s.deps.Rasterizer.RasterizeFirstPage(result.PDF)
	if err != nil {
		s.deps.Logger.Error("Failed to rasterize preview", "error", err)
		return nil, fmt.Errorf("failed to rasterize preview: %w", err)
	}
	return png, nil
}

// Export writes the summary workbook and its download name
func (s *invoiceServiceImpl) Export(ctx context.Context, form entity.InvoiceForm) ([]byte, string, error) {
	if s.deps.Exporter == nil {
		return nil, "", fmt.Errorf("%w: export", ErrFeatureDisabled)
	}
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	record := form.ToRecord()
	content, err := s.deps.Exporter.Export(record)
	if err != nil {
		s.deps.Logger.Error("Failed to export invoice", "invoice_no", record.InvoiceNo, "error", err)
		return nil, "", fmt.Errorf("failed to export invoice: %w", err)
	}

	return content, strings.TrimSuffix(record.DownloadFileName(), ".pdf") + ".xlsx", nil
}

// Save renders the form, stores the PDF and records it.
// The row is inserted inside a transaction that rolls back if the file
// cannot be written.
func (s *invoiceServiceImpl) Save(ctx context.Context, form entity.InvoiceForm) (*entity.SavedInvoice, error) {
	if s.deps.Storage == nil || s.deps.Repo == nil {
		return nil, fmt.Errorf("%w: saving", ErrFeatureDisabled)
	}

	result, err := s.Render(ctx, form)
	if err != nil {
		return nil, err
	}

	now := s.deps.Now().UTC()
	id := s.deps.NewID()
	saved := &entity.SavedInvoice{
		UUID:       id,
		InvoiceNo:  form.ToRecord().InvoiceNo,
		FileName:   result.FileName,
		FilePath:   path.Join(now.Format("2006"), id+".pdf"),
		SizeBytes:  int64(len(result.PDF)),
		GrandTotal: result.Totals.GrandTotal,
		CreatedAt:  now,
	}

	persist := func(ctx context.Context) error {
		if err := s.deps.Repo.Create(ctx, saved); err != nil {
			return err
		}
		return s.deps.Storage.Save(ctx, saved.FilePath, result.PDF)
	}

	if s.deps.TxManager != nil {
		err = s.deps.TxManager.WithTransaction(ctx, persist)
	} else {
		err = persist(ctx)
	}
	if err != nil {
		s.deps.Logger.Error("Failed to save invoice", "uuid", id, "error", err)
		return nil, fmt.Errorf("failed to save invoice: %w", err)
	}

	s.deps.Logger.Info("Invoice saved",
		"uuid", id,
		"invoice_no", saved.InvoiceNo,
		"path", saved.FilePath,
		"size", saved.SizeBytes)

	return saved, nil
}

// List returns saved invoices, newest first
func (s *invoiceServiceImpl) List(ctx context.Context, limit, offset int) ([]*entity.SavedInvoice, error) {
	if s.deps.Repo == nil {
		return nil, fmt.Errorf("%w: saved invoices", ErrFeatureDisabled)
	}
	invoices, err := s.deps.Repo.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	return invoices, nil
}

// GetFile returns a saved invoice and its PDF bytes
func (s *invoiceServiceImpl) GetFile(ctx context.Context, id string) (*entity.SavedInvoice, []byte, error) {
	if s.deps.Storage == nil || s.deps.Repo == nil {
		return nil, nil, fmt.Errorf("%w: saved invoices", ErrFeatureDisabled)
	}

	saved, err := s.deps.Repo.GetByUUID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	if saved == nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrInvoiceNotFound, id)
	}

	content, err := s.deps.Storage.Read(ctx, saved.FilePath)
	if err != nil {
		s.deps.Logger.Error("Saved invoice file unreadable", "uuid", id, "path", saved.FilePath, "error", err)
		return nil, nil, fmt.Errorf("failed to read invoice file: %w", err)
	}

	return saved, content, nil
}

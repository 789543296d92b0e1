// Package layout turns an invoice record into a single-page PDF.
//
// Rendering happens in three steps: raster assets are resolved (failures
// mean "absent"), the record is planned into an ordered list of draw
// commands, and the commands are replayed on a fresh page writer that is
// finalised into the document bytes. The engine keeps no per-call state and
// is safe for concurrent use.
package layout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/garyjia/invoice-renderer/internal/application/port"
	"github.com/garyjia/invoice-renderer/internal/domain/entity"
	"github.com/garyjia/invoice-renderer/pkg/utils"
	"go.uber.org/zap"
)

// Engine renders invoice records
type Engine struct {
	config    Config
	resolver  port.AssetResolver
	newWriter WriterFactory
	logger    *zap.Logger
}

// Option customises an Engine
type Option func(*Engine)

// WithWriterFactory replaces the gofpdf page writer
func WithWriterFactory(f WriterFactory) Option {
	return func(e *Engine) {
		e.newWriter = f
	}
}

// NewEngine creates a layout engine. A nil resolver disables assets.
func NewEngine(config Config, resolver port.AssetResolver, logger *zap.Logger, opts ...Option) *Engine {
	e := &Engine{
		config:    config.withDefaults(),
		resolver:  resolver,
		newWriter: NewPDFWriter,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Render produces the PDF for record. Asset problems never fail a render;
// page-writer problems return ErrRenderFailed and no bytes.
func (e *Engine) Render(ctx context.Context, record entity.InvoiceRecord) ([]byte, error) {
	assets := e.ResolveAssets(ctx, record)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cmds := Plan(record, assets, e.config)

	w := e.newWriter(DocumentMeta{
		Title:       "Invoice " + record.InvoiceNo,
		Producer:    e.config.Producer,
		Date:        documentDate(record),
		RightMargin: e.config.RightMargin,
	})

	for _, cmd := range cmds {
		err := cmd.Apply(w)
		if err == nil {
			continue
		}
		if errors.Is(err, ErrImageRejected) {
			e.logger.Warn("Skipping image the page writer rejected", zap.Error(err))
			continue
		}
		e.logger.Error("Failed to draw invoice",
			zap.String("invoice_no", record.InvoiceNo),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrRenderFailed, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := w.Finalize()
	if err != nil {
		e.logger.Error("Failed to finalize invoice",
			zap.String("invoice_no", record.InvoiceNo),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrRenderFailed, err)
	}

	e.logger.Debug("Invoice rendered",
		zap.String("invoice_no", record.InvoiceNo),
		zap.Int("commands", len(cmds)),
		zap.Int("size", len(data)))

	return data, nil
}

// ResolveAssets resolves logo and signature concurrently.
// Any failure leaves that asset nil.
func (e *Engine) ResolveAssets(ctx context.Context, record entity.InvoiceRecord) Assets {
	var (
		assets Assets
		wg     sync.WaitGroup
	)

	resolve := func(kind entity.AssetKind, ref *entity.AssetRef, dst **entity.Image) {
		defer wg.Done()
		*dst = e.resolve(ctx, kind, ref)
	}

	wg.Add(2)
	go resolve(entity.AssetLogo, record.Logo, &assets.Logo)
	go resolve(entity.AssetSignature, record.Signature, &assets.Signature)
	wg.Wait()

	return assets
}

func (e *Engine) resolve(ctx context.Context, kind entity.AssetKind, ref *entity.AssetRef) *entity.Image {
	if ref == nil || e.resolver == nil {
		return nil
	}

	img, err := e.resolver.Resolve(ctx, ref)
	if err != nil {
		e.logger.Warn("Asset unavailable, rendering without it",
			zap.String("asset", string(kind)),
			zap.Stringer("source", ref),
			zap.Error(err))
		return nil
	}
	return img
}

// documentDate derives the metadata timestamp from the record's date
func documentDate(record entity.InvoiceRecord) time.Time {
	if t, err := utils.ParseDate(record.Date); err == nil {
		return t
	}
	return epoch
}

// Verify interface compliance
var _ port.InvoiceRenderer = (*Engine)(nil)

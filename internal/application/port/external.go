package port

import (
	"context"

	"github.com/garyjia/invoice-renderer/internal/domain/entity"
)

// AssetResolver turns an asset reference into embeddable pixel data.
// Callers treat any error as "asset absent".
type AssetResolver interface {
	Resolve(ctx context.Context, ref *entity.AssetRef) (*entity.Image, error)
}

// AssetDownloader fetches remote asset bytes
type AssetDownloader interface {
	Download(ctx context.Context, url string) ([]byte, error)
	DownloadWithRetry(ctx context.Context, url string, maxAttempts int) ([]byte, error)
}

// InvoiceRenderer renders a record into a PDF document
type InvoiceRenderer interface {
	Render(ctx context.Context, record entity.InvoiceRecord) ([]byte, error)
}

// PreviewRasterizer renders the first page of a PDF as a PNG image
type PreviewRasterizer interface {
	RasterizeFirstPage(pdf []byte) ([]byte, error)
}

// SpreadsheetExporter writes an invoice summary workbook
type SpreadsheetExporter interface {
	Export(record entity.InvoiceRecord) ([]byte, error)
}

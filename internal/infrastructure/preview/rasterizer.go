package preview

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"

	"github.com/gen2brain/go-fitz"
	"go.uber.org/zap"
)

// ErrEmptyDocument is returned when the PDF has no pages
var ErrEmptyDocument = errors.New("document has no pages")

// DefaultDPI renders an A4 page at roughly 827x1169 pixels
const DefaultDPI = 100.0

// Rasterizer renders PDF pages to PNG with mupdf
type Rasterizer struct {
	dpi    float64
	logger *zap.Logger
}

// NewRasterizer creates a rasterizer; dpi <= 0 selects DefaultDPI
func NewRasterizer(dpi float64, logger *zap.Logger) *Rasterizer {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	return &Rasterizer{
		dpi:    dpi,
		logger: logger,
	}
}

// RasterizeFirstPage renders page 0 of the PDF bytes as PNG
func (r *Rasterizer) RasterizeFirstPage(pdf []byte) ([]byte, error) {
	doc, err := fitz.NewFromMemory(pdf)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	if doc.NumPage() == 0 {
		return nil, ErrEmptyDocument
	}

	img, err := doc.ImageDPI(0, r.dpi)
	if err != nil {
		return nil, fmt.Errorf("failed to render page: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode preview: %w", err)
	}

	r.logger.Debug("Rendered preview",
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()),
		zap.Float64("dpi", r.dpi))

	return buf.Bytes(), nil
}

package preview

import (
	"bytes"
	"context"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/garyjia/invoice-renderer/internal/domain/entity"
	"github.com/garyjia/invoice-renderer/internal/layout"
)

func TestRasterizer_RasterizeFirstPage(t *testing.T) {
	engine := layout.NewEngine(layout.DefaultConfig(), nil, zap.NewNop())
	pdf, err := engine.Render(context.Background(), entity.DefaultInvoiceForm("07/03/2025").ToRecord())
	require.NoError(t, err)

	r := NewRasterizer(50, zap.NewNop())
	out, err := r.RasterizeFirstPage(pdf)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)

	// A4 portrait at 50 dpi
	assert.InDelta(t, 413, img.Bounds().Dx(), 2)
	assert.InDelta(t, 585, img.Bounds().Dy(), 2)
}

func TestRasterizer_InvalidPDF(t *testing.T) {
	r := NewRasterizer(0, zap.NewNop())

	_, err := r.RasterizeFirstPage([]byte("not a pdf"))

	assert.Error(t, err)
}

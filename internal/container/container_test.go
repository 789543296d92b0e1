package container

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/garyjia/invoice-renderer/internal/config"
	"github.com/garyjia/invoice-renderer/pkg/database"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)

	dir := t.TempDir()
	cfg.Database.Path = database.MemoryPath
	cfg.Storage.OutputDir = filepath.Join(dir, "out")
	cfg.Assets.BaseDir = filepath.Join(dir, "assets")
	cfg.Assets.AllowRemote = false
	cfg.Preview.Enabled = false
	return cfg
}

func TestContainer_Lifecycle(t *testing.T) {
	c, err := NewContainer(testConfig(t), zap.NewNop())
	require.NoError(t, err)

	ok, components := c.Healthy()
	assert.False(t, ok)
	assert.Equal(t, "not started", components["container"])

	ctx := context.Background()
	require.NoError(t, c.Start(ctx))
	assert.True(t, c.Ready())
	assert.Error(t, c.Start(ctx), "second start is rejected")

	ok, components = c.Healthy()
	assert.True(t, ok)
	assert.Equal(t, "ok", components["database"])

	require.NoError(t, c.Close())
	assert.False(t, c.Ready())
	assert.Error(t, c.Close())
	assert.Error(t, c.Start(ctx))
}

func TestContainer_SaveRoundTrip(t *testing.T) {
	c, err := NewContainer(testConfig(t), zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, c.Start(context.Background()))
	defer c.Close()

	svc := c.InvoiceService()
	ctx := context.Background()

	saved, err := svc.Save(ctx, svc.Default())
	require.NoError(t, err)
	assert.NotEmpty(t, saved.UUID)
	assert.Equal(t, 6495.0, saved.GrandTotal)

	list, err := svc.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, saved.UUID, list[0].UUID)

	got, pdf, err := svc.GetFile(ctx, saved.UUID)
	require.NoError(t, err)
	assert.Equal(t, saved.FilePath, got.FilePath)
	assert.Equal(t, "%PDF", string(pdf[:4]))
	assert.Equal(t, saved.SizeBytes, int64(len(pdf)))
}

func TestNewContainer_Validation(t *testing.T) {
	_, err := NewContainer(nil, zap.NewNop())
	assert.Error(t, err)

	_, err = NewContainer(testConfig(t), nil)
	assert.Error(t, err)

	cfg := testConfig(t)
	cfg.Database.Path = ""
	_, err = NewContainer(cfg, zap.NewNop())
	assert.Error(t, err)
}

func TestZapLoggerAdapter(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	a := NewZapLoggerAdapter(zap.New(core))

	a.Info("saved", "uuid", "id-1", 42, "ignored", "dangling")
	a.Error("failed", "error", assert.AnError)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, map[string]interface{}{"uuid": "id-1"}, entries[0].ContextMap())
	assert.Equal(t, assert.AnError.Error(), entries[1].ContextMap()["error"])
}

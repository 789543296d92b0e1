package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLocalFileStorage_Save(t *testing.T) {
	tempDir := t.TempDir()
	fs := NewLocalFileStorage(tempDir, zap.NewNop())
	ctx := context.Background()

	t.Run("saves file successfully", func(t *testing.T) {
		err := fs.Save(ctx, "2025/invoice_2025-001.pdf", []byte("%PDF-1.3"))

		require.NoError(t, err)
		fullPath := filepath.Join(tempDir, "2025", "invoice_2025-001.pdf")
		assert.FileExists(t, fullPath)

		saved, err := os.ReadFile(fullPath)
		require.NoError(t, err)
		assert.Equal(t, []byte("%PDF-1.3"), saved)
	})

	t.Run("overwrites existing file", func(t *testing.T) {
		require.NoError(t, fs.Save(ctx, "overwrite.pdf", []byte("original")))
		require.NoError(t, fs.Save(ctx, "overwrite.pdf", []byte("updated")))

		content, err := fs.Read(ctx, "overwrite.pdf")
		require.NoError(t, err)
		assert.Equal(t, []byte("updated"), content)
	})

	t.Run("leaves no temp files behind", func(t *testing.T) {
		require.NoError(t, fs.Save(ctx, "clean/a.pdf", []byte("a")))

		entries, err := os.ReadDir(filepath.Join(tempDir, "clean"))
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "a.pdf", entries[0].Name())
	})

	t.Run("rejects traversal", func(t *testing.T) {
		err := fs.Save(ctx, "../../outside.pdf", []byte("x"))
		assert.ErrorIs(t, err, ErrPathEscapesBase)
	})

	t.Run("honours cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		assert.ErrorIs(t, fs.Save(cancelled, "late.pdf", []byte("x")), context.Canceled)
	})
}

func TestLocalFileStorage_ReadExistsDelete(t *testing.T) {
	tempDir := t.TempDir()
	fs := NewLocalFileStorage(tempDir, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "logo.png"), []byte("png"), 0644))

	assert.True(t, fs.Exists(ctx, "logo.png"))
	assert.False(t, fs.Exists(ctx, "missing.png"))
	assert.False(t, fs.Exists(ctx, "../logo.png"))

	content, err := fs.Read(ctx, "logo.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), content)

	_, err = fs.Read(ctx, "missing.png")
	assert.Error(t, err)

	_, err = fs.Read(ctx, "../../etc/passwd")
	assert.ErrorIs(t, err, ErrPathEscapesBase)

	require.NoError(t, fs.Delete(ctx, "logo.png"))
	assert.False(t, fs.Exists(ctx, "logo.png"))
	assert.NoError(t, fs.Delete(ctx, "logo.png"), "deleting twice is idempotent")
}

func TestLocalFileStorage_SimilarPrefix(t *testing.T) {
	tempDir := t.TempDir()
	fs := NewLocalFileStorage(tempDir, zap.NewNop())

	err := fs.validatePath(tempDir + "_malicious/file.txt")
	assert.ErrorIs(t, err, ErrPathEscapesBase)

	err = fs.validatePath(tempDir)
	assert.ErrorIs(t, err, ErrPathEscapesBase, "the root itself is not a file path")
}

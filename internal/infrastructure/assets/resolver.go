package assets

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/garyjia/invoice-renderer/internal/application/port"
	"github.com/garyjia/invoice-renderer/internal/domain/entity"
)

// Config holds asset resolution settings
type Config struct {
	MaxBytes      int64
	RetryAttempts int
}

// Resolver implements port.AssetResolver for inline data URLs, http(s)
// URLs and files under the asset storage root
type Resolver struct {
	storage    port.FileStorage
	downloader port.AssetDownloader
	config     Config
	logger     *zap.Logger
}

// NewResolver creates a resolver. A nil storage or downloader disables
// that kind of source.
func NewResolver(storage port.FileStorage, downloader port.AssetDownloader, config Config, logger *zap.Logger) *Resolver {
	return &Resolver{
		storage:    storage,
		downloader: downloader,
		config:     config,
		logger:     logger,
	}
}

// Resolve loads and normalises the referenced image
func (r *Resolver) Resolve(ctx context.Context, ref *entity.AssetRef) (*entity.Image, error) {
	if ref == nil || strings.TrimSpace(ref.Source) == "" {
		return nil, ErrUnsupportedSource
	}

	raw, err := r.load(ctx, ref)
	if err != nil {
		return nil, err
	}

	if r.config.MaxBytes > 0 && int64(len(raw)) > r.config.MaxBytes {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, len(raw))
	}

	img, err := normalize(raw)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("Asset resolved",
		zap.Stringer("source", ref),
		zap.Int("width", img.Width),
		zap.Int("height", img.Height))

	return img, nil
}

func (r *Resolver) load(ctx context.Context, ref *entity.AssetRef) ([]byte, error) {
	switch {
	case ref.IsInline():
		mediaType, payload, err := decodeDataURL(ref.Source)
		if err != nil {
			return nil, err
		}
		if !strings.HasPrefix(mediaType, "image/") {
			return nil, fmt.Errorf("%w: media type %s", ErrUnsupportedSource, mediaType)
		}
		return payload, nil

	case ref.IsRemote():
		if r.downloader == nil {
			return nil, fmt.Errorf("%w: remote assets disabled", ErrUnsupportedSource)
		}
		return r.downloader.DownloadWithRetry(ctx, ref.Source, r.config.RetryAttempts)

	default:
		if r.storage == nil {
			return nil, fmt.Errorf("%w: local assets disabled", ErrUnsupportedSource)
		}
		if strings.Contains(ref.Source, "://") {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedSource, ref.Source)
		}
		return r.storage.Read(ctx, ref.Source)
	}
}

// Verify interface compliance
var (
	_ port.AssetResolver   = (*Resolver)(nil)
	_ port.AssetDownloader = (*Downloader)(nil)
)

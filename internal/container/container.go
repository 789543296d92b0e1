package container

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/garyjia/invoice-renderer/internal/application/port"
	"github.com/garyjia/invoice-renderer/internal/application/service"
	"github.com/garyjia/invoice-renderer/internal/config"
	"github.com/garyjia/invoice-renderer/internal/layout"
)

// Container manages all application dependencies and lifecycle.
// Components start in dependency order and close in reverse.
type Container struct {
	config *config.Config
	logger *zap.Logger

	database *DatabaseBundle
	storage  port.FileStorage
	resolver port.AssetResolver
	engine   *layout.Engine
	invoices service.InvoiceService

	mu     sync.Mutex
	ready  atomic.Bool
	closed atomic.Bool
}

// NewContainer creates a new container from configuration.
// It does not initialize components; call Start.
func NewContainer(cfg *config.Config, logger *zap.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Container{
		config: cfg,
		logger: logger,
	}, nil
}

// Start initializes all components:
// database, storage, asset resolution, layout engine, services
func (c *Container) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed.Load() {
		return fmt.Errorf("container has been closed")
	}
	if c.ready.Load() {
		return fmt.Errorf("container already started")
	}

	c.logger.Info("Starting container initialization")

	db, err := ProvideDatabase(ctx, &c.config.Database, c.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	c.database = db

	c.storage = ProvideStorage(&c.config.Storage, c.logger)
	c.resolver = ProvideAssetResolver(&c.config.Assets, c.logger)
	c.engine = ProvideEngine(&c.config.Layout, c.resolver, c.logger)
	c.invoices = ProvideInvoiceService(&ServiceDeps{
		Config:   c.config,
		Renderer: c.engine,
		Storage:  c.storage,
		Database: c.database,
		Logger:   c.logger,
	})

	c.ready.Store(true)
	c.logger.Info("Container started",
		zap.String("output_dir", c.config.Storage.OutputDir),
		zap.Bool("preview", c.config.Preview.Enabled),
		zap.Bool("remote_assets", c.config.Assets.AllowRemote))

	return nil
}

// Close shuts down components in reverse order
func (c *Container) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed.Swap(true) {
		return fmt.Errorf("container already closed")
	}
	c.ready.Store(false)

	if c.database != nil {
		if err := c.database.DB.Close(); err != nil {
			c.logger.Error("Failed to close database", zap.Error(err))
			return fmt.Errorf("close database: %w", err)
		}
	}

	c.logger.Info("Container closed")
	return nil
}

// Ready returns true when all components are initialized
func (c *Container) Ready() bool {
	return c.ready.Load()
}

// Healthy reports component health for the HTTP health check
func (c *Container) Healthy() (bool, map[string]string) {
	components := map[string]string{}
	ok := c.Ready()

	if !ok {
		components["container"] = "not started"
	}

	if c.database != nil {
		if err := c.database.DB.Ping(); err != nil {
			components["database"] = fmt.Sprintf("ping failed: %v", err)
			ok = false
		} else {
			components["database"] = "ok"
		}
	}

	return ok, components
}

// InvoiceService returns the invoice service
func (c *Container) InvoiceService() service.InvoiceService {
	return c.invoices
}

// Engine returns the layout engine
func (c *Container) Engine() *layout.Engine {
	return c.engine
}

// Logger returns the container's logger
func (c *Container) Logger() *zap.Logger {
	return c.logger
}

// ZapLoggerAdapter adapts zap.Logger to the key/value Logger interfaces of
// the service and HTTP layers
type ZapLoggerAdapter struct {
	logger *zap.Logger
}

// NewZapLoggerAdapter wraps logger
func NewZapLoggerAdapter(logger *zap.Logger) *ZapLoggerAdapter {
	return &ZapLoggerAdapter{logger: logger}
}

func (a *ZapLoggerAdapter) Info(msg string, keysAndValues ...interface{}) {
	a.logger.Info(msg, convertToZapFields(keysAndValues...)...)
}

func (a *ZapLoggerAdapter) Error(msg string, keysAndValues ...interface{}) {
	a.logger.Error(msg, convertToZapFields(keysAndValues...)...)
}

// convertToZapFields converts key-value pairs to zap fields
func convertToZapFields(keysAndValues ...interface{}) []zap.Field {
	fields := make([]zap.Field, 0, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		if err, isErr := keysAndValues[i+1].(error); isErr {
			fields = append(fields, zap.NamedError(key, err))
			continue
		}
		fields = append(fields, zap.Any(key, keysAndValues[i+1]))
	}
	return fields
}

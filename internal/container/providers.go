// Package container wires the invoice renderer's components from
// configuration and owns their lifecycle.
package container

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/garyjia/invoice-renderer/internal/application/port"
	"github.com/garyjia/invoice-renderer/internal/application/service"
	"github.com/garyjia/invoice-renderer/internal/config"
	"github.com/garyjia/invoice-renderer/internal/infrastructure/assets"
	"github.com/garyjia/invoice-renderer/internal/infrastructure/export"
	"github.com/garyjia/invoice-renderer/internal/infrastructure/persistence/repository"
	"github.com/garyjia/invoice-renderer/internal/infrastructure/persistence/sqlite"
	"github.com/garyjia/invoice-renderer/internal/infrastructure/preview"
	"github.com/garyjia/invoice-renderer/internal/infrastructure/storage"
	"github.com/garyjia/invoice-renderer/internal/layout"
	"github.com/garyjia/invoice-renderer/migrations"
	"github.com/garyjia/invoice-renderer/pkg/database"
)

// DatabaseBundle holds database-related components
type DatabaseBundle struct {
	DB        *database.DB
	TxManager port.TransactionManager
	Repo      port.SavedInvoiceRepository
}

// ProvideDatabase opens the database, applies migrations and builds the
// repository. An empty migrations_dir applies the embedded schema.
func ProvideDatabase(ctx context.Context, cfg *config.DatabaseConfig, logger *zap.Logger) (*DatabaseBundle, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database config is required")
	}

	db, err := database.New(database.Config{
		Path:            cfg.Path,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	}, logger)
	if err != nil {
		return nil, err
	}

	migrator := database.NewMigrator(db, logger)
	if cfg.MigrationsDir != "" {
		err = migrator.RunMigrations(ctx, cfg.MigrationsDir)
	} else {
		err = migrator.RunMigrationsFS(ctx, migrations.FS)
	}
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &DatabaseBundle{
		DB:        db,
		TxManager: sqlite.NewTxManager(db.DB, logger),
		Repo:      repository.NewSavedInvoiceRepository(db.DB, logger),
	}, nil
}

// ProvideStorage creates the saved-PDF storage
func ProvideStorage(cfg *config.StorageConfig, logger *zap.Logger) port.FileStorage {
	return storage.NewLocalFileStorage(cfg.OutputDir, logger)
}

// ProvideAssetResolver creates the logo / signature resolver
func ProvideAssetResolver(cfg *config.AssetsConfig, logger *zap.Logger) port.AssetResolver {
	var local port.FileStorage
	if cfg.BaseDir != "" {
		local = storage.NewLocalFileStorage(cfg.BaseDir, logger)
	}

	var downloader port.AssetDownloader
	if cfg.AllowRemote {
		downloader = assets.NewDownloader(cfg.FetchTimeout, cfg.MaxBytes, logger)
	}

	return assets.NewResolver(local, downloader, assets.Config{
		MaxBytes:      cfg.MaxBytes,
		RetryAttempts: cfg.RetryAttempts,
	}, logger)
}

// ProvideEngine creates the layout engine
func ProvideEngine(cfg *config.LayoutConfig, resolver port.AssetResolver, logger *zap.Logger) *layout.Engine {
	return layout.NewEngine(layout.Config{
		RightMargin:    cfg.RightMargin,
		TaxLabel:       cfg.TaxLabel,
		CurrencySymbol: cfg.CurrencySymbol,
		Producer:       cfg.Producer,
	}, resolver, logger.Named("layout"))
}

// ServiceDeps holds the dependencies of the application services
type ServiceDeps struct {
	Config   *config.Config
	Renderer port.InvoiceRenderer
	Storage  port.FileStorage
	Database *DatabaseBundle
	Logger   *zap.Logger
}

// ProvideInvoiceService creates the invoice service
func ProvideInvoiceService(deps *ServiceDeps) service.InvoiceService {
	var rasterizer port.PreviewRasterizer
	if deps.Config.Preview.Enabled {
		rasterizer = preview.NewRasterizer(deps.Config.Preview.DPI, deps.Logger)
	}

	invoiceDeps := service.InvoiceDeps{
		Renderer:   deps.Renderer,
		Rasterizer: rasterizer,
		Exporter:   export.NewXLSXExporter(deps.Config.Layout.TaxLabel, deps.Logger),
		Storage:    deps.Storage,
		Logger:     &ZapLoggerAdapter{logger: deps.Logger.Named("service")},
	}
	if deps.Database != nil {
		invoiceDeps.Repo = deps.Database.Repo
		invoiceDeps.TxManager = deps.Database.TxManager
	}

	return service.NewInvoiceService(invoiceDeps)
}

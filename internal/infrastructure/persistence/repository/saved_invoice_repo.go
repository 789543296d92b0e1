package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/garyjia/invoice-renderer/internal/application/port"
	"github.com/garyjia/invoice-renderer/internal/domain/entity"
	"github.com/garyjia/invoice-renderer/internal/infrastructure/persistence/sqlite"
	"go.uber.org/zap"
)

// MaxListLimit caps a single List page
const MaxListLimit = 100

// SavedInvoiceRepository implements port.SavedInvoiceRepository
type SavedInvoiceRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSavedInvoiceRepository creates a new saved invoice repository
func NewSavedInvoiceRepository(db *sql.DB, logger *zap.Logger) *SavedInvoiceRepository {
	return &SavedInvoiceRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a saved invoice and sets its ID
func (r *SavedInvoiceRepository) Create(ctx context.Context, inv *entity.SavedInvoice) error {
	query := `
		INSERT INTO saved_invoices (
			uuid, invoice_no, file_name, file_path, size_bytes, grand_total, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	if inv.CreatedAt.IsZero() {
		inv.CreatedAt = time.Now().UTC()
	}

	result, err := sqlite.ExecutorFor(ctx, r.db).ExecContext(ctx, query,
		inv.UUID,
		inv.InvoiceNo,
		inv.FileName,
		inv.FilePath,
		inv.SizeBytes,
		inv.GrandTotal,
		inv.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create saved invoice",
			zap.String("uuid", inv.UUID),
			zap.Error(err))
		return fmt.Errorf("failed to create saved invoice: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	inv.ID = id
	return nil
}

// GetByUUID returns the saved invoice or nil when none exists
func (r *SavedInvoiceRepository) GetByUUID(ctx context.Context, uuid string) (*entity.SavedInvoice, error) {
	query := `
		SELECT id, uuid, invoice_no, file_name, file_path, size_bytes, grand_total, created_at
		FROM saved_invoices
		WHERE uuid = ?
	`

	inv, err := scanSavedInvoice(sqlite.ExecutorFor(ctx, r.db).QueryRowContext(ctx, query, uuid))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get saved invoice", zap.String("uuid", uuid), zap.Error(err))
		return nil, fmt.Errorf("failed to get saved invoice: %w", err)
	}
	return inv, nil
}

// List returns saved invoices, newest first
func (r *SavedInvoiceRepository) List(ctx context.Context, limit, offset int) ([]*entity.SavedInvoice, error) {
	if limit <= 0 || limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT id, uuid, invoice_no, file_name, file_path, size_bytes, grand_total, created_at
		FROM saved_invoices
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`

	rows, err := sqlite.ExecutorFor(ctx, r.db).QueryContext(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error("Failed to list saved invoices", zap.Error(err))
		return nil, fmt.Errorf("failed to list saved invoices: %w", err)
	}
	defer rows.Close()

	invoices := make([]*entity.SavedInvoice, 0)
	for rows.Next() {
		inv, err := scanSavedInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan saved invoice: %w", err)
		}
		invoices = append(invoices, inv)
	}

	return invoices, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSavedInvoice(row rowScanner) (*entity.SavedInvoice, error) {
	inv := &entity.SavedInvoice{}
	err := row.Scan(
		&inv.ID,
		&inv.UUID,
		&inv.InvoiceNo,
		&inv.FileName,
		&inv.FilePath,
		&inv.SizeBytes,
		&inv.GrandTotal,
		&inv.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// Verify interface compliance
var _ port.SavedInvoiceRepository = (*SavedInvoiceRepository)(nil)

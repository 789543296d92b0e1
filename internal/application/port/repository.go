package port

import (
	"context"

	"github.com/garyjia/invoice-renderer/internal/domain/entity"
)

// SavedInvoiceRepository defines persistence operations for SavedInvoice
type SavedInvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.SavedInvoice) error
	GetByUUID(ctx context.Context, uuid string) (*entity.SavedInvoice, error)
	List(ctx context.Context, limit, offset int) ([]*entity.SavedInvoice, error)
}

// TransactionManager runs fn with a transaction carried in ctx.
// Repositories called with that ctx join the transaction.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

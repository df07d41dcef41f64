package application

import (
	"context"

	"github.com/payflow/payment-service/internal/domain"
)

// SortDirection for paginated listing.
type SortDirection string

const (
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)

// PageRequest describes an offset-based page of payments.
type PageRequest struct {
	Page      int
	Size      int
	SortField string
	SortDir   SortDirection
}

// Page is one ordered slice of payments plus the total matching count.
type Page struct {
	Items      []*domain.Payment
	TotalCount int64
	PageIndex  int
	PageSize   int
}

// PaymentRepository is the port for payment persistence. Uniqueness of the
// idempotency key is enforced by the store itself: Create fails with a
// duplicate-payment domain error when the key is already reserved, and that
// failure is the sole source of truth for duplicate detection.
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error

	// UpdateWithVersion persists the payment's mutated status only if the
	// stored version still equals payment.Version. On success the stored
	// version is incremented by exactly 1 and reflected on the entity.
	UpdateWithVersion(ctx context.Context, payment *domain.Payment) error

	FindByID(ctx context.Context, id int64) (*domain.Payment, error)
	FindByIdempotencyKey(ctx context.Context, key string) (*domain.Payment, error)
	List(ctx context.Context, req PageRequest) ([]*domain.Payment, int64, error)
}

// UnitOfWork executes fn inside a single database transaction. The repository
// handed to fn is bound to that transaction.
type UnitOfWork interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo PaymentRepository) error) error
}

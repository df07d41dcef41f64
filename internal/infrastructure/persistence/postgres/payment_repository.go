package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/payflow/payment-service/internal/application"
	"github.com/payflow/payment-service/internal/domain"
)

const paymentColumns = `id, amount, currency, status, idempotency_key, transaction_reference,
		       description, merchant_id, version, created_at, updated_at`

// sortColumns whitelists the fields a caller may order a listing by. An
// unknown field falls back to created_at so raw input never reaches the SQL.
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"amount":    "amount",
	"id":        "id",
	"status":    "status",
}

type PaymentRepository struct {
	q Executor
}

func NewPaymentRepository(db *DB) *PaymentRepository {
	return &PaymentRepository{q: db.Pool}
}

var _ application.PaymentRepository = (*PaymentRepository)(nil)

// Create persists a new payment. The unique index on idempotency_key makes
// the insert itself the duplicate check: when two requests race with the same
// key, the database serializes them and exactly one insert succeeds.
func (r *PaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	query := `
		INSERT INTO payments (
			amount, currency, status, idempotency_key, transaction_reference,
			description, merchant_id, version, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	err := r.q.QueryRow(ctx, query,
		payment.Amount,
		payment.Currency,
		string(payment.Status),
		payment.IdempotencyKey,
		payment.TransactionReference,
		payment.Description,
		payment.MerchantID,
		payment.Version,
		payment.CreatedAt,
	).Scan(&payment.ID)

	if err != nil {
		if IsUniqueViolation(err) {
			return domain.NewDuplicatePaymentError(payment.IdempotencyKey)
		}
		return fmt.Errorf("failed to create payment: %w", err)
	}

	return nil
}

// UpdateWithVersion applies the payment's status only if the stored version
// still equals payment.Version. The version column is incremented by the
// database in the same statement, so the compare-and-swap is atomic.
func (r *PaymentRepository) UpdateWithVersion(ctx context.Context, payment *domain.Payment) error {
	query := `
		UPDATE payments
		SET status = $1, version = version + 1, updated_at = now()
		WHERE id = $2 AND version = $3
		RETURNING version, updated_at
	`

	err := r.q.QueryRow(ctx, query,
		string(payment.Status),
		payment.ID,
		payment.Version,
	).Scan(&payment.Version, &payment.UpdatedAt)

	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("failed to update payment: %w", err)
	}

	// Zero rows: either the record is gone or another writer won the race.
	var storedVersion int64
	checkErr := r.q.QueryRow(ctx, `SELECT version FROM payments WHERE id = $1`, payment.ID).
		Scan(&storedVersion)
	if errors.Is(checkErr, pgx.ErrNoRows) {
		return domain.NewPaymentNotFoundError(payment.ID)
	}
	if checkErr != nil {
		return fmt.Errorf("failed to check payment version: %w", checkErr)
	}
	return domain.NewVersionConflictError(payment.ID, payment.Version)
}

// FindByID retrieves a payment by its surrogate identifier.
func (r *PaymentRepository) FindByID(ctx context.Context, id int64) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`

	payment, err := scanPayment(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewPaymentNotFoundError(id)
		}
		return nil, err
	}
	return payment, nil
}

// FindByIdempotencyKey retrieves a payment by its unique secondary key.
func (r *PaymentRepository) FindByIdempotencyKey(ctx context.Context, key string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE idempotency_key = $1`

	payment, err := scanPayment(r.q.QueryRow(ctx, query, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewPaymentNotFoundByKeyError(key)
		}
		return nil, err
	}
	return payment, nil
}

// List returns one ordered page of payments plus the total count. Ties on the
// sort column are broken by id DESC so a record inserted after the page was
// fetched cannot shuffle entries within it.
func (r *PaymentRepository) List(ctx context.Context, req application.PageRequest) ([]*domain.Payment, int64, error) {
	column, ok := sortColumns[req.SortField]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if req.SortDir == application.SortAsc {
		direction = "ASC"
	}

	query := fmt.Sprintf(`
		SELECT `+paymentColumns+`
		FROM payments
		ORDER BY %s %s, id DESC
		LIMIT $1 OFFSET $2
	`, column, direction)

	rows, err := r.q.Query(ctx, query, req.Size, req.Page*req.Size)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query payments: %w", err)
	}

	results, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Payment, error) {
		var m PaymentModel
		err := row.Scan(
			&m.ID, &m.Amount, &m.Currency, &m.Status, &m.IdempotencyKey, &m.TransactionReference,
			&m.Description, &m.MerchantID, &m.Version, &m.CreatedAt, &m.UpdatedAt,
		)
		return toDomainModel(m), err
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to scan payments: %w", err)
	}

	// The count runs as a second statement, so it may include rows inserted
	// after the page was read; page contents themselves stay consistent.
	var total int64
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM payments`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payments: %w", err)
	}

	return results, total, nil
}

// scanPayment converts a database row into a domain Payment.
func scanPayment(row pgx.Row) (*domain.Payment, error) {
	var m PaymentModel
	err := row.Scan(
		&m.ID, &m.Amount, &m.Currency, &m.Status, &m.IdempotencyKey, &m.TransactionReference,
		&m.Description, &m.MerchantID, &m.Version, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return toDomainModel(m), nil
}

package postgres

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentModel mirrors the payments table. The unique index on
// idempotency_key is the key registry: an insert that trips it is the sole
// signal that a key is already reserved.
type PaymentModel struct {
	ID                   int64
	Amount               decimal.Decimal
	Currency             string
	Status               string
	IdempotencyKey       string
	TransactionReference string
	Description          *string
	MerchantID           *string
	Version              int64
	CreatedAt            time.Time
	UpdatedAt            *time.Time
}

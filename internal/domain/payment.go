// Package domain encodes the payment entity and its lifecycle.
package domain

import (
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus represents the current state of a payment in its lifecycle
type PaymentStatus string

const (
	StatusPending    PaymentStatus = "PENDING"
	StatusProcessing PaymentStatus = "PROCESSING"
	StatusSuccess    PaymentStatus = "SUCCESS"
	StatusFailed     PaymentStatus = "FAILED"
	StatusCancelled  PaymentStatus = "CANCELLED"
)

// amountScale is the fixed number of fractional digits an amount may carry.
const amountScale = 2

type Payment struct {
	ID                   int64
	Amount               decimal.Decimal
	Currency             string
	Status               PaymentStatus
	IdempotencyKey       string
	TransactionReference string
	Description          *string
	MerchantID           *string

	// Version is compared-and-swapped by the store on every mutation.
	Version int64

	CreatedAt time.Time
	UpdatedAt *time.Time
}

// NewPayment validates the submitted fields and returns a PENDING payment.
// Validation happens entirely in memory; a payment that fails here never
// reaches the store, so its idempotency key stays available for a corrected
// retry.
func NewPayment(
	amount decimal.Decimal,
	currency string,
	idempotencyKey string,
	description *string,
	merchantID *string,
) (*Payment, error) {
	if !amount.IsPositive() {
		return nil, NewInvalidAmountError(amount)
	}
	if amount.Exponent() < -amountScale {
		return nil, NewInvalidAmountError(amount)
	}
	if !isValidCurrency(currency) {
		return nil, NewInvalidCurrencyError(currency)
	}
	if strings.TrimSpace(idempotencyKey) == "" {
		return nil, NewMissingRequiredFieldError("idempotency key")
	}

	return &Payment{
		Amount:         amount.Round(amountScale),
		Currency:       currency,
		Status:         StatusPending,
		IdempotencyKey: idempotencyKey,
		Description:    description,
		MerchantID:     merchantID,
		Version:        0,
		CreatedAt:      time.Now().UTC(),
	}, nil
}

func isValidCurrency(currency string) bool {
	if len(currency) != 3 {
		return false
	}
	for _, r := range currency {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

func (p *Payment) MarkProcessing() error {
	return p.transition(StatusProcessing)
}

func (p *Payment) MarkSuccess() error {
	return p.transition(StatusSuccess)
}

func (p *Payment) MarkFailed() error {
	return p.transition(StatusFailed)
}

func (p *Payment) MarkCancelled() error {
	return p.transition(StatusCancelled)
}

func (p *Payment) transition(target PaymentStatus) error {
	if err := p.canTransitionTo(target); err != nil {
		return err
	}
	p.Status = target
	return nil
}

// defines which payment statuses a payment may move to
func (p *Payment) canTransitionTo(target PaymentStatus) error {
	switch p.Status {
	case StatusPending:
		return p.allow(target, StatusProcessing)
	case StatusProcessing:
		return p.allow(target, StatusSuccess, StatusFailed, StatusCancelled)
	}
	return NewInvalidTransitionError(p.Status, target)
}

// Helper to check allowed state transitions
func (p *Payment) allow(target PaymentStatus, allowed ...PaymentStatus) error {
	if slices.Contains(allowed, target) {
		return nil
	}
	return NewInvalidTransitionError(p.Status, target)
}

// IsTerminal reports whether no further transition can occur.
func (p *Payment) IsTerminal() bool {
	switch p.Status {
	case StatusSuccess, StatusFailed, StatusCancelled:
		return true
	default:
		return false
	}
}

// Reconstitute - Special constructor for loading from the store
func Reconstitute(
	id int64,
	amount decimal.Decimal,
	currency string,
	status PaymentStatus,
	idempotencyKey string,
	transactionReference string,
	description *string,
	merchantID *string,
	version int64,
	createdAt time.Time,
	updatedAt *time.Time,
) *Payment {
	return &Payment{
		ID:                   id,
		Amount:               amount,
		Currency:             currency,
		Status:               status,
		IdempotencyKey:       idempotencyKey,
		TransactionReference: transactionReference,
		Description:          description,
		MerchantID:           merchantID,
		Version:              version,
		CreatedAt:            createdAt,
		UpdatedAt:            updatedAt,
	}
}

// Package services orchestrates the payment lifecycle over the persistence
// ports.
package services

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/payflow/payment-service/internal/application"
	"github.com/payflow/payment-service/internal/domain"
)

// SubmitCommand carries the caller-supplied fields of a creation request.
type SubmitCommand struct {
	Amount         decimal.Decimal
	Currency       string
	IdempotencyKey string
	Description    *string
	MerchantID     *string
}

// PaymentService drives a payment from creation to its terminal status.
type PaymentService struct {
	uow    application.UnitOfWork
	logger *slog.Logger
}

func NewPaymentService(uow application.UnitOfWork, logger *slog.Logger) *PaymentService {
	return &PaymentService{
		uow:    uow,
		logger: logger,
	}
}

// Submit creates exactly one payment per idempotency key and advances it to
// SUCCESS. The insert and the version-guarded status update share one
// database transaction; the unique constraint on the key decides duplicates,
// there is no application-level existence check.
func (s *PaymentService) Submit(ctx context.Context, cmd SubmitCommand) (*domain.Payment, error) {
	payment, err := domain.NewPayment(
		cmd.Amount,
		cmd.Currency,
		cmd.IdempotencyKey,
		cmd.Description,
		cmd.MerchantID,
	)
	if err != nil {
		return nil, application.NewValidationFailedError(err)
	}

	payment.TransactionReference = generateTransactionReference()
	if err := payment.MarkProcessing(); err != nil {
		return nil, application.NewInternalError(err)
	}

	err = s.uow.WithTransaction(ctx, func(ctx context.Context, repo application.PaymentRepository) error {
		if err := repo.Create(ctx, payment); err != nil {
			return err
		}

		if err := payment.MarkSuccess(); err != nil {
			return err
		}
		return repo.UpdateWithVersion(ctx, payment)
	})
	if err != nil {
		if domain.IsErrorCode(err, domain.ErrCodeDuplicatePayment) {
			s.logger.Info("duplicate payment rejected",
				"idempotency_key", cmd.IdempotencyKey,
			)
			return nil, application.NewDuplicatePaymentError(cmd.IdempotencyKey)
		}
		if domain.IsErrorCode(err, domain.ErrCodeVersionConflict) {
			// Cannot happen while this transaction is the record's only
			// writer, but must never be swallowed.
			s.logger.Error("version conflict during submit",
				"idempotency_key", cmd.IdempotencyKey,
				"error", err,
			)
			return nil, application.NewInternalError(err)
		}
		return nil, application.NewInternalError(err)
	}

	s.logger.Info("payment processed",
		"payment_id", payment.ID,
		"idempotency_key", payment.IdempotencyKey,
		"transaction_reference", payment.TransactionReference,
		"status", payment.Status,
	)

	return payment, nil
}

// generateTransactionReference returns an opaque high-entropy token. It is
// assigned once at creation and never regenerated.
func generateTransactionReference() string {
	return "TXN-" + uuid.New().String()
}

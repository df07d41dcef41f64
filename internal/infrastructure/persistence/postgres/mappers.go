package postgres

import (
	"github.com/payflow/payment-service/internal/domain"
)

// toDomainModel: maps db model to domain entity
func toDomainModel(m PaymentModel) *domain.Payment {
	return domain.Reconstitute(
		m.ID,
		m.Amount,
		m.Currency,
		domain.PaymentStatus(m.Status),
		m.IdempotencyKey,
		m.TransactionReference,
		m.Description,
		m.MerchantID,
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	)
}

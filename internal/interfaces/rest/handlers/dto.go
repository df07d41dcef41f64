package handlers

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/payflow/payment-service/internal/application"
	"github.com/payflow/payment-service/internal/domain"
)

type CreatePaymentRequest struct {
	Amount         decimal.Decimal `json:"amount" validate:"required,gt=0" example:"100.50"`
	Currency       string          `json:"currency" validate:"required,len=3,alpha" example:"USD"`
	IdempotencyKey string          `json:"idempotencyKey" validate:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
	Description    *string         `json:"description,omitempty" validate:"omitempty,max=255"`
	MerchantID     *string         `json:"merchantId,omitempty" validate:"omitempty,max=64"`
}

type PaymentResponse struct {
	ID                   int64           `json:"id"`
	Amount               decimal.Decimal `json:"amount"`
	Currency             string          `json:"currency"`
	Status               string          `json:"status"`
	TransactionReference string          `json:"transactionReference"`
	Version              int64           `json:"version"`
	CreatedAt            time.Time       `json:"createdAt"`
	UpdatedAt            *time.Time      `json:"updatedAt,omitempty"`
	Message              string          `json:"message,omitempty"`
}

type PageResponse struct {
	Items      []PaymentResponse `json:"items"`
	TotalCount int64             `json:"totalCount"`
	PageIndex  int               `json:"pageIndex"`
	PageSize   int               `json:"pageSize"`
}

func toPaymentResponse(p *domain.Payment, message string) PaymentResponse {
	return PaymentResponse{
		ID:                   p.ID,
		Amount:               p.Amount,
		Currency:             p.Currency,
		Status:               string(p.Status),
		TransactionReference: p.TransactionReference,
		Version:              p.Version,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
		Message:              message,
	}
}

func toPageResponse(page *application.Page) PageResponse {
	items := make([]PaymentResponse, 0, len(page.Items))
	for _, p := range page.Items {
		items = append(items, toPaymentResponse(p, ""))
	}
	return PageResponse{
		Items:      items,
		TotalCount: page.TotalCount,
		PageIndex:  page.PageIndex,
		PageSize:   page.PageSize,
	}
}

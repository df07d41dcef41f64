package services

import (
	"context"

	"github.com/payflow/payment-service/internal/application"
	"github.com/payflow/payment-service/internal/domain"
)

// Listing defaults match the API contract: newest payments first, pages of 20.
const (
	DefaultPageSize  = 20
	MaxPageSize      = 100
	DefaultSortField = "createdAt"
)

// QueryService is a read-only pass-through to the store. It never mutates a
// payment.
type QueryService struct {
	repo application.PaymentRepository
}

func NewQueryService(repo application.PaymentRepository) *QueryService {
	return &QueryService{repo: repo}
}

func (s *QueryService) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	payment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if domain.IsErrorCode(err, domain.ErrCodePaymentNotFound) {
			return nil, application.NewNotFoundError(err)
		}
		return nil, application.NewInternalError(err)
	}
	return payment, nil
}

func (s *QueryService) GetByIdempotencyKey(ctx context.Context, key string) (*domain.Payment, error) {
	payment, err := s.repo.FindByIdempotencyKey(ctx, key)
	if err != nil {
		if domain.IsErrorCode(err, domain.ErrCodePaymentNotFound) {
			return nil, application.NewNotFoundError(err)
		}
		return nil, application.NewInternalError(err)
	}
	return payment, nil
}

// List returns one page of payments plus the total count. Out-of-range and
// unknown parameters fall back to defaults rather than failing.
func (s *QueryService) List(ctx context.Context, req application.PageRequest) (*application.Page, error) {
	if req.Page < 0 {
		req.Page = 0
	}
	if req.Size <= 0 {
		req.Size = DefaultPageSize
	}
	if req.Size > MaxPageSize {
		req.Size = MaxPageSize
	}
	if req.SortField == "" {
		req.SortField = DefaultSortField
	}
	if req.SortDir != application.SortAsc {
		req.SortDir = application.SortDesc
	}

	items, total, err := s.repo.List(ctx, req)
	if err != nil {
		return nil, application.NewInternalError(err)
	}

	return &application.Page{
		Items:      items,
		TotalCount: total,
		PageIndex:  req.Page,
		PageSize:   req.Size,
	}, nil
}

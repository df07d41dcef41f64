// Package handlers exposes the payment service over HTTP.
package handlers

import (
	"context"
	"net/http"
	"reflect"

	"github.com/go-playground/validator"
	"github.com/shopspring/decimal"

	"github.com/payflow/payment-service/internal/application"
	"github.com/payflow/payment-service/internal/application/services"
	"github.com/payflow/payment-service/internal/domain"
)

type PaymentSubmitter interface {
	Submit(ctx context.Context, cmd services.SubmitCommand) (*domain.Payment, error)
}

type PaymentQueries interface {
	GetByID(ctx context.Context, id int64) (*domain.Payment, error)
	GetByIdempotencyKey(ctx context.Context, key string) (*domain.Payment, error)
	List(ctx context.Context, req application.PageRequest) (*application.Page, error)
}

// Pinger reports whether the durable store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type PaymentHandler struct {
	payments PaymentSubmitter
	queries  PaymentQueries
	pinger   Pinger
	validate *validator.Validate
}

func NewPaymentHandler(payments PaymentSubmitter, queries PaymentQueries, pinger Pinger) *PaymentHandler {
	return &PaymentHandler{
		payments: payments,
		queries:  queries,
		pinger:   pinger,
		validate: newValidator(),
	}
}

// newValidator builds the request validator. decimal.Decimal is a struct, so
// without a registered type func the validator would skip its tags entirely;
// exposing it as a float makes required and gt=0 behave as on a plain number.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})
	return v
}

func (h *PaymentHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/payments", h.HandleCreate)
	mux.HandleFunc("GET /api/v1/payments", h.HandleList)
	mux.HandleFunc("GET /api/v1/payments/{id}", h.HandleGetByID)
	mux.HandleFunc("GET /api/v1/payments/idempotency/{key}", h.HandleGetByIdempotencyKey)
	mux.HandleFunc("GET /healthz", h.HandleHealth)
}

func (h *PaymentHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if err := h.pinger.Ping(r.Context()); err != nil {
		respondWithJSON(w, http.StatusServiceUnavailable, &APIError{
			Code:    "STORE_UNAVAILABLE",
			Message: "database is unreachable",
		})
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/payflow/payment-service/internal/application/services"
	"github.com/payflow/payment-service/internal/domain"
)

// HandleCreate accepts a payment creation request. Submitting the same
// idempotency key twice returns 409 without creating a second record; the
// body field wins over the Idempotency-Key header when both are set.
func (h *PaymentHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, domain.NewValidationError("request body must be valid JSON"))
		return
	}

	if req.IdempotencyKey == "" {
		req.IdempotencyKey = r.Header.Get("Idempotency-Key")
	}

	if err := h.validate.Struct(req); err != nil {
		respondWithError(w, domain.NewValidationError(err.Error()))
		return
	}

	cmd := services.SubmitCommand{
		Amount:         req.Amount,
		Currency:       req.Currency,
		IdempotencyKey: req.IdempotencyKey,
		Description:    req.Description,
		MerchantID:     req.MerchantID,
	}

	payment, err := h.payments.Submit(r.Context(), cmd)
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, toPaymentResponse(payment, "Payment processed successfully"))
}

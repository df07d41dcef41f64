package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/payflow/payment-service/internal/application"
	"github.com/payflow/payment-service/internal/domain"
)

func (h *PaymentHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, domain.NewValidationError("payment id must be an integer"))
		return
	}

	payment, err := h.queries.GetByID(r.Context(), id)
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, toPaymentResponse(payment, ""))
}

func (h *PaymentHandler) HandleGetByIdempotencyKey(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	payment, err := h.queries.GetByIdempotencyKey(r.Context(), key)
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, toPaymentResponse(payment, ""))
}

// HandleList returns one page of payments, newest first by default.
// Query parameters: page (0-based), size, sort, direction.
func (h *PaymentHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	req := application.PageRequest{
		Page:      atoiDefault(q.Get("page"), 0),
		Size:      atoiDefault(q.Get("size"), 0),
		SortField: q.Get("sort"),
		SortDir:   application.SortDesc,
	}
	if strings.EqualFold(q.Get("direction"), "asc") {
		req.SortDir = application.SortAsc
	}

	page, err := h.queries.List(r.Context(), req)
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, toPageResponse(page))
}

// atoiDefault converts s to an int, returning def when s is empty or
// malformed.
func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}

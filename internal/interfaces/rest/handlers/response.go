package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/payflow/payment-service/internal/application"
	"github.com/payflow/payment-service/internal/domain"
)

type APIResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *APIError `json:"error,omitempty"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respondWithJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := APIResponse{
		Success: status >= 200 && status < 300,
	}

	if response.Success {
		response.Data = data
	} else {
		if apiErr, ok := data.(*APIError); ok {
			response.Error = apiErr
		}
	}

	_ = json.NewEncoder(w).Encode(response)
}

// respondWithError maps service and domain errors to a stable error envelope.
// Internal detail (wrapped store errors, connection state) never crosses the
// boundary.
func respondWithError(w http.ResponseWriter, err error) {
	if svcErr, ok := application.IsServiceError(err); ok {
		respondWithJSON(w, svcErr.HTTPStatus, &APIError{
			Code:    svcErr.Code,
			Message: svcErr.Message,
		})
		return
	}

	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		status := http.StatusBadRequest
		switch domainErr.Code {
		case domain.ErrCodePaymentNotFound:
			status = http.StatusNotFound
		case domain.ErrCodeDuplicatePayment, domain.ErrCodeInvalidTransition:
			status = http.StatusConflict
		case domain.ErrCodeVersionConflict:
			status = http.StatusInternalServerError
		}
		respondWithJSON(w, status, &APIError{
			Code:    domainErr.Code,
			Message: domainErr.Message,
		})
		return
	}

	respondWithJSON(w, http.StatusInternalServerError, &APIError{
		Code:    application.ErrCodeInternal,
		Message: "An internal error occurred",
	})
}

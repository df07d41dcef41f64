package application

import (
	"errors"
	"fmt"
	"net/http"
)

// APPLICATION-LEVEL ERRORS (Orchestration)

type ServiceError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

const (
	ErrCodeValidationFailed = "VALIDATION_FAILED"
	ErrCodeDuplicatePayment = "DUPLICATE_PAYMENT"
	ErrCodeNotFound         = "PAYMENT_NOT_FOUND"
	ErrCodeInternal         = "INTERNAL_ERROR"
)

func NewValidationFailedError(err error) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeValidationFailed,
		Message:    err.Error(),
		HTTPStatus: http.StatusBadRequest,
		Err:        err,
	}
}

func NewDuplicatePaymentError(key string) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeDuplicatePayment,
		Message:    fmt.Sprintf("payment already processed for idempotency key %s", key),
		HTTPStatus: http.StatusConflict,
	}
}

func NewNotFoundError(err error) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeNotFound,
		Message:    err.Error(),
		HTTPStatus: http.StatusNotFound,
		Err:        err,
	}
}

func NewInternalError(err error) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeInternal,
		Message:    "An internal error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func IsServiceError(err error) (*ServiceError, bool) {
	var svcErr *ServiceError
	ok := errors.As(err, &svcErr)
	return svcErr, ok
}

package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// DomainError represents a business logic error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Domain error codes
const (
	ErrCodeValidationFailed     = "VALIDATION_FAILED"
	ErrCodeInvalidAmount        = "INVALID_AMOUNT"
	ErrCodeInvalidCurrency      = "INVALID_CURRENCY"
	ErrCodeMissingRequiredField = "MISSING_REQUIRED_FIELD"
	ErrCodeInvalidTransition    = "INVALID_TRANSITION"
	ErrCodeDuplicatePayment     = "DUPLICATE_PAYMENT"
	ErrCodePaymentNotFound      = "PAYMENT_NOT_FOUND"
	ErrCodeVersionConflict      = "VERSION_CONFLICT"
)

func NewValidationError(message string) *DomainError {
	return &DomainError{
		Code:    ErrCodeValidationFailed,
		Message: message,
	}
}

func NewInvalidAmountError(amount decimal.Decimal) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidAmount,
		Message: fmt.Sprintf("amount must be greater than 0 with at most 2 decimal places, got %s", amount),
	}
}

func NewInvalidCurrencyError(currency string) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidCurrency,
		Message: fmt.Sprintf("currency must be 3 uppercase letters, got %q", currency),
	}
}

func NewMissingRequiredFieldError(field string) *DomainError {
	return &DomainError{
		Code:    ErrCodeMissingRequiredField,
		Message: fmt.Sprintf("%s is required", field),
	}
}

func NewInvalidTransitionError(from, to PaymentStatus) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidTransition,
		Message: fmt.Sprintf("cannot transition from %s to %s", from, to),
	}
}

func NewDuplicatePaymentError(key string) *DomainError {
	return &DomainError{
		Code:    ErrCodeDuplicatePayment,
		Message: fmt.Sprintf("payment with idempotency key %s already exists", key),
	}
}

func NewPaymentNotFoundError(id int64) *DomainError {
	return &DomainError{
		Code:    ErrCodePaymentNotFound,
		Message: fmt.Sprintf("payment with ID %d not found", id),
	}
}

func NewPaymentNotFoundByKeyError(key string) *DomainError {
	return &DomainError{
		Code:    ErrCodePaymentNotFound,
		Message: fmt.Sprintf("payment with idempotency key %s not found", key),
	}
}

func NewVersionConflictError(id, expectedVersion int64) *DomainError {
	return &DomainError{
		Code:    ErrCodeVersionConflict,
		Message: fmt.Sprintf("payment %d was modified concurrently, expected version %d", id, expectedVersion),
	}
}

// IsErrorCode checks if an error is a DomainError with a specific code
func IsErrorCode(err error, code string) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}

// IsValidationError reports whether err is any of the input validation codes.
func IsValidationError(err error) bool {
	return IsErrorCode(err, ErrCodeValidationFailed) ||
		IsErrorCode(err, ErrCodeInvalidAmount) ||
		IsErrorCode(err, ErrCodeInvalidCurrency) ||
		IsErrorCode(err, ErrCodeMissingRequiredField)
}

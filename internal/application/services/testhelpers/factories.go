package testhelpers

import (
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/payflow/payment-service/internal/application/services"
)

// NewTestLogger returns a logger that only surfaces errors, keeping test
// output readable.
func NewTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

// DefaultSubmitCommand returns a valid creation request with a fresh
// idempotency key.
func DefaultSubmitCommand() services.SubmitCommand {
	description := "order #1042"
	merchantID := "merchant-42"

	return services.SubmitCommand{
		Amount:         decimal.RequireFromString("100.50"),
		Currency:       "USD",
		IdempotencyKey: "idem-" + uuid.New().String(),
		Description:    &description,
		MerchantID:     &merchantID,
	}
}

package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/payflow/payment-service/internal/domain"
)

func validPayment(t *testing.T) *domain.Payment {
	t.Helper()
	p, err := domain.NewPayment(
		decimal.RequireFromString("100.50"), "USD", "key-1", nil, nil,
	)
	require.NoError(t, err)
	return p
}

func TestNewPayment_Valid(t *testing.T) {
	description := "subscription renewal"
	merchantID := "merchant-7"

	p, err := domain.NewPayment(
		decimal.RequireFromString("100.5"), "USD", "key-1", &description, &merchantID,
	)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, p.Status)
	assert.Equal(t, int64(0), p.Version)
	assert.True(t, p.Amount.Equal(decimal.RequireFromString("100.50")))
	assert.Equal(t, "key-1", p.IdempotencyKey)
	assert.Equal(t, &description, p.Description)
	assert.Nil(t, p.UpdatedAt)
	assert.False(t, p.CreatedAt.IsZero())
}

func TestNewPayment_Validation(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		currency string
		key      string
		wantCode string
	}{
		{"zero amount", "0", "USD", "k", domain.ErrCodeInvalidAmount},
		{"negative amount", "-5", "USD", "k", domain.ErrCodeInvalidAmount},
		{"too many decimal places", "10.999", "USD", "k", domain.ErrCodeInvalidAmount},
		{"empty currency", "10", "", "k", domain.ErrCodeInvalidCurrency},
		{"short currency", "10", "US", "k", domain.ErrCodeInvalidCurrency},
		{"long currency", "10", "EURO", "k", domain.ErrCodeInvalidCurrency},
		{"lowercase currency", "10", "usd", "k", domain.ErrCodeInvalidCurrency},
		{"digits in currency", "10", "U5D", "k", domain.ErrCodeInvalidCurrency},
		{"empty key", "10", "USD", "", domain.ErrCodeMissingRequiredField},
		{"blank key", "10", "USD", "  ", domain.ErrCodeMissingRequiredField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.NewPayment(
				decimal.RequireFromString(tt.amount), tt.currency, tt.key, nil, nil,
			)
			require.Error(t, err)
			assert.True(t, domain.IsErrorCode(err, tt.wantCode), "got %v", err)
			assert.True(t, domain.IsValidationError(err))
		})
	}
}

func TestNewPayment_AcceptsWholeAmounts(t *testing.T) {
	p, err := domain.NewPayment(decimal.NewFromInt(250), "NGN", "k", nil, nil)
	require.NoError(t, err)
	assert.True(t, p.Amount.Equal(decimal.NewFromInt(250)))
}

func TestPayment_HappyPathTransitions(t *testing.T) {
	p := validPayment(t)

	require.NoError(t, p.MarkProcessing())
	assert.Equal(t, domain.StatusProcessing, p.Status)
	assert.False(t, p.IsTerminal())

	require.NoError(t, p.MarkSuccess())
	assert.Equal(t, domain.StatusSuccess, p.Status)
	assert.True(t, p.IsTerminal())
}

func TestPayment_ProcessingCanFailOrCancel(t *testing.T) {
	fail := validPayment(t)
	require.NoError(t, fail.MarkProcessing())
	require.NoError(t, fail.MarkFailed())
	assert.True(t, fail.IsTerminal())

	cancel := validPayment(t)
	require.NoError(t, cancel.MarkProcessing())
	require.NoError(t, cancel.MarkCancelled())
	assert.True(t, cancel.IsTerminal())
}

func TestPayment_IllegalTransitions(t *testing.T) {
	t.Run("pending cannot jump to a terminal status", func(t *testing.T) {
		p := validPayment(t)
		err := p.MarkSuccess()
		require.Error(t, err)
		assert.True(t, domain.IsErrorCode(err, domain.ErrCodeInvalidTransition))
		assert.Equal(t, domain.StatusPending, p.Status)
	})

	t.Run("terminal statuses allow nothing", func(t *testing.T) {
		for _, terminal := range []func(*domain.Payment) error{
			(*domain.Payment).MarkSuccess,
			(*domain.Payment).MarkFailed,
			(*domain.Payment).MarkCancelled,
		} {
			p := validPayment(t)
			require.NoError(t, p.MarkProcessing())
			require.NoError(t, terminal(p))

			err := p.MarkProcessing()
			require.Error(t, err)
			assert.True(t, domain.IsErrorCode(err, domain.ErrCodeInvalidTransition))
		}
	})
}

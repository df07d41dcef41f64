package postgres_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/payflow/payment-service/internal/application"
	"github.com/payflow/payment-service/internal/application/services/testhelpers"
	"github.com/payflow/payment-service/internal/domain"
	"github.com/payflow/payment-service/internal/infrastructure/persistence/postgres"
)

type PaymentRepositoryTestSuite struct {
	suite.Suite
	testDB *testhelpers.TestDatabase
	repo   *postgres.PaymentRepository
}

func TestPaymentRepositorySuite(t *testing.T) {
	suite.Run(t, new(PaymentRepositoryTestSuite))
}

func (suite *PaymentRepositoryTestSuite) SetupSuite() {
	suite.testDB = testhelpers.SetupTestDatabase(suite.T())
	suite.repo = postgres.NewPaymentRepository(suite.testDB.DB)
}

func (suite *PaymentRepositoryTestSuite) TearDownSuite() {
	suite.testDB.Cleanup(suite.T())
}

func (suite *PaymentRepositoryTestSuite) SetupTest() {
	suite.testDB.CleanTables(suite.T())
}

func (suite *PaymentRepositoryTestSuite) newProcessingPayment(key string) *domain.Payment {
	t := suite.T()

	payment, err := domain.NewPayment(
		decimal.RequireFromString("42.00"), "EUR", key, nil, nil,
	)
	require.NoError(t, err)
	payment.TransactionReference = "TXN-" + key
	require.NoError(t, payment.MarkProcessing())
	return payment
}

// ============================================================================
// KEY REGISTRY (UNIQUE CONSTRAINT) TESTS
// ============================================================================

func (suite *PaymentRepositoryTestSuite) Test_Create_AssignsSurrogateID() {
	ctx := context.Background()
	t := suite.T()
	payment := suite.newProcessingPayment("key-create")

	err := suite.repo.Create(ctx, payment)

	require.NoError(t, err)
	assert.Positive(t, payment.ID)
	assert.Equal(t, int64(0), payment.Version)
}

func (suite *PaymentRepositoryTestSuite) Test_Create_SameKeyTwice_SecondFails() {
	ctx := context.Background()
	t := suite.T()

	first := suite.newProcessingPayment("key-dup")
	require.NoError(t, suite.repo.Create(ctx, first))

	second := suite.newProcessingPayment("key-dup")
	err := suite.repo.Create(ctx, second)

	require.Error(t, err)
	assert.True(t, domain.IsErrorCode(err, domain.ErrCodeDuplicatePayment))
}

func (suite *PaymentRepositoryTestSuite) Test_Create_ConcurrentSameKey_ExactlyOneWins() {
	ctx := context.Background()
	t := suite.T()

	const workers = 10
	errs := make(chan error, workers)

	for i := range workers {
		go func(i int) {
			payment := suite.newProcessingPayment("key-race")
			payment.TransactionReference = payment.TransactionReference + "-" + string(rune('a'+i))
			errs <- suite.repo.Create(ctx, payment)
		}(i)
	}

	var winners, losers int
	for range workers {
		err := <-errs
		if err == nil {
			winners++
			continue
		}
		require.True(t, domain.IsErrorCode(err, domain.ErrCodeDuplicatePayment),
			"unexpected error: %v", err)
		losers++
	}

	assert.Equal(t, 1, winners)
	assert.Equal(t, workers-1, losers)
}

func (suite *PaymentRepositoryTestSuite) Test_Create_StoreRejectsNonPositiveAmount() {
	ctx := context.Background()
	t := suite.T()

	// Bypass domain validation to prove the CHECK constraint holds at the
	// storage boundary too.
	payment := suite.newProcessingPayment("key-zero-amount")
	payment.Amount = decimal.Zero

	err := suite.repo.Create(ctx, payment)
	require.Error(t, err)
}

// ============================================================================
// OPTIMISTIC CONCURRENCY TESTS
// ============================================================================

func (suite *PaymentRepositoryTestSuite) Test_UpdateWithVersion_IncrementsByOne() {
	ctx := context.Background()
	t := suite.T()

	payment := suite.newProcessingPayment("key-version")
	require.NoError(t, suite.repo.Create(ctx, payment))
	require.NoError(t, payment.MarkSuccess())

	err := suite.repo.UpdateWithVersion(ctx, payment)

	require.NoError(t, err)
	assert.Equal(t, int64(1), payment.Version)
	require.NotNil(t, payment.UpdatedAt)

	saved, err := suite.repo.FindByID(ctx, payment.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSuccess, saved.Status)
	assert.Equal(t, int64(1), saved.Version)
	require.NotNil(t, saved.UpdatedAt)
}

func (suite *PaymentRepositoryTestSuite) Test_UpdateWithVersion_StaleVersion_Conflicts() {
	ctx := context.Background()
	t := suite.T()

	payment := suite.newProcessingPayment("key-stale")
	require.NoError(t, suite.repo.Create(ctx, payment))

	// First writer wins.
	winner := *payment
	require.NoError(t, winner.MarkSuccess())
	require.NoError(t, suite.repo.UpdateWithVersion(ctx, &winner))

	// Second writer holds the stale version 0.
	loser := *payment
	require.NoError(t, loser.MarkFailed())
	err := suite.repo.UpdateWithVersion(ctx, &loser)

	require.Error(t, err)
	assert.True(t, domain.IsErrorCode(err, domain.ErrCodeVersionConflict))

	// The losing write must not be applied.
	saved, err := suite.repo.FindByID(ctx, payment.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSuccess, saved.Status)
	assert.Equal(t, int64(1), saved.Version)
}

func (suite *PaymentRepositoryTestSuite) Test_UpdateWithVersion_MissingRecord_NotFound() {
	ctx := context.Background()
	t := suite.T()

	payment := suite.newProcessingPayment("key-ghost")
	payment.ID = 999_999
	require.NoError(t, payment.MarkSuccess())

	err := suite.repo.UpdateWithVersion(ctx, payment)

	require.Error(t, err)
	assert.True(t, domain.IsErrorCode(err, domain.ErrCodePaymentNotFound))
}

// ============================================================================
// FINDER TESTS
// ============================================================================

func (suite *PaymentRepositoryTestSuite) Test_FindByID_NotFound() {
	ctx := context.Background()
	t := suite.T()

	_, err := suite.repo.FindByID(ctx, 123_456)

	require.Error(t, err)
	assert.True(t, domain.IsErrorCode(err, domain.ErrCodePaymentNotFound))
}

func (suite *PaymentRepositoryTestSuite) Test_FindByIdempotencyKey_RoundTrip() {
	ctx := context.Background()
	t := suite.T()

	payment := suite.newProcessingPayment("key-roundtrip")
	require.NoError(t, suite.repo.Create(ctx, payment))

	saved, err := suite.repo.FindByIdempotencyKey(ctx, "key-roundtrip")

	require.NoError(t, err)
	assert.Equal(t, payment.ID, saved.ID)
	assert.True(t, payment.Amount.Equal(saved.Amount))
	assert.Equal(t, payment.Currency, saved.Currency)
	assert.Nil(t, saved.UpdatedAt)
}

func (suite *PaymentRepositoryTestSuite) Test_List_UnknownSortFieldFallsBack() {
	ctx := context.Background()
	t := suite.T()

	payment := suite.newProcessingPayment("key-sort")
	require.NoError(t, suite.repo.Create(ctx, payment))

	items, total, err := suite.repo.List(ctx, application.PageRequest{
		Page:      0,
		Size:      10,
		SortField: "amount; DROP TABLE payments",
		SortDir:   application.SortDesc,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, items, 1)
}

package deposit

import (
	"context"
	"testing"

	"veridian/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) ListByClerkID(ctx context.Context, clerkID string, limit int) ([]models.Transaction, error) {
	args := m.Called(ctx, clerkID, limit)
	if txs := args.Get(0); txs != nil {
		return txs.([]models.Transaction), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTransactionRepository) PendingWithdrawalTotal(ctx context.Context, clerkID string) (decimal.Decimal, error) {
	args := m.Called(ctx, clerkID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func TestCardDeposit_TestToken(t *testing.T) {
	txRepo := new(MockTransactionRepository)
	txRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Transaction")).Return(nil)

	svc := NewService(txRepo, "bc1qexample", "sk_test_x")
	tx, err := svc.CardDeposit(context.Background(), "user_123", CardInput{
		CardNumber:  "tok_visa",
		ExpiryMonth: "12",
		ExpiryYear:  "2030",
		Amount:      decimal.RequireFromString("25.00"),
	})

	assert.NoError(t, err)
	assert.Equal(t, models.TransactionTypeTopup, tx.Type)
	assert.Equal(t, models.TransactionStatusPending, tx.Status)
	txRepo.AssertExpectations(t)
}

func TestCardDeposit_InvalidAmount(t *testing.T) {
	txRepo := new(MockTransactionRepository)
	svc := NewService(txRepo, "bc1qexample", "sk_test_x")

	_, err := svc.CardDeposit(context.Background(), "user_123", CardInput{
		CardNumber: "tok_visa",
		Amount:     decimal.Zero,
	})

	assert.ErrorIs(t, err, ErrInvalidAmount)
	txRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestIsValidCardNumber(t *testing.T) {
	assert.True(t, isValidCardNumber("4242424242424242"))
	assert.True(t, isValidCardNumber("4000056655665556"))
	assert.False(t, isValidCardNumber("4242424242424241"))
	assert.False(t, isValidCardNumber("not-a-number"))
	assert.False(t, isValidCardNumber("4242"))
}

package withdrawal

import (
	"context"
	"testing"

	"veridian/internal/models"
	"veridian/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockKYCRepository struct {
	mock.Mock
}

func (m *MockKYCRepository) FindByClerkID(ctx context.Context, clerkID string) (*models.KYCRecord, error) {
	args := m.Called(ctx, clerkID)
	if rec := args.Get(0); rec != nil {
		return rec.(*models.KYCRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockKYCRepository) Create(ctx context.Context, record *models.KYCRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockKYCRepository) UpdateByClerkID(ctx context.Context, clerkID string, record *models.KYCRecord) (*models.KYCRecord, error) {
	args := m.Called(ctx, clerkID, record)
	if rec := args.Get(0); rec != nil {
		return rec.(*models.KYCRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockKYCRepository) SetApproval(ctx context.Context, clerkID string, state models.ApprovalState) error {
	args := m.Called(ctx, clerkID, state)
	return args.Error(0)
}

func (m *MockKYCRepository) ListAll(ctx context.Context) ([]models.KYCRecord, error) {
	args := m.Called(ctx)
	if recs := args.Get(0); recs != nil {
		return recs.([]models.KYCRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

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

func approvedRecord(balance string) *models.KYCRecord {
	return &models.KYCRecord{
		ClerkID: "user_123",
		Approve: models.ApprovalApproved,
		Balance: decimal.RequireFromString(balance),
	}
}

func TestRequest(t *testing.T) {
	tests := []struct {
		name      string
		amount    string
		setupMock func(*MockKYCRepository, *MockTransactionRepository)
		wantErr   error
	}{
		{
			name:   "successful request",
			amount: "100.00",
			setupMock: func(kycRepo *MockKYCRepository, txRepo *MockTransactionRepository) {
				kycRepo.On("FindByClerkID", mock.Anything, "user_123").Return(approvedRecord("500.00"), nil)
				txRepo.On("PendingWithdrawalTotal", mock.Anything, "user_123").Return(decimal.Zero, nil)
				txRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Transaction")).Return(nil)
			},
		},
		{
			name:    "non-positive amount",
			amount:  "0",
			wantErr: ErrInvalidAmount,
		},
		{
			name:   "no kyc record",
			amount: "50.00",
			setupMock: func(kycRepo *MockKYCRepository, txRepo *MockTransactionRepository) {
				kycRepo.On("FindByClerkID", mock.Anything, "user_123").Return(nil, repositories.ErrKYCNotFound)
			},
			wantErr: ErrNotApproved,
		},
		{
			name:   "not approved yet",
			amount: "50.00",
			setupMock: func(kycRepo *MockKYCRepository, txRepo *MockTransactionRepository) {
				record := approvedRecord("500.00")
				record.Approve = models.ApprovalPending
				kycRepo.On("FindByClerkID", mock.Anything, "user_123").Return(record, nil)
			},
			wantErr: ErrNotApproved,
		},
		{
			name:   "pending withdrawals reduce available balance",
			amount: "200.00",
			setupMock: func(kycRepo *MockKYCRepository, txRepo *MockTransactionRepository) {
				kycRepo.On("FindByClerkID", mock.Anything, "user_123").Return(approvedRecord("500.00"), nil)
				txRepo.On("PendingWithdrawalTotal", mock.Anything, "user_123").
					Return(decimal.RequireFromString("400.00"), nil)
			},
			wantErr: ErrInsufficientBalance,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kycRepo := new(MockKYCRepository)
			txRepo := new(MockTransactionRepository)
			if tt.setupMock != nil {
				tt.setupMock(kycRepo, txRepo)
			}

			svc := NewService(kycRepo, txRepo)
			tx, err := svc.Request(context.Background(), "user_123", decimal.RequireFromString(tt.amount))

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, models.TransactionTypeWithdrawal, tx.Type)
				assert.Equal(t, models.TransactionStatusPending, tx.Status)
				assert.NotEmpty(t, tx.Reference)
			}

			kycRepo.AssertExpectations(t)
			txRepo.AssertExpectations(t)
		})
	}
}

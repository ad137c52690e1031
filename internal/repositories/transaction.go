package repositories

import (
	"context"

	"veridian/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionRepository persists ledger rows (withdrawal requests and topups).
type TransactionRepository interface {
	Create(ctx context.Context, tx *models.Transaction) error
	ListByClerkID(ctx context.Context, clerkID string, limit int) ([]models.Transaction, error)
	// PendingWithdrawalTotal sums the user's unsettled withdrawal requests.
	PendingWithdrawalTotal(ctx context.Context, clerkID string) (decimal.Decimal, error)
}

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

func (r *transactionRepository) ListByClerkID(ctx context.Context, clerkID string, limit int) ([]models.Transaction, error) {
	var txs []models.Transaction
	q := r.db.WithContext(ctx).
		Where("clerk_id = ?", clerkID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&txs).Error
	return txs, err
}

func (r *transactionRepository) PendingWithdrawalTotal(ctx context.Context, clerkID string) (decimal.Decimal, error) {
	var total string
	err := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("clerk_id = ? AND type = ? AND status = ?",
			clerkID, models.TransactionTypeWithdrawal, models.TransactionStatusPending).
		Select("COALESCE(SUM(amount), 0)").
		Row().Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromString(total)
}

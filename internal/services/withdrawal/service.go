// Package withdrawal handles withdrawal requests against a user's balance.
// Requests are recorded pending; settlement happens outside this service.
package withdrawal

import (
	"context"
	"errors"
	"fmt"

	"veridian/internal/models"
	"veridian/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service defines withdrawal operations.
type Service interface {
	// Request records a pending withdrawal if the amount fits within the
	// user's available balance (balance minus pending withdrawals).
	Request(ctx context.Context, clerkID string, amount decimal.Decimal) (*models.Transaction, error)
	// PendingAmount returns the total of the user's unsettled withdrawals.
	PendingAmount(ctx context.Context, clerkID string) (decimal.Decimal, error)
}

type service struct {
	kycRepo repositories.KYCRepository
	txRepo  repositories.TransactionRepository
}

// NewService creates a new withdrawal service.
func NewService(kycRepo repositories.KYCRepository, txRepo repositories.TransactionRepository) Service {
	if kycRepo == nil {
		panic("kyc repo is required")
	}
	if txRepo == nil {
		panic("transaction repo is required")
	}
	return &service{kycRepo: kycRepo, txRepo: txRepo}
}

func (s *service) Request(ctx context.Context, clerkID string, amount decimal.Decimal) (*models.Transaction, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	record, err := s.kycRepo.FindByClerkID(ctx, clerkID)
	if err != nil {
		if errors.Is(err, repositories.ErrKYCNotFound) {
			return nil, ErrNotApproved
		}
		return nil, fmt.Errorf("kyc lookup failed: %w", err)
	}
	if record.Approve != models.ApprovalApproved {
		return nil, ErrNotApproved
	}

	pending, err := s.txRepo.PendingWithdrawalTotal(ctx, clerkID)
	if err != nil {
		return nil, fmt.Errorf("pending withdrawal lookup failed: %w", err)
	}

	available := record.Balance.Sub(pending)
	if amount.GreaterThan(available) {
		return nil, ErrInsufficientBalance
	}

	tx := &models.Transaction{
		ClerkID:   clerkID,
		Type:      models.TransactionTypeWithdrawal,
		Amount:    amount,
		Status:    models.TransactionStatusPending,
		Reference: uuid.NewString(),
	}
	if err := s.txRepo.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("withdrawal create failed: %w", err)
	}
	return tx, nil
}

func (s *service) PendingAmount(ctx context.Context, clerkID string) (decimal.Decimal, error) {
	return s.txRepo.PendingWithdrawalTotal(ctx, clerkID)
}

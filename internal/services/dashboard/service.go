// Package dashboard serves the read-only views on the user dashboard:
// the balance card and the transaction history. These are thin
// fetch-and-shape reads with no logic of their own.
package dashboard

import (
	"context"

	"veridian/internal/models"
	"veridian/internal/repositories"
)

const defaultHistoryLimit = 50

// BalanceView is the payload behind the balance card.
type BalanceView struct {
	Balance    string `json:"balance"`
	Investment string `json:"investment"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
}

// Service defines the dashboard read operations.
type Service interface {
	Balance(ctx context.Context, clerkID string) (*BalanceView, error)
	History(ctx context.Context, clerkID string) ([]models.Transaction, error)
}

type service struct {
	kycRepo repositories.KYCRepository
	txRepo  repositories.TransactionRepository
}

// NewService creates a new dashboard service.
func NewService(kycRepo repositories.KYCRepository, txRepo repositories.TransactionRepository) Service {
	return &service{kycRepo: kycRepo, txRepo: txRepo}
}

func (s *service) Balance(ctx context.Context, clerkID string) (*BalanceView, error) {
	record, err := s.kycRepo.FindByClerkID(ctx, clerkID)
	if err != nil {
		return nil, err
	}
	return &BalanceView{
		Balance:    record.Balance.StringFixed(2),
		Investment: record.Investment.StringFixed(2),
		FirstName:  record.FirstName,
		LastName:   record.LastName,
	}, nil
}

func (s *service) History(ctx context.Context, clerkID string) ([]models.Transaction, error) {
	return s.txRepo.ListByClerkID(ctx, clerkID, defaultHistoryLimit)
}

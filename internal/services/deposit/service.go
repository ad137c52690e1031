// Package deposit handles funding paths for the dashboard: the static
// crypto deposit address and card-funded topups. Card details are tokenized
// with Stripe and never stored; the actual charge is captured by external
// rails, so a topup is recorded pending.
package deposit

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"veridian/internal/models"
	"veridian/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/token"
)

var (
	ErrInvalidCard   = errors.New("invalid card number")
	ErrInvalidAmount = errors.New("deposit amount must be positive")
)

// CardInput carries card details for a card-funded deposit.
type CardInput struct {
	CardNumber  string
	ExpiryMonth string
	ExpiryYear  string
	Amount      decimal.Decimal
}

// Service defines deposit operations.
type Service interface {
	// Address returns the crypto deposit address shown on the deposit page.
	Address() string
	// CardDeposit tokenizes the card and records a pending topup.
	CardDeposit(ctx context.Context, clerkID string, input CardInput) (*models.Transaction, error)
}

type service struct {
	txRepo    repositories.TransactionRepository
	address   string
	stripeKey string
}

// NewService creates a new deposit service.
func NewService(txRepo repositories.TransactionRepository, address, stripeKey string) Service {
	if txRepo == nil {
		panic("transaction repo is required")
	}
	return &service{txRepo: txRepo, address: address, stripeKey: stripeKey}
}

func (s *service) Address() string { return s.address }

func (s *service) CardDeposit(ctx context.Context, clerkID string, input CardInput) (*models.Transaction, error) {
	if !input.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	cardToken, err := s.tokenize(input)
	if err != nil {
		return nil, err
	}

	tx := &models.Transaction{
		ClerkID:     clerkID,
		Type:        models.TransactionTypeTopup,
		Amount:      input.Amount,
		Status:      models.TransactionStatusPending,
		Reference:   uuid.NewString(),
		Description: "card deposit " + cardToken,
	}
	if err := s.txRepo.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("deposit create failed: %w", err)
	}
	return tx, nil
}

func (s *service) tokenize(input CardInput) (string, error) {
	stripe.Key = s.stripeKey

	// Stripe test tokens skip tokenization entirely.
	if strings.HasPrefix(input.CardNumber, "tok_") {
		return input.CardNumber, nil
	}

	if !isValidCardNumber(input.CardNumber) {
		return "", ErrInvalidCard
	}

	params := &stripe.TokenParams{
		Card: &stripe.CardParams{
			Number:   &input.CardNumber,
			ExpMonth: &input.ExpiryMonth,
			ExpYear:  &input.ExpiryYear,
		},
	}
	stripeToken, err := token.New(params)
	if err != nil {
		log.Printf("stripe tokenization error: %v", err)
		return "", fmt.Errorf("stripe tokenization failed: %w", err)
	}
	return stripeToken.ID, nil
}

// Luhn check on the card number.
func isValidCardNumber(cardNumber string) bool {
	if len(cardNumber) < 12 {
		return false
	}

	var sum int
	shouldDouble := false
	for i := len(cardNumber) - 1; i >= 0; i-- {
		if cardNumber[i] < '0' || cardNumber[i] > '9' {
			return false
		}
		digit := int(cardNumber[i] - '0')

		if shouldDouble {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		shouldDouble = !shouldDouble
	}
	return sum%10 == 0
}

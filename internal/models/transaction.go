package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction types
const (
	TransactionTypeTopup      = "TOPUP"
	TransactionTypeWithdrawal = "WITHDRAWAL"
)

// Transaction statuses
const (
	TransactionStatusPending   = "pending"
	TransactionStatusCompleted = "completed"
	TransactionStatusRejected  = "rejected"
)

// Transaction is one ledger row on a user's account. Withdrawal requests are
// created pending and settled by an external operator; this service never
// moves money itself.
type Transaction struct {
	ID          uint            `gorm:"primarykey" json:"id"`
	ClerkID     string          `gorm:"index;not null" json:"clerkId"`
	Type        string          `gorm:"not null" json:"type"`
	Amount      decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"amount"`
	Status      string          `gorm:"not null;default:'pending'" json:"status"`
	Reference   string          `gorm:"uniqueIndex;not null" json:"reference"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

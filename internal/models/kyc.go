package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ApprovalState is the verification workflow state of a KYC record.
// Transitions are performed by an operator action, never by the intake path.
type ApprovalState string

const (
	ApprovalPending     ApprovalState = "0" // submitted, awaiting OTP verification
	ApprovalApproved    ApprovalState = "1"
	ApprovalUnderReview ApprovalState = "2" // no display behavior defined, pending product clarification
	ApprovalRejected    ApprovalState = "3"
)

// ParseApprovalState validates a raw approval value.
func ParseApprovalState(raw string) (ApprovalState, error) {
	switch s := ApprovalState(raw); s {
	case ApprovalPending, ApprovalApproved, ApprovalUnderReview, ApprovalRejected:
		return s, nil
	}
	return "", fmt.Errorf("unknown approval state %q", raw)
}

// Informational content sets shown on the dashboard depending on approval state.
const (
	ContentSetNone     = 0
	ContentSetApproved = 1
	ContentSetPending  = 2
	ContentSetRejected = 3
)

// DisplayState tells the dashboard what to render for an approval state.
type DisplayState struct {
	ContentSet    int  `json:"content_set"`
	ShowOTPPrompt bool `json:"show_otp_prompt"`
	// Defined is false for states whose display behavior has never been
	// specified (currently only ApprovalUnderReview). Callers should render
	// nothing and flag the record rather than guess.
	Defined bool `json:"defined"`
}

// Display maps an approval state to its dashboard rendering.
func (s ApprovalState) Display() DisplayState {
	switch s {
	case ApprovalPending:
		return DisplayState{ContentSet: ContentSetPending, ShowOTPPrompt: true, Defined: true}
	case ApprovalApproved:
		return DisplayState{ContentSet: ContentSetApproved, Defined: true}
	case ApprovalRejected:
		return DisplayState{ContentSet: ContentSetRejected, Defined: true}
	default:
		return DisplayState{ContentSet: ContentSetNone}
	}
}

// KYCRecord is one user's verification and account state. At most one record
// exists per clerk ID; the record is never deleted.
type KYCRecord struct {
	gorm.Model
	ClerkID     string          `gorm:"uniqueIndex;not null"`
	FirstName   string          `gorm:"not null"`
	LastName    string          `gorm:"not null"`
	Email       string          `gorm:"not null"`
	Country     string          `gorm:"not null"`
	State       string          `gorm:"not null"`
	Account     string          `gorm:"not null"` // 10-digit number, assigned once
	Approve     ApprovalState   `gorm:"type:varchar(1);not null;default:'0'"`
	Balance     decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	Investment  decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	Applied     string          `gorm:"not null;default:'1'"`
	IDCardURL   string          `gorm:"not null"`
	PassportURL string          `gorm:"not null"`
}

// KYCRecordDTO is the wire shape of a record on the listing and status
// endpoints. Timestamps are ISO-8601.
type KYCRecordDTO struct {
	ClerkID    string `json:"clerkId"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Country    string `json:"country"`
	State      string `json:"state"`
	Account    string `json:"account"`
	Approve    string `json:"approve"`
	Balance    string `json:"balance"`
	Investment string `json:"investment"`
	Applied    string `json:"applied"`
	IDCard     string `json:"idCard"`
	Passport   string `json:"passport"`
	CreatedAt  string `json:"createdAt"`
	UpdatedAt  string `json:"updatedAt"`
}

// DTO converts a record to its wire shape.
func (k *KYCRecord) DTO() KYCRecordDTO {
	return KYCRecordDTO{
		ClerkID:    k.ClerkID,
		FirstName:  k.FirstName,
		LastName:   k.LastName,
		Email:      k.Email,
		Country:    k.Country,
		State:      k.State,
		Account:    k.Account,
		Approve:    string(k.Approve),
		Balance:    k.Balance.StringFixed(2),
		Investment: k.Investment.StringFixed(2),
		Applied:    k.Applied,
		IDCard:     k.IDCardURL,
		Passport:   k.PassportURL,
		CreatedAt:  k.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:  k.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

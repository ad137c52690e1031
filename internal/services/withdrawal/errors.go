package withdrawal

import "errors"

// Service errors
var (
	ErrInvalidAmount       = errors.New("withdrawal amount must be positive")
	ErrInsufficientBalance = errors.New("withdrawal exceeds available balance")
	ErrNotApproved         = errors.New("account is not approved for withdrawals")
)

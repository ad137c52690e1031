package kyc

import (
	"errors"
	"fmt"
	"strings"
)

// Service errors
var (
	ErrFileTooLarge        = errors.New("file size too large")
	ErrUploadFailed        = errors.New("document upload failed")
	ErrDuplicateSubmission = errors.New("kyc application already exists for this user")
	ErrRecordNotFound      = errors.New("kyc record not found")
)

// ValidationError reports every required field that was missing or empty.
// It is always returned before any side effect occurs.
type ValidationError struct {
	MissingFields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.MissingFields, ", "))
}

package kyc

import "time"

// Storage folders and filename roles for uploaded documents.
const (
	folderIDCards   = "id-cards"
	folderPassports = "passports"
	roleIDCard      = "idcard"
	rolePassport    = "passport"
)

// Document is one uploaded identity file.
type Document struct {
	Filename string
	Data     []byte
}

// Size returns the document's byte size.
func (d Document) Size() int { return len(d.Data) }

// SubmissionInput carries one multipart KYC submission.
type SubmissionInput struct {
	ClerkID   string
	FirstName string
	LastName  string
	Email     string
	Country   string
	State     string
	// Investment is an optional numeric string; empty means zero.
	Investment string
	IDCard     Document
	Passport   Document
}

// SubmissionResult reports the outcome of a successful submission.
type SubmissionResult struct {
	AccountNumber   string
	IsReapplication bool
}

// Config tunes the intake workflow.
type Config struct {
	// MaxFileSize is the per-document ceiling in bytes (default 10 MiB).
	MaxFileSize int
	// UploadAttempts is the number of tries per document (default 3).
	UploadAttempts int
	// RetryBaseDelay scales the linear backoff between attempts: the wait
	// before attempt n+1 is n * RetryBaseDelay (default 1s).
	RetryBaseDelay time.Duration
}

package kyc

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"veridian/internal/models"
	"veridian/internal/repositories"
	"veridian/internal/storage"
	"veridian/internal/validation"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Service defines the KYC intake operations.
type Service interface {
	// Submit processes one KYC submission end to end.
	Submit(ctx context.Context, input SubmissionInput) (*SubmissionResult, error)
	// Record returns a user's KYC record.
	Record(ctx context.Context, clerkID string) (*models.KYCRecord, error)
	// List returns all records, newest first.
	List(ctx context.Context) ([]models.KYCRecord, error)
}

type service struct {
	repo   repositories.KYCRepository
	store  storage.Client
	config Config
}

// NewService creates a new KYC intake service.
func NewService(repo repositories.KYCRepository, store storage.Client, config Config) Service {
	if repo == nil {
		panic("repo is required")
	}
	if store == nil {
		panic("storage client is required")
	}

	if config.MaxFileSize == 0 {
		config.MaxFileSize = 10 << 20
	}
	if config.UploadAttempts == 0 {
		config.UploadAttempts = 3
	}
	if config.RetryBaseDelay == 0 {
		config.RetryBaseDelay = time.Second
	}

	return &service{repo: repo, store: store, config: config}
}

func (s *service) Submit(ctx context.Context, input SubmissionInput) (*SubmissionResult, error) {
	investment, err := s.validate(input)
	if err != nil {
		return nil, err
	}

	if input.IDCard.Size() > s.config.MaxFileSize || input.Passport.Size() > s.config.MaxFileSize {
		return nil, ErrFileTooLarge
	}

	existing, err := s.repo.FindByClerkID(ctx, input.ClerkID)
	if err != nil && !errors.Is(err, repositories.ErrKYCNotFound) {
		return nil, fmt.Errorf("kyc lookup failed: %w", err)
	}

	var account string
	balance := decimal.Zero
	if existing != nil {
		// Account and balance survive re-application.
		account = existing.Account
		balance = existing.Balance
		s.deleteOldDocuments(ctx, existing)
	} else {
		account = generateAccountNumber()
	}

	var idCardURL, passportURL string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		url, err := s.uploadWithRetry(gctx, input.IDCard.Data, folderIDCards, input.ClerkID+"_"+roleIDCard)
		idCardURL = url
		return err
	})
	g.Go(func() error {
		url, err := s.uploadWithRetry(gctx, input.Passport.Data, folderPassports, input.ClerkID+"_"+rolePassport)
		passportURL = url
		return err
	})
	if err := g.Wait(); err != nil {
		// Nothing has been written; a partial upload may leave an orphaned
		// object behind, which is an accepted gap.
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	record := &models.KYCRecord{
		ClerkID:     input.ClerkID,
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Email:       input.Email,
		Country:     input.Country,
		State:       input.State,
		Account:     account,
		Approve:     models.ApprovalPending,
		Balance:     balance,
		Investment:  investment,
		Applied:     "1",
		IDCardURL:   idCardURL,
		PassportURL: passportURL,
	}

	if existing != nil {
		if _, err := s.repo.UpdateByClerkID(ctx, input.ClerkID, record); err != nil {
			return nil, fmt.Errorf("kyc update failed: %w", err)
		}
		return &SubmissionResult{AccountNumber: account, IsReapplication: true}, nil
	}

	if err := s.repo.Create(ctx, record); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKYC) {
			return nil, ErrDuplicateSubmission
		}
		return nil, fmt.Errorf("kyc create failed: %w", err)
	}
	return &SubmissionResult{AccountNumber: account, IsReapplication: false}, nil
}

func (s *service) Record(ctx context.Context, clerkID string) (*models.KYCRecord, error) {
	record, err := s.repo.FindByClerkID(ctx, clerkID)
	if err != nil {
		if errors.Is(err, repositories.ErrKYCNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return record, nil
}

func (s *service) List(ctx context.Context) ([]models.KYCRecord, error) {
	return s.repo.ListAll(ctx)
}

// validate collects every missing field before reporting any of them.
// It runs before all side effects.
func (s *service) validate(input SubmissionInput) (decimal.Decimal, error) {
	v := validation.New()
	v.Required("clerkId", input.ClerkID)
	v.Required("firstName", input.FirstName)
	v.Required("lastName", input.LastName)
	v.Required("email", input.Email)
	v.Required("country", input.Country)
	v.Required("state", input.State)
	v.RequiredFile("idCardFile", input.IDCard.Size())
	v.RequiredFile("passportFile", input.Passport.Size())

	investment := decimal.Zero
	if input.Investment != "" {
		parsed, err := decimal.NewFromString(input.Investment)
		if err != nil {
			v.AddError("investment", "must be a numeric string")
		} else {
			investment = parsed
		}
	}

	if !v.Valid() {
		return decimal.Zero, &ValidationError{MissingFields: v.Fields()}
	}
	return investment, nil
}

// deleteOldDocuments removes a previous application's stored files so
// re-uploads don't orphan them. Deletions run in parallel and are
// best-effort: each outcome is logged and none can fail the submission.
func (s *service) deleteOldDocuments(ctx context.Context, record *models.KYCRecord) {
	var wg sync.WaitGroup
	for _, u := range []string{record.IDCardURL, record.PassportURL} {
		publicID := storage.PublicIDFromURL(u)
		if publicID == "" {
			continue
		}
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			if err := s.store.Delete(ctx, id); err != nil {
				log.Printf("best-effort delete of %s failed: %v", id, err)
			}
		}(publicID)
	}
	wg.Wait()
}

// uploadWithRetry attempts an upload up to the configured number of times,
// waiting attempt*RetryBaseDelay between tries.
func (s *service) uploadWithRetry(ctx context.Context, data []byte, folder, filename string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= s.config.UploadAttempts; attempt++ {
		url, err := s.store.Upload(ctx, data, folder, filename)
		if err == nil {
			return url, nil
		}
		lastErr = err
		log.Printf("upload attempt %d/%d to %s failed: %v", attempt, s.config.UploadAttempts, folder, err)

		if attempt < s.config.UploadAttempts {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(time.Duration(attempt) * s.config.RetryBaseDelay):
			}
		}
	}
	return "", lastErr
}

// generateAccountNumber returns a fresh 10-digit account number with a
// non-zero leading digit.
func generateAccountNumber() string {
	return strconv.FormatInt(rand.Int63n(9_000_000_000)+1_000_000_000, 10)
}

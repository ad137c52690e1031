package repositories

import (
	"context"
	"errors"
	"log"

	"veridian/internal/models"
	"veridian/internal/repositories/cache"

	"gorm.io/gorm"
)

var (
	// ErrKYCNotFound is returned when no record exists for a clerk ID.
	ErrKYCNotFound = errors.New("kyc record not found")
	// ErrDuplicateKYC is returned when a concurrent first-time submission
	// loses the race on the clerk_id unique index.
	ErrDuplicateKYC = errors.New("kyc record already exists for this user")
)

// KYCRepository is the store contract for KYC records. Every mutation targets
// exactly one record keyed by clerk ID.
type KYCRepository interface {
	FindByClerkID(ctx context.Context, clerkID string) (*models.KYCRecord, error)
	Create(ctx context.Context, record *models.KYCRecord) error
	// UpdateByClerkID rewrites a record's mutable fields. The account number
	// and approval state are never touched by this call.
	UpdateByClerkID(ctx context.Context, clerkID string, record *models.KYCRecord) (*models.KYCRecord, error)
	// SetApproval advances the approval state. Used only by the operator
	// tooling, never by the intake path.
	SetApproval(ctx context.Context, clerkID string, state models.ApprovalState) error
	ListAll(ctx context.Context) ([]models.KYCRecord, error)
}

type kycRepository struct {
	db    *gorm.DB
	cache *cache.CacheService
}

func NewKYCRepository(db *gorm.DB, cacheService *cache.CacheService) KYCRepository {
	return &kycRepository{db: db, cache: cacheService}
}

// mutableColumns are the fields rewritten on re-application. account and
// approve are deliberately absent.
var mutableColumns = []string{
	"first_name", "last_name", "email", "country", "state",
	"balance", "investment", "applied", "id_card_url", "passport_url",
}

func (r *kycRepository) FindByClerkID(ctx context.Context, clerkID string) (*models.KYCRecord, error) {
	if r.cache != nil {
		if record, found, err := r.cache.GetKYCRecord(ctx, clerkID); err == nil && found {
			return record, nil
		}
	}

	var record models.KYCRecord
	err := r.db.WithContext(ctx).Where("clerk_id = ?", clerkID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrKYCNotFound
		}
		return nil, err
	}

	if r.cache != nil {
		if err := r.cache.CacheKYCRecord(ctx, &record); err != nil {
			log.Printf("failed to cache kyc record for %s: %v", clerkID, err)
		}
	}
	return &record, nil
}

func (r *kycRepository) Create(ctx context.Context, record *models.KYCRecord) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateKYC
		}
		return err
	}
	r.invalidate(ctx, record.ClerkID)
	return nil
}

func (r *kycRepository) UpdateByClerkID(ctx context.Context, clerkID string, record *models.KYCRecord) (*models.KYCRecord, error) {
	res := r.db.WithContext(ctx).
		Model(&models.KYCRecord{}).
		Where("clerk_id = ?", clerkID).
		Select(mutableColumns).
		Updates(record)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrKYCNotFound
	}

	r.invalidate(ctx, clerkID)

	var updated models.KYCRecord
	if err := r.db.WithContext(ctx).Where("clerk_id = ?", clerkID).First(&updated).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *kycRepository) SetApproval(ctx context.Context, clerkID string, state models.ApprovalState) error {
	res := r.db.WithContext(ctx).
		Model(&models.KYCRecord{}).
		Where("clerk_id = ?", clerkID).
		Update("approve", state)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrKYCNotFound
	}
	r.invalidate(ctx, clerkID)
	return nil
}

func (r *kycRepository) ListAll(ctx context.Context) ([]models.KYCRecord, error) {
	if r.cache != nil {
		var records []models.KYCRecord
		if found, err := r.cache.Get(ctx, cache.ListingKey, &records); err == nil && found {
			return records, nil
		}
	}

	var records []models.KYCRecord
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&records).Error
	if err != nil {
		return nil, err
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, cache.ListingKey, records); err != nil {
			log.Printf("failed to cache kyc listing: %v", err)
		}
	}
	return records, nil
}

func (r *kycRepository) invalidate(ctx context.Context, clerkID string) {
	if r.cache == nil {
		return
	}
	if err := r.cache.InvalidateKYC(ctx, clerkID); err != nil {
		log.Printf("failed to invalidate kyc cache for %s: %v", clerkID, err)
	}
}

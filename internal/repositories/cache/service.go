package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"veridian/internal/models"

	"github.com/redis/go-redis/v9"
)

// ListingKey caches the full KYC listing; invalidated on every write.
const ListingKey = "kyc:listing"

type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheService(client *redis.Client, defaultTTL time.Duration) *CacheService {
	return &CacheService{
		client: client,
		ttl:    defaultTTL,
	}
}

// Base operations
func (s *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	return s.SetWithTTL(ctx, key, value, s.ttl)
}

func (s *CacheService) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to get cache value: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return true, nil
}

func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	return s.client.Del(ctx, keys...).Err()
}

// Key generation
func (s *CacheService) GenerateKey(entityType, keyType string, value interface{}) string {
	return fmt.Sprintf("%s:%s:%v", entityType, keyType, value)
}

// KYC record caching
func (s *CacheService) CacheKYCRecord(ctx context.Context, record *models.KYCRecord) error {
	if record == nil {
		return errors.New("cannot cache nil kyc record")
	}
	return s.Set(ctx, s.GenerateKey("kyc", "clerk", record.ClerkID), record)
}

func (s *CacheService) GetKYCRecord(ctx context.Context, clerkID string) (*models.KYCRecord, bool, error) {
	var record models.KYCRecord
	found, err := s.Get(ctx, s.GenerateKey("kyc", "clerk", clerkID), &record)
	if err != nil || !found {
		return nil, false, err
	}
	return &record, true, nil
}

// InvalidateKYC drops a user's cached record and the listing.
func (s *CacheService) InvalidateKYC(ctx context.Context, clerkID string) error {
	return s.Delete(ctx, s.GenerateKey("kyc", "clerk", clerkID), ListingKey)
}

func (s *CacheService) HealthCheck(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection failed: %w", err)
	}
	return nil
}

func (s *CacheService) GetStats(ctx context.Context) *redis.PoolStats {
	return s.client.PoolStats()
}

func (s *CacheService) FlushAll(ctx context.Context) error {
	return s.client.FlushAll(ctx).Err()
}

func (s *CacheService) Close() error {
	return s.client.Close()
}

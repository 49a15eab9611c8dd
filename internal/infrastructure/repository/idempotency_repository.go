package repository

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/sangkips/stockdesk/internal/domain/entity"
	domainRepo "github.com/sangkips/stockdesk/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type idempotencyRepository struct {
	db *gorm.DB
}

// NewIdempotencyRepository creates an idempotency repository on the idempotency_keys table
func NewIdempotencyRepository(db *gorm.DB) domainRepo.IdempotencyRepository {
	return &idempotencyRepository{db: db}
}

func (r *idempotencyRepository) GetByKey(ctx context.Context, key, businessID string) (*entity.IdempotencyKey, error) {
	var ikey entity.IdempotencyKey
	err := r.db.WithContext(ctx).
		Where("key = ? AND business_id = ?", key, businessID).
		First(&ikey).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ikey, nil
}

func (r *idempotencyRepository) Create(ctx context.Context, ikey *entity.IdempotencyKey) error {
	// A key reused after expiry overwrites the old response.
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}, {Name: "business_id"}},
		UpdateAll: true,
	}).Create(ikey).Error
}

// DeleteExpired purges keys whose expiry has passed.
func (r *idempotencyRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at < ?", now).
		Delete(&entity.IdempotencyKey{})
	return res.RowsAffected, res.Error
}

type memoryIdempotencyRepository struct {
	mu    sync.Mutex
	items map[[2]string]entity.IdempotencyKey
}

// NewMemoryIdempotencyRepository creates a process-local idempotency repository
func NewMemoryIdempotencyRepository() domainRepo.IdempotencyRepository {
	return &memoryIdempotencyRepository{items: make(map[[2]string]entity.IdempotencyKey)}
}

func (r *memoryIdempotencyRepository) GetByKey(_ context.Context, key, businessID string) (*entity.IdempotencyKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ikey, ok := r.items[[2]string{businessID, key}]
	if !ok {
		return nil, nil
	}
	return &ikey, nil
}

func (r *memoryIdempotencyRepository) Create(_ context.Context, ikey *entity.IdempotencyKey) error {
	r.mu.Lock()
	r.items[[2]string{ikey.BusinessID, ikey.Key}] = *ikey
	r.mu.Unlock()
	return nil
}

func (r *memoryIdempotencyRepository) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for k, v := range r.items {
		if v.IsExpired(now) {
			delete(r.items, k)
			n++
		}
	}
	return n, nil
}

const redisIdempotencyPrefix = "stockdesk:idempotency:"

type redisIdempotencyRepository struct {
	client *redis.Client
}

// NewRedisIdempotencyRepository creates an idempotency repository whose keys expire in redis
func NewRedisIdempotencyRepository(client *redis.Client) domainRepo.IdempotencyRepository {
	return &redisIdempotencyRepository{client: client}
}

func (r *redisIdempotencyRepository) GetByKey(ctx context.Context, key, businessID string) (*entity.IdempotencyKey, error) {
	val, err := r.client.Get(ctx, redisIdempotencyPrefix+businessID+":"+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var ikey entity.IdempotencyKey
	if err := json.Unmarshal(val, &ikey); err != nil {
		return nil, err
	}
	return &ikey, nil
}

func (r *redisIdempotencyRepository) Create(ctx context.Context, ikey *entity.IdempotencyKey) error {
	ttl := time.Until(ikey.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	payload, err := json.Marshal(ikey)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, redisIdempotencyPrefix+ikey.BusinessID+":"+ikey.Key, payload, ttl).Err()
}

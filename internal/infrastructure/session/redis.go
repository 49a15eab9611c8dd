package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/sangkips/stockdesk/internal/domain/entity"
	domainRepo "github.com/sangkips/stockdesk/internal/domain/repository"
)

const redisKeyPrefix = "stockdesk:session:"

type redisStore struct {
	client *redis.Client
}

// NewRedisClient opens a client and verifies the connection.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

// NewRedisStore creates a session store backed by redis. Entries expire with the session.
func NewRedisStore(client *redis.Client) domainRepo.SessionRepository {
	return &redisStore{client: client}
}

func (s *redisStore) Get(ctx context.Context, token string) (*entity.Session, error) {
	val, err := s.client.Get(ctx, redisKeyPrefix+Key(token)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var rec record
	if err := json.Unmarshal([]byte(val), &rec); err != nil {
		return nil, err
	}
	return rec.session(token), nil
}

func (s *redisStore) Save(ctx context.Context, session *entity.Session) error {
	payload, err := json.Marshal(toRecord(session))
	if err != nil {
		return err
	}
	expiry := ttl(session, time.Now())
	if expiry < 0 {
		return nil
	}
	return s.client.Set(ctx, redisKeyPrefix+Key(session.Token), payload, expiry).Err()
}

func (s *redisStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, redisKeyPrefix+Key(token)).Err()
}

package session

import (
	"context"
	"errors"
	"time"

	"github.com/sangkips/stockdesk/internal/domain/entity"
	domainRepo "github.com/sangkips/stockdesk/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Record is the sessions table row.
type Record struct {
	Key        string    `gorm:"primaryKey;size:64"`
	BusinessID string    `gorm:"size:64;not null"`
	CreatedAt  time.Time `gorm:"not null"`
	ExpiresAt  time.Time `gorm:"index"`
}

func (Record) TableName() string {
	return "sessions"
}

type postgresStore struct {
	db *gorm.DB
}

// NewPostgresStore creates a session store on the sessions table.
func NewPostgresStore(db *gorm.DB) domainRepo.SessionRepository {
	return &postgresStore{db: db}
}

func (s *postgresStore) Get(ctx context.Context, token string) (*entity.Session, error) {
	var row Record
	err := s.db.WithContext(ctx).First(&row, "key = ?", Key(token)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	sess := record{BusinessID: row.BusinessID, CreatedAt: row.CreatedAt, ExpiresAt: row.ExpiresAt}.session(token)
	if sess.IsExpired(time.Now()) {
		return nil, s.Delete(ctx, token)
	}
	return sess, nil
}

func (s *postgresStore) Save(ctx context.Context, session *entity.Session) error {
	row := Record{
		Key:        Key(session.Token),
		BusinessID: session.BusinessID,
		CreatedAt:  session.CreatedAt,
		ExpiresAt:  session.ExpiresAt,
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"business_id", "created_at", "expires_at"}),
	}).Create(&row).Error
}

func (s *postgresStore) Delete(ctx context.Context, token string) error {
	return s.db.WithContext(ctx).Delete(&Record{}, "key = ?", Key(token)).Error
}

// DeleteExpired purges sessions whose expiry has passed.
func (s *postgresStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("expires_at > ? AND expires_at < ?", time.Time{}, now).
		Delete(&Record{})
	return res.RowsAffected, res.Error
}

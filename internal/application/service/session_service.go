package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sangkips/stockdesk/internal/domain/entity"
	"github.com/sangkips/stockdesk/internal/domain/repository"
	"github.com/sangkips/stockdesk/pkg/apperror"
	"github.com/sangkips/stockdesk/pkg/utils"
	"go.uber.org/zap"
)

// SessionService caches the backend token and active business issued by the
// external login flow.
type SessionService struct {
	sessions repository.SessionRepository
	ttl      time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// NewSessionService creates a new session service
func NewSessionService(sessions repository.SessionRepository, ttl time.Duration, logger *zap.Logger) *SessionService {
	return &SessionService{
		sessions: sessions,
		ttl:      ttl,
		logger:   logger,
		now:      time.Now,
	}
}

// OpenSessionInput represents the open session input
type OpenSessionInput struct {
	Token      string
	BusinessID string
}

// Open stores a session. A JWT token past its exp is refused; a JWT expiring
// before the configured TTL bounds the session.
func (s *SessionService) Open(ctx context.Context, input *OpenSessionInput) (*entity.Session, error) {
	token := strings.TrimSpace(input.Token)
	business := strings.TrimSpace(input.BusinessID)

	var fieldErrs []apperror.FieldError
	if token == "" {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "token", Message: "Token is required"})
	}
	if business == "" {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "business_id", Message: "Business is required"})
	}
	if len(fieldErrs) > 0 {
		return nil, apperror.NewValidationError(fieldErrs)
	}

	now := s.now()
	info, err := utils.InspectToken(token, now)
	if err != nil {
		if errors.Is(err, utils.ErrTokenExpired) {
			return nil, apperror.ErrTokenExpired
		}
		return nil, apperror.NewFieldError("token", err.Error())
	}

	session := &entity.Session{
		Token:      token,
		BusinessID: business,
		CreatedAt:  now,
	}
	if s.ttl > 0 {
		session.ExpiresAt = now.Add(s.ttl)
	}
	if info.JWT && !info.ExpiresAt.IsZero() && (session.ExpiresAt.IsZero() || info.ExpiresAt.Before(session.ExpiresAt)) {
		session.ExpiresAt = info.ExpiresAt
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		s.logger.Error("failed to save session", zap.Error(err))
		return nil, err
	}
	s.logger.Info("session opened",
		zap.String("business_id", business),
		zap.Time("expires_at", session.ExpiresAt),
	)
	return session, nil
}

// Resolve returns the live session of token.
func (s *SessionService) Resolve(ctx context.Context, token string) (*entity.Session, error) {
	if token == "" {
		return nil, apperror.ErrNoSession
	}
	session, err := s.sessions.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.ErrNoSession
	}
	if session.IsExpired(s.now()) {
		_ = s.sessions.Delete(ctx, token)
		return nil, apperror.ErrTokenExpired
	}
	return session, nil
}

// Close removes the session of token.
func (s *SessionService) Close(ctx context.Context, token string) error {
	if err := s.sessions.Delete(ctx, token); err != nil {
		s.logger.Error("failed to delete session", zap.Error(err))
		return err
	}
	return nil
}

// Teardown clears a session the backend rejected. It has the shape of the
// backend client's unauthorized hook.
func (s *SessionService) Teardown(ctx context.Context, token string) {
	if token == "" {
		return
	}
	if err := s.Close(context.WithoutCancel(ctx), token); err != nil {
		return
	}
	s.logger.Info("session cleared after backend rejected it")
}

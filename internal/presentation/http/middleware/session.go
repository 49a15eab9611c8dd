package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/stockdesk/internal/domain/entity"
	"github.com/sangkips/stockdesk/internal/infrastructure/backend"
	"github.com/sangkips/stockdesk/internal/presentation/http/dto/response"
	"github.com/sangkips/stockdesk/internal/presentation/http/handler"
	"github.com/sangkips/stockdesk/pkg/notify"
)

// SessionResolver looks up the cached session of a token
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*entity.Session, error)
}

// tokenOf reads the token header, falling back to "Authorization: Bearer <token>"
func tokenOf(c *gin.Context) string {
	if token := c.GetHeader(backend.TokenHeader); token != "" {
		return token
	}
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// SessionMiddleware resolves the caller's session and attaches the backend
// credentials and a notification collector to the request context.
func SessionMiddleware(sessions SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenOf(c)
		if token == "" {
			response.Unauthorized(c, "Token header is required")
			c.Abort()
			return
		}

		session, err := sessions.Resolve(c.Request.Context(), token)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		ctx := backend.WithCredentials(c.Request.Context(), backend.Credentials{
			Token:      session.Token,
			BusinessID: session.BusinessID,
		})
		ctx = notify.WithNotifier(ctx, &notify.Collector{})
		c.Request = c.Request.WithContext(ctx)
		c.Set(handler.BusinessIDKey, session.BusinessID)

		c.Next()
	}
}

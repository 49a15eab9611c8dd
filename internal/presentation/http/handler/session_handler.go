package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/stockdesk/internal/application/service"
	"github.com/sangkips/stockdesk/internal/infrastructure/backend"
	"github.com/sangkips/stockdesk/internal/presentation/http/dto/request"
	"github.com/sangkips/stockdesk/internal/presentation/http/dto/response"
)

// SessionHandler handles opening and closing cached sessions
type SessionHandler struct {
	sessionService *service.SessionService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionService *service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// Open caches the token and business issued by the login flow
func (h *SessionHandler) Open(c *gin.Context) {
	var req request.OpenSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	session, err := h.sessionService.Open(c.Request.Context(), &service.OpenSessionInput{
		Token:      req.Token,
		BusinessID: req.BusinessID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Session opened", session)
}

// Close removes the session of the token header
func (h *SessionHandler) Close(c *gin.Context) {
	token := c.GetHeader(backend.TokenHeader)
	if token == "" {
		response.Unauthorized(c, "Token header is required")
		return
	}
	if err := h.sessionService.Close(c.Request.Context(), token); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Session closed", nil)
}

package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/stockdesk/internal/application/service"
	"github.com/sangkips/stockdesk/internal/presentation/http/dto/request"
	"github.com/sangkips/stockdesk/internal/presentation/http/dto/response"
)

// DamageHandler handles damaged-stock HTTP requests
type DamageHandler struct {
	damageService *service.DamageService
}

// NewDamageHandler creates a new damage handler
func NewDamageHandler(damageService *service.DamageService) *DamageHandler {
	return &DamageHandler{damageService: damageService}
}

// List handles listing damage entries
func (h *DamageHandler) List(c *gin.Context) {
	in, ok := bindList(c, true)
	if !ok {
		return
	}
	result, err := h.damageService.ListDamages(c.Request.Context(), in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Damages retrieved successfully", result)
}

// Get handles getting a damage entry by ID
func (h *DamageHandler) Get(c *gin.Context) {
	damage, err := h.damageService.GetDamage(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Damage retrieved successfully", damage)
}

func (h *DamageHandler) Draft(c *gin.Context) {
	var req request.DraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	draft, err := h.damageService.Draft(c.Request.Context(), toDraftLines(req.Lines))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Draft computed", draft)
}

// Create handles recording damaged stock
func (h *DamageHandler) Create(c *gin.Context) {
	var req request.CreateDamageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	damage, err := h.damageService.CreateDamage(c.Request.Context(), &service.CreateDamageInput{
		Note:  req.Note,
		Lines: toDraftLines(req.Lines),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Damage recorded successfully", damage)
}

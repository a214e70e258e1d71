package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainagg "github.com/yungbote/skillgraph-backend/internal/domain/aggregates"
	"github.com/yungbote/skillgraph-backend/internal/http/response"
	"github.com/yungbote/skillgraph-backend/internal/services"
)

type ApplicationHandler struct {
	Apps services.ApplicationService
}

func NewApplicationHandler(apps services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{Apps: apps}
}

// POST /api/openings/:id/apply
func (h *ApplicationHandler) Apply(c *gin.Context) {
	view, err := h.Apps.Apply(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"application": view})
}

// DELETE /api/openings/:id/application
func (h *ApplicationHandler) Withdraw(c *gin.Context) {
	appID, err := h.Apps.Withdraw(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"application_id": appID, "message": "Application withdrawn"})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// PUT /api/applications/:id/status
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondDomainError(c, domainagg.NewError(domainagg.CodeValidation, "application.update_status", "invalid request body", err))
		return
	}
	view, err := h.Apps.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"application": view})
}

// GET /api/applications
func (h *ApplicationHandler) List(c *gin.Context) {
	out, err := h.Apps.ListMine(c.Request.Context())
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"applications": out})
}

package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/skillgraph-backend/internal/http/response"
	"github.com/yungbote/skillgraph-backend/internal/services"
)

type ShortlistHandler struct {
	Shortlist services.ShortlistService
}

func NewShortlistHandler(svc services.ShortlistService) *ShortlistHandler {
	return &ShortlistHandler{Shortlist: svc}
}

// POST /api/shortlist/:student_id
func (h *ShortlistHandler) Add(c *gin.Context) {
	created, err := h.Shortlist.Shortlist(c.Request.Context(), c.Param("student_id"))
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"student_id": c.Param("student_id"), "created": created})
}

// GET /api/shortlist
func (h *ShortlistHandler) List(c *gin.Context) {
	out, err := h.Shortlist.List(c.Request.Context())
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"students": out})
}

package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/skillgraph-backend/internal/domain"
	domainagg "github.com/yungbote/skillgraph-backend/internal/domain/aggregates"
	"github.com/yungbote/skillgraph-backend/internal/http/response"
	"github.com/yungbote/skillgraph-backend/internal/services"
)

type ProfileHandler struct {
	Profile services.ProfileService
}

func NewProfileHandler(profile services.ProfileService) *ProfileHandler {
	return &ProfileHandler{Profile: profile}
}

type replaceConceptsRequest struct {
	Names []string `json:"names"`
}

// PUT /api/profile/concepts/:edge_type
func (h *ProfileHandler) ReplaceConcepts(c *gin.Context) {
	const op = "profile.replace_concepts"
	edge, err := domain.ParseEdgeType(c.Param("edge_type"))
	if err != nil {
		response.RespondDomainError(c, domainagg.NewError(domainagg.CodeValidation, op, err.Error(), err))
		return
	}
	var req replaceConceptsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondDomainError(c, domainagg.NewError(domainagg.CodeValidation, op, "invalid request body", err))
		return
	}
	names, err := h.Profile.ReplaceConcepts(c.Request.Context(), edge, req.Names)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"edge_type": edge, "names": names})
}

package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/skillgraph-backend/internal/domain"
	"github.com/yungbote/skillgraph-backend/internal/http/response"
	"github.com/yungbote/skillgraph-backend/internal/services"
)

type RecommendationHandler struct {
	Recs         services.RecommendationService
	DefaultLimit int
}

func NewRecommendationHandler(recs services.RecommendationService, defaultLimit int) *RecommendationHandler {
	if defaultLimit <= 0 {
		defaultLimit = 10
	}
	return &RecommendationHandler{Recs: recs, DefaultLimit: defaultLimit}
}

func (h *RecommendationHandler) respond(c *gin.Context, fn func(limit int) ([]domain.Recommendation, error)) {
	limit, err := queryInt(c, "limit", h.DefaultLimit)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	recs, err := fn(limit)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"results": recs})
}

// GET /api/recommendations/openings
func (h *RecommendationHandler) OpeningsForStudent(c *gin.Context) {
	h.respond(c, func(limit int) ([]domain.Recommendation, error) {
		return h.Recs.OpeningsForStudent(c.Request.Context(), callerID(c), limit)
	})
}

// GET /api/recommendations/mentors
func (h *RecommendationHandler) MentorsForStudent(c *gin.Context) {
	h.respond(c, func(limit int) ([]domain.Recommendation, error) {
		return h.Recs.MentorsForStudent(c.Request.Context(), callerID(c), limit)
	})
}

// GET /api/recommendations/students
func (h *RecommendationHandler) StudentsForFaculty(c *gin.Context) {
	h.respond(c, func(limit int) ([]domain.Recommendation, error) {
		return h.Recs.StudentsForFaculty(c.Request.Context(), callerID(c), limit)
	})
}

// GET /api/openings/:id/recommended-students
func (h *RecommendationHandler) StudentsForOpening(c *gin.Context) {
	h.respond(c, func(limit int) ([]domain.Recommendation, error) {
		return h.Recs.StudentsForOpening(c.Request.Context(), callerID(c), c.Param("id"), limit)
	})
}

// GET /api/openings/:id/match
func (h *RecommendationHandler) OpeningMatch(c *gin.Context) {
	m, err := h.Recs.OpeningMatch(c.Request.Context(), callerID(c), c.Param("id"))
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, m)
}

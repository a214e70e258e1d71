package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/skillgraph-backend/internal/http/response"
	"github.com/yungbote/skillgraph-backend/internal/services"
)

type SearchHandler struct {
	Semantic services.SemanticService
}

func NewSearchHandler(semantic services.SemanticService) *SearchHandler {
	return &SearchHandler{Semantic: semantic}
}

// GET /api/search/students?q=&department=&batch=&k=
func (h *SearchHandler) Students(c *gin.Context) {
	k, err := queryInt(c, "k", 0)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	batch, err := queryIntPtr(c, "batch")
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	out, err := h.Semantic.SearchStudents(c.Request.Context(), c.Query("q"), services.SearchFilter{
		Department: c.Query("department"),
		Batch:      batch,
	}, k)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"results": out})
}

// GET /api/search/faculty?q=&department=&k=
func (h *SearchHandler) Faculty(c *gin.Context) {
	k, err := queryInt(c, "k", 0)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	out, err := h.Semantic.SearchFaculty(c.Request.Context(), c.Query("q"), services.SearchFilter{
		Department: c.Query("department"),
	}, k)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"results": out})
}

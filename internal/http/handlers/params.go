package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	domainagg "github.com/yungbote/skillgraph-backend/internal/domain/aggregates"
	"github.com/yungbote/skillgraph-backend/internal/platform/ctxutil"
)

// queryInt reads a non-negative integer query parameter, falling back to def when absent.
func queryInt(c *gin.Context, name string, def int) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, domainagg.NewError(domainagg.CodeValidation, "http.query", name+" must be a non-negative integer", err)
	}
	return n, nil
}

func queryIntPtr(c *gin.Context, name string) (*int, error) {
	if strings.TrimSpace(c.Query(name)) == "" {
		return nil, nil
	}
	n, err := queryInt(c, name, 0)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func callerID(c *gin.Context) string {
	if id := ctxutil.GetIdentity(c.Request.Context()); id != nil {
		return id.UserID
	}
	return ""
}

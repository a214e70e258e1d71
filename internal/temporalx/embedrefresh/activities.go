package embedrefresh

import (
	"context"
	"fmt"
	"strings"

	"go.temporal.io/sdk/temporal"

	"github.com/yungbote/skillgraph-backend/internal/data/graph"
	domainagg "github.com/yungbote/skillgraph-backend/internal/domain/aggregates"
	"github.com/yungbote/skillgraph-backend/internal/platform/logger"
)

const ErrTypeNotFound = "not_found"

// Embedder degrades to an empty vector instead of failing.
type Embedder interface {
	Embed(ctx context.Context, text string) []float32
}

type Activities struct {
	Log      *logger.Logger
	People   graph.PeopleStore
	Embedder Embedder
}

func (a *Activities) Refresh(ctx context.Context, in RefreshInput) (RefreshResult, error) {
	res := RefreshResult{UserID: strings.TrimSpace(in.UserID)}
	if a == nil || a.People == nil || a.Embedder == nil {
		return res, fmt.Errorf("embedrefresh: activity not configured")
	}

	p, err := a.People.GetPerson(ctx, res.UserID)
	if err != nil {
		if domainagg.IsCode(err, domainagg.CodeNotFound) {
			return res, temporal.NewNonRetryableApplicationError("person not found", ErrTypeNotFound, err)
		}
		return res, err
	}

	vec := a.Embedder.Embed(ctx, p.ProfileText())
	if len(vec) == 0 {
		res.Skipped = true
		if a.Log != nil {
			a.Log.Warn("empty embedding; keeping stored vector", "user_id", res.UserID)
		}
		return res, nil
	}
	if err := a.People.SetEmbedding(ctx, res.UserID, vec); err != nil {
		return res, err
	}
	res.Dimensions = len(vec)
	return res, nil
}

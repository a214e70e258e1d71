package mcp

import (
	"context"
	"fmt"
	"net/http"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/yungbote/skillgraph-backend/internal/platform/logger"
	"github.com/yungbote/skillgraph-backend/internal/services"
)

const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// New builds the tool server over the recommendation and search services.
func New(log *logger.Logger, recs services.RecommendationService, semantic services.SemanticService, version string) *sdk.Server {
	t := &Tools{Log: log.With("component", "mcp"), Recs: recs, Semantic: semantic}

	srv := sdk.NewServer(&sdk.Implementation{
		Name:    "skillgraph",
		Version: version,
	}, nil)

	// Structural recommendations
	sdk.AddTool(srv, &sdk.Tool{
		Name:        "recommend_openings",
		Description: "Rank active openings for a student by skill overlap with recency weighting; excludes openings already applied to",
	}, t.RecommendOpenings)

	sdk.AddTool(srv, &sdk.Tool{
		Name:        "recommend_mentors",
		Description: "Rank faculty mentors for a student by shared research interests",
	}, t.RecommendMentors)

	sdk.AddTool(srv, &sdk.Tool{
		Name:        "recommend_students",
		Description: "Rank students for a faculty member by overlap between the faculty's interests and student skills",
	}, t.RecommendStudents)

	sdk.AddTool(srv, &sdk.Tool{
		Name:        "recommend_students_for_opening",
		Description: "Rank eligible students for an opening owned by the given faculty member",
	}, t.RecommendStudentsForOpening)

	// Semantic search
	sdk.AddTool(srv, &sdk.Tool{
		Name:        "search_people",
		Description: "Free-text similarity search over student or faculty profiles, with optional department and batch filters",
	}, t.SearchPeople)

	sdk.AddTool(srv, &sdk.Tool{
		Name:        "score_overlap",
		Description: "Score a possessed concept set against a required set (0-100) and list matched and missing concepts",
	}, t.ScoreOverlap)

	return srv
}

// Serve runs srv on the named transport until ctx is cancelled.
func Serve(ctx context.Context, log *logger.Logger, srv *sdk.Server, transport, addr string) error {
	switch transport {
	case "", TransportStdio:
		log.Info("MCP server starting", "transport", TransportStdio)
		return srv.Run(ctx, &sdk.StdioTransport{})
	case TransportHTTP:
		handler := sdk.NewStreamableHTTPHandler(func(*http.Request) *sdk.Server {
			return srv
		}, nil)
		hs := &http.Server{Addr: addr, Handler: handler}
		go func() {
			<-ctx.Done()
			_ = hs.Close()
		}()
		log.Info("MCP server listening", "transport", TransportHTTP, "addr", addr)
		if err := hs.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	default:
		return fmt.Errorf("unknown transport %q (use stdio or http)", transport)
	}
}

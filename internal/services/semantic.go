package services

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	dataagg "github.com/yungbote/skillgraph-backend/internal/data/aggregates"
	"github.com/yungbote/skillgraph-backend/internal/data/graph"
	"github.com/yungbote/skillgraph-backend/internal/domain"
	"github.com/yungbote/skillgraph-backend/internal/matching"
	"github.com/yungbote/skillgraph-backend/internal/observability"
	"github.com/yungbote/skillgraph-backend/internal/platform/logger"
	"github.com/yungbote/skillgraph-backend/internal/platform/openai"
)

// SearchFilter narrows a semantic result set after ranking. Zero values match everything.
type SearchFilter struct {
	Department string
	Batch      *int
}

type SemanticService interface {
	// Embed never fails: an unavailable model yields an empty vector.
	Embed(ctx context.Context, text string) []float32
	SearchStudents(ctx context.Context, query string, filter SearchFilter, k int) ([]domain.SemanticMatch, error)
	SearchFaculty(ctx context.Context, query string, filter SearchFilter, k int) ([]domain.SemanticMatch, error)
}

type semanticService struct {
	log      *logger.Logger
	embedder openai.Client
	people   graph.PeopleStore
	topK     int
	metrics  *observability.Metrics
}

func NewSemanticService(log *logger.Logger, embedder openai.Client, people graph.PeopleStore, cfg matching.Config) SemanticService {
	return &semanticService{
		log:      log.With("service", "SemanticService"),
		embedder: embedder,
		people:   people,
		topK:     cfg.Normalize().SemanticTopK,
		metrics:  observability.Current(),
	}
}

func (s *semanticService) Embed(ctx context.Context, text string) []float32 {
	text = strings.TrimSpace(text)
	if text == "" {
		return []float32{}
	}
	if s.embedder == nil {
		s.metrics.IncEmbedFallback("unconfigured")
		s.log.Warn("embedding skipped; no embedder configured")
		return []float32{}
	}
	vecs, err := s.embedder.Embed(ctx, []string{text})
	if err != nil || len(vecs) == 0 || len(vecs[0]) == 0 {
		s.metrics.IncEmbedFallback("error")
		s.log.Warn("embedding failed; degrading to empty vector", "error", err)
		return []float32{}
	}
	return vecs[0]
}

func (s *semanticService) SearchStudents(ctx context.Context, query string, filter SearchFilter, k int) ([]domain.SemanticMatch, error) {
	return s.search(ctx, domain.RoleStudent, query, filter, k)
}

func (s *semanticService) SearchFaculty(ctx context.Context, query string, filter SearchFilter, k int) ([]domain.SemanticMatch, error) {
	// Batch does not apply to faculty.
	filter.Batch = nil
	return s.search(ctx, domain.RoleFaculty, query, filter, k)
}

func (s *semanticService) search(ctx context.Context, role domain.Role, query string, filter SearchFilter, k int) ([]domain.SemanticMatch, error) {
	op := "semantic.search_" + role.String()
	start := time.Now()
	ctx, span := observability.StartSpan(ctx, op, attribute.String("search.role", role.String()))
	defer span.End()

	if k <= 0 {
		k = s.topK
	}

	vec := s.Embed(ctx, query)
	if len(vec) == 0 {
		s.metrics.ObserveRecommendation("search_"+role.String(), "degraded", time.Since(start), 0)
		return []domain.SemanticMatch{}, nil
	}

	pool, err := s.people.ListEmbedded(ctx, role)
	if err != nil {
		err = dataagg.MapError(op, err)
		observability.RecordError(span, err)
		return nil, err
	}
	byID := make(map[string]*domain.Person, len(pool))
	cands := make([]matching.Vectored, 0, len(pool))
	for _, p := range pool {
		if p == nil {
			continue
		}
		byID[p.UserID] = p
		cands = append(cands, matching.Vectored{ID: p.UserID, Vector: p.Embedding})
	}

	out := []domain.SemanticMatch{}
	for _, hit := range matching.TopK(vec, cands, k) {
		p := byID[hit.ID]
		if !filter.matches(p) {
			continue
		}
		out = append(out, domain.SemanticMatch{
			EntityID:      p.UserID,
			DisplayFields: p.DisplayFields(),
			Similarity:    matching.RoundPercent(hit.Similarity),
		})
	}
	span.SetAttributes(attribute.Int("search.results", len(out)))
	s.metrics.ObserveRecommendation("search_"+role.String(), "success", time.Since(start), len(out))
	return out, nil
}

func (f SearchFilter) matches(p *domain.Person) bool {
	if p == nil {
		return false
	}
	if dept := strings.TrimSpace(f.Department); dept != "" && !strings.EqualFold(dept, strings.TrimSpace(p.Department)) {
		return false
	}
	if f.Batch != nil && (p.Batch == nil || *p.Batch != *f.Batch) {
		return false
	}
	return true
}

package services

import (
	"context"
	"strings"

	dataagg "github.com/yungbote/skillgraph-backend/internal/data/aggregates"
	"github.com/yungbote/skillgraph-backend/internal/data/graph"
	"github.com/yungbote/skillgraph-backend/internal/domain"
	domainagg "github.com/yungbote/skillgraph-backend/internal/domain/aggregates"
	"github.com/yungbote/skillgraph-backend/internal/platform/logger"
)

// EmbeddingRefresher regenerates a person's profile embedding.
type EmbeddingRefresher interface {
	RefreshEmbedding(ctx context.Context, userID string) error
}

type ProfileService interface {
	// ReplaceConcepts swaps the caller's edges of one type for names and
	// schedules an embedding refresh. Returns the normalized names written.
	ReplaceConcepts(ctx context.Context, edge domain.EdgeType, names []string) ([]string, error)
}

// Edges restricted to one role; INTERESTED_IN is open to both.
var profileEdgeOwner = map[domain.EdgeType]domain.Role{
	domain.EdgeHasSkill: domain.RoleStudent,
	domain.EdgeExpertIn: domain.RoleFaculty,
}

type profileService struct {
	log       *logger.Logger
	concepts  graph.ConceptStore
	refresher EmbeddingRefresher
}

func NewProfileService(log *logger.Logger, concepts graph.ConceptStore, refresher EmbeddingRefresher) ProfileService {
	return &profileService{
		log:       log.With("service", "ProfileService"),
		concepts:  concepts,
		refresher: refresher,
	}
}

func (s *profileService) ReplaceConcepts(ctx context.Context, edge domain.EdgeType, names []string) ([]string, error) {
	const op = "profile.replace_concepts"
	id, role, err := caller(ctx, op, "")
	if err != nil {
		return nil, err
	}
	if !edge.AllowedFor(domain.EntityPerson) {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "edge type not allowed on a profile", nil)
	}
	if want, ok := profileEdgeOwner[edge]; ok {
		if err := dataagg.RequireRole(op, role, want); err != nil {
			return nil, err
		}
	}

	written, err := s.concepts.ReplaceConceptEdges(ctx, domain.PersonRef(id.UserID), edge, names)
	if err != nil {
		return nil, dataagg.MapError(op, err)
	}
	if s.refresher != nil {
		if err := s.refresher.RefreshEmbedding(ctx, id.UserID); err != nil {
			// The concept write stands; a stale embedding only affects search.
			s.log.Warn("embedding refresh not scheduled", "user_id", id.UserID, "error", err)
		}
	}
	return written, nil
}

// InlineEmbeddingRefresher embeds and stores synchronously. An empty vector
// leaves the stored embedding untouched.
type InlineEmbeddingRefresher struct {
	Log      *logger.Logger
	People   graph.PeopleStore
	Semantic SemanticService
}

func (r *InlineEmbeddingRefresher) RefreshEmbedding(ctx context.Context, userID string) error {
	p, err := r.People.GetPerson(ctx, strings.TrimSpace(userID))
	if err != nil {
		return err
	}
	vec := r.Semantic.Embed(ctx, p.ProfileText())
	if len(vec) == 0 {
		if r.Log != nil {
			r.Log.Debug("empty embedding; keeping previous vector", "user_id", p.UserID)
		}
		return nil
	}
	return r.People.SetEmbedding(ctx, p.UserID, vec)
}

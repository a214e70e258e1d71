package graph

import (
	"context"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/yungbote/skillgraph-backend/internal/domain"
	domainagg "github.com/yungbote/skillgraph-backend/internal/domain/aggregates"
	"github.com/yungbote/skillgraph-backend/internal/platform/logger"
	"github.com/yungbote/skillgraph-backend/internal/platform/neo4jdb"
)

type OpeningStore interface {
	GetOpening(ctx context.Context, openingID string) (*domain.Opening, error)
	ListActive(ctx context.Context) ([]*domain.Opening, error)
	// AppliedOpeningIDs returns the openings the student holds an application to, in any status.
	AppliedOpeningIDs(ctx context.Context, studentID string) (map[string]struct{}, error)
	// ApplicantIDs returns the students holding an application to the opening.
	ApplicantIDs(ctx context.Context, openingID string) (map[string]struct{}, error)
}

type openingStore struct {
	client *neo4jdb.Client
	log    *logger.Logger
}

func NewOpeningStore(client *neo4jdb.Client, log *logger.Logger) OpeningStore {
	return &openingStore{client: client, log: log.With("store", "OpeningStore")}
}

const openingProjection = `
OPTIONAL MATCH (f:Faculty)-[:POSTED]->(o)
OPTIONAL MATCH (o)-[:REQUIRES]->(c:Concept)
RETURN o AS o, f.user_id AS faculty_id, f.name AS faculty_name, collect(DISTINCT c.name) AS required
`

func (s *openingStore) GetOpening(ctx context.Context, openingID string) (*domain.Opening, error) {
	openingID = strings.TrimSpace(openingID)
	if openingID == "" {
		return nil, domainagg.NewError(domainagg.CodeValidation, "graph.get_opening", "opening_id required", nil)
	}
	out, err := s.client.Read(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return ReadOpening(ctx, tx, openingID)
	})
	if err != nil {
		return nil, err
	}
	o, _ := out.(*domain.Opening)
	if o == nil {
		return nil, domainagg.NotFound("graph.get_opening", "opening not found")
	}
	return o, nil
}

// ReadOpening loads one opening with owner and required concepts inside an existing transaction.
func ReadOpening(ctx context.Context, tx neo4j.ManagedTransaction, openingID string) (*domain.Opening, error) {
	res, err := tx.Run(ctx, `MATCH (o:Opening {id: $opening_id})`+openingProjection, map[string]any{"opening_id": openingID})
	if err != nil {
		return nil, err
	}
	recs, err := res.Collect(ctx)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, nil
	}
	return openingFromRecord(recs[0]), nil
}

// ListActive treats a missing status as Active; postings created before statuses existed carry none.
func (s *openingStore) ListActive(ctx context.Context) ([]*domain.Opening, error) {
	out, err := s.client.Read(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
MATCH (o:Opening)
WHERE o.status IS NULL OR toLower(o.status) = 'active'`+openingProjection+`ORDER BY o.id`, nil)
		if err != nil {
			return nil, err
		}
		recs, err := res.Collect(ctx)
		if err != nil {
			return nil, err
		}
		openings := make([]*domain.Opening, 0, len(recs))
		for _, rec := range recs {
			if o := openingFromRecord(rec); o != nil {
				openings = append(openings, o)
			}
		}
		return openings, nil
	})
	if err != nil {
		return nil, err
	}
	openings, _ := out.([]*domain.Opening)
	return openings, nil
}

func (s *openingStore) AppliedOpeningIDs(ctx context.Context, studentID string) (map[string]struct{}, error) {
	return s.idSet(ctx, `
MATCH (:User {user_id: $id})-[:APPLIED]->(o:Opening)
RETURN DISTINCT o.id AS id
`, studentID)
}

func (s *openingStore) ApplicantIDs(ctx context.Context, openingID string) (map[string]struct{}, error) {
	return s.idSet(ctx, `
MATCH (u:User)-[:APPLIED]->(:Opening {id: $id})
RETURN DISTINCT u.user_id AS id
`, openingID)
}

func (s *openingStore) idSet(ctx context.Context, cypher, id string) (map[string]struct{}, error) {
	out, err := s.client.Read(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, cypher, map[string]any{"id": id})
		if err != nil {
			return nil, err
		}
		recs, err := res.Collect(ctx)
		if err != nil {
			return nil, err
		}
		ids := make(map[string]struct{}, len(recs))
		for _, rec := range recs {
			if v := asString(get(rec, "id")); v != "" {
				ids[v] = struct{}{}
			}
		}
		return ids, nil
	})
	if err != nil {
		return nil, err
	}
	ids, _ := out.(map[string]struct{})
	if ids == nil {
		ids = map[string]struct{}{}
	}
	return ids, nil
}

func parseOpeningStatus(raw string) domain.OpeningStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "active", "open":
		return domain.OpeningActive
	default:
		return domain.OpeningClosed
	}
}

func openingFromRecord(rec *neo4j.Record) *domain.Opening {
	node, ok := get(rec, "o").(neo4j.Node)
	if !ok {
		return nil
	}
	props := node.Props
	return &domain.Opening{
		ID:               asString(props["id"]),
		FacultyID:        asString(get(rec, "faculty_id")),
		FacultyName:      asString(get(rec, "faculty_name")),
		Title:            asString(props["title"]),
		Description:      asString(props["description"]),
		RequiredConcepts: asStrings(get(rec, "required")),
		MinCGPA:          asFloatPtr(props["min_cgpa"]),
		TargetYears:      asInts(props["target_years"]),
		Deadline:         asTimePtr(props["deadline"]),
		Status:           parseOpeningStatus(asString(props["status"])),
		CreatedAt:        asTime(props["created_at"]),
	}
}

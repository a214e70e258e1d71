package graph

import (
	"context"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/yungbote/skillgraph-backend/internal/domain"
	domainagg "github.com/yungbote/skillgraph-backend/internal/domain/aggregates"
	"github.com/yungbote/skillgraph-backend/internal/platform/logger"
	"github.com/yungbote/skillgraph-backend/internal/platform/neo4jdb"
)

// ShortlistStore keeps the Faculty -> Student SHORTLISTED edge.
type ShortlistStore interface {
	// Shortlist is idempotent; created reports whether the edge is new.
	Shortlist(ctx context.Context, facultyID, studentID string, at time.Time) (created bool, err error)
	ListShortlisted(ctx context.Context, facultyID string) ([]*domain.Person, error)
}

type shortlistStore struct {
	client *neo4jdb.Client
	log    *logger.Logger
}

func NewShortlistStore(client *neo4jdb.Client, log *logger.Logger) ShortlistStore {
	return &shortlistStore{client: client, log: log.With("store", "ShortlistStore")}
}

func (s *shortlistStore) Shortlist(ctx context.Context, facultyID, studentID string, at time.Time) (bool, error) {
	out, err := s.client.Write(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
MATCH (f:Faculty {user_id: $faculty_id})
MATCH (s:Student {user_id: $student_id})
MERGE (f)-[r:SHORTLISTED]->(s)
ON CREATE SET r.created_at = $at
RETURN r.created_at = $at AS created
`, map[string]any{"faculty_id": facultyID, "student_id": studentID, "at": timeParam(at)})
		if err != nil {
			return nil, err
		}
		recs, err := res.Collect(ctx)
		if err != nil {
			return nil, err
		}
		if len(recs) == 0 {
			return nil, domainagg.NotFound("graph.shortlist", "student not found")
		}
		created, _ := get(recs[0], "created").(bool)
		return created, nil
	})
	if err != nil {
		return false, err
	}
	created, _ := out.(bool)
	return created, nil
}

func (s *shortlistStore) ListShortlisted(ctx context.Context, facultyID string) ([]*domain.Person, error) {
	out, err := s.client.Read(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
MATCH (:Faculty {user_id: $faculty_id})-[:SHORTLISTED]->(u:Student)`+personProjection+`ORDER BY u.name, u.user_id`, map[string]any{"faculty_id": facultyID})
		if err != nil {
			return nil, err
		}
		recs, err := res.Collect(ctx)
		if err != nil {
			return nil, err
		}
		people := make([]*domain.Person, 0, len(recs))
		for _, rec := range recs {
			if p := personFromRecord(rec); p != nil {
				people = append(people, p)
			}
		}
		return people, nil
	})
	if err != nil {
		return nil, err
	}
	people, _ := out.([]*domain.Person)
	return people, nil
}

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

// ApplicationStore serves read-only application listings. Writes go through the application aggregate.
type ApplicationStore interface {
	ListForStudent(ctx context.Context, studentID string) ([]domain.ApplicationView, error)
	ListForFaculty(ctx context.Context, facultyID string) ([]domain.ApplicationView, error)
	GetView(ctx context.Context, applicationID string) (*domain.ApplicationView, error)
}

type applicationStore struct {
	client *neo4jdb.Client
	log    *logger.Logger
}

func NewApplicationStore(client *neo4jdb.Client, log *logger.Logger) ApplicationStore {
	return &applicationStore{client: client, log: log.With("store", "ApplicationStore")}
}

const applicationProjection = `
RETURN a.application_id AS application_id,
       a.status AS status,
       a.applied_at AS applied_at,
       a.updated_at AS updated_at,
       o.id AS opening_id,
       o.title AS opening_title,
       s.user_id AS student_id,
       s.name AS student_name,
       f.user_id AS faculty_id,
       f.name AS faculty_name
`

func (s *applicationStore) ListForStudent(ctx context.Context, studentID string) ([]domain.ApplicationView, error) {
	return s.list(ctx, `
MATCH (s:User {user_id: $id})-[a:APPLIED]->(o:Opening)
OPTIONAL MATCH (f:Faculty)-[:POSTED]->(o)`, studentID)
}

func (s *applicationStore) ListForFaculty(ctx context.Context, facultyID string) ([]domain.ApplicationView, error) {
	return s.list(ctx, `
MATCH (f:User {user_id: $id})-[:POSTED]->(o:Opening)<-[a:APPLIED]-(s:User)`, facultyID)
}

func (s *applicationStore) list(ctx context.Context, match, id string) ([]domain.ApplicationView, error) {
	out, err := s.client.Read(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, match+applicationProjection+`ORDER BY applied_at DESC, application_id`, map[string]any{"id": id})
		if err != nil {
			return nil, err
		}
		recs, err := res.Collect(ctx)
		if err != nil {
			return nil, err
		}
		views := make([]domain.ApplicationView, 0, len(recs))
		for _, rec := range recs {
			views = append(views, ApplicationViewFromRecord(rec))
		}
		return views, nil
	})
	if err != nil {
		return nil, err
	}
	views, _ := out.([]domain.ApplicationView)
	if views == nil {
		views = []domain.ApplicationView{}
	}
	return views, nil
}

func (s *applicationStore) GetView(ctx context.Context, applicationID string) (*domain.ApplicationView, error) {
	out, err := s.client.Read(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return ReadApplicationView(ctx, tx, applicationID)
	})
	if err != nil {
		return nil, err
	}
	v, _ := out.(*domain.ApplicationView)
	if v == nil {
		return nil, domainagg.NotFound("graph.get_application", "application not found")
	}
	return v, nil
}

// ReadApplicationView loads one application by id inside an existing transaction. Returns nil when absent.
func ReadApplicationView(ctx context.Context, tx neo4j.ManagedTransaction, applicationID string) (*domain.ApplicationView, error) {
	res, err := tx.Run(ctx, `
MATCH (s:User)-[a:APPLIED {application_id: $application_id}]->(o:Opening)
OPTIONAL MATCH (f:Faculty)-[:POSTED]->(o)`+applicationProjection, map[string]any{"application_id": applicationID})
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
	v := ApplicationViewFromRecord(recs[0])
	return &v, nil
}

// ReadApplicationFor loads the student's application to an opening inside an existing transaction.
// Returns nil when absent.
func ReadApplicationFor(ctx context.Context, tx neo4j.ManagedTransaction, studentID, openingID string) (*domain.ApplicationView, error) {
	res, err := tx.Run(ctx, `
MATCH (s:User {user_id: $student_id})-[a:APPLIED]->(o:Opening {id: $opening_id})
OPTIONAL MATCH (f:Faculty)-[:POSTED]->(o)`+applicationProjection, map[string]any{"student_id": studentID, "opening_id": openingID})
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
	v := ApplicationViewFromRecord(recs[0])
	return &v, nil
}

// LockApplication takes the write lock on an APPLIED edge by id. Reads issued later in the
// same transaction see the last committed status, so a check-then-write cannot interleave
// with another writer. Returns false when the edge does not exist.
func LockApplication(ctx context.Context, tx neo4j.ManagedTransaction, applicationID string) (bool, error) {
	return lockApplied(ctx, tx, `
MATCH (:User)-[a:APPLIED {application_id: $application_id}]->(:Opening)`, map[string]any{"application_id": applicationID})
}

// LockApplicationFor is LockApplication addressed by (student, opening).
func LockApplicationFor(ctx context.Context, tx neo4j.ManagedTransaction, studentID, openingID string) (bool, error) {
	return lockApplied(ctx, tx, `
MATCH (:User {user_id: $student_id})-[a:APPLIED]->(:Opening {id: $opening_id})`, map[string]any{"student_id": studentID, "opening_id": openingID})
}

func lockApplied(ctx context.Context, tx neo4j.ManagedTransaction, match string, params map[string]any) (bool, error) {
	res, err := tx.Run(ctx, match+`
SET a._lock = true
REMOVE a._lock
RETURN count(a) AS n
`, params)
	if err != nil {
		return false, err
	}
	rec, err := res.Single(ctx)
	if err != nil {
		return false, err
	}
	n, _ := get(rec, "n").(int64)
	return n > 0, nil
}

// ApplicationViewFromRecord decodes a row shaped like the application projection.
func ApplicationViewFromRecord(rec *neo4j.Record) domain.ApplicationView {
	return domain.ApplicationView{
		ApplicationID: asString(get(rec, "application_id")),
		Status:        ParseApplicationStatus(asString(get(rec, "status"))),
		OpeningID:     asString(get(rec, "opening_id")),
		OpeningTitle:  asString(get(rec, "opening_title")),
		StudentID:     asString(get(rec, "student_id")),
		StudentName:   asString(get(rec, "student_name")),
		FacultyID:     asString(get(rec, "faculty_id")),
		FacultyName:   asString(get(rec, "faculty_name")),
		AppliedAt:     asTime(get(rec, "applied_at")),
		UpdatedAt:     asTimePtr(get(rec, "updated_at")),
	}
}

// ParseApplicationStatus accepts any casing; unknown values decode as-is so guards reject them.
func ParseApplicationStatus(raw string) domain.ApplicationStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "pending":
		return domain.ApplicationPending
	case "accepted":
		return domain.ApplicationAccepted
	case "rejected":
		return domain.ApplicationRejected
	default:
		return domain.ApplicationStatus(raw)
	}
}

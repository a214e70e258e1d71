package graph

import (
	"context"
	"fmt"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/yungbote/skillgraph-backend/internal/domain"
	domainagg "github.com/yungbote/skillgraph-backend/internal/domain/aggregates"
	"github.com/yungbote/skillgraph-backend/internal/platform/logger"
	"github.com/yungbote/skillgraph-backend/internal/platform/neo4jdb"
)

// PeopleStore reads Person nodes (labels User plus Student or Faculty) with their concept sets.
type PeopleStore interface {
	GetPerson(ctx context.Context, userID string) (*domain.Person, error)
	ListByRole(ctx context.Context, role domain.Role) ([]*domain.Person, error)
	// ListEmbedded returns persons of the role that carry an embedding.
	ListEmbedded(ctx context.Context, role domain.Role) ([]*domain.Person, error)
	SetEmbedding(ctx context.Context, userID string, vec []float32) error
}

type peopleStore struct {
	client *neo4jdb.Client
	log    *logger.Logger
}

func NewPeopleStore(client *neo4jdb.Client, log *logger.Logger) PeopleStore {
	return &peopleStore{client: client, log: log.With("store", "PeopleStore")}
}

// Skills are HAS_SKILL; interests merge INTERESTED_IN and EXPERT_IN.
const personProjection = `
OPTIONAL MATCH (u)-[:HAS_SKILL]->(s:Concept)
WITH u, collect(DISTINCT s.name) AS skills
OPTIONAL MATCH (u)-[:INTERESTED_IN|EXPERT_IN]->(i:Concept)
RETURN u AS u, skills, collect(DISTINCT i.name) AS interests
`

func (s *peopleStore) GetPerson(ctx context.Context, userID string) (*domain.Person, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, domainagg.NewError(domainagg.CodeValidation, "graph.get_person", "user_id required", nil)
	}
	out, err := s.client.Read(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return ReadPerson(ctx, tx, userID)
	})
	if err != nil {
		return nil, err
	}
	p, _ := out.(*domain.Person)
	if p == nil {
		return nil, domainagg.NotFound("graph.get_person", "person not found")
	}
	return p, nil
}

// ReadPerson loads one person inside an existing transaction. Returns nil when absent.
func ReadPerson(ctx context.Context, tx neo4j.ManagedTransaction, userID string) (*domain.Person, error) {
	res, err := tx.Run(ctx, `MATCH (u:User {user_id: $user_id})`+personProjection, map[string]any{"user_id": userID})
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
	return personFromRecord(recs[0]), nil
}

func (s *peopleStore) ListByRole(ctx context.Context, role domain.Role) ([]*domain.Person, error) {
	return s.list(ctx, role, false)
}

func (s *peopleStore) ListEmbedded(ctx context.Context, role domain.Role) ([]*domain.Person, error) {
	return s.list(ctx, role, true)
}

func (s *peopleStore) list(ctx context.Context, role domain.Role, embeddedOnly bool) ([]*domain.Person, error) {
	label, err := roleLabel(role)
	if err != nil {
		return nil, err
	}
	q := `MATCH (u:User) WHERE $label IN labels(u)`
	if embeddedOnly {
		q += ` AND u.embedding IS NOT NULL`
	}
	q += personProjection + `ORDER BY u.user_id`
	out, err := s.client.Read(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, q, map[string]any{"label": label})
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

func (s *peopleStore) SetEmbedding(ctx context.Context, userID string, vec []float32) error {
	if len(vec) == 0 {
		return nil
	}
	out, err := s.client.Write(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
MATCH (u:User {user_id: $user_id})
SET u.embedding = $embedding
RETURN count(u) AS n
`, map[string]any{"user_id": userID, "embedding": vectorParam(vec)})
		if err != nil {
			return nil, err
		}
		rec, err := res.Single(ctx)
		if err != nil {
			return nil, err
		}
		n, _ := get(rec, "n").(int64)
		return n, nil
	})
	if err != nil {
		return err
	}
	if n, _ := out.(int64); n == 0 {
		return domainagg.NotFound("graph.set_embedding", "person not found")
	}
	s.log.Debug("embedding stored", "user_id", userID, "dims", len(vec))
	return nil
}

func roleLabel(role domain.Role) (string, error) {
	switch role {
	case domain.RoleStudent:
		return "Student", nil
	case domain.RoleFaculty:
		return "Faculty", nil
	default:
		return "", domainagg.NewError(domainagg.CodeValidation, "graph.role", fmt.Sprintf("unknown role %q", role), nil)
	}
}

func roleFromLabels(labels []string, props map[string]any) domain.Role {
	for _, l := range labels {
		switch l {
		case "Student":
			return domain.RoleStudent
		case "Faculty":
			return domain.RoleFaculty
		}
	}
	if r, err := domain.ParseRole(asString(props["role"])); err == nil {
		return r
	}
	return ""
}

// hiddenProps never reach display fields.
var hiddenProps = map[string]struct{}{
	"embedding":       {},
	"password":        {},
	"password_hash":   {},
	"hashed_password": {},
}

func personFromRecord(rec *neo4j.Record) *domain.Person {
	node, ok := get(rec, "u").(neo4j.Node)
	if !ok {
		return nil
	}
	props := node.Props
	p := &domain.Person{
		UserID:      asString(props["user_id"]),
		Role:        roleFromLabels(node.Labels, props),
		Name:        asString(props["name"]),
		Department:  asString(props["department"]),
		Batch:       asIntPtr(props["batch"]),
		CGPA:        asFloatPtr(props["cgpa"]),
		Designation: asString(props["designation"]),
		Bio:         asString(props["bio"]),
		Skills:      asStrings(get(rec, "skills")),
		Interests:   asStrings(get(rec, "interests")),
		Embedding:   asVector(props["embedding"]),
		Display:     make(map[string]any, len(props)),
	}
	for k, v := range props {
		if _, hidden := hiddenProps[k]; hidden {
			continue
		}
		p.Display[k] = v
	}
	return p
}

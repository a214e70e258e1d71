package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/yungbote/skillgraph-backend/internal/domain"
	domainagg "github.com/yungbote/skillgraph-backend/internal/domain/aggregates"
	"github.com/yungbote/skillgraph-backend/internal/platform/logger"
	"github.com/yungbote/skillgraph-backend/internal/platform/neo4jdb"
)

// ConceptStore reads and replaces typed concept edges. Concept ids are normalized names.
type ConceptStore interface {
	// ConceptIDsFor returns the concepts reached over the given edge types, or over
	// every type the entity kind allows when none are given.
	ConceptIDsFor(ctx context.Context, ref domain.EntityRef, edges ...domain.EdgeType) ([]string, error)
	MergeConcept(ctx context.Context, name string) (string, error)
	// ReplaceConceptEdges drops every edge of the type and recreates one per name, in one transaction.
	ReplaceConceptEdges(ctx context.Context, ref domain.EntityRef, edge domain.EdgeType, names []string) ([]string, error)
}

type conceptStore struct {
	client *neo4jdb.Client
	log    *logger.Logger
}

func NewConceptStore(client *neo4jdb.Client, log *logger.Logger) ConceptStore {
	return &conceptStore{client: client, log: log.With("store", "ConceptStore")}
}

func entityMatch(ref domain.EntityRef) (string, error) {
	switch ref.Kind {
	case domain.EntityPerson:
		return `MATCH (n:User {user_id: $id})`, nil
	case domain.EntityOpening:
		return `MATCH (n:Opening {id: $id})`, nil
	default:
		return "", domainagg.NewError(domainagg.CodeValidation, "graph.concepts", fmt.Sprintf("unknown entity kind %q", ref.Kind), nil)
	}
}

func edgesFor(kind domain.EntityKind, edges []domain.EdgeType) ([]string, error) {
	if len(edges) == 0 {
		edges = []domain.EdgeType{domain.EdgeHasSkill, domain.EdgeInterestedIn, domain.EdgeExpertIn, domain.EdgeRequires}
		out := make([]string, 0, len(edges))
		for _, e := range edges {
			if e.AllowedFor(kind) {
				out = append(out, string(e))
			}
		}
		return out, nil
	}
	out := make([]string, 0, len(edges))
	for _, e := range edges {
		if !e.AllowedFor(kind) {
			return nil, domainagg.NewError(domainagg.CodeValidation, "graph.concepts", fmt.Sprintf("edge %s not allowed on %s", e, kind), nil)
		}
		out = append(out, string(e))
	}
	return out, nil
}

func (s *conceptStore) ConceptIDsFor(ctx context.Context, ref domain.EntityRef, edges ...domain.EdgeType) ([]string, error) {
	match, err := entityMatch(ref)
	if err != nil {
		return nil, err
	}
	types, err := edgesFor(ref.Kind, edges)
	if err != nil {
		return nil, err
	}
	out, err := s.client.Read(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, match+`
MATCH (n)-[r]->(c:Concept)
WHERE type(r) IN $types
RETURN DISTINCT c.name AS name
ORDER BY name
`, map[string]any{"id": ref.ID, "types": types})
		if err != nil {
			return nil, err
		}
		recs, err := res.Collect(ctx)
		if err != nil {
			return nil, err
		}
		names := make([]string, 0, len(recs))
		for _, rec := range recs {
			if n := asString(get(rec, "name")); n != "" {
				names = append(names, n)
			}
		}
		return names, nil
	})
	if err != nil {
		return nil, err
	}
	names, _ := out.([]string)
	if names == nil {
		names = []string{}
	}
	return names, nil
}

func (s *conceptStore) MergeConcept(ctx context.Context, name string) (string, error) {
	id := domain.NormalizeConceptName(name)
	if id == "" {
		return "", domainagg.NewError(domainagg.CodeValidation, "graph.merge_concept", "concept name is empty", nil)
	}
	_, err := s.client.Write(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `MERGE (:Concept {name: $name})`, map[string]any{"name": id})
		if err != nil {
			return nil, err
		}
		_, err = res.Consume(ctx)
		return nil, err
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *conceptStore) ReplaceConceptEdges(ctx context.Context, ref domain.EntityRef, edge domain.EdgeType, names []string) ([]string, error) {
	match, err := entityMatch(ref)
	if err != nil {
		return nil, err
	}
	if !edge.AllowedFor(ref.Kind) {
		return nil, domainagg.NewError(domainagg.CodeValidation, "graph.replace_concepts", fmt.Sprintf("edge %s not allowed on %s", edge, ref.Kind), nil)
	}
	normalized := domain.NormalizeConceptNames(names)
	params := map[string]any{"id": ref.ID, "type": string(edge), "names": normalized}

	_, err = s.client.Write(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, match+` RETURN count(n) AS n`, params)
		if err != nil {
			return nil, err
		}
		rec, err := res.Single(ctx)
		if err != nil {
			return nil, err
		}
		if n, _ := get(rec, "n").(int64); n == 0 {
			return nil, domainagg.NotFound("graph.replace_concepts", fmt.Sprintf("%s not found", ref.Kind))
		}

		if res, err = tx.Run(ctx, match+`
MATCH (n)-[r]->(:Concept)
WHERE type(r) = $type
DELETE r
`, params); err != nil {
			return nil, err
		} else if _, err := res.Consume(ctx); err != nil {
			return nil, err
		}

		if len(normalized) == 0 {
			return nil, nil
		}
		// Relationship types cannot be parameters; edge was checked against the closed enum above.
		res, err = tx.Run(ctx, match+`
UNWIND $names AS name
MERGE (c:Concept {name: name})
MERGE (n)-[:`+string(edge)+`]->(c)
`, params)
		if err != nil {
			return nil, err
		}
		_, err = res.Consume(ctx)
		return nil, err
	})
	if err != nil {
		return nil, err
	}
	s.log.Debug("concept edges replaced", "kind", ref.Kind, "edge", edge, "count", len(normalized))
	return normalized, nil
}

package graph

import (
	"context"
	"errors"
	"fmt"

	"github.com/yungbote/skillgraph-backend/internal/platform/logger"
	"github.com/yungbote/skillgraph-backend/internal/platform/neo4jdb"
)

const DefaultEmbeddingDimensions = 384

func schemaStatements(dims int) []string {
	if dims <= 0 {
		dims = DefaultEmbeddingDimensions
	}
	vector := func(name, label string) string {
		return fmt.Sprintf("CREATE VECTOR INDEX %s IF NOT EXISTS FOR (n:%s) ON (n.embedding) "+
			"OPTIONS {indexConfig: {`vector.dimensions`: %d, `vector.similarity_function`: 'cosine'}}", name, label, dims)
	}
	return []string{
		`CREATE CONSTRAINT person_user_id_unique IF NOT EXISTS FOR (u:User) REQUIRE u.user_id IS UNIQUE`,
		`CREATE CONSTRAINT concept_name_unique IF NOT EXISTS FOR (c:Concept) REQUIRE c.name IS UNIQUE`,
		`CREATE CONSTRAINT opening_id_unique IF NOT EXISTS FOR (o:Opening) REQUIRE o.id IS UNIQUE`,
		`CREATE INDEX applied_application_id IF NOT EXISTS FOR ()-[a:APPLIED]-() ON (a.application_id)`,
		vector("student_profile_embedding", "Student"),
		vector("faculty_profile_embedding", "Faculty"),
	}
}

// EnsureSchema applies constraints and indexes one statement at a time. A failing
// statement is logged and the rest still run; the joined failures are returned.
func EnsureSchema(ctx context.Context, client *neo4jdb.Client, dims int, log *logger.Logger) error {
	if client == nil || client.Driver == nil {
		return fmt.Errorf("graph: neo4j client not configured")
	}
	session := client.WriteSession(ctx)
	defer session.Close(ctx)

	var errs []error
	for _, q := range schemaStatements(dims) {
		res, err := session.Run(ctx, q, nil)
		if err == nil {
			_, err = res.Consume(ctx)
		}
		if err != nil {
			if log != nil {
				log.Warn("neo4j schema statement failed (continuing)", "error", err)
			}
			errs = append(errs, err)
		}
	}
	if log != nil {
		log.Info("neo4j schema ensured", "statements", len(schemaStatements(dims)), "failed", len(errs))
	}
	return errors.Join(errs...)
}

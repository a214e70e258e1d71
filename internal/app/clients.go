package app

import (
	"fmt"

	temporalsdkclient "go.temporal.io/sdk/client"

	"github.com/yungbote/skillgraph-backend/internal/platform/envutil"
	"github.com/yungbote/skillgraph-backend/internal/platform/logger"
	"github.com/yungbote/skillgraph-backend/internal/platform/neo4jdb"
	"github.com/yungbote/skillgraph-backend/internal/platform/openai"
	"github.com/yungbote/skillgraph-backend/internal/temporalx"
)

type Clients struct {
	Graph    *neo4jdb.Client
	Embedder openai.Client
	Temporal temporalsdkclient.Client
}

func wireClients(log *logger.Logger) (Clients, error) {
	log.Info("Wiring clients...")

	graphClient, err := neo4jdb.NewFromEnv(log)
	if err != nil {
		return Clients{}, fmt.Errorf("init neo4j: %w", err)
	}
	if graphClient == nil {
		return Clients{}, fmt.Errorf("NEO4J_URI is required")
	}

	embedder, err := openai.NewClient(log)
	if err != nil {
		return Clients{}, fmt.Errorf("init embeddings client: %w", err)
	}

	var tc temporalsdkclient.Client
	if !envutil.Bool("EMBED_REFRESH_INLINE", false) {
		tc, err = temporalx.NewClient(log)
		if err != nil {
			log.Warn("Temporal client unavailable; embedding refresh runs inline", "error", err)
			tc = nil
		}
	}

	return Clients{Graph: graphClient, Embedder: embedder, Temporal: tc}, nil
}

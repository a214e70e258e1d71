package aggregates

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	domainagg "github.com/yungbote/skillgraph-backend/internal/domain/aggregates"
	"github.com/yungbote/skillgraph-backend/internal/platform/neo4jdb"
)

// TxContext carries the request context and the open graph transaction into aggregate bodies.
type TxContext struct {
	Ctx context.Context
	Tx  neo4j.ManagedTransaction
}

// TxRunner provides a shared transaction boundary primitive for aggregate writes.
type TxRunner interface {
	InTx(ctx context.Context, fn func(tc TxContext) error) error
}

type neo4jTxRunner struct {
	client *neo4jdb.Client
}

// NewNeo4jTxRunner returns a runner backed by managed write transactions. The driver
// replays the body on transient failures, so bodies must be safe to re-run.
func NewNeo4jTxRunner(client *neo4jdb.Client) TxRunner {
	return &neo4jTxRunner{client: client}
}

func (r *neo4jTxRunner) InTx(ctx context.Context, fn func(tc TxContext) error) error {
	if fn == nil {
		return nil
	}
	if r == nil || r.client == nil || r.client.Driver == nil {
		return domainagg.NewError(domainagg.CodeUnavailable, "aggregate.tx", "transaction runner has no graph client", nil)
	}
	_, err := r.client.Write(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return nil, fn(TxContext{Ctx: ctx, Tx: tx})
	})
	return err
}

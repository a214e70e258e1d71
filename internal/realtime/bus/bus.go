package bus

import (
	"context"

	"github.com/yungbote/skillgraph-backend/internal/realtime"
)

// Bus fans realtime messages out across API replicas.
type Bus interface {
	Publish(ctx context.Context, msg realtime.SSEMessage) error
	StartForwarder(ctx context.Context, onMsg func(m realtime.SSEMessage)) error
	Close() error
}

// localBus delivers in-process only; used when no Redis is configured.
type localBus struct {
	hub *realtime.SSEHub
}

func NewLocalBus(hub *realtime.SSEHub) Bus { return &localBus{hub: hub} }

func (b *localBus) Publish(_ context.Context, msg realtime.SSEMessage) error {
	if b.hub != nil {
		b.hub.Broadcast(msg)
	}
	return nil
}

func (b *localBus) StartForwarder(context.Context, func(m realtime.SSEMessage)) error { return nil }

func (b *localBus) Close() error { return nil }

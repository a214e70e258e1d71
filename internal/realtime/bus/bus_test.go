package bus

import (
	"context"
	"testing"
	"time"

	"github.com/yungbote/skillgraph-backend/internal/platform/logger"
	"github.com/yungbote/skillgraph-backend/internal/realtime"
)

func TestLocalBusDeliversToHub(t *testing.T) {
	hub := realtime.NewSSEHub(logger.Nop())
	c := hub.NewSSEClient("f1")
	hub.AddChannel(c, realtime.UserChannel("f1"))

	b := NewLocalBus(hub)
	if err := b.Publish(context.Background(), realtime.SSEMessage{
		Channel: realtime.UserChannel("f1"),
		Event:   realtime.SSEEventNotificationCreated,
	}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	select {
	case msg := <-c.Outbound:
		if msg.Event != realtime.SSEEventNotificationCreated {
			t.Fatalf("unexpected event %s", msg.Event)
		}
	case <-time.After(time.Second):
		t.Fatalf("message not delivered")
	}
}

func TestRedisBusRequiresAddr(t *testing.T) {
	t.Setenv("REDIS_ADDR", "")
	if _, err := NewRedisBus(logger.Nop()); err == nil {
		t.Fatalf("expected error without REDIS_ADDR")
	}
}

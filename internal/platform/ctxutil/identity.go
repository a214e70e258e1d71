package ctxutil

import (
	"context"
	"strings"
)

type identityKey struct{}

// Identity is the authenticated caller resolved at the transport boundary.
type Identity struct {
	UserID string
	Role   string
}

func (id *Identity) IsFaculty() bool {
	return id != nil && strings.EqualFold(id.Role, "faculty")
}

func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

func GetIdentity(ctx context.Context) *Identity {
	if ctx == nil {
		return nil
	}
	if id, ok := ctx.Value(identityKey{}).(*Identity); ok {
		return id
	}
	return nil
}

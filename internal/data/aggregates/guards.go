package aggregates

import (
	"strings"

	"github.com/yungbote/skillgraph-backend/internal/domain"
	domainagg "github.com/yungbote/skillgraph-backend/internal/domain/aggregates"
)

// RequireCASSuccess converts a conditional write that matched nothing into a typed conflict error.
func RequireCASSuccess(ok bool, message string) error {
	if ok {
		return nil
	}
	return ConflictError(strings.TrimSpace(message))
}

// RequireStatusAllowed validates current status against allowed values.
func RequireStatusAllowed(current string, allowed ...string) error {
	current = strings.TrimSpace(current)
	if len(allowed) == 0 {
		return ValidationError("allowed statuses cannot be empty")
	}
	for _, s := range allowed {
		if strings.EqualFold(current, strings.TrimSpace(s)) {
			return nil
		}
	}
	return ConflictError("status transition not allowed")
}

// RequireRole rejects callers whose role does not match.
func RequireRole(op string, got, want domain.Role) error {
	if got == want {
		return nil
	}
	return domainagg.Forbidden(op, "only "+want.String()+"s may perform this operation")
}

// RequireOwner rejects callers who do not own the resource.
func RequireOwner(op, ownerID, callerID string) error {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID != "" && ownerID == strings.TrimSpace(callerID) {
		return nil
	}
	return domainagg.Forbidden(op, "caller does not own this resource")
}

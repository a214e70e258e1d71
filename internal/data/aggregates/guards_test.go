package aggregates

import (
	"testing"

	"github.com/yungbote/skillgraph-backend/internal/domain"
	domainagg "github.com/yungbote/skillgraph-backend/internal/domain/aggregates"
)

func TestRequireStatusAllowed(t *testing.T) {
	if err := RequireStatusAllowed("Pending", "pending"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := RequireStatusAllowed("Accepted", "Pending"); err == nil {
		t.Fatalf("expected conflict error")
	}
	if err := RequireStatusAllowed("Pending"); err == nil {
		t.Fatalf("expected validation error for empty allow list")
	}
}

func TestRequireCASSuccess(t *testing.T) {
	if err := RequireCASSuccess(true, "ok"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := MapError("op", RequireCASSuccess(false, "stale")); !domainagg.IsCode(err, domainagg.CodeConflict) {
		t.Fatalf("expected conflict code, got %v", err)
	}
}

func TestRequireRole(t *testing.T) {
	if err := RequireRole("op", domain.RoleStudent, domain.RoleStudent); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := RequireRole("op", domain.RoleFaculty, domain.RoleStudent); !domainagg.IsCode(err, domainagg.CodeForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestRequireOwner(t *testing.T) {
	if err := RequireOwner("op", "f1", "f1"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := RequireOwner("op", "f1", "f2"); !domainagg.IsCode(err, domainagg.CodeForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if err := RequireOwner("op", "", ""); !domainagg.IsCode(err, domainagg.CodeForbidden) {
		t.Fatalf("missing owner must not match an empty caller, got %v", err)
	}
}

package aggregates

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"gorm.io/gorm"

	domainagg "github.com/yungbote/skillgraph-backend/internal/domain/aggregates"
)

func TestMapError_Validation(t *testing.T) {
	err := MapError("op", ValidationError("bad input"))
	if !domainagg.IsCode(err, domainagg.CodeValidation) {
		t.Fatalf("expected validation code, got %q (%v)", domainagg.CodeOf(err), err)
	}
}

func TestMapError_Conflict(t *testing.T) {
	err := MapError("op", ConflictError("stale"))
	if !domainagg.IsCode(err, domainagg.CodeConflict) {
		t.Fatalf("expected conflict code, got %q (%v)", domainagg.CodeOf(err), err)
	}
}

func TestMapError_NotFound(t *testing.T) {
	err := MapError("op", gorm.ErrRecordNotFound)
	if !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("expected not_found code, got %q (%v)", domainagg.CodeOf(err), err)
	}
}

func TestMapError_PassthroughAggregateError(t *testing.T) {
	in := domainagg.Ineligible("op", domainagg.ReasonCGPA)
	out := MapError("other", in)
	if domainagg.ReasonOf(out) != domainagg.ReasonCGPA || domainagg.CodeOf(out) != domainagg.CodeIneligible {
		t.Fatalf("expected passthrough aggregate error, got %v", out)
	}
}

func TestMapError_GraphConstraint(t *testing.T) {
	err := MapError("op", &neo4j.Neo4jError{Code: "Neo.ClientError.Schema.ConstraintValidationFailed", Msg: "exists"})
	if !domainagg.IsCode(err, domainagg.CodeConflict) {
		t.Fatalf("expected conflict code, got %q (%v)", domainagg.CodeOf(err), err)
	}
}

func TestMapError_GraphTransient(t *testing.T) {
	err := MapError("op", &neo4j.Neo4jError{Code: "Neo.TransientError.Transaction.DeadlockDetected", Msg: "deadlock"})
	if !domainagg.IsCode(err, domainagg.CodeRetryable) {
		t.Fatalf("expected retryable code, got %q (%v)", domainagg.CodeOf(err), err)
	}
}

func TestMapError_PgCodes(t *testing.T) {
	cases := map[string]domainagg.ErrorCode{
		"23505": domainagg.CodeConflict,
		"23503": domainagg.CodePreconditionFailed,
		"40P01": domainagg.CodeRetryable,
	}
	for code, want := range cases {
		err := MapError("op", &pgconn.PgError{Code: code})
		if !domainagg.IsCode(err, want) {
			t.Fatalf("pg %s: expected %s, got %q", code, want, domainagg.CodeOf(err))
		}
	}
}

func TestMapError_ContextAndUnknown(t *testing.T) {
	if err := MapError("op", context.DeadlineExceeded); !domainagg.IsCode(err, domainagg.CodeRetryable) {
		t.Fatalf("expected retryable for deadline, got %v", err)
	}
	if err := MapError("op", errors.New("boom")); !domainagg.IsCode(err, domainagg.CodeInternal) {
		t.Fatalf("expected internal for unknown error, got %v", err)
	}
}

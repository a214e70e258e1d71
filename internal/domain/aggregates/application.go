package aggregates

import (
	"context"
	"time"

	"github.com/yungbote/skillgraph-backend/internal/domain"
)

var ApplicationAggregateContract = Contract{
	Name:             "Matching.ApplicationAggregate",
	WriteTxOwnership: WriteTxOwnedByAggregate,
	ReadPolicy:       ReadPolicyInvariantScoped,
	Notes:            "Owns the (student, opening) application lifecycle: guard read and conditional write share one graph transaction.",
}

// ApplicationAggregate owns application lifecycle invariants: at most one
// application per (student, opening), and only Pending applications move.
//
// Write method failures return *aggregates.Error with codes:
// CodeValidation, CodeNotFound, CodeForbidden, CodeIneligible, CodeConflict, CodeRetryable, CodeInternal.
type ApplicationAggregate interface {
	Aggregate

	// Apply re-evaluates eligibility against a fresh snapshot and creates a Pending application.
	Apply(ctx context.Context, in ApplyInput) (ApplyResult, error)

	// UpdateStatus moves a Pending application to Accepted or Rejected when the caller owns the opening.
	UpdateStatus(ctx context.Context, in UpdateStatusInput) (UpdateStatusResult, error)

	// Withdraw deletes the caller's Pending application.
	Withdraw(ctx context.Context, in WithdrawInput) (WithdrawResult, error)
}

type ApplyInput struct {
	StudentID     string
	OpeningID     string
	ApplicationID string
	Now           time.Time
}

type ApplyResult struct {
	Application domain.ApplicationView
	FacultyID   string
}

type UpdateStatusInput struct {
	FacultyID     string
	ApplicationID string
	Status        domain.ApplicationStatus
	Now           time.Time
}

type UpdateStatusResult struct {
	Application domain.ApplicationView
	StudentID   string
}

type WithdrawInput struct {
	StudentID string
	OpeningID string
}

type WithdrawResult struct {
	ApplicationID string
	OpeningID     string
	FacultyID     string
}

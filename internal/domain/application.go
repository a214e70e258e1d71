package domain

import "time"

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "Pending"
	ApplicationAccepted ApplicationStatus = "Accepted"
	ApplicationRejected ApplicationStatus = "Rejected"
)

func (s ApplicationStatus) Terminal() bool {
	return s == ApplicationAccepted || s == ApplicationRejected
}

// CanTransitionTo encodes the only legal status moves: Pending to Accepted or Rejected.
// Withdrawal removes the application and is not a status transition.
func (s ApplicationStatus) CanTransitionTo(next ApplicationStatus) bool {
	return s == ApplicationPending && next.Terminal()
}

func ParseDecision(raw string) (ApplicationStatus, bool) {
	switch ApplicationStatus(raw) {
	case ApplicationAccepted, "accepted", "ACCEPTED":
		return ApplicationAccepted, true
	case ApplicationRejected, "rejected", "REJECTED":
		return ApplicationRejected, true
	default:
		return "", false
	}
}

// Application is the Student -> Opening candidacy relationship.
type Application struct {
	ApplicationID string
	StudentID     string
	OpeningID     string
	Status        ApplicationStatus
	AppliedAt     time.Time
	UpdatedAt     *time.Time
}

// ApplicationView is the result shape returned to callers.
type ApplicationView struct {
	ApplicationID string            `json:"application_id"`
	Status        ApplicationStatus `json:"status"`
	OpeningID     string            `json:"opening_id"`
	OpeningTitle  string            `json:"opening_title"`
	StudentID     string            `json:"student_id,omitempty"`
	StudentName   string            `json:"student_name,omitempty"`
	FacultyID     string            `json:"faculty_id,omitempty"`
	FacultyName   string            `json:"faculty_name,omitempty"`
	AppliedAt     time.Time         `json:"applied_at"`
	UpdatedAt     *time.Time        `json:"updated_at,omitempty"`
}

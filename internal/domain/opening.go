package domain

import "time"

type OpeningStatus string

const (
	OpeningActive OpeningStatus = "Active"
	OpeningClosed OpeningStatus = "Closed"
)

// Opening is a faculty-posted position. It always has exactly one owner.
type Opening struct {
	ID               string
	FacultyID        string
	FacultyName      string
	Title            string
	Description      string
	RequiredConcepts []string
	MinCGPA          *float64
	TargetYears      []int
	Deadline         *time.Time
	Status           OpeningStatus
	CreatedAt        time.Time
}

func (o *Opening) DisplayFields() map[string]any {
	out := map[string]any{}
	if o == nil {
		return out
	}
	out["title"] = o.Title
	out["description"] = o.Description
	out["faculty_id"] = o.FacultyID
	if o.FacultyName != "" {
		out["faculty_name"] = o.FacultyName
	}
	out["status"] = string(o.Status)
	out["required_concepts"] = append([]string(nil), o.RequiredConcepts...)
	if o.Deadline != nil {
		out["deadline"] = o.Deadline.Format("2006-01-02")
	}
	if !o.CreatedAt.IsZero() {
		out["created_at"] = o.CreatedAt
	}
	return out
}

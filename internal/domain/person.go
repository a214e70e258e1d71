package domain

import (
	"fmt"
	"strings"
)

// Role distinguishes the two person kinds sharing one identity space.
type Role string

const (
	RoleStudent Role = "student"
	RoleFaculty Role = "faculty"
)

func ParseRole(raw string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(raw))) {
	case RoleStudent:
		return RoleStudent, nil
	case RoleFaculty:
		return RoleFaculty, nil
	default:
		return "", fmt.Errorf("unknown role %q", raw)
	}
}

func (r Role) Valid() bool { return r == RoleStudent || r == RoleFaculty }

func (r Role) String() string { return string(r) }

// Person is a student or faculty member. Role-specific fields are optional:
// Batch and CGPA apply to students, Designation to faculty.
type Person struct {
	UserID      string
	Role        Role
	Name        string
	Department  string
	Batch       *int
	CGPA        *float64
	Designation string
	Bio         string

	// Concept sets, normalized names.
	Skills    []string
	Interests []string

	Embedding []float32

	// Display carries profile fields through to results untouched.
	Display map[string]any
}

// ProfileText is the free text summarized by the person's embedding.
func (p *Person) ProfileText() string {
	if p == nil {
		return ""
	}
	parts := make([]string, 0, 4)
	if s := strings.TrimSpace(p.Bio); s != "" {
		parts = append(parts, s)
	}
	if s := strings.TrimSpace(p.Designation); s != "" {
		parts = append(parts, s)
	}
	if len(p.Skills) > 0 {
		parts = append(parts, "skills: "+strings.Join(p.Skills, ", "))
	}
	if len(p.Interests) > 0 {
		parts = append(parts, "interests: "+strings.Join(p.Interests, ", "))
	}
	return strings.Join(parts, "\n")
}

func (p *Person) DisplayFields() map[string]any {
	out := map[string]any{}
	if p == nil {
		return out
	}
	for k, v := range p.Display {
		out[k] = v
	}
	if _, ok := out["name"]; !ok && p.Name != "" {
		out["name"] = p.Name
	}
	if _, ok := out["department"]; !ok && p.Department != "" {
		out["department"] = p.Department
	}
	if p.Batch != nil {
		if _, ok := out["batch"]; !ok {
			out["batch"] = *p.Batch
		}
	}
	if p.Designation != "" {
		if _, ok := out["designation"]; !ok {
			out["designation"] = p.Designation
		}
	}
	return out
}

package domain

import (
	"fmt"
	"strings"
)

// EdgeType names a typed association to a Concept node.
type EdgeType string

const (
	EdgeHasSkill     EdgeType = "HAS_SKILL"
	EdgeInterestedIn EdgeType = "INTERESTED_IN"
	EdgeExpertIn     EdgeType = "EXPERT_IN"
	EdgeRequires     EdgeType = "REQUIRES"
)

// EntityKind is the owner side of a concept edge.
type EntityKind string

const (
	EntityPerson  EntityKind = "person"
	EntityOpening EntityKind = "opening"
)

// EntityRef addresses a person (by user_id) or an opening (by id).
type EntityRef struct {
	Kind EntityKind
	ID   string
}

func PersonRef(userID string) EntityRef     { return EntityRef{Kind: EntityPerson, ID: userID} }
func OpeningRef(openingID string) EntityRef { return EntityRef{Kind: EntityOpening, ID: openingID} }

func ParseEdgeType(raw string) (EdgeType, error) {
	switch EdgeType(strings.ToUpper(strings.TrimSpace(raw))) {
	case EdgeHasSkill:
		return EdgeHasSkill, nil
	case EdgeInterestedIn:
		return EdgeInterestedIn, nil
	case EdgeExpertIn:
		return EdgeExpertIn, nil
	case EdgeRequires:
		return EdgeRequires, nil
	default:
		return "", fmt.Errorf("unknown edge type %q", raw)
	}
}

// AllowedFor reports whether the edge type may hang off the given entity kind.
func (e EdgeType) AllowedFor(kind EntityKind) bool {
	switch e {
	case EdgeHasSkill, EdgeInterestedIn, EdgeExpertIn:
		return kind == EntityPerson
	case EdgeRequires:
		return kind == EntityOpening
	default:
		return false
	}
}

// NormalizeConceptName trims and lower-cases a concept label. The result is
// the concept's identity.
func NormalizeConceptName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// NormalizeConceptNames normalizes, drops empties and dedupes, keeping first-seen order.
func NormalizeConceptNames(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		c := NormalizeConceptName(n)
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

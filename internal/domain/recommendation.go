package domain

// Recommendation is one ranked result of a structural match.
type Recommendation struct {
	EntityID            string         `json:"entity_id"`
	DisplayFields       map[string]any `json:"display_fields"`
	MatchScore          int            `json:"match_score"`
	MatchedConceptNames []string       `json:"matched_concept_names"`
}

// SemanticMatch is one result of a free-text similarity search.
// Similarity is a percentage rounded to two decimals.
type SemanticMatch struct {
	EntityID      string         `json:"entity_id"`
	DisplayFields map[string]any `json:"display_fields"`
	Similarity    float64        `json:"similarity"`
}

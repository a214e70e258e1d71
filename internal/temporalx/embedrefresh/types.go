package embedrefresh

const (
	WorkflowName    = "embedding_refresh"
	ActivityRefresh = "embedding_refresh_apply"
)

type RefreshInput struct {
	UserID string `json:"user_id"`
}

type RefreshResult struct {
	UserID     string `json:"user_id"`
	Dimensions int    `json:"dimensions"`
	// Skipped is set when the model produced no vector and the stored one was kept.
	Skipped bool `json:"skipped,omitempty"`
}

// WorkflowID is per user so concurrent profile edits collapse into one run.
func WorkflowID(userID string) string { return "embedding-refresh:" + userID }

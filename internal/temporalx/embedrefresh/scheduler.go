package embedrefresh

import (
	"context"
	"fmt"
	"strings"

	enumspb "go.temporal.io/api/enums/v1"
	temporalsdkclient "go.temporal.io/sdk/client"

	"github.com/yungbote/skillgraph-backend/internal/platform/logger"
)

// Scheduler starts refresh workflows. A run already in flight for the same
// user is reused rather than duplicated.
type Scheduler struct {
	Log       *logger.Logger
	Client    temporalsdkclient.Client
	TaskQueue string
}

func (s *Scheduler) RefreshEmbedding(ctx context.Context, userID string) error {
	if s == nil || s.Client == nil {
		return fmt.Errorf("embedrefresh: temporal client not configured")
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return fmt.Errorf("embedrefresh: missing user_id")
	}
	run, err := s.Client.ExecuteWorkflow(ctx, temporalsdkclient.StartWorkflowOptions{
		ID:                       WorkflowID(userID),
		TaskQueue:                s.TaskQueue,
		WorkflowIDConflictPolicy: enumspb.WORKFLOW_ID_CONFLICT_POLICY_USE_EXISTING,
		WorkflowIDReusePolicy:    enumspb.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE,
	}, WorkflowName, RefreshInput{UserID: userID})
	if err != nil {
		return fmt.Errorf("embedrefresh: start workflow: %w", err)
	}
	if s.Log != nil {
		s.Log.Debug("embedding refresh scheduled", "user_id", userID, "workflow_id", run.GetID(), "run_id", run.GetRunID())
	}
	return nil
}

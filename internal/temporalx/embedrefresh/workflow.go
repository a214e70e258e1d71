package embedrefresh

import (
	"fmt"
	"strings"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

func Workflow(ctx workflow.Context, in RefreshInput) (RefreshResult, error) {
	in.UserID = strings.TrimSpace(in.UserID)
	if in.UserID == "" {
		return RefreshResult{}, fmt.Errorf("embedrefresh: missing user_id")
	}

	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 2 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:        2 * time.Second,
			BackoffCoefficient:     2,
			MaximumInterval:        time.Minute,
			MaximumAttempts:        5,
			NonRetryableErrorTypes: []string{ErrTypeNotFound},
		},
	})

	var out RefreshResult
	if err := workflow.ExecuteActivity(ctx, ActivityRefresh, in).Get(ctx, &out); err != nil {
		return RefreshResult{}, err
	}
	workflow.GetLogger(ctx).Info("embedding refreshed", "user_id", out.UserID, "dimensions", out.Dimensions, "skipped", out.Skipped)
	return out, nil
}

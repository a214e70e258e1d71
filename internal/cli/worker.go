package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yungbote/skillgraph-backend/internal/app"
	"github.com/yungbote/skillgraph-backend/internal/temporalx/temporalworker"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Run the Temporal worker for embedding refresh",
	RunE:  runWorker,
}

func init() {
	rootCmd.AddCommand(workerCmd)
}

func runWorker(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := app.New(ctx, app.Options{})
	if err != nil {
		return err
	}
	defer a.Close()

	if a.Clients.Temporal == nil {
		return fmt.Errorf("TEMPORAL_ADDRESS is required for the worker")
	}
	runner, err := temporalworker.NewRunner(a.Log, a.Clients.Temporal, a.Stores.People, a.Services.Semantic)
	if err != nil {
		return err
	}
	if err := runner.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	a.Log.Info("worker shutting down")
	return nil
}

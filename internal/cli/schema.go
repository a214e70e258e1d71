package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yungbote/skillgraph-backend/internal/app"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Create graph constraints and vector indexes",
	Long: `Create the uniqueness constraints for users, concepts and openings and the
vector indexes over student and faculty profile embeddings. Safe to re-run.`,
	RunE: runSchema,
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}

func runSchema(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := app.New(ctx, app.Options{})
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("schema bootstrap: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date.")
	return nil
}

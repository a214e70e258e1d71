package cli

import (
	"github.com/spf13/cobra"

	"github.com/yungbote/skillgraph-backend/internal/app"
	"github.com/yungbote/skillgraph-backend/internal/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

var serveSchema bool

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().BoolVar(&serveSchema, "ensure-schema", true, "apply graph constraints and indexes on startup")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := app.New(ctx, app.Options{HTTP: true})
	if err != nil {
		return err
	}
	defer a.Close()

	if serveSchema {
		if err := a.EnsureSchema(ctx); err != nil {
			a.Log.Warn("schema bootstrap incomplete", "error", err)
		}
	}
	if err := a.Start(ctx); err != nil {
		return err
	}

	a.Log.Info("HTTP server listening", "addr", a.Cfg.HTTPAddr)
	srv := &http.Server{Engine: a.Router}
	return srv.Run(ctx, a.Cfg.HTTPAddr)
}

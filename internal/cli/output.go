package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/yungbote/skillgraph-backend/internal/domain"
)

func writeOutput(w io.Writer, format string, recs []domain.Recommendation) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(recs)
	case "table", "":
		return recommendationsTable(w, recs)
	default:
		return fmt.Errorf("unknown output format: %s (use table or json)", format)
	}
}

func recommendationsTable(w io.Writer, recs []domain.Recommendation) error {
	if len(recs) == 0 {
		fmt.Fprintln(w, "No recommendations found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tID\tNAME\tSCORE\tMATCHED")
	fmt.Fprintln(tw, "----\t--\t----\t-----\t-------")
	for i, r := range recs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n",
			i+1,
			r.EntityID,
			truncate(displayName(r.DisplayFields), 30),
			r.MatchScore,
			truncate(strings.Join(r.MatchedConceptNames, ", "), 50),
		)
	}
	return tw.Flush()
}

func displayName(fields map[string]any) string {
	for _, key := range []string{"name", "title"} {
		if v, ok := fields[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

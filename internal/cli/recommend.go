package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yungbote/skillgraph-backend/internal/app"
	"github.com/yungbote/skillgraph-backend/internal/domain"
	"github.com/yungbote/skillgraph-backend/internal/services"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend <variant> <user_id>",
	Short: "Print recommendations for a user",
	Long: `Run one recommendation variant and print the ranked results.

Variants:
  openings   openings for a student
  mentors    faculty mentors for a student
  students   students for a faculty member
  opening    students for an opening (requires --opening)

Examples:
  skillgraph recommend openings 6f1c...
  skillgraph recommend opening 9a2e... --opening op-42 -o json`,
	Args: cobra.ExactArgs(2),
	RunE: runRecommend,
}

var (
	recommendLimit   int
	recommendOpening string
)

func init() {
	rootCmd.AddCommand(recommendCmd)

	recommendCmd.Flags().IntVar(&recommendLimit, "limit", 10, "Maximum number of results")
	recommendCmd.Flags().StringVar(&recommendOpening, "opening", "", "Opening id (variant opening)")
}

func runRecommend(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	variant, userID := args[0], args[1]

	a, err := app.New(ctx, app.Options{})
	if err != nil {
		return err
	}
	defer a.Close()

	recs, err := recommend(cmd, a.Services.Recommendation, variant, userID)
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), outputFmt, recs)
}

func recommend(cmd *cobra.Command, svc services.RecommendationService, variant, userID string) ([]domain.Recommendation, error) {
	ctx := cmd.Context()
	switch variant {
	case "openings":
		return svc.OpeningsForStudent(ctx, userID, recommendLimit)
	case "mentors":
		return svc.MentorsForStudent(ctx, userID, recommendLimit)
	case "students":
		return svc.StudentsForFaculty(ctx, userID, recommendLimit)
	case "opening":
		if recommendOpening == "" {
			return nil, fmt.Errorf("--opening is required for variant opening")
		}
		return svc.StudentsForOpening(ctx, userID, recommendOpening, recommendLimit)
	default:
		return nil, fmt.Errorf("unknown variant %q (use openings, mentors, students or opening)", variant)
	}
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshdeandev/sams/internal/database"
	"github.com/joshdeandev/sams/internal/decision"
)

var decideCmd = &cobra.Command{
	Use:   "decide <student-id> <scholarship> <decision>",
	Short: "Record an award decision",
	Long: `Record the award decision for an applicant and scholarship. Any earlier
decision for the same pair is replaced. Decision is one of awarded,
not_awarded or pending.

With --create-award an awarded decision also records an active award for
the scholarship amount (or --amount) in the same transaction.

Examples:
  sams decide 12345678 "Engineering Excellence Scholarship" awarded --comment="Excellent candidate"
  sams decide 12345678 "Engineering Excellence Scholarship" awarded --create-award
  sams decide 12347890 "CS Leadership Scholarship" not_awarded`,
	Args: cobra.ExactArgs(3),
	RunE: runDecide,
}

var decisionsCmd = &cobra.Command{
	Use:     "decisions",
	Aliases: []string{"decision"},
	Short:   "Inspect recorded award decisions",
}

var decisionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List award decisions",
	Long: `List recorded award decisions, most recently updated first.

Examples:
  sams decisions list
  sams decisions list --decision=awarded
  sams decisions list --scholarship="CS Leadership Scholarship" --limit=10`,
	Args: cobra.NoArgs,
	RunE: runDecisionsList,
}

var (
	decideComment     string
	decideCreateAward bool
	decideAmount      float64

	decisionsScholarship string
	decisionsValue       string
	decisionsStudent     string
	decisionsLimit       int
)

func init() {
	rootCmd.AddCommand(decideCmd)
	decideCmd.Flags().StringVar(&decideComment, "comment", "", "Reviewer comments")
	decideCmd.Flags().BoolVar(&decideCreateAward, "create-award", false, "Record an active award when the decision is awarded")
	decideCmd.Flags().Float64Var(&decideAmount, "amount", 0, "Award amount (defaults to the scholarship amount)")

	rootCmd.AddCommand(decisionsCmd)
	decisionsCmd.AddCommand(decisionsListCmd)
	decisionsListCmd.Flags().StringVar(&decisionsScholarship, "scholarship", "", "Filter by scholarship name")
	decisionsListCmd.Flags().StringVar(&decisionsValue, "decision", "", "Filter by decision (awarded, not_awarded, pending)")
	decisionsListCmd.Flags().StringVar(&decisionsStudent, "student", "", "Filter by student ID")
	decisionsListCmd.Flags().IntVarP(&decisionsLimit, "limit", "n", 0, "Maximum number of results")
}

func runDecide(cmd *cobra.Command, args []string) error {
	s, err := openSession("decision")
	if err != nil {
		return err
	}
	defer s.Close()

	req := decision.SubmitRequest{
		StudentID:       args[0],
		ScholarshipName: args[1],
		Decision:        database.Decision(args[2]),
		CreateAward:     decideCreateAward,
	}
	if cmd.Flags().Changed("comment") {
		req.Comments = &decideComment
	}
	if cmd.Flags().Changed("amount") {
		req.AwardAmount = &decideAmount
	}

	result, err := decision.NewService(s.db, s.log).Submit(cmd.Context(), req)
	if err != nil {
		return err
	}

	return s.output(result)
}

func runDecisionsList(cmd *cobra.Command, args []string) error {
	opts := database.DecisionListOptions{Limit: decisionsLimit}
	if decisionsScholarship != "" {
		opts.ScholarshipName = &decisionsScholarship
	}
	if decisionsStudent != "" {
		opts.StudentID = &decisionsStudent
	}
	if decisionsValue != "" {
		d := database.Decision(decisionsValue)
		if !d.Valid() {
			return fmt.Errorf("%w: %q", database.ErrInvalidDecision, decisionsValue)
		}
		opts.Decision = &d
	}

	s, err := openSession("cli")
	if err != nil {
		return err
	}
	defer s.Close()

	decisions, err := s.db.ListDecisions(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("failed to list decisions: %w", err)
	}

	return s.output(decisions)
}

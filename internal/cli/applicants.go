package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshdeandev/sams/internal/database"
)

var applicantsCmd = &cobra.Command{
	Use:     "applicants",
	Aliases: []string{"applicant"},
	Short:   "List and inspect applicants",
}

var applicantsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all applicants",
	Long: `List every applicant with major, GPA, level and application completeness.

Examples:
  sams applicants list
  sams applicants list -o csv > applicants.csv`,
	Args: cobra.NoArgs,
	RunE: runApplicantsList,
}

var applicantsShowCmd = &cobra.Command{
	Use:   "show <student-id>",
	Short: "Show an applicant's full record",
	Args:  cobra.ExactArgs(1),
	RunE:  runApplicantsShow,
}

func init() {
	rootCmd.AddCommand(applicantsCmd)
	applicantsCmd.AddCommand(applicantsListCmd)
	applicantsCmd.AddCommand(applicantsShowCmd)
}

func runApplicantsList(cmd *cobra.Command, args []string) error {
	s, err := openSession("cli")
	if err != nil {
		return err
	}
	defer s.Close()

	applicants, err := s.db.ListApplicants(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list applicants: %w", err)
	}

	return s.output(applicants)
}

func runApplicantsShow(cmd *cobra.Command, args []string) error {
	s, err := openSession("cli")
	if err != nil {
		return err
	}
	defer s.Close()

	a, err := s.db.GetApplicantByStudentID(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get applicant: %w", err)
	}
	if a == nil {
		return fmt.Errorf("%w: %s", database.ErrApplicantNotFound, args[0])
	}

	return s.output(a)
}

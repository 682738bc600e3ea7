package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshdeandev/sams/internal/database"
	"github.com/joshdeandev/sams/internal/report"
)

var scholarshipsCmd = &cobra.Command{
	Use:     "scholarships",
	Aliases: []string{"scholarship"},
	Short:   "List scholarships and build scholarship reports",
}

var scholarshipsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List scholarships",
	Long: `List scholarships ordered by name.

Examples:
  sams scholarships list
  sams scholarships list --frequency=annual`,
	Args: cobra.NoArgs,
	RunE: runScholarshipsList,
}

var scholarshipsReportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarize scholarships by amount and frequency",
	Long: `Build the scholarship summary: total count, total amount offered,
frequency distribution and per-scholarship criteria, donor and deadline.

Examples:
  sams scholarships report
  sams scholarships report --frequency=semester -o csv`,
	Args: cobra.NoArgs,
	RunE: runScholarshipsReport,
}

var scholarshipsDonorsCmd = &cobra.Command{
	Use:   "donors",
	Short: "Summarize funding and awards per donor",
	Args:  cobra.NoArgs,
	RunE:  runScholarshipsDonors,
}

var scholarshipsFrequency string

func init() {
	rootCmd.AddCommand(scholarshipsCmd)
	scholarshipsCmd.AddCommand(scholarshipsListCmd)
	scholarshipsCmd.AddCommand(scholarshipsReportCmd)
	scholarshipsCmd.AddCommand(scholarshipsDonorsCmd)

	scholarshipsListCmd.Flags().StringVar(&scholarshipsFrequency, "frequency", "", "Only include this frequency (e.g. annual, semester)")
	scholarshipsReportCmd.Flags().StringVar(&scholarshipsFrequency, "frequency", "", "Only include this frequency (e.g. annual, semester)")
}

func runScholarshipsList(cmd *cobra.Command, args []string) error {
	s, err := openSession("cli")
	if err != nil {
		return err
	}
	defer s.Close()

	opts := database.ScholarshipListOptions{}
	if scholarshipsFrequency != "" {
		opts.Frequency = &scholarshipsFrequency
	}

	scholarships, err := s.db.ListScholarships(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("failed to list scholarships: %w", err)
	}

	return s.output(scholarships)
}

func runScholarshipsReport(cmd *cobra.Command, args []string) error {
	s, err := openSession("report")
	if err != nil {
		return err
	}
	defer s.Close()

	scholarships, err := s.db.ListScholarships(cmd.Context(), database.ScholarshipListOptions{})
	if err != nil {
		return fmt.Errorf("failed to list scholarships: %w", err)
	}

	return s.output(report.Summarize(scholarships, report.Filter{Frequency: scholarshipsFrequency}))
}

func runScholarshipsDonors(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	s, err := openSession("report")
	if err != nil {
		return err
	}
	defer s.Close()

	scholarships, err := s.db.ListScholarships(ctx, database.ScholarshipListOptions{})
	if err != nil {
		return fmt.Errorf("failed to list scholarships: %w", err)
	}
	awards, err := s.db.ListAwards(ctx, database.AwardListOptions{})
	if err != nil {
		return fmt.Errorf("failed to list awards: %w", err)
	}

	return s.output(report.Donors(scholarships, awards))
}

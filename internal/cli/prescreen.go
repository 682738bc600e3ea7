package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshdeandev/sams/internal/output"
	"github.com/joshdeandev/sams/internal/prescreen"
)

var prescreenCmd = &cobra.Command{
	Use:   "prescreen",
	Short: "Screen every applicant against scholarship criteria",
	Long: `Evaluate every applicant against each scholarship's eligibility
criteria and merge in recorded award decisions.

Criteria the rule set does not recognise are reported as unsupported and
count against the score. Scholarships with no criteria qualify nobody
unless screening.zero_criteria_qualifies is set.

Examples:
  sams prescreen
  sams prescreen --scholarship="CS Leadership Scholarship"
  sams prescreen -o json --file=prescreening_report.json
  sams prescreen -o csv --file=prescreening_report.csv`,
	Args: cobra.NoArgs,
	RunE: runPrescreen,
}

var (
	prescreenScholarship string
	prescreenFile        string
)

func init() {
	rootCmd.AddCommand(prescreenCmd)
	prescreenCmd.Flags().StringVar(&prescreenScholarship, "scholarship", "", "Only evaluate the scholarship with this exact name")
	prescreenCmd.Flags().StringVar(&prescreenFile, "file", "", "Write the report to this file instead of stdout")
}

func runPrescreen(cmd *cobra.Command, args []string) error {
	s, err := openSession("prescreen")
	if err != nil {
		return err
	}
	defer s.Close()

	ag := prescreen.NewDefault(s.db, prescreen.Options{
		AssumeFullTimeEnrollment: s.cfg.Screening.AssumeFullTimeEnrollment,
		ZeroCriteriaQualifies:    s.cfg.Screening.ZeroCriteriaQualifies,
	}, s.log)

	rep, err := ag.Run(cmd.Context(), s.db, prescreenScholarship)
	if err != nil {
		return err
	}

	if prescreenFile == "" {
		return s.output(rep)
	}

	f, err := os.Create(prescreenFile)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()

	if err := output.Write(f, s.format(), rep); err != nil {
		return err
	}

	s.log.Info().Str("file", prescreenFile).Int("matches", rep.Summary.TotalMatches).Msg("Report written")
	return f.Close()
}

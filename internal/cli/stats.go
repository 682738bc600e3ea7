package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show applicant, decision and award counts",
	Long: `Display aggregate counts from the store: applicants, scholarships,
decisions by value, awards by status and open information requests.

Examples:
  sams stats
  sams stats -o json`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	s, err := openSession("cli")
	if err != nil {
		return err
	}
	defer s.Close()

	stats, err := s.db.GetStats(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get stats: %w", err)
	}

	return s.output(stats)
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshdeandev/sams/internal/intake"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load sample applicants and scholarships",
	Long: `Load three sample applicants and two sample scholarships.

Records are upserted by student ID and scholarship name, so running
seed twice leaves the store unchanged.`,
	Args: cobra.NoArgs,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	s, err := openSession("intake")
	if err != nil {
		return err
	}
	defer s.Close()

	res, err := intake.Import(cmd.Context(), s.db, intake.DemoData())
	if err != nil {
		return fmt.Errorf("failed to seed: %w", err)
	}

	s.log.Info().Int("applicants", res.Applicants).Int("scholarships", res.Scholarships).Msg("Seeded sample data")
	return s.output(&res)
}

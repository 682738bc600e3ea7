package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshdeandev/sams/internal/database"
)

var awardsCmd = &cobra.Command{
	Use:     "awards",
	Aliases: []string{"award"},
	Short:   "List and update scholarship awards",
}

var awardsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List awards",
	Long: `List scholarship awards, newest first.

Examples:
  sams awards list
  sams awards list --status=active
  sams awards list --scholarship="Engineering Excellence Scholarship"`,
	Args: cobra.NoArgs,
	RunE: runAwardsList,
}

var awardsCompleteCmd = &cobra.Command{
	Use:   "complete <award-id>",
	Short: "Mark an award completed",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return setAwardStatus(cmd, args[0], database.AwardCompleted) },
}

var awardsCancelCmd = &cobra.Command{
	Use:   "cancel <award-id>",
	Short: "Mark an award cancelled",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return setAwardStatus(cmd, args[0], database.AwardCancelled) },
}

var (
	awardsScholarship string
	awardsStatus      string
)

func init() {
	rootCmd.AddCommand(awardsCmd)
	awardsCmd.AddCommand(awardsListCmd)
	awardsCmd.AddCommand(awardsCompleteCmd)
	awardsCmd.AddCommand(awardsCancelCmd)

	awardsListCmd.Flags().StringVar(&awardsScholarship, "scholarship", "", "Filter by scholarship name")
	awardsListCmd.Flags().StringVar(&awardsStatus, "status", "", "Filter by status (active, completed, cancelled)")
}

func runAwardsList(cmd *cobra.Command, args []string) error {
	opts := database.AwardListOptions{}
	if awardsScholarship != "" {
		opts.ScholarshipName = &awardsScholarship
	}
	if awardsStatus != "" {
		st := database.AwardStatus(awardsStatus)
		if !st.Valid() {
			return fmt.Errorf("%w: %q", database.ErrInvalidAwardStatus, awardsStatus)
		}
		opts.Status = &st
	}

	s, err := openSession("cli")
	if err != nil {
		return err
	}
	defer s.Close()

	awards, err := s.db.ListAwards(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("failed to list awards: %w", err)
	}

	return s.output(awards)
}

func setAwardStatus(cmd *cobra.Command, id string, status database.AwardStatus) error {
	s, err := openSession("cli")
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.db.UpdateAwardStatus(cmd.Context(), id, status); err != nil {
		return err
	}

	s.log.Info().Str("award", id).Str("status", string(status)).Msg("Award updated")
	fmt.Printf("Award %s marked %s\n", id, status)
	return nil
}

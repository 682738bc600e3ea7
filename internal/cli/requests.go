package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshdeandev/sams/internal/database"
)

var requestsCmd = &cobra.Command{
	Use:     "requests",
	Aliases: []string{"request"},
	Short:   "Track reviewer requests for more applicant information",
}

var requestsCreateCmd = &cobra.Command{
	Use:   "create <student-id>",
	Short: "Log a reviewer's information request",
	Long: `Log a request from a reviewer for more information about an applicant.

Examples:
  sams requests create 12345678 --reviewer="Dr. Sarah Chen" --type=transcript \
    --details="Official transcript for Fall 2024" --priority=high`,
	Args: cobra.ExactArgs(1),
	RunE: runRequestsCreate,
}

var requestsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List information requests",
	Args:  cobra.NoArgs,
	RunE:  runRequestsList,
}

var requestsFulfillCmd = &cobra.Command{
	Use:   "fulfill <request-id>",
	Short: "Mark an information request fulfilled",
	Args:  cobra.ExactArgs(1),
	RunE:  runRequestsFulfill,
}

var requestsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete fulfilled information requests",
	Long: `Delete fulfilled information requests. With --all, pending requests
are deleted too.`,
	Args: cobra.NoArgs,
	RunE: runRequestsClear,
}

var (
	requestReviewer    string
	requestEmail       string
	requestType        string
	requestDetails     string
	requestScholarship string
	requestPriority    string

	requestsStatus  string
	requestsStudent string

	fulfillNotes string
	clearAll     bool
)

func init() {
	rootCmd.AddCommand(requestsCmd)
	requestsCmd.AddCommand(requestsCreateCmd)
	requestsCmd.AddCommand(requestsListCmd)
	requestsCmd.AddCommand(requestsFulfillCmd)
	requestsCmd.AddCommand(requestsClearCmd)

	requestsCreateCmd.Flags().StringVar(&requestReviewer, "reviewer", "", "Reviewer name (required)")
	requestsCreateCmd.Flags().StringVar(&requestEmail, "email", "", "Reviewer email")
	requestsCreateCmd.Flags().StringVar(&requestType, "type", "", "Request type, e.g. transcript, recommendation (required)")
	requestsCreateCmd.Flags().StringVar(&requestDetails, "details", "", "What is being requested")
	requestsCreateCmd.Flags().StringVar(&requestScholarship, "scholarship", "", "Scholarship the request relates to")
	requestsCreateCmd.Flags().StringVar(&requestPriority, "priority", "normal", "Priority (low, normal, high)")
	requestsCreateCmd.MarkFlagRequired("reviewer")
	requestsCreateCmd.MarkFlagRequired("type")

	requestsListCmd.Flags().StringVar(&requestsStatus, "status", "", "Filter by status (pending, fulfilled)")
	requestsListCmd.Flags().StringVar(&requestsStudent, "student", "", "Filter by student ID")

	requestsFulfillCmd.Flags().StringVar(&fulfillNotes, "notes", "", "Fulfillment notes")

	requestsClearCmd.Flags().BoolVar(&clearAll, "all", false, "Also delete pending requests")
}

func runRequestsCreate(cmd *cobra.Command, args []string) error {
	s, err := openSession("cli")
	if err != nil {
		return err
	}
	defer s.Close()

	req := &database.InfoRequest{
		StudentID:    args[0],
		ReviewerName: requestReviewer,
		RequestType:  requestType,
		Details:      requestDetails,
		Priority:     requestPriority,
	}
	if requestEmail != "" {
		req.ReviewerEmail = &requestEmail
	}
	if requestScholarship != "" {
		req.ScholarshipName = &requestScholarship
	}

	if err := s.db.CreateInfoRequest(cmd.Context(), req); err != nil {
		return err
	}

	s.log.Info().Str("request", req.ID).Str("student", req.StudentID).Msg("Information request logged")
	return s.output(req)
}

func runRequestsList(cmd *cobra.Command, args []string) error {
	opts := database.InfoRequestListOptions{}
	if requestsStatus != "" {
		st := database.RequestStatus(requestsStatus)
		if st != database.RequestPending && st != database.RequestFulfilled {
			return fmt.Errorf("invalid status %q: must be pending or fulfilled", requestsStatus)
		}
		opts.Status = &st
	}
	if requestsStudent != "" {
		opts.StudentID = &requestsStudent
	}

	s, err := openSession("cli")
	if err != nil {
		return err
	}
	defer s.Close()

	requests, err := s.db.ListInfoRequests(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("failed to list information requests: %w", err)
	}

	return s.output(requests)
}

func runRequestsFulfill(cmd *cobra.Command, args []string) error {
	s, err := openSession("cli")
	if err != nil {
		return err
	}
	defer s.Close()

	var notes *string
	if fulfillNotes != "" {
		notes = &fulfillNotes
	}

	if err := s.db.FulfillInfoRequest(cmd.Context(), args[0], notes); err != nil {
		return err
	}

	fmt.Printf("Request %s fulfilled\n", args[0])
	return nil
}

func runRequestsClear(cmd *cobra.Command, args []string) error {
	s, err := openSession("cli")
	if err != nil {
		return err
	}
	defer s.Close()

	n, err := s.db.ClearInfoRequests(cmd.Context(), clearAll)
	if err != nil {
		return fmt.Errorf("failed to clear information requests: %w", err)
	}

	fmt.Printf("Deleted %d request(s)\n", n)
	return nil
}

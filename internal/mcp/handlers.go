package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/joshdeandev/sams/internal/database"
	"github.com/joshdeandev/sams/internal/decision"
	"github.com/joshdeandev/sams/internal/output"
	"github.com/joshdeandev/sams/internal/prescreen"
	"github.com/joshdeandev/sams/internal/report"
)

func (s *Server) registerHandlers() {
	s.handlers["run_prescreening"] = s.handleRunPrescreening
	s.handlers["submit_decision"] = s.handleSubmitDecision
	s.handlers["get_applicant"] = s.handleGetApplicant
	s.handlers["list_scholarships"] = s.handleListScholarships
	s.handlers["list_decisions"] = s.handleListDecisions
	s.handlers["get_stats"] = s.handleGetStats
}

// decodeParams unmarshals optional tool arguments
func decodeParams(params json.RawMessage, v any) error {
	if len(params) == 0 || string(params) == "null" {
		return nil
	}
	if err := json.Unmarshal(params, v); err != nil {
		return fmt.Errorf("invalid parameters: %w", err)
	}
	return nil
}

type runPrescreeningParams struct {
	Scholarship   string `json:"scholarship"`
	QualifiedOnly bool   `json:"qualified_only"`
}

type qualifiedOnlyReport struct {
	Policy              prescreen.Policy                  `json:"policy"`
	Matches             []prescreen.ScholarshipMatch      `json:"matches"`
	QualifiedApplicants map[string][]prescreen.Assessment `json:"qualified_applicants"`
	Summary             prescreen.Summary                 `json:"summary"`
}

func (s *Server) handleRunPrescreening(ctx context.Context, params json.RawMessage) (any, error) {
	var p runPrescreeningParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	rep, err := s.aggregator.Run(ctx, s.db, p.Scholarship)
	if err != nil {
		return nil, fmt.Errorf("prescreening failed: %w", err)
	}

	if p.QualifiedOnly {
		return qualifiedOnlyReport{
			Policy:              rep.Policy,
			Matches:             rep.Matches,
			QualifiedApplicants: rep.QualifiedApplicants,
			Summary:             rep.Summary,
		}, nil
	}
	return rep, nil
}

type submitDecisionParams struct {
	StudentID       string   `json:"student_id"`
	ScholarshipName string   `json:"scholarship_name"`
	Decision        string   `json:"decision"`
	Comments        *string  `json:"comments"`
	CreateAward     bool     `json:"create_award"`
	AwardAmount     *float64 `json:"award_amount"`
}

func (s *Server) handleSubmitDecision(ctx context.Context, params json.RawMessage) (any, error) {
	var p submitDecisionParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	if p.StudentID == "" || p.ScholarshipName == "" || p.Decision == "" {
		return nil, fmt.Errorf("student_id, scholarship_name and decision are required")
	}

	return s.decisions.Submit(ctx, decision.SubmitRequest{
		StudentID:       p.StudentID,
		ScholarshipName: p.ScholarshipName,
		Decision:        database.Decision(p.Decision),
		Comments:        p.Comments,
		CreateAward:     p.CreateAward,
		AwardAmount:     p.AwardAmount,
	})
}

type getApplicantParams struct {
	StudentID string `json:"student_id"`
}

func (s *Server) handleGetApplicant(ctx context.Context, params json.RawMessage) (any, error) {
	var p getApplicantParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	if p.StudentID == "" {
		return nil, fmt.Errorf("student_id is required")
	}

	a, err := s.db.GetApplicantByStudentID(ctx, p.StudentID)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if a == nil {
		return nil, fmt.Errorf("%w: %s", database.ErrApplicantNotFound, p.StudentID)
	}

	return a, nil
}

type listScholarshipsParams struct {
	Frequency string `json:"frequency"`
}

func (s *Server) handleListScholarships(ctx context.Context, params json.RawMessage) (any, error) {
	var p listScholarshipsParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	scholarships, err := s.db.ListScholarships(ctx, database.ScholarshipListOptions{})
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	return report.Summarize(scholarships, report.Filter{Frequency: p.Frequency}), nil
}

type listDecisionsParams struct {
	ScholarshipName string `json:"scholarship_name"`
	Decision        string `json:"decision"`
	StudentID       string `json:"student_id"`
	Limit           int    `json:"limit"`
}

func (s *Server) handleListDecisions(ctx context.Context, params json.RawMessage) (any, error) {
	var p listDecisionsParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	opts := database.DecisionListOptions{Limit: 50}
	if p.Limit > 0 {
		opts.Limit = p.Limit
	}
	if p.ScholarshipName != "" {
		opts.ScholarshipName = &p.ScholarshipName
	}
	if p.StudentID != "" {
		opts.StudentID = &p.StudentID
	}
	if p.Decision != "" {
		d := database.Decision(p.Decision)
		if !d.Valid() {
			return nil, fmt.Errorf("%w: %q", database.ErrInvalidDecision, p.Decision)
		}
		opts.Decision = &d
	}

	decisions, err := s.db.ListDecisions(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	return decisions, nil
}

func (s *Server) handleGetStats(ctx context.Context, params json.RawMessage) (any, error) {
	stats, err := s.db.GetStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	return stats, nil
}

// Resource handlers

func (s *Server) handleReadResource(ctx context.Context, uri string) (string, error) {
	switch uri {
	case uriSummary:
		return s.getResourceSummary(ctx)
	case uriScholarships:
		return s.getResourceScholarships(ctx)
	case uriDecisions:
		return s.getResourceDecisions(ctx)
	default:
		return "", fmt.Errorf("unknown resource: %s", uri)
	}
}

func (s *Server) getResourceSummary(ctx context.Context) (string, error) {
	rep, err := s.aggregator.Run(ctx, s.db, "")
	if err != nil {
		return "", err
	}
	sum := rep.Summary

	var b strings.Builder
	fmt.Fprintf(&b, `Prescreening Summary
====================
Applicants:             %d
Scholarships reviewed:  %d
Total matches:          %d
Match rate:             %.2f per applicant

Review completion:      %d of %d (%.0f%%)
Applications:           %d complete, %d in progress, %d incomplete
Decisions (qualified):  %d awarded, %d not awarded, %d pending
`,
		sum.TotalApplicants, sum.ScholarshipsReviewed, sum.TotalMatches, sum.MatchRate,
		sum.ReviewCompletion.Completed, sum.ReviewCompletion.Expected, sum.ReviewCompletion.Rate*100,
		sum.ApplicationCompletion.Complete, sum.ApplicationCompletion.InProgress, sum.ApplicationCompletion.Incomplete,
		sum.AwardDecisions.Awarded, sum.AwardDecisions.NotAwarded, sum.AwardDecisions.Pending)

	if len(rep.Matches) > 0 {
		b.WriteString("\nBy scholarship:\n")
		for _, m := range rep.Matches {
			fmt.Fprintf(&b, "  - %s: %d of %d qualified\n", m.ScholarshipName, m.QualifiedCount, m.ApplicantsEvaluated)
		}
	}

	return b.String(), nil
}

func (s *Server) getResourceScholarships(ctx context.Context) (string, error) {
	scholarships, err := s.db.ListScholarships(ctx, database.ScholarshipListOptions{})
	if err != nil {
		return "", err
	}
	summary := report.Summarize(scholarships, report.Filter{})

	var b strings.Builder
	b.WriteString("Scholarships\n============\n\n")

	if summary.TotalScholarships == 0 {
		b.WriteString("No scholarships yet. Run 'sams seed' or 'sams import <file>'.\n")
		return b.String(), nil
	}

	for _, d := range summary.Scholarships {
		fmt.Fprintf(&b, "%s\n  Amount:    $%.2f (%s)\n  Deadline:  %s\n", d.Name, d.Amount, d.Frequency, d.Deadline)
		for _, c := range d.Eligibility {
			fmt.Fprintf(&b, "  - %s\n", c)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "Total: %d scholarship(s), $%.2f\n", summary.TotalScholarships, summary.TotalAmount)

	return b.String(), nil
}

func (s *Server) getResourceDecisions(ctx context.Context) (string, error) {
	decisions, err := s.db.ListDecisions(ctx, database.DecisionListOptions{Limit: 20})
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("Recent Decisions\n================\n\n")

	if len(decisions) == 0 {
		b.WriteString("No decisions recorded yet.\n")
		return b.String(), nil
	}

	for i := range decisions {
		d := &decisions[i]
		fmt.Fprintf(&b, "- %s | %s | %s | %s\n",
			d.StudentID, d.ScholarshipName, output.DecisionLabel(d), d.DecidedAt.Format("2006-01-02"))
		if d.Comments != nil && *d.Comments != "" {
			fmt.Fprintf(&b, "    %s\n", *d.Comments)
		}
	}

	return b.String(), nil
}

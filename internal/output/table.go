package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/joshdeandev/sams/internal/database"
	"github.com/joshdeandev/sams/internal/decision"
	"github.com/joshdeandev/sams/internal/intake"
	"github.com/joshdeandev/sams/internal/prescreen"
	"github.com/joshdeandev/sams/internal/report"
)

var (
	headingColor   = color.New(color.FgCyan, color.Bold)
	awardedColor   = color.New(color.FgGreen)
	declinedColor  = color.New(color.FgRed)
	pendingColor   = color.New(color.FgYellow)
	attentionColor = color.New(color.FgMagenta)
)

// TableTo writes data as a formatted table to the given writer
func TableTo(w io.Writer, data any) error {
	switch v := data.(type) {
	case []database.Applicant:
		return applicantsTable(w, v)
	case *database.Applicant:
		return applicantDetail(w, v)
	case []database.Scholarship:
		return scholarshipsTable(w, v)
	case *report.ScholarshipSummary:
		return scholarshipSummary(w, v)
	case []report.DonorSummary:
		return donorsTable(w, v)
	case *prescreen.Report:
		return prescreenReport(w, v)
	case []database.AwardDecision:
		return decisionsTable(w, v)
	case *decision.SubmitResult:
		return submitResult(w, v)
	case []database.ScholarshipAward:
		return awardsTable(w, v)
	case []database.InfoRequest:
		return requestsTable(w, v)
	case *database.InfoRequest:
		return requestsTable(w, []database.InfoRequest{*v})
	case *database.Stats:
		return statsTable(w, v)
	case *intake.Result:
		fmt.Fprintf(w, "Imported %d scholarships and %d applicants.\n", v.Scholarships, v.Applicants)
		return nil
	default:
		return fmt.Errorf("unsupported data type for table output: %T", data)
	}
}

func newTable(w io.Writer, headers ...any) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.Header(headers...)
	return table
}

func appendRows(table *tablewriter.Table, rows [][]string) error {
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}

func applicantsTable(w io.Writer, applicants []database.Applicant) error {
	if len(applicants) == 0 {
		fmt.Fprintln(w, "No applicants found.")
		return nil
	}

	rows := make([][]string, 0, len(applicants))
	for _, a := range applicants {
		rows = append(rows, []string{
			a.StudentID,
			truncate(a.Name, 25),
			truncate(a.Major, 25),
			fmt.Sprintf("%.2f", a.GPA),
			a.AcademicLevel,
		})
	}

	return appendRows(newTable(w, "Student ID", "Name", "Major", "GPA", "Level"), rows)
}

func applicantDetail(w io.Writer, a *database.Applicant) error {
	fmt.Fprintf(w, "Name:        %s\n", a.Name)
	fmt.Fprintf(w, "Student ID:  %s\n", a.StudentID)
	if a.NetID != nil {
		fmt.Fprintf(w, "NetID:       %s\n", *a.NetID)
	}
	fmt.Fprintf(w, "Major:       %s\n", a.Major)
	if a.Minor != nil {
		fmt.Fprintf(w, "Minor:       %s\n", *a.Minor)
	}
	fmt.Fprintf(w, "GPA:         %.2f\n", a.GPA)
	fmt.Fprintf(w, "Level:       %s\n", a.AcademicLevel)
	if a.ExpectedGraduation != nil {
		fmt.Fprintf(w, "Graduation:  %s\n", a.ExpectedGraduation.Format("Jan 02, 2006"))
	}
	fmt.Fprintf(w, "Essays:      %d\n", len(a.Essays))
	fmt.Fprintf(w, "Interview:   %s\n", yesNo(a.HasInterview()))
	fmt.Fprintf(w, "Committee:   %d recommendations\n", len(a.CommitteeFeedback))

	for _, e := range a.Essays {
		if e.Evaluation == nil {
			continue
		}
		fmt.Fprintf(w, "  %s  %.1f (%s)\n", truncate(e.Prompt, 50), e.Evaluation.Score, e.Evaluation.Reviewer)
	}

	return nil
}

func scholarshipsTable(w io.Writer, scholarships []database.Scholarship) error {
	if len(scholarships) == 0 {
		fmt.Fprintln(w, "No scholarships found.")
		return nil
	}

	rows := make([][]string, 0, len(scholarships))
	for _, s := range scholarships {
		rows = append(rows, []string{
			truncate(s.Name, 35),
			formatAmount(s.Amount),
			s.Frequency,
			formatDeadline(s),
			fmt.Sprintf("%d", len(s.EligibilityCriteria)),
			truncate(s.Donor.Name, 30),
		})
	}

	return appendRows(newTable(w, "Name", "Amount", "Frequency", "Deadline", "Criteria", "Donor"), rows)
}

func scholarshipSummary(w io.Writer, s *report.ScholarshipSummary) error {
	headingColor.Fprintln(w, "Scholarship Report Summary")
	fmt.Fprintf(w, "Total scholarships:  %d\n", s.TotalScholarships)
	fmt.Fprintf(w, "Total amount:        %s\n", formatAmount(s.TotalAmount))
	fmt.Fprintln(w)

	freqRows := make([][]string, 0, len(s.FrequencyDistribution))
	for _, f := range s.Frequencies() {
		freqRows = append(freqRows, []string{f, fmt.Sprintf("%d", s.FrequencyDistribution[f])})
	}
	if err := appendRows(newTable(w, "Frequency", "Count"), freqRows); err != nil {
		return err
	}
	fmt.Fprintln(w)

	rows := make([][]string, 0, len(s.Scholarships))
	for _, d := range s.Scholarships {
		rows = append(rows, []string{
			truncate(d.Name, 35),
			formatAmount(d.Amount),
			d.Deadline,
			d.Frequency,
			truncate(strings.Join(d.Eligibility, "; "), 50),
		})
	}
	return appendRows(newTable(w, "Name", "Amount", "Deadline", "Frequency", "Eligibility"), rows)
}

func donorsTable(w io.Writer, donors []report.DonorSummary) error {
	if len(donors) == 0 {
		fmt.Fprintln(w, "No donors found.")
		return nil
	}

	rows := make([][]string, 0, len(donors))
	for _, d := range donors {
		name := d.Donor
		if name == "" {
			name = "(no donor)"
		}
		rows = append(rows, []string{
			truncate(name, 35),
			fmt.Sprintf("%d", len(d.Scholarships)),
			formatAmount(d.TotalOffered),
			fmt.Sprintf("%d", d.ActiveAwards),
			fmt.Sprintf("%d", d.CompletedAwards),
			formatAmount(d.AwardedAmount),
		})
	}

	return appendRows(newTable(w, "Donor", "Scholarships", "Offered", "Active", "Completed", "Awarded"), rows)
}

func prescreenReport(w io.Writer, r *prescreen.Report) error {
	if len(r.Matches) == 0 {
		fmt.Fprintln(w, "No scholarships evaluated.")
	}

	for _, m := range r.Matches {
		headingColor.Fprintf(w, "%s (%s, %s)\n", m.ScholarshipName, formatAmount(m.Amount), m.Frequency)
		fmt.Fprintf(w, "Criteria:   %s\n", strings.Join(m.Criteria, "; "))
		fmt.Fprintf(w, "Qualified:  %d of %d  (scores min %.1f / mean %.1f / max %.1f)\n",
			m.QualifiedCount, m.ApplicantsEvaluated,
			m.ScoreDistribution.Min, m.ScoreDistribution.Mean, m.ScoreDistribution.Max)
		for _, c := range m.UnsupportedCriteria {
			attentionColor.Fprintf(w, "Unsupported criterion: %s\n", c)
		}
		for _, e := range m.CriterionErrors {
			declinedColor.Fprintf(w, "Criterion error: %s\n", e)
		}

		qualified := r.QualifiedApplicants[m.ScholarshipName]
		if len(qualified) == 0 {
			fmt.Fprintln(w, "No qualified applicants.")
			fmt.Fprintln(w)
			continue
		}

		rows := make([][]string, 0, len(qualified))
		for _, a := range qualified {
			rows = append(rows, []string{
				a.Applicant.StudentID,
				truncate(a.Applicant.Name, 25),
				truncate(a.Applicant.Major, 25),
				fmt.Sprintf("%.2f", a.Applicant.GPA),
				fmt.Sprintf("%.1f", a.QualificationScore),
				string(a.Completeness.Status),
				colorDecision(a.AwardDecision),
			})
		}
		if err := appendRows(newTable(w, "Student ID", "Name", "Major", "GPA", "Score", "Application", "Decision"), rows); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}

	s := r.Summary
	headingColor.Fprintln(w, "Summary")
	fmt.Fprintf(w, "Applicants:            %d\n", s.TotalApplicants)
	fmt.Fprintf(w, "Scholarships reviewed: %d\n", s.ScholarshipsReviewed)
	fmt.Fprintf(w, "Total matches:         %d\n", s.TotalMatches)
	fmt.Fprintf(w, "Match rate:            %.2f\n", s.MatchRate)
	fmt.Fprintf(w, "Score ranges:          90+ %d | 80-89 %d | 70-79 %d | 60-69 %d | <60 %d\n",
		s.ScoreRanges.From90, s.ScoreRanges.From80, s.ScoreRanges.From70, s.ScoreRanges.From60, s.ScoreRanges.Below60)
	fmt.Fprintf(w, "Review completion:     %d/%d (%.1f%%)\n",
		s.ReviewCompletion.Completed, s.ReviewCompletion.Expected, s.ReviewCompletion.Rate*100)
	fmt.Fprintf(w, "Applications:          %d complete, %d in progress, %d incomplete\n",
		s.ApplicationCompletion.Complete, s.ApplicationCompletion.InProgress, s.ApplicationCompletion.Incomplete)
	fmt.Fprintf(w, "Decisions:             %d awarded, %d not awarded, %d pending\n",
		s.AwardDecisions.Awarded, s.AwardDecisions.NotAwarded, s.AwardDecisions.Pending)

	return nil
}

func decisionsTable(w io.Writer, decisions []database.AwardDecision) error {
	if len(decisions) == 0 {
		fmt.Fprintln(w, "No decisions found.")
		return nil
	}

	rows := make([][]string, 0, len(decisions))
	for i := range decisions {
		d := &decisions[i]
		rows = append(rows, []string{
			d.StudentID,
			truncate(d.ScholarshipName, 35),
			colorDecision(d),
			truncate(deref(d.Comments), 40),
			d.DecidedAt.Format("Jan 02, 2006"),
		})
	}

	return appendRows(newTable(w, "Student ID", "Scholarship", "Decision", "Comments", "Decided"), rows)
}

func submitResult(w io.Writer, r *decision.SubmitResult) error {
	d := r.Decision
	fmt.Fprintf(w, "Recorded %s for %s / %s\n", colorDecision(d), d.StudentID, d.ScholarshipName)
	if r.Award != nil {
		fmt.Fprintf(w, "Created award %s for %s\n", r.Award.ID, formatAmount(r.Award.AwardAmount))
	}
	return nil
}

func awardsTable(w io.Writer, awards []database.ScholarshipAward) error {
	if len(awards) == 0 {
		fmt.Fprintln(w, "No awards found.")
		return nil
	}

	rows := make([][]string, 0, len(awards))
	for _, a := range awards {
		rows = append(rows, []string{
			a.ID,
			a.StudentID,
			truncate(a.ScholarshipName, 35),
			formatAmount(a.AwardAmount),
			a.AwardDate.Format("Jan 02, 2006"),
			string(a.Status),
		})
	}

	return appendRows(newTable(w, "ID", "Student ID", "Scholarship", "Amount", "Date", "Status"), rows)
}

func requestsTable(w io.Writer, requests []database.InfoRequest) error {
	if len(requests) == 0 {
		fmt.Fprintln(w, "No information requests found.")
		return nil
	}

	rows := make([][]string, 0, len(requests))
	for _, r := range requests {
		rows = append(rows, []string{
			r.ID,
			r.StudentID,
			truncate(r.ReviewerName, 20),
			r.RequestType,
			r.Priority,
			string(r.Status),
			truncate(r.Details, 40),
		})
	}

	return appendRows(newTable(w, "ID", "Student ID", "Reviewer", "Type", "Priority", "Status", "Details"), rows)
}

func statsTable(w io.Writer, s *database.Stats) error {
	fmt.Fprintln(w, "Scholarship Statistics")
	fmt.Fprintln(w, strings.Repeat("-", 30))
	fmt.Fprintf(w, "Applicants:             %d\n", s.Applicants)
	fmt.Fprintf(w, "Scholarships:           %d\n", s.Scholarships)
	fmt.Fprintf(w, "Awarded:                %d\n", s.Awarded)
	fmt.Fprintf(w, "Not awarded:            %d\n", s.NotAwarded)
	fmt.Fprintf(w, "Pending:                %d\n", s.Pending)
	fmt.Fprintf(w, "Active awards:          %d\n", s.ActiveAwards)
	fmt.Fprintf(w, "Completed awards:       %d\n", s.CompletedAwards)
	fmt.Fprintf(w, "Open info requests:     %d\n", s.OpenInfoRequests)
	return nil
}

// DecisionLabel renders a decision for display; no decision shows as Pending
func DecisionLabel(d *database.AwardDecision) string {
	if d == nil {
		return "Pending"
	}
	switch d.Decision {
	case database.DecisionAwarded:
		return "Awarded"
	case database.DecisionNotAwarded:
		return "Not Awarded"
	default:
		return "Pending"
	}
}

func colorDecision(d *database.AwardDecision) string {
	label := DecisionLabel(d)
	if d == nil {
		return pendingColor.Sprint(label)
	}
	switch d.Decision {
	case database.DecisionAwarded:
		return awardedColor.Sprint(label)
	case database.DecisionNotAwarded:
		return declinedColor.Sprint(label)
	default:
		return pendingColor.Sprint(label)
	}
}

func formatAmount(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func formatDeadline(s database.Scholarship) string {
	if s.Deadline == nil {
		return report.NoDeadline
	}
	return s.Deadline.Format("2006-01-02")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/joshdeandev/sams/internal/database"
	"github.com/joshdeandev/sams/internal/prescreen"
	"github.com/joshdeandev/sams/internal/report"
)

// CSVTo writes data as CSV to the given writer
func CSVTo(w io.Writer, data any) error {
	cw := csv.NewWriter(w)

	var err error
	switch v := data.(type) {
	case *prescreen.Report:
		err = prescreenCSV(cw, v)
	case *report.ScholarshipSummary:
		err = scholarshipSummaryCSV(cw, v)
	case []database.Applicant:
		err = applicantsCSV(cw, v)
	case []database.AwardDecision:
		err = decisionsCSV(cw, v)
	default:
		return fmt.Errorf("unsupported data type for csv output: %T", data)
	}
	if err != nil {
		return err
	}

	cw.Flush()
	return cw.Error()
}

// prescreenCSV writes one row per evaluated (scholarship, applicant) pair
func prescreenCSV(cw *csv.Writer, r *prescreen.Report) error {
	if err := cw.Write([]string{
		"Scholarship", "Student ID", "Name", "Major", "GPA", "Academic Level",
		"Qualification Score", "Criteria Met", "Total Criteria", "Fully Qualified",
		"Application Status", "Award Decision", "Decision Comments",
	}); err != nil {
		return err
	}

	studentIDs := make([]string, 0, len(r.ApplicantAnalysis))
	for id := range r.ApplicantAnalysis {
		studentIDs = append(studentIDs, id)
	}
	sort.Strings(studentIDs)

	for _, m := range r.Matches {
		for _, id := range studentIDs {
			for _, a := range r.ApplicantAnalysis[id] {
				if a.ScholarshipName != m.ScholarshipName {
					continue
				}
				comments := ""
				if a.AwardDecision != nil {
					comments = deref(a.AwardDecision.Comments)
				}
				if err := cw.Write([]string{
					m.ScholarshipName,
					a.Applicant.StudentID,
					a.Applicant.Name,
					a.Applicant.Major,
					fmt.Sprintf("%.2f", a.Applicant.GPA),
					a.Applicant.AcademicLevel,
					fmt.Sprintf("%.1f", a.QualificationScore),
					fmt.Sprintf("%d", a.CriteriaMet),
					fmt.Sprintf("%d", a.TotalCriteria),
					yesNo(a.FullyQualified),
					string(a.Completeness.Status),
					DecisionLabel(a.AwardDecision),
					comments,
				}); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

func scholarshipSummaryCSV(cw *csv.Writer, s *report.ScholarshipSummary) error {
	rows := [][]string{
		{"Scholarship Report Summary"},
		{"Total Scholarships:", fmt.Sprintf("%d", s.TotalScholarships)},
		{"Total Amount:", formatAmount(s.TotalAmount)},
		{},
		{"Frequency Distribution"},
		{"Frequency", "Count"},
	}
	for _, f := range s.Frequencies() {
		rows = append(rows, []string{f, fmt.Sprintf("%d", s.FrequencyDistribution[f])})
	}
	rows = append(rows,
		[]string{},
		[]string{"Scholarship Details"},
		[]string{"Name", "Amount", "Deadline", "Frequency", "Description", "Eligibility Criteria", "Requirements"},
	)
	for _, d := range s.Scholarships {
		rows = append(rows, []string{
			d.Name,
			formatAmount(d.Amount),
			d.Deadline,
			d.Frequency,
			d.Description,
			strings.Join(d.Eligibility, "; "),
			strings.Join(d.Requirements, "; "),
		})
	}

	return cw.WriteAll(rows)
}

func applicantsCSV(cw *csv.Writer, applicants []database.Applicant) error {
	if err := cw.Write([]string{"Student ID", "Name", "Major", "GPA", "Academic Level", "Essays", "Interview"}); err != nil {
		return err
	}
	for _, a := range applicants {
		if err := cw.Write([]string{
			a.StudentID,
			a.Name,
			a.Major,
			fmt.Sprintf("%.2f", a.GPA),
			a.AcademicLevel,
			fmt.Sprintf("%d", len(a.Essays)),
			yesNo(a.HasInterview()),
		}); err != nil {
			return err
		}
	}
	return nil
}

func decisionsCSV(cw *csv.Writer, decisions []database.AwardDecision) error {
	if err := cw.Write([]string{"Student ID", "Scholarship", "Decision", "Comments", "Decided At", "Updated At"}); err != nil {
		return err
	}
	for _, d := range decisions {
		if err := cw.Write([]string{
			d.StudentID,
			d.ScholarshipName,
			string(d.Decision),
			deref(d.Comments),
			d.DecidedAt.Format("2006-01-02 15:04:05"),
			d.UpdatedAt.Format("2006-01-02 15:04:05"),
		}); err != nil {
			return err
		}
	}
	return nil
}

package eligibility

import (
	"github.com/joshdeandev/sams/internal/database"
)

// CompletionStatus buckets how much of an application is filled in
type CompletionStatus string

const (
	CompletionComplete   CompletionStatus = "complete"
	CompletionInProgress CompletionStatus = "in_progress"
	CompletionIncomplete CompletionStatus = "incomplete"
)

// Application components checked by Classify
const (
	ComponentPersonalInfo    = "personal_info"
	ComponentAcademicInfo    = "academic_info"
	ComponentEssays          = "essays"
	ComponentFinancialInfo   = "financial_info"
	ComponentAcademicHistory = "academic_history"
)

// Completeness is the derived completion state of an application
type Completeness struct {
	Percentage float64          `json:"completion_percentage"`
	Status     CompletionStatus `json:"status"`
	Missing    []string         `json:"missing_components"`
}

// Classify checks the five application components of a
func Classify(a *database.Applicant) Completeness {
	checks := []struct {
		component string
		present   bool
	}{
		{ComponentPersonalInfo, a.Name != "" && a.StudentID != ""},
		{ComponentAcademicInfo, a.Major != "" && a.AcademicLevel != ""},
		{ComponentEssays, len(a.Essays) > 0},
		{ComponentFinancialInfo, len(a.FinancialInfo) > 0},
		{ComponentAcademicHistory, len(a.AcademicHistory) > 0},
	}

	passed := 0
	missing := []string{}
	for _, c := range checks {
		if c.present {
			passed++
		} else {
			missing = append(missing, c.component)
		}
	}

	pct := 100 * float64(passed) / float64(len(checks))

	status := CompletionIncomplete
	switch {
	case pct == 100:
		status = CompletionComplete
	case pct > 50:
		status = CompletionInProgress
	}

	return Completeness{Percentage: pct, Status: status, Missing: missing}
}

package prescreen

import (
	"time"

	"github.com/joshdeandev/sams/internal/database"
	"github.com/joshdeandev/sams/internal/eligibility"
)

// Report is the result of one prescreening run
type Report struct {
	GeneratedAt         time.Time               `json:"generated_at"`
	Policy              Policy                  `json:"policy"`
	Matches             []ScholarshipMatch      `json:"matches"`
	QualifiedApplicants map[string][]Assessment `json:"qualified_applicants"`
	ApplicantAnalysis   map[string][]Assessment `json:"applicant_analysis"`
	Summary             Summary                 `json:"summary"`
}

// Policy records how ambiguous criteria were treated in this run
type Policy struct {
	UnknownCriteria       eligibility.Status `json:"unknown_criteria"`
	ZeroCriteriaQualifies bool               `json:"zero_criteria_qualifies"`
	Rules                 []string           `json:"rules"`
}

// ApplicantSnapshot is the identity portion of an assessment
type ApplicantSnapshot struct {
	Name          string  `json:"name"`
	StudentID     string  `json:"student_id"`
	Major         string  `json:"major"`
	GPA           float64 `json:"gpa"`
	AcademicLevel string  `json:"academic_level"`
}

// Review carries recorded human review data through unmodified
type Review struct {
	Essays            []database.Essay             `json:"essays"`
	InterviewNotes    *string                      `json:"interview_notes"`
	CommitteeFeedback []database.CommitteeFeedback `json:"committee_feedback"`
}

// Assessment is one applicant evaluated against one scholarship
type Assessment struct {
	ScholarshipName    string                   `json:"scholarship_name"`
	Applicant          ApplicantSnapshot        `json:"applicant"`
	QualificationScore float64                  `json:"qualification_score"`
	CriteriaMet        int                      `json:"criteria_met"`
	TotalCriteria      int                      `json:"total_criteria"`
	FullyQualified     bool                     `json:"fully_qualified"`
	Eligibility        []eligibility.Judgment   `json:"eligibility"`
	Completeness       eligibility.Completeness `json:"application_completeness"`
	Review             Review                   `json:"review"`
	// AwardDecision is nil when no decision was ever submitted, which is not the same as pending
	AwardDecision *database.AwardDecision `json:"award_decision"`
}

// ScoreDistribution summarizes scores over every evaluated applicant
type ScoreDistribution struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Mean float64 `json:"mean"`
}

// ScholarshipMatch is the per-scholarship section of a report
type ScholarshipMatch struct {
	ScholarshipName     string            `json:"scholarship_name"`
	Amount              float64           `json:"amount"`
	Frequency           string            `json:"frequency"`
	Criteria            []string          `json:"criteria"`
	ApplicantsEvaluated int               `json:"applicants_evaluated"`
	QualifiedCount      int               `json:"qualified_count"`
	ScoreDistribution   ScoreDistribution `json:"score_distribution"`
	CriterionErrors     []string          `json:"criterion_errors"`
	UnsupportedCriteria []string          `json:"unsupported_criteria"`
}

// ScoreRanges is a histogram of qualification scores
type ScoreRanges struct {
	From90  int `json:"90-100"`
	From80  int `json:"80-89"`
	From70  int `json:"70-79"`
	From60  int `json:"60-69"`
	Below60 int `json:"below_60"`
}

func (r *ScoreRanges) add(score float64) {
	switch {
	case score >= 90:
		r.From90++
	case score >= 80:
		r.From80++
	case score >= 70:
		r.From70++
	case score >= 60:
		r.From60++
	default:
		r.Below60++
	}
}

// ReviewCompletion counts academic-review and interview touchpoints
type ReviewCompletion struct {
	Expected  int     `json:"expected"`
	Completed int     `json:"completed"`
	Rate      float64 `json:"rate"`
}

// ApplicationCompletion tallies applicants per completeness bucket
type ApplicationCompletion struct {
	Complete   int `json:"complete"`
	InProgress int `json:"in_progress"`
	Incomplete int `json:"incomplete"`
}

// DecisionTally counts decisions attached to qualified pairs
type DecisionTally struct {
	Awarded    int `json:"awarded"`
	NotAwarded int `json:"not_awarded"`
	Pending    int `json:"pending"`
}

// Summary aggregates across every scholarship in the run
type Summary struct {
	TotalApplicants       int                   `json:"total_applicants"`
	ScholarshipsReviewed  int                   `json:"scholarships_reviewed"`
	TotalMatches          int                   `json:"total_matches"`
	MatchRate             float64               `json:"match_rate"`
	ScoreRanges           ScoreRanges           `json:"score_ranges"`
	ReviewCompletion      ReviewCompletion      `json:"review_completion"`
	ApplicationCompletion ApplicationCompletion `json:"application_completion"`
	AwardDecisions        DecisionTally         `json:"award_decisions"`
}

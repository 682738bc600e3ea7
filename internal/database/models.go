package database

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

var (
	ErrApplicantNotFound   = errors.New("applicant not found")
	ErrScholarshipNotFound = errors.New("scholarship not found")
	ErrInvalidDecision     = errors.New("invalid decision value")
	ErrInvalidAwardStatus  = errors.New("invalid award status")
	ErrAwardNotFound       = errors.New("award not found")
	ErrRequestNotFound     = errors.New("information request not found")
)

// Applicant is a scholarship applicant with their intake profile
type Applicant struct {
	ID                 string              `json:"id" yaml:"-"`
	Name               string              `json:"name" yaml:"name"`
	StudentID          string              `json:"student_id" yaml:"student_id"`
	NetID              *string             `json:"netid,omitempty" yaml:"netid"`
	Major              string              `json:"major" yaml:"major"`
	Minor              *string             `json:"minor,omitempty" yaml:"minor"`
	GPA                float64             `json:"gpa" yaml:"gpa"`
	AcademicLevel      string              `json:"academic_level" yaml:"academic_level"`
	ExpectedGraduation *time.Time          `json:"expected_graduation,omitempty" yaml:"expected_graduation"`
	Achievements       []Achievement       `json:"academic_achievements" yaml:"academic_achievements"`
	FinancialInfo      map[string]any      `json:"financial_info" yaml:"financial_info"`
	Essays             []Essay             `json:"essays" yaml:"essays"`
	AcademicHistory    []Term              `json:"academic_history" yaml:"academic_history"`
	InterviewNotes     *string             `json:"interview_notes,omitempty" yaml:"interview_notes"`
	CommitteeFeedback  []CommitteeFeedback `json:"committee_feedback" yaml:"committee_feedback"`
	CreatedAt          time.Time           `json:"created_at" yaml:"-"`
	UpdatedAt          time.Time           `json:"updated_at" yaml:"-"`
}

// FillDefaults replaces absent nested sections with empty ones
func (a *Applicant) FillDefaults() {
	if a.Achievements == nil {
		a.Achievements = []Achievement{}
	}
	if a.FinancialInfo == nil {
		a.FinancialInfo = map[string]any{}
	}
	if a.Essays == nil {
		a.Essays = []Essay{}
	}
	if a.AcademicHistory == nil {
		a.AcademicHistory = []Term{}
	}
	if a.CommitteeFeedback == nil {
		a.CommitteeFeedback = []CommitteeFeedback{}
	}
}

// HasInterview reports whether interview notes were recorded
func (a *Applicant) HasInterview() bool {
	return a.InterviewNotes != nil && *a.InterviewNotes != ""
}

// HasAcademicReview reports whether any essay carries an evaluation
func (a *Applicant) HasAcademicReview() bool {
	for _, e := range a.Essays {
		if e.Evaluation != nil {
			return true
		}
	}
	return false
}

// Achievement is an academic honour or publication
type Achievement struct {
	Type        string     `json:"type" yaml:"type"`
	Title       string     `json:"title,omitempty" yaml:"title"`
	Description string     `json:"description,omitempty" yaml:"description"`
	Journal     string     `json:"journal,omitempty" yaml:"journal"`
	Date        *time.Time `json:"date,omitempty" yaml:"date"`
}

// Essay is a submitted essay with an optional reviewer evaluation
type Essay struct {
	Prompt         string           `json:"prompt" yaml:"prompt"`
	Content        string           `json:"content" yaml:"content"`
	SubmissionDate *time.Time       `json:"submission_date,omitempty" yaml:"submission_date"`
	Evaluation     *EssayEvaluation `json:"evaluation,omitempty" yaml:"evaluation"`
}

// EssayEvaluation is a reviewer's score and feedback on an essay
type EssayEvaluation struct {
	Score    float64    `json:"score" yaml:"score"`
	Feedback string     `json:"feedback" yaml:"feedback"`
	Reviewer string     `json:"reviewer" yaml:"reviewer"`
	Date     *time.Time `json:"date,omitempty" yaml:"date"`
}

// Term is one academic term in an applicant's history
type Term struct {
	Term    string   `json:"term" yaml:"term"`
	Courses []Course `json:"courses" yaml:"courses"`
	GPA     *float64 `json:"gpa,omitempty" yaml:"gpa"`
}

// Course is a graded course within a term
type Course struct {
	Code  string `json:"code" yaml:"code"`
	Name  string `json:"name" yaml:"name"`
	Grade string `json:"grade" yaml:"grade"`
}

// CommitteeFeedback is one committee member's recommendation
type CommitteeFeedback struct {
	Member         string     `json:"member" yaml:"member"`
	Role           string     `json:"role,omitempty" yaml:"role"`
	Comments       string     `json:"comments" yaml:"comments"`
	Recommendation string     `json:"recommendation" yaml:"recommendation"`
	Date           *time.Time `json:"date,omitempty" yaml:"date"`
}

// Donor identifies who funds a scholarship
type Donor struct {
	Name    string `json:"name" yaml:"name"`
	Contact string `json:"contact,omitempty" yaml:"contact"`
}

// Scholarship is keyed by its unique name; decisions reference it by name
type Scholarship struct {
	ID                       string      `json:"id" yaml:"-"`
	Name                     string      `json:"name" yaml:"name"`
	Description              string      `json:"description" yaml:"description"`
	Amount                   float64     `json:"amount" yaml:"amount"`
	Frequency                string      `json:"frequency" yaml:"frequency"`
	Deadline                 *time.Time  `json:"deadline,omitempty" yaml:"deadline"`
	EligibilityCriteria      []string    `json:"eligibility_criteria" yaml:"eligibility_criteria"`
	Donor                    Donor       `json:"donor_info" yaml:"donor_info"`
	DisbursementRequirements []string    `json:"disbursement_requirements" yaml:"disbursement_requirements"`
	ReviewDates              []time.Time `json:"review_dates,omitempty" yaml:"review_dates"`
	ReportingSchedule        *string     `json:"reporting_schedule,omitempty" yaml:"reporting_schedule"`
	CreatedAt                time.Time   `json:"created_at" yaml:"-"`
	UpdatedAt                time.Time   `json:"updated_at" yaml:"-"`
}

// Decision is the human outcome for an applicant-scholarship pair.
// Any value may follow any other; there are no enforced transitions.
type Decision string

const (
	DecisionAwarded    Decision = "awarded"
	DecisionNotAwarded Decision = "not_awarded"
	DecisionPending    Decision = "pending"
)

// Valid reports whether d is a known decision value
func (d Decision) Valid() bool {
	switch d {
	case DecisionAwarded, DecisionNotAwarded, DecisionPending:
		return true
	}
	return false
}

// AwardDecision is the single stored decision for (applicant, scholarship name)
type AwardDecision struct {
	ID              string    `json:"id"`
	ApplicantID     string    `json:"applicant_id"`
	StudentID       string    `json:"student_id"`
	ScholarshipName string    `json:"scholarship_name"`
	Decision        Decision  `json:"decision"`
	Comments        *string   `json:"comments,omitempty"`
	DecidedAt       time.Time `json:"decided_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// AwardStatus is the lifecycle state of a realized award
type AwardStatus string

const (
	AwardActive    AwardStatus = "active"
	AwardCompleted AwardStatus = "completed"
	AwardCancelled AwardStatus = "cancelled"
)

// Valid reports whether s is a known award status
func (s AwardStatus) Valid() bool {
	switch s {
	case AwardActive, AwardCompleted, AwardCancelled:
		return true
	}
	return false
}

// ScholarshipAward is a realized award instance
type ScholarshipAward struct {
	ID              string      `json:"id"`
	ApplicantID     string      `json:"applicant_id"`
	StudentID       string      `json:"student_id"`
	ScholarshipName string      `json:"scholarship_name"`
	AwardAmount     float64     `json:"award_amount"`
	AwardDate       time.Time   `json:"award_date"`
	Status          AwardStatus `json:"status"`
	CreatedAt       time.Time   `json:"created_at"`
}

// RequestStatus tracks a reviewer information request
type RequestStatus string

const (
	RequestPending   RequestStatus = "pending"
	RequestFulfilled RequestStatus = "fulfilled"
)

// InfoRequest is a reviewer asking for more information about an applicant
type InfoRequest struct {
	ID               string        `json:"id"`
	ApplicantID      string        `json:"applicant_id"`
	StudentID        string        `json:"student_id"`
	ReviewerName     string        `json:"reviewer_name"`
	ReviewerEmail    *string       `json:"reviewer_email,omitempty"`
	ScholarshipName  *string       `json:"scholarship_name,omitempty"`
	RequestType      string        `json:"request_type"`
	Details          string        `json:"request_details"`
	Priority         string        `json:"priority"`
	Status           RequestStatus `json:"status"`
	RequestedAt      time.Time     `json:"requested_at"`
	FulfilledAt      *time.Time    `json:"fulfilled_at,omitempty"`
	FulfillmentNotes *string       `json:"fulfillment_notes,omitempty"`
}

// Stats represents aggregate store statistics
type Stats struct {
	Applicants       int `json:"applicants"`
	Scholarships     int `json:"scholarships"`
	Awarded          int `json:"awarded"`
	NotAwarded       int `json:"not_awarded"`
	Pending          int `json:"pending"`
	ActiveAwards     int `json:"active_awards"`
	CompletedAwards  int `json:"completed_awards"`
	OpenInfoRequests int `json:"open_info_requests"`
}

// DecisionListOptions filters ListDecisions
type DecisionListOptions struct {
	ScholarshipName *string
	Decision        *Decision
	StudentID       *string
	Limit           int
}

// AwardListOptions filters ListAwards
type AwardListOptions struct {
	ScholarshipName *string
	Status          *AwardStatus
}

// InfoRequestListOptions filters ListInfoRequests
type InfoRequestListOptions struct {
	Status    *RequestStatus
	StudentID *string
}

// NullString is a helper to convert *string to sql.NullString
func NullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// NullTime is a helper to convert *time.Time to sql.NullTime
func NullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// StringPtr converts sql.NullString to *string
func StringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}

// TimePtr converts sql.NullTime to *time.Time
func TimePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	return &nt.Time
}

// encodeJSON stores nested values as JSON text columns
func encodeJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeJSON(s string, v any) error {
	if s == "" {
		return nil
	}
	return json.Unmarshal([]byte(s), v)
}

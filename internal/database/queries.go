package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const applicantColumns = `
	id, name, student_id, netid, major, minor, gpa, academic_level, expected_graduation,
	academic_achievements, financial_info, essays, academic_history, interview_notes,
	committee_feedback, created_at, updated_at`

const scholarshipColumns = `
	id, name, description, amount, frequency, deadline, eligibility_criteria, donor_info,
	disbursement_requirements, review_dates, reporting_schedule, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

// UpsertApplicant creates the applicant or updates the existing row with the same student ID
func (db *DB) UpsertApplicant(ctx context.Context, a *Applicant) error {
	a.FillDefaults()
	if a.StudentID == "" {
		a.StudentID = fmt.Sprintf("tmp-%d", time.Now().UnixNano())
	}

	achievements, err := encodeJSON(a.Achievements)
	if err != nil {
		return fmt.Errorf("failed to encode achievements: %w", err)
	}
	financial, err := encodeJSON(a.FinancialInfo)
	if err != nil {
		return fmt.Errorf("failed to encode financial info: %w", err)
	}
	essays, err := encodeJSON(a.Essays)
	if err != nil {
		return fmt.Errorf("failed to encode essays: %w", err)
	}
	history, err := encodeJSON(a.AcademicHistory)
	if err != nil {
		return fmt.Errorf("failed to encode academic history: %w", err)
	}
	feedback, err := encodeJSON(a.CommitteeFeedback)
	if err != nil {
		return fmt.Errorf("failed to encode committee feedback: %w", err)
	}

	now := time.Now()
	_, err = db.ExecContext(ctx, `
		INSERT INTO applicants (`+applicantColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(student_id) DO UPDATE SET
			name = excluded.name,
			netid = excluded.netid,
			major = excluded.major,
			minor = excluded.minor,
			gpa = excluded.gpa,
			academic_level = excluded.academic_level,
			expected_graduation = excluded.expected_graduation,
			academic_achievements = excluded.academic_achievements,
			financial_info = excluded.financial_info,
			essays = excluded.essays,
			academic_history = excluded.academic_history,
			interview_notes = excluded.interview_notes,
			committee_feedback = excluded.committee_feedback,
			updated_at = excluded.updated_at
	`,
		uuid.New().String(), a.Name, a.StudentID, NullString(a.NetID), a.Major, NullString(a.Minor),
		a.GPA, a.AcademicLevel, NullTime(a.ExpectedGraduation),
		achievements, financial, essays, history, NullString(a.InterviewNotes), feedback,
		now, now,
	)
	if err != nil {
		return err
	}

	// The row may predate this call, so read back its identity
	return db.QueryRowContext(ctx,
		`SELECT id, created_at, updated_at FROM applicants WHERE student_id = ?`, a.StudentID,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

func scanApplicant(s rowScanner) (*Applicant, error) {
	a := &Applicant{}
	var netID, minor, interviewNotes sql.NullString
	var expectedGraduation sql.NullTime
	var achievements, financial, essays, history, feedback string

	if err := s.Scan(
		&a.ID, &a.Name, &a.StudentID, &netID, &a.Major, &minor, &a.GPA, &a.AcademicLevel,
		&expectedGraduation, &achievements, &financial, &essays, &history, &interviewNotes,
		&feedback, &a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		return nil, err
	}

	a.NetID = StringPtr(netID)
	a.Minor = StringPtr(minor)
	a.InterviewNotes = StringPtr(interviewNotes)
	a.ExpectedGraduation = TimePtr(expectedGraduation)

	if err := decodeJSON(achievements, &a.Achievements); err != nil {
		return nil, fmt.Errorf("applicant %s: bad achievements: %w", a.StudentID, err)
	}
	if err := decodeJSON(financial, &a.FinancialInfo); err != nil {
		return nil, fmt.Errorf("applicant %s: bad financial info: %w", a.StudentID, err)
	}
	if err := decodeJSON(essays, &a.Essays); err != nil {
		return nil, fmt.Errorf("applicant %s: bad essays: %w", a.StudentID, err)
	}
	if err := decodeJSON(history, &a.AcademicHistory); err != nil {
		return nil, fmt.Errorf("applicant %s: bad academic history: %w", a.StudentID, err)
	}
	if err := decodeJSON(feedback, &a.CommitteeFeedback); err != nil {
		return nil, fmt.Errorf("applicant %s: bad committee feedback: %w", a.StudentID, err)
	}
	a.FillDefaults()

	return a, nil
}

// GetApplicantByStudentID retrieves an applicant by student ID
func (db *DB) GetApplicantByStudentID(ctx context.Context, studentID string) (*Applicant, error) {
	row := db.QueryRowContext(ctx, `SELECT `+applicantColumns+` FROM applicants WHERE student_id = ?`, studentID)
	a, err := scanApplicant(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// ListApplicants retrieves all applicants, newest first
func (db *DB) ListApplicants(ctx context.Context) ([]Applicant, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT `+applicantColumns+` FROM applicants
		ORDER BY created_at DESC, student_id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var applicants []Applicant
	for rows.Next() {
		a, err := scanApplicant(rows)
		if err != nil {
			return nil, err
		}
		applicants = append(applicants, *a)
	}

	return applicants, rows.Err()
}

// UpsertScholarship creates the scholarship or updates the existing row with the same name.
// Names are the natural key referenced by award decisions.
func (db *DB) UpsertScholarship(ctx context.Context, s *Scholarship) error {
	if s.Name == "" {
		return fmt.Errorf("scholarship name is required")
	}
	if s.EligibilityCriteria == nil {
		s.EligibilityCriteria = []string{}
	}
	if s.DisbursementRequirements == nil {
		s.DisbursementRequirements = []string{}
	}

	criteria, err := encodeJSON(s.EligibilityCriteria)
	if err != nil {
		return fmt.Errorf("failed to encode criteria: %w", err)
	}
	donor, err := encodeJSON(s.Donor)
	if err != nil {
		return fmt.Errorf("failed to encode donor info: %w", err)
	}
	requirements, err := encodeJSON(s.DisbursementRequirements)
	if err != nil {
		return fmt.Errorf("failed to encode disbursement requirements: %w", err)
	}
	reviewDates := "[]"
	if len(s.ReviewDates) > 0 {
		if reviewDates, err = encodeJSON(s.ReviewDates); err != nil {
			return fmt.Errorf("failed to encode review dates: %w", err)
		}
	}

	now := time.Now()
	_, err = db.ExecContext(ctx, `
		INSERT INTO scholarships (`+scholarshipColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			description = excluded.description,
			amount = excluded.amount,
			frequency = excluded.frequency,
			deadline = excluded.deadline,
			eligibility_criteria = excluded.eligibility_criteria,
			donor_info = excluded.donor_info,
			disbursement_requirements = excluded.disbursement_requirements,
			review_dates = excluded.review_dates,
			reporting_schedule = excluded.reporting_schedule,
			updated_at = excluded.updated_at
	`,
		uuid.New().String(), s.Name, s.Description, s.Amount, s.Frequency, NullTime(s.Deadline),
		criteria, donor, requirements, reviewDates, NullString(s.ReportingSchedule), now, now,
	)
	if err != nil {
		return err
	}

	return db.QueryRowContext(ctx,
		`SELECT id, created_at, updated_at FROM scholarships WHERE name = ?`, s.Name,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

func scanScholarship(r rowScanner) (*Scholarship, error) {
	s := &Scholarship{}
	var deadline sql.NullTime
	var reportingSchedule sql.NullString
	var criteria, donor, requirements, reviewDates string

	if err := r.Scan(
		&s.ID, &s.Name, &s.Description, &s.Amount, &s.Frequency, &deadline, &criteria, &donor,
		&requirements, &reviewDates, &reportingSchedule, &s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		return nil, err
	}

	s.Deadline = TimePtr(deadline)
	s.ReportingSchedule = StringPtr(reportingSchedule)

	if err := decodeJSON(criteria, &s.EligibilityCriteria); err != nil {
		return nil, fmt.Errorf("scholarship %q: bad criteria: %w", s.Name, err)
	}
	if err := decodeJSON(donor, &s.Donor); err != nil {
		return nil, fmt.Errorf("scholarship %q: bad donor info: %w", s.Name, err)
	}
	if err := decodeJSON(requirements, &s.DisbursementRequirements); err != nil {
		return nil, fmt.Errorf("scholarship %q: bad requirements: %w", s.Name, err)
	}
	if err := decodeJSON(reviewDates, &s.ReviewDates); err != nil {
		return nil, fmt.Errorf("scholarship %q: bad review dates: %w", s.Name, err)
	}

	return s, nil
}

// GetScholarship retrieves a scholarship by name
func (db *DB) GetScholarship(ctx context.Context, name string) (*Scholarship, error) {
	row := db.QueryRowContext(ctx, `SELECT `+scholarshipColumns+` FROM scholarships WHERE name = ?`, name)
	s, err := scanScholarship(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// ScholarshipListOptions filters ListScholarships
type ScholarshipListOptions struct {
	Frequency *string
}

// ListScholarships retrieves scholarships ordered by name
func (db *DB) ListScholarships(ctx context.Context, opts ScholarshipListOptions) ([]Scholarship, error) {
	query := `SELECT ` + scholarshipColumns + ` FROM scholarships WHERE 1=1`
	args := []any{}

	if opts.Frequency != nil {
		query += " AND frequency = ?"
		args = append(args, *opts.Frequency)
	}

	query += " ORDER BY name"

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scholarships []Scholarship
	for rows.Next() {
		s, err := scanScholarship(rows)
		if err != nil {
			return nil, err
		}
		scholarships = append(scholarships, *s)
	}

	return scholarships, rows.Err()
}

// GetStats retrieves aggregate statistics
func (db *DB) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	if err := db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM applicants),
			(SELECT COUNT(*) FROM scholarships),
			(SELECT COUNT(*) FROM info_requests WHERE status = 'pending')
	`).Scan(&stats.Applicants, &stats.Scholarships, &stats.OpenInfoRequests); err != nil {
		return nil, err
	}

	if err := db.QueryRowContext(ctx, `
		SELECT
			COALESCE(SUM(CASE WHEN decision = 'awarded' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN decision = 'not_awarded' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN decision = 'pending' THEN 1 ELSE 0 END), 0)
		FROM award_decisions
	`).Scan(&stats.Awarded, &stats.NotAwarded, &stats.Pending); err != nil {
		return nil, err
	}

	if err := db.QueryRowContext(ctx, `
		SELECT
			COALESCE(SUM(CASE WHEN status = 'active' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END), 0)
		FROM scholarship_awards
	`).Scan(&stats.ActiveAwards, &stats.CompletedAwards); err != nil {
		return nil, err
	}

	return stats, nil
}

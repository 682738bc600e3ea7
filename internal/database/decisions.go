package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const decisionColumns = `
	d.id, d.applicant_id, a.student_id, d.scholarship_name, d.decision, d.comments,
	d.decided_at, d.updated_at`

func applicantIDFor(ctx context.Context, q querier, studentID string) (string, error) {
	var id string
	err := q.QueryRowContext(ctx, `SELECT id FROM applicants WHERE student_id = ?`, studentID).Scan(&id)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("%w: %s", ErrApplicantNotFound, studentID)
	}
	return id, err
}

// RecordDecision stores the decision for (student, scholarship name), replacing any
// previous one. decided_at moves only when the decision value changes.
func (db *DB) RecordDecision(ctx context.Context, studentID, scholarshipName string, decision Decision, comments *string) (*AwardDecision, error) {
	return recordDecision(ctx, db, studentID, scholarshipName, decision, comments)
}

// RecordDecision records a decision inside the transaction
func (tx *Tx) RecordDecision(ctx context.Context, studentID, scholarshipName string, decision Decision, comments *string) (*AwardDecision, error) {
	return recordDecision(ctx, tx, studentID, scholarshipName, decision, comments)
}

func recordDecision(ctx context.Context, q querier, studentID, scholarshipName string, decision Decision, comments *string) (*AwardDecision, error) {
	if !decision.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDecision, decision)
	}
	if scholarshipName == "" {
		return nil, fmt.Errorf("scholarship name is required")
	}

	applicantID, err := applicantIDFor(ctx, q, studentID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	// One statement, so a concurrent submission for the same pair never sees a half-written row
	_, err = q.ExecContext(ctx, `
		INSERT INTO award_decisions (id, applicant_id, scholarship_name, decision, comments, decided_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(applicant_id, scholarship_name) DO UPDATE SET
			decided_at = CASE
				WHEN award_decisions.decision = excluded.decision THEN award_decisions.decided_at
				ELSE excluded.decided_at
			END,
			decision = excluded.decision,
			comments = excluded.comments,
			updated_at = excluded.updated_at
	`, uuid.New().String(), applicantID, scholarshipName, string(decision), NullString(comments), now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to record decision: %w", err)
	}

	row := q.QueryRowContext(ctx, `
		SELECT `+decisionColumns+`
		FROM award_decisions d JOIN applicants a ON a.id = d.applicant_id
		WHERE d.applicant_id = ? AND d.scholarship_name = ?
	`, applicantID, scholarshipName)
	return scanDecision(row)
}

func scanDecision(s rowScanner) (*AwardDecision, error) {
	d := &AwardDecision{}
	var decision string
	var comments sql.NullString

	if err := s.Scan(
		&d.ID, &d.ApplicantID, &d.StudentID, &d.ScholarshipName, &decision, &comments,
		&d.DecidedAt, &d.UpdatedAt,
	); err != nil {
		return nil, err
	}

	d.Decision = Decision(decision)
	d.Comments = StringPtr(comments)
	return d, nil
}

// GetDecision returns the stored decision, or nil when none was ever submitted.
// An absent decision is distinct from a pending one.
func (db *DB) GetDecision(ctx context.Context, studentID, scholarshipName string) (*AwardDecision, error) {
	row := db.QueryRowContext(ctx, `
		SELECT `+decisionColumns+`
		FROM award_decisions d JOIN applicants a ON a.id = d.applicant_id
		WHERE a.student_id = ? AND d.scholarship_name = ?
	`, studentID, scholarshipName)

	d, err := scanDecision(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

// ListDecisions retrieves decisions, most recently updated first
func (db *DB) ListDecisions(ctx context.Context, opts DecisionListOptions) ([]AwardDecision, error) {
	query := `
		SELECT ` + decisionColumns + `
		FROM award_decisions d JOIN applicants a ON a.id = d.applicant_id
		WHERE 1=1
	`
	args := []any{}

	if opts.ScholarshipName != nil {
		query += " AND d.scholarship_name = ?"
		args = append(args, *opts.ScholarshipName)
	}
	if opts.Decision != nil {
		query += " AND d.decision = ?"
		args = append(args, string(*opts.Decision))
	}
	if opts.StudentID != nil {
		query += " AND a.student_id = ?"
		args = append(args, *opts.StudentID)
	}

	query += " ORDER BY d.updated_at DESC, a.student_id ASC"

	if opts.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", opts.Limit)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var decisions []AwardDecision
	for rows.Next() {
		d, err := scanDecision(rows)
		if err != nil {
			return nil, err
		}
		decisions = append(decisions, *d)
	}

	return decisions, rows.Err()
}

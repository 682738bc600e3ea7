package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const awardColumns = `
	w.id, w.applicant_id, a.student_id, w.scholarship_name, w.award_amount, w.award_date,
	w.status, w.created_at`

// CreateAward inserts a realized award for award.StudentID
func (db *DB) CreateAward(ctx context.Context, award *ScholarshipAward) error {
	return createAward(ctx, db, award)
}

// CreateAward inserts a realized award inside the transaction
func (tx *Tx) CreateAward(ctx context.Context, award *ScholarshipAward) error {
	return createAward(ctx, tx, award)
}

func createAward(ctx context.Context, q querier, award *ScholarshipAward) error {
	if award.Status == "" {
		award.Status = AwardActive
	}
	if !award.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidAwardStatus, award.Status)
	}

	applicantID, err := applicantIDFor(ctx, q, award.StudentID)
	if err != nil {
		return err
	}

	now := time.Now()
	if award.ID == "" {
		award.ID = uuid.New().String()
	}
	if award.AwardDate.IsZero() {
		award.AwardDate = now
	}
	award.ApplicantID = applicantID
	award.CreatedAt = now

	_, err = q.ExecContext(ctx, `
		INSERT INTO scholarship_awards (id, applicant_id, scholarship_name, award_amount, award_date, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, award.ID, award.ApplicantID, award.ScholarshipName, award.AwardAmount, award.AwardDate,
		string(award.Status), award.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create award: %w", err)
	}
	return nil
}

// ListAwards retrieves awards, newest first
func (db *DB) ListAwards(ctx context.Context, opts AwardListOptions) ([]ScholarshipAward, error) {
	query := `
		SELECT ` + awardColumns + `
		FROM scholarship_awards w JOIN applicants a ON a.id = w.applicant_id
		WHERE 1=1
	`
	args := []any{}

	if opts.ScholarshipName != nil {
		query += " AND w.scholarship_name = ?"
		args = append(args, *opts.ScholarshipName)
	}
	if opts.Status != nil {
		query += " AND w.status = ?"
		args = append(args, string(*opts.Status))
	}

	query += " ORDER BY w.award_date DESC, w.id"

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var awards []ScholarshipAward
	for rows.Next() {
		var w ScholarshipAward
		var status string
		if err := rows.Scan(
			&w.ID, &w.ApplicantID, &w.StudentID, &w.ScholarshipName, &w.AwardAmount, &w.AwardDate,
			&status, &w.CreatedAt,
		); err != nil {
			return nil, err
		}
		w.Status = AwardStatus(status)
		awards = append(awards, w)
	}

	return awards, rows.Err()
}

// UpdateAwardStatus moves an award to a new status
func (db *DB) UpdateAwardStatus(ctx context.Context, id string, status AwardStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidAwardStatus, status)
	}

	res, err := db.ExecContext(ctx, `UPDATE scholarship_awards SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return err
	}
	return requireAffected(res, ErrAwardNotFound, id)
}

func requireAffected(res sql.Result, notFound error, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", notFound, id)
	}
	return nil
}

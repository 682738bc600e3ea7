package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const requestColumns = `
	r.id, r.applicant_id, a.student_id, r.reviewer_name, r.reviewer_email, r.scholarship_name,
	r.request_type, r.request_details, r.priority, r.status, r.requested_at, r.fulfilled_at,
	r.fulfillment_notes`

// CreateInfoRequest logs a reviewer's request for more information about req.StudentID
func (db *DB) CreateInfoRequest(ctx context.Context, req *InfoRequest) error {
	if req.ReviewerName == "" {
		return fmt.Errorf("reviewer name is required")
	}
	if req.RequestType == "" {
		return fmt.Errorf("request type is required")
	}

	applicantID, err := applicantIDFor(ctx, db, req.StudentID)
	if err != nil {
		return err
	}

	req.ID = uuid.New().String()
	req.ApplicantID = applicantID
	req.Status = RequestPending
	req.RequestedAt = time.Now()
	if req.Priority == "" {
		req.Priority = "normal"
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO info_requests (
			id, applicant_id, reviewer_name, reviewer_email, scholarship_name,
			request_type, request_details, priority, status, requested_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, req.ID, req.ApplicantID, req.ReviewerName, NullString(req.ReviewerEmail), NullString(req.ScholarshipName),
		req.RequestType, req.Details, req.Priority, string(req.Status), req.RequestedAt)
	if err != nil {
		return fmt.Errorf("failed to create information request: %w", err)
	}
	return nil
}

// ListInfoRequests retrieves requests, newest first
func (db *DB) ListInfoRequests(ctx context.Context, opts InfoRequestListOptions) ([]InfoRequest, error) {
	query := `
		SELECT ` + requestColumns + `
		FROM info_requests r JOIN applicants a ON a.id = r.applicant_id
		WHERE 1=1
	`
	args := []any{}

	if opts.Status != nil {
		query += " AND r.status = ?"
		args = append(args, string(*opts.Status))
	}
	if opts.StudentID != nil {
		query += " AND a.student_id = ?"
		args = append(args, *opts.StudentID)
	}

	query += " ORDER BY r.requested_at DESC, r.id"

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []InfoRequest
	for rows.Next() {
		var r InfoRequest
		var email, scholarship, notes sql.NullString
		var fulfilledAt sql.NullTime
		var status string
		if err := rows.Scan(
			&r.ID, &r.ApplicantID, &r.StudentID, &r.ReviewerName, &email, &scholarship,
			&r.RequestType, &r.Details, &r.Priority, &status, &r.RequestedAt, &fulfilledAt, &notes,
		); err != nil {
			return nil, err
		}
		r.ReviewerEmail = StringPtr(email)
		r.ScholarshipName = StringPtr(scholarship)
		r.FulfillmentNotes = StringPtr(notes)
		r.FulfilledAt = TimePtr(fulfilledAt)
		r.Status = RequestStatus(status)
		requests = append(requests, r)
	}

	return requests, rows.Err()
}

// FulfillInfoRequest marks a request fulfilled
func (db *DB) FulfillInfoRequest(ctx context.Context, id string, notes *string) error {
	res, err := db.ExecContext(ctx, `
		UPDATE info_requests SET status = ?, fulfilled_at = ?, fulfillment_notes = ?
		WHERE id = ?
	`, string(RequestFulfilled), time.Now(), NullString(notes), id)
	if err != nil {
		return err
	}
	return requireAffected(res, ErrRequestNotFound, id)
}

// ClearInfoRequests deletes fulfilled requests, or every request when all is set
func (db *DB) ClearInfoRequests(ctx context.Context, all bool) (int64, error) {
	query := `DELETE FROM info_requests WHERE status = 'fulfilled'`
	if all {
		query = `DELETE FROM info_requests`
	}

	res, err := db.ExecContext(ctx, query)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

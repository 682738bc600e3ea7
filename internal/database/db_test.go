package database

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func setupTestDB(t *testing.T) (*DB, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "sams-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	dbPath := filepath.Join(tmpDir, "test.db")
	db, err := Open(dbPath)
	if err != nil {
		os.RemoveAll(tmpDir)
		t.Fatalf("failed to open database: %v", err)
	}

	cleanup := func() {
		db.Close()
		os.RemoveAll(tmpDir)
	}

	return db, cleanup
}

func seedApplicant(t *testing.T, db *DB, studentID, name string) *Applicant {
	t.Helper()
	a := &Applicant{
		Name:          name,
		StudentID:     studentID,
		Major:         "Systems Engineering",
		GPA:           3.8,
		AcademicLevel: "Senior",
	}
	if err := db.UpsertApplicant(context.Background(), a); err != nil {
		t.Fatalf("UpsertApplicant failed: %v", err)
	}
	return a
}

func TestOpen(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	for _, table := range []string{"applicants", "scholarships", "award_decisions", "scholarship_awards", "info_requests"} {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
		if err != nil {
			t.Fatalf("failed to query tables: %v", err)
		}
		if count != 1 {
			t.Errorf("expected %s table to exist", table)
		}
	}

	if err := db.Health(context.Background()); err != nil {
		t.Errorf("Health failed: %v", err)
	}
}

func TestApplicantUpsert(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	notes := "Strong leadership"
	a := &Applicant{
		Name:           "John Doe",
		StudentID:      "12345678",
		Major:          "Systems Engineering",
		GPA:            3.8,
		AcademicLevel:  "Senior",
		InterviewNotes: &notes,
		Essays: []Essay{
			{Prompt: "Goals", Content: "...", Evaluation: &EssayEvaluation{Score: 9.5, Reviewer: "Dr. Smith"}},
		},
	}
	if err := db.UpsertApplicant(ctx, a); err != nil {
		t.Fatalf("UpsertApplicant failed: %v", err)
	}
	if a.ID == "" {
		t.Fatal("expected ID to be set after upsert")
	}
	firstID := a.ID

	fetched, err := db.GetApplicantByStudentID(ctx, "12345678")
	if err != nil {
		t.Fatalf("GetApplicantByStudentID failed: %v", err)
	}
	if fetched == nil {
		t.Fatal("expected applicant, got nil")
	}
	if fetched.Major != "Systems Engineering" || fetched.GPA != 3.8 {
		t.Errorf("unexpected applicant: %+v", fetched)
	}
	if !fetched.HasInterview() || !fetched.HasAcademicReview() {
		t.Error("expected interview and academic review to round-trip")
	}
	if fetched.FinancialInfo == nil || fetched.AcademicHistory == nil {
		t.Error("expected absent nested sections to default to empty")
	}

	// Same student ID updates in place
	updated := &Applicant{Name: "John Doe", StudentID: "12345678", Major: "Computer Science", GPA: 3.9}
	if err := db.UpsertApplicant(ctx, updated); err != nil {
		t.Fatalf("second UpsertApplicant failed: %v", err)
	}
	if updated.ID != firstID {
		t.Errorf("expected ID %s to be preserved, got %s", firstID, updated.ID)
	}

	applicants, err := db.ListApplicants(ctx)
	if err != nil {
		t.Fatalf("ListApplicants failed: %v", err)
	}
	if len(applicants) != 1 {
		t.Fatalf("expected 1 applicant, got %d", len(applicants))
	}
	if applicants[0].Major != "Computer Science" {
		t.Errorf("expected updated major, got %s", applicants[0].Major)
	}

	missing, err := db.GetApplicantByStudentID(ctx, "nobody")
	if err != nil {
		t.Fatalf("GetApplicantByStudentID failed: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for unknown student")
	}
}

func TestScholarshipUpsertByName(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	deadline := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	s := &Scholarship{
		Name:                "Engineering Excellence Scholarship",
		Amount:              5000,
		Frequency:           "annual",
		Deadline:            &deadline,
		EligibilityCriteria: []string{"3.5+ GPA", "Engineering major"},
		Donor:               Donor{Name: "Engineering Industry Association"},
	}
	if err := db.UpsertScholarship(ctx, s); err != nil {
		t.Fatalf("UpsertScholarship failed: %v", err)
	}

	again := &Scholarship{Name: s.Name, Amount: 6000, Frequency: "annual"}
	if err := db.UpsertScholarship(ctx, again); err != nil {
		t.Fatalf("second UpsertScholarship failed: %v", err)
	}
	if again.ID != s.ID {
		t.Errorf("expected one row per name, got ids %s and %s", s.ID, again.ID)
	}

	other := &Scholarship{Name: "CS Leadership Scholarship", Amount: 3000, Frequency: "semester"}
	if err := db.UpsertScholarship(ctx, other); err != nil {
		t.Fatalf("UpsertScholarship failed: %v", err)
	}

	all, err := db.ListScholarships(ctx, ScholarshipListOptions{})
	if err != nil {
		t.Fatalf("ListScholarships failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 scholarships, got %d", len(all))
	}

	annual := "annual"
	filtered, err := db.ListScholarships(ctx, ScholarshipListOptions{Frequency: &annual})
	if err != nil {
		t.Fatalf("ListScholarships failed: %v", err)
	}
	if len(filtered) != 1 || filtered[0].Amount != 6000 {
		t.Errorf("unexpected filtered scholarships: %+v", filtered)
	}

	if err := db.UpsertScholarship(ctx, &Scholarship{}); err == nil {
		t.Error("expected error for unnamed scholarship")
	}
}

func TestRecordDecision_Idempotent(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()
	seedApplicant(t, db, "S1", "Student One")

	comment := "ok"
	first, err := db.RecordDecision(ctx, "S1", "X", DecisionAwarded, &comment)
	if err != nil {
		t.Fatalf("RecordDecision failed: %v", err)
	}
	second, err := db.RecordDecision(ctx, "S1", "X", DecisionAwarded, &comment)
	if err != nil {
		t.Fatalf("RecordDecision failed: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("expected same row, got %s and %s", first.ID, second.ID)
	}
	if !first.DecidedAt.Equal(second.DecidedAt) {
		t.Errorf("decided_at moved on unchanged decision: %v -> %v", first.DecidedAt, second.DecidedAt)
	}

	decisions, err := db.ListDecisions(ctx, DecisionListOptions{})
	if err != nil {
		t.Fatalf("ListDecisions failed: %v", err)
	}
	if len(decisions) != 1 {
		t.Errorf("expected 1 decision, got %d", len(decisions))
	}
}

func TestRecordDecision_Overwrite(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()
	seedApplicant(t, db, "S1", "Student One")

	pending, err := db.RecordDecision(ctx, "S1", "X", DecisionPending, nil)
	if err != nil {
		t.Fatalf("RecordDecision failed: %v", err)
	}

	time.Sleep(5 * time.Millisecond)

	comment := "ok"
	awarded, err := db.RecordDecision(ctx, "S1", "X", DecisionAwarded, &comment)
	if err != nil {
		t.Fatalf("RecordDecision failed: %v", err)
	}

	if awarded.Decision != DecisionAwarded {
		t.Errorf("expected awarded, got %s", awarded.Decision)
	}
	if awarded.Comments == nil || *awarded.Comments != "ok" {
		t.Errorf("expected comments 'ok', got %v", awarded.Comments)
	}
	if !awarded.DecidedAt.After(pending.DecidedAt) {
		t.Errorf("expected decided_at to move when decision changed")
	}

	var rows int
	if err := db.QueryRow(`SELECT COUNT(*) FROM award_decisions`).Scan(&rows); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if rows != 1 {
		t.Errorf("expected exactly 1 row, got %d", rows)
	}

	// Any value may follow any other
	back, err := db.RecordDecision(ctx, "S1", "X", DecisionPending, nil)
	if err != nil {
		t.Fatalf("RecordDecision failed: %v", err)
	}
	if back.Decision != DecisionPending || back.Comments != nil {
		t.Errorf("expected pending with no comments, got %+v", back)
	}
}

func TestGetDecision_AbsentVsPending(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()
	seedApplicant(t, db, "S1", "Student One")

	absent, err := db.GetDecision(ctx, "S1", "X")
	if err != nil {
		t.Fatalf("GetDecision failed: %v", err)
	}
	if absent != nil {
		t.Fatalf("expected no decision, got %+v", absent)
	}

	if _, err := db.RecordDecision(ctx, "S1", "X", DecisionPending, nil); err != nil {
		t.Fatalf("RecordDecision failed: %v", err)
	}

	pending, err := db.GetDecision(ctx, "S1", "X")
	if err != nil {
		t.Fatalf("GetDecision failed: %v", err)
	}
	if pending == nil || pending.Decision != DecisionPending {
		t.Errorf("expected pending decision, got %+v", pending)
	}
	if pending != nil && pending.StudentID != "S1" {
		t.Errorf("expected student S1, got %s", pending.StudentID)
	}
}

func TestRecordDecision_Errors(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()
	seedApplicant(t, db, "S1", "Student One")

	tests := []struct {
		name      string
		studentID string
		decision  Decision
		wantErr   error
	}{
		{"unknown decision", "S1", Decision("maybe"), ErrInvalidDecision},
		{"unknown applicant", "S9", DecisionAwarded, ErrApplicantNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := db.RecordDecision(ctx, tt.studentID, "X", tt.decision, nil)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestListDecisions_Filters(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()
	seedApplicant(t, db, "S1", "Student One")
	seedApplicant(t, db, "S2", "Student Two")

	mustRecord := func(studentID, scholarship string, d Decision) {
		if _, err := db.RecordDecision(ctx, studentID, scholarship, d, nil); err != nil {
			t.Fatalf("RecordDecision failed: %v", err)
		}
	}
	mustRecord("S1", "X", DecisionAwarded)
	mustRecord("S2", "X", DecisionNotAwarded)
	mustRecord("S1", "Y", DecisionAwarded)

	x := "X"
	awarded := DecisionAwarded
	tests := []struct {
		name string
		opts DecisionListOptions
		want int
	}{
		{"all", DecisionListOptions{}, 3},
		{"by scholarship", DecisionListOptions{ScholarshipName: &x}, 2},
		{"by decision", DecisionListOptions{Decision: &awarded}, 2},
		{"both", DecisionListOptions{ScholarshipName: &x, Decision: &awarded}, 1},
		{"limit", DecisionListOptions{Limit: 1}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := db.ListDecisions(ctx, tt.opts)
			if err != nil {
				t.Fatalf("ListDecisions failed: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("expected %d decisions, got %d", tt.want, len(got))
			}
		})
	}
}

func TestTransaction_RollsBack(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()
	seedApplicant(t, db, "S1", "Student One")

	boom := errors.New("boom")
	err := db.Transaction(ctx, func(tx *Tx) error {
		if _, err := tx.RecordDecision(ctx, "S1", "X", DecisionAwarded, nil); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	d, err := db.GetDecision(ctx, "S1", "X")
	if err != nil {
		t.Fatalf("GetDecision failed: %v", err)
	}
	if d != nil {
		t.Error("expected decision to be rolled back")
	}
}

func TestAwards(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()
	seedApplicant(t, db, "S1", "Student One")

	award := &ScholarshipAward{StudentID: "S1", ScholarshipName: "X", AwardAmount: 5000}
	if err := db.CreateAward(ctx, award); err != nil {
		t.Fatalf("CreateAward failed: %v", err)
	}
	if award.Status != AwardActive {
		t.Errorf("expected default status active, got %s", award.Status)
	}

	if err := db.UpdateAwardStatus(ctx, award.ID, AwardCompleted); err != nil {
		t.Fatalf("UpdateAwardStatus failed: %v", err)
	}

	completed := AwardCompleted
	awards, err := db.ListAwards(ctx, AwardListOptions{Status: &completed})
	if err != nil {
		t.Fatalf("ListAwards failed: %v", err)
	}
	if len(awards) != 1 || awards[0].StudentID != "S1" {
		t.Errorf("unexpected awards: %+v", awards)
	}

	if err := db.UpdateAwardStatus(ctx, "missing", AwardCompleted); !errors.Is(err, ErrAwardNotFound) {
		t.Errorf("expected ErrAwardNotFound, got %v", err)
	}
	if err := db.UpdateAwardStatus(ctx, award.ID, AwardStatus("lost")); !errors.Is(err, ErrInvalidAwardStatus) {
		t.Errorf("expected ErrInvalidAwardStatus, got %v", err)
	}
}

func TestInfoRequests(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()
	seedApplicant(t, db, "S1", "Student One")

	req := &InfoRequest{
		StudentID:    "S1",
		ReviewerName: "Dr. Smith",
		RequestType:  "transcript",
		Details:      "Need fall transcript",
	}
	if err := db.CreateInfoRequest(ctx, req); err != nil {
		t.Fatalf("CreateInfoRequest failed: %v", err)
	}
	if req.Status != RequestPending || req.Priority != "normal" {
		t.Errorf("unexpected defaults: %+v", req)
	}

	pending := RequestPending
	open, err := db.ListInfoRequests(ctx, InfoRequestListOptions{Status: &pending})
	if err != nil {
		t.Fatalf("ListInfoRequests failed: %v", err)
	}
	if len(open) != 1 {
		t.Fatalf("expected 1 open request, got %d", len(open))
	}

	notes := "Received"
	if err := db.FulfillInfoRequest(ctx, req.ID, &notes); err != nil {
		t.Fatalf("FulfillInfoRequest failed: %v", err)
	}

	stats, err := db.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if stats.OpenInfoRequests != 0 {
		t.Errorf("expected 0 open requests, got %d", stats.OpenInfoRequests)
	}

	n, err := db.ClearInfoRequests(ctx, false)
	if err != nil {
		t.Fatalf("ClearInfoRequests failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 cleared, got %d", n)
	}

	if err := db.FulfillInfoRequest(ctx, req.ID, nil); !errors.Is(err, ErrRequestNotFound) {
		t.Errorf("expected ErrRequestNotFound, got %v", err)
	}
}

func TestGetStats(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	empty, err := db.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if *empty != (Stats{}) {
		t.Errorf("expected zero stats, got %+v", empty)
	}

	seedApplicant(t, db, "S1", "Student One")
	seedApplicant(t, db, "S2", "Student Two")
	if _, err := db.RecordDecision(ctx, "S1", "X", DecisionAwarded, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := db.RecordDecision(ctx, "S2", "X", DecisionPending, nil); err != nil {
		t.Fatal(err)
	}

	stats, err := db.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if stats.Applicants != 2 || stats.Awarded != 1 || stats.Pending != 1 || stats.NotAwarded != 0 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

package prescreen

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/joshdeandev/sams/internal/database"
	"github.com/joshdeandev/sams/internal/eligibility"
	"github.com/joshdeandev/sams/internal/logger"
)

type memDecisions map[string]*database.AwardDecision

func (m memDecisions) GetDecision(ctx context.Context, studentID, scholarshipName string) (*database.AwardDecision, error) {
	return m[studentID+"|"+scholarshipName], nil
}

type failingDecisions struct{}

func (failingDecisions) GetDecision(ctx context.Context, studentID, scholarshipName string) (*database.AwardDecision, error) {
	return nil, errors.New("store offline")
}

func newAggregator(store DecisionStore) *Aggregator {
	scorer := eligibility.NewScorer(
		eligibility.NewEvaluator(eligibility.Options{AssumeFullTimeEnrollment: true}),
		eligibility.ScorerConfig{},
	)
	return New(scorer, store, logger.Nop())
}

func applicant(id, major string, gpa float64) database.Applicant {
	return database.Applicant{Name: "Student " + id, StudentID: id, Major: major, GPA: gpa, AcademicLevel: "Senior"}
}

func scholarship(name string, criteria ...string) database.Scholarship {
	return database.Scholarship{Name: name, Amount: 1000, Frequency: "annual", EligibilityCriteria: criteria}
}

func TestAggregate_QualifiedScenario(t *testing.T) {
	ag := newAggregator(memDecisions{})
	applicants := []database.Applicant{applicant("S1", "Systems Engineering", 3.8)}

	report, err := ag.Aggregate(context.Background(),
		[]database.Scholarship{scholarship("X", "3.5+ GPA", "Engineering major")}, applicants, "")
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	qualified := report.QualifiedApplicants["X"]
	if len(qualified) != 1 {
		t.Fatalf("expected 1 qualified applicant, got %d", len(qualified))
	}
	if qualified[0].QualificationScore != 100 || !qualified[0].FullyQualified || qualified[0].CriteriaMet != 2 {
		t.Errorf("unexpected assessment: %+v", qualified[0])
	}
	if qualified[0].AwardDecision != nil {
		t.Error("expected no decision")
	}
}

func TestAggregate_PartialScoreExcluded(t *testing.T) {
	ag := newAggregator(memDecisions{})
	applicants := []database.Applicant{applicant("S1", "Systems Engineering", 3.8)}

	report, err := ag.Aggregate(context.Background(),
		[]database.Scholarship{scholarship("X", "3.9+ GPA", "Engineering major")}, applicants, "")
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	if len(report.QualifiedApplicants["X"]) != 0 {
		t.Errorf("expected no qualified applicants")
	}
	analysis := report.ApplicantAnalysis["S1"]
	if len(analysis) != 1 {
		t.Fatalf("expected applicant in analysis, got %d entries", len(analysis))
	}
	if analysis[0].QualificationScore != 50 || analysis[0].FullyQualified {
		t.Errorf("unexpected assessment: %+v", analysis[0])
	}
	if !analysis[0].Eligibility[1].IsMet || analysis[0].Eligibility[0].IsMet {
		t.Errorf("unexpected eligibility detail: %+v", analysis[0].Eligibility)
	}
}

func TestAggregate_MatchCountsOverlap(t *testing.T) {
	ag := newAggregator(memDecisions{})
	applicants := []database.Applicant{
		applicant("A", "Computer Engineering", 3.9), // both
		applicant("B", "Mechanical Engineering", 3.6),
		applicant("C", "Civil Engineering", 3.7),
		applicant("D", "Computer Science", 3.5),
		applicant("E", "History", 2.0),
	}
	scholarships := []database.Scholarship{
		scholarship("X", "3.5+ GPA", "Engineering major"),
		scholarship("Y", "3.5+ GPA", "Computer major"),
	}

	report, err := ag.Aggregate(context.Background(), scholarships, applicants, "")
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	if n := len(report.QualifiedApplicants["X"]); n != 3 {
		t.Errorf("expected 3 qualified for X, got %d", n)
	}
	if n := len(report.QualifiedApplicants["Y"]); n != 2 {
		t.Errorf("expected 2 qualified for Y, got %d", n)
	}
	if report.Summary.TotalMatches != 5 {
		t.Errorf("expected 5 matches, got %d", report.Summary.TotalMatches)
	}
	if report.Summary.MatchRate != 1.0 {
		t.Errorf("expected match rate 1.0, got %v", report.Summary.MatchRate)
	}
	if report.Summary.ScholarshipsReviewed != 2 || report.Summary.TotalApplicants != 5 {
		t.Errorf("unexpected summary: %+v", report.Summary)
	}
	if len(report.ApplicantAnalysis["A"]) != 2 {
		t.Errorf("expected applicant A assessed against both scholarships")
	}
}

func TestAggregate_SortedByScoreStable(t *testing.T) {
	ag := newAggregator(memDecisions{})
	applicants := []database.Applicant{
		applicant("first", "Engineering", 3.6),
		applicant("second", "Engineering", 3.9),
		applicant("third", "Engineering", 3.7),
	}

	report, err := ag.Aggregate(context.Background(),
		[]database.Scholarship{scholarship("X", "3.5+ GPA", "Engineering major")}, applicants, "")
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	// All score 100, so input order is kept
	var got []string
	for _, a := range report.QualifiedApplicants["X"] {
		got = append(got, a.Applicant.StudentID)
	}
	want := []string{"first", "second", "third"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestAggregate_ScoreDistributionCoversAll(t *testing.T) {
	ag := newAggregator(memDecisions{})
	applicants := []database.Applicant{
		applicant("S1", "Engineering", 3.8), // 100
		applicant("S2", "History", 3.8),     // 50
		applicant("S3", "History", 2.0),     // 0
	}

	report, err := ag.Aggregate(context.Background(),
		[]database.Scholarship{scholarship("X", "3.5+ GPA", "Engineering major")}, applicants, "")
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	dist := report.Matches[0].ScoreDistribution
	if dist.Min != 0 || dist.Max != 100 || dist.Mean != 50 {
		t.Errorf("unexpected distribution: %+v", dist)
	}
	ranges := report.Summary.ScoreRanges
	if ranges.From90 != 1 || ranges.Below60 != 2 {
		t.Errorf("unexpected score ranges: %+v", ranges)
	}
}

func TestAggregate_DecisionsMerged(t *testing.T) {
	comment := "Strong fit"
	store := memDecisions{
		"S1|X": {StudentID: "S1", ScholarshipName: "X", Decision: database.DecisionAwarded, Comments: &comment, DecidedAt: time.Now()},
		"S2|X": {StudentID: "S2", ScholarshipName: "X", Decision: database.DecisionPending, DecidedAt: time.Now()},
		// Unqualified pairs never reach the tally
		"S3|X": {StudentID: "S3", ScholarshipName: "X", Decision: database.DecisionNotAwarded, DecidedAt: time.Now()},
	}
	ag := newAggregator(store)
	applicants := []database.Applicant{
		applicant("S1", "Engineering", 3.8),
		applicant("S2", "Engineering", 3.8),
		applicant("S3", "History", 3.8),
		applicant("S4", "Engineering", 3.8),
	}

	report, err := ag.Aggregate(context.Background(),
		[]database.Scholarship{scholarship("X", "3.5+ GPA", "Engineering major")}, applicants, "")
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	tally := report.Summary.AwardDecisions
	if tally.Awarded != 1 || tally.Pending != 1 || tally.NotAwarded != 0 {
		t.Errorf("unexpected tally: %+v", tally)
	}
	if report.ApplicantAnalysis["S4"][0].AwardDecision != nil {
		t.Error("expected absent decision to stay nil")
	}
	if report.ApplicantAnalysis["S3"][0].AwardDecision == nil {
		t.Error("expected decision attached to unqualified pair")
	}
}

func TestAggregate_Degenerate(t *testing.T) {
	ag := newAggregator(memDecisions{})
	ctx := context.Background()

	t.Run("no applicants", func(t *testing.T) {
		report, err := ag.Aggregate(ctx, []database.Scholarship{scholarship("X", "3.5+ GPA")}, nil, "")
		if err != nil {
			t.Fatalf("Aggregate failed: %v", err)
		}
		if report.Summary.MatchRate != 0 || report.Summary.ReviewCompletion.Rate != 0 {
			t.Errorf("expected zero rates, got %+v", report.Summary)
		}
		if report.Matches[0].ScoreDistribution != (ScoreDistribution{}) {
			t.Errorf("expected zero distribution, got %+v", report.Matches[0].ScoreDistribution)
		}
	})

	t.Run("no scholarships", func(t *testing.T) {
		report, err := ag.Aggregate(ctx, nil, []database.Applicant{applicant("S1", "Engineering", 3.8)}, "")
		if err != nil {
			t.Fatalf("Aggregate failed: %v", err)
		}
		if len(report.Matches) != 0 || report.Summary.TotalMatches != 0 {
			t.Errorf("expected empty report, got %+v", report)
		}
		if report.Summary.ApplicationCompletion.Incomplete != 1 {
			t.Errorf("expected applicant tallied, got %+v", report.Summary.ApplicationCompletion)
		}
	})

	t.Run("zero criteria qualifies nobody", func(t *testing.T) {
		report, err := ag.Aggregate(ctx, []database.Scholarship{scholarship("Empty")},
			[]database.Applicant{applicant("S1", "Engineering", 3.8)}, "")
		if err != nil {
			t.Fatalf("Aggregate failed: %v", err)
		}
		if len(report.QualifiedApplicants["Empty"]) != 0 {
			t.Error("expected nobody to qualify")
		}
		if report.ApplicantAnalysis["S1"][0].QualificationScore != 0 {
			t.Error("expected score 0")
		}
	})

	t.Run("unknown filter", func(t *testing.T) {
		report, err := ag.Aggregate(ctx, []database.Scholarship{scholarship("X", "3.5+ GPA")},
			[]database.Applicant{applicant("S1", "Engineering", 3.8)}, "Nope")
		if err != nil {
			t.Fatalf("Aggregate failed: %v", err)
		}
		if report.Summary.ScholarshipsReviewed != 0 || len(report.Matches) != 0 {
			t.Errorf("expected empty report, got %+v", report.Summary)
		}
	})

	t.Run("missing nested fields", func(t *testing.T) {
		a := database.Applicant{Name: "Bare", StudentID: "S9"}
		report, err := ag.Aggregate(ctx, []database.Scholarship{scholarship("X", "3.5+ GPA")}, []database.Applicant{a}, "")
		if err != nil {
			t.Fatalf("Aggregate failed: %v", err)
		}
		review := report.ApplicantAnalysis["S9"][0].Review
		if review.Essays == nil || review.CommitteeFeedback == nil {
			t.Error("expected empty review collections")
		}
	})
}

func TestAggregate_Filter(t *testing.T) {
	ag := newAggregator(memDecisions{})
	scholarships := []database.Scholarship{
		scholarship("X", "3.5+ GPA"),
		scholarship("Y", "3.0+ GPA"),
	}

	report, err := ag.Aggregate(context.Background(), scholarships,
		[]database.Applicant{applicant("S1", "Engineering", 3.8)}, "Y")
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	if len(report.Matches) != 1 || report.Matches[0].ScholarshipName != "Y" {
		t.Errorf("expected only Y, got %+v", report.Matches)
	}
	if _, ok := report.QualifiedApplicants["X"]; ok {
		t.Error("expected X to be filtered out")
	}
}

func TestAggregate_MalformedCriterionIsolated(t *testing.T) {
	ag := newAggregator(memDecisions{})
	scholarships := []database.Scholarship{
		scholarship("Broken", "abc+ GPA", "Engineering major"),
		scholarship("Fine", "3.5+ GPA"),
	}

	report, err := ag.Aggregate(context.Background(), scholarships,
		[]database.Applicant{applicant("S1", "Engineering", 3.8), applicant("S2", "Engineering", 3.9)}, "")
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	if len(report.Matches[0].CriterionErrors) != 1 {
		t.Errorf("expected one reported error, got %v", report.Matches[0].CriterionErrors)
	}
	if len(report.QualifiedApplicants["Broken"]) != 0 {
		t.Error("expected nobody qualified for broken scholarship")
	}
	if len(report.QualifiedApplicants["Fine"]) != 2 {
		t.Error("expected other scholarship unaffected")
	}
}

func TestAggregate_UnsupportedSurfaced(t *testing.T) {
	ag := newAggregator(memDecisions{})
	report, err := ag.Aggregate(context.Background(),
		[]database.Scholarship{scholarship("CS", "3.0+ GPA", "Leadership role in student organization")},
		[]database.Applicant{applicant("S1", "Computer Science", 3.2)}, "")
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	if got := report.Matches[0].UnsupportedCriteria; len(got) != 1 || got[0] != "Leadership role in student organization" {
		t.Errorf("unexpected unsupported criteria: %v", got)
	}
	if report.Policy.UnknownCriteria != eligibility.StatusUnsupported {
		t.Errorf("unexpected policy: %+v", report.Policy)
	}
}

func TestAggregate_DuplicateScholarship(t *testing.T) {
	ag := newAggregator(memDecisions{})
	_, err := ag.Aggregate(context.Background(),
		[]database.Scholarship{scholarship("X"), scholarship("X")}, nil, "")
	if !errors.Is(err, ErrDuplicateScholarship) {
		t.Errorf("expected ErrDuplicateScholarship, got %v", err)
	}
}

func TestAggregate_StoreError(t *testing.T) {
	ag := newAggregator(failingDecisions{})
	_, err := ag.Aggregate(context.Background(),
		[]database.Scholarship{scholarship("X", "3.5+ GPA")},
		[]database.Applicant{applicant("S1", "Engineering", 3.8)}, "")
	if err == nil {
		t.Error("expected error from decision store")
	}
}

func TestAggregate_ApplicantOrderIndependent(t *testing.T) {
	ag := newAggregator(memDecisions{})
	scholarships := []database.Scholarship{scholarship("X", "3.5+ GPA", "Engineering major")}
	forward := []database.Applicant{
		applicant("A", "Engineering", 3.9),
		applicant("B", "History", 3.9),
		applicant("C", "Engineering", 3.6),
	}
	reversed := []database.Applicant{forward[2], forward[1], forward[0]}

	qualifiedIDs := func(apps []database.Applicant) []string {
		report, err := ag.Aggregate(context.Background(), scholarships, apps, "")
		if err != nil {
			t.Fatalf("Aggregate failed: %v", err)
		}
		var ids []string
		for _, a := range report.QualifiedApplicants["X"] {
			ids = append(ids, a.Applicant.StudentID)
		}
		sort.Strings(ids)
		return ids
	}

	a, b := qualifiedIDs(forward), qualifiedIDs(reversed)
	if len(a) != 2 || len(a) != len(b) || a[0] != b[0] || a[1] != b[1] {
		t.Errorf("qualified sets differ: %v vs %v", a, b)
	}
}

func TestAggregate_ReviewAndCompletion(t *testing.T) {
	ag := newAggregator(memDecisions{})
	notes := "Conducted on 2025-03-01"
	reviewed := applicant("S1", "Engineering", 3.8)
	reviewed.InterviewNotes = &notes
	reviewed.Essays = []database.Essay{{Prompt: "Goals", Evaluation: &database.EssayEvaluation{Score: 9.5}}}
	reviewed.FinancialInfo = map[string]any{"fafsa_submitted": true}
	reviewed.AcademicHistory = []database.Term{{Term: "Fall 2024"}}

	report, err := ag.Aggregate(context.Background(), nil,
		[]database.Applicant{reviewed, applicant("S2", "History", 3.0)}, "")
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	rc := report.Summary.ReviewCompletion
	if rc.Expected != 4 || rc.Completed != 2 || rc.Rate != 0.5 {
		t.Errorf("unexpected review completion: %+v", rc)
	}
	ac := report.Summary.ApplicationCompletion
	if ac.Complete != 1 || ac.Incomplete != 1 {
		t.Errorf("unexpected application completion: %+v", ac)
	}
}

func TestAggregate_WithStoredDecision(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "sams-prescreen-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	db, err := database.Open(filepath.Join(tmpDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()
	ctx := context.Background()

	a := applicant("S1", "Systems Engineering", 3.8)
	if err := db.UpsertApplicant(ctx, &a); err != nil {
		t.Fatalf("UpsertApplicant failed: %v", err)
	}
	if _, err := db.RecordDecision(ctx, "S1", "X", database.DecisionAwarded, nil); err != nil {
		t.Fatalf("RecordDecision failed: %v", err)
	}

	report, err := newAggregator(db).Aggregate(ctx,
		[]database.Scholarship{scholarship("X", "3.5+ GPA", "Engineering major")},
		[]database.Applicant{a}, "")
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	d := report.QualifiedApplicants["X"][0].AwardDecision
	if d == nil {
		t.Fatal("expected decision to be attached")
	}
	if d.Decision != database.DecisionAwarded || d.DecidedAt.IsZero() {
		t.Errorf("unexpected decision: %+v", d)
	}
	if report.Summary.AwardDecisions.Awarded != 1 {
		t.Errorf("expected awarded tally 1, got %+v", report.Summary.AwardDecisions)
	}
}

func TestRun_FromStore(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "sams-prescreen-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	db, err := database.Open(filepath.Join(tmpDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()
	ctx := context.Background()

	s := scholarship("Engineering Excellence Scholarship", "3.5+ GPA", "Engineering major", "Full-time enrollment")
	if err := db.UpsertScholarship(ctx, &s); err != nil {
		t.Fatalf("UpsertScholarship failed: %v", err)
	}
	for _, a := range []database.Applicant{
		applicant("12345678", "Systems Engineering", 3.8),
		applicant("12347890", "Computer Science", 3.2),
	} {
		if err := db.UpsertApplicant(ctx, &a); err != nil {
			t.Fatalf("UpsertApplicant failed: %v", err)
		}
	}

	ag := NewDefault(db, Options{AssumeFullTimeEnrollment: true}, logger.Nop())
	report, err := ag.Run(ctx, db, "")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	qualified := report.QualifiedApplicants["Engineering Excellence Scholarship"]
	if len(qualified) != 1 || qualified[0].Applicant.StudentID != "12345678" {
		t.Errorf("unexpected qualified applicants: %+v", qualified)
	}
	if report.Summary.TotalApplicants != 2 {
		t.Errorf("expected 2 applicants, got %d", report.Summary.TotalApplicants)
	}
}

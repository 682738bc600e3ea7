package prescreen

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/joshdeandev/sams/internal/database"
	"github.com/joshdeandev/sams/internal/eligibility"
)

// ErrDuplicateScholarship is returned when two scholarships share a name.
// Decisions are keyed by name, so names must be unique within a run.
var ErrDuplicateScholarship = errors.New("duplicate scholarship name")

// DecisionStore looks up the recorded decision for an applicant and scholarship.
// A nil decision with a nil error means none was ever submitted.
type DecisionStore interface {
	GetDecision(ctx context.Context, studentID, scholarshipName string) (*database.AwardDecision, error)
}

// Aggregator runs every applicant against every scholarship and merges in decisions
type Aggregator struct {
	scorer    *eligibility.Scorer
	decisions DecisionStore
	log       zerolog.Logger
	now       func() time.Time
}

// New creates an Aggregator
func New(scorer *eligibility.Scorer, decisions DecisionStore, log zerolog.Logger) *Aggregator {
	return &Aggregator{
		scorer:    scorer,
		decisions: decisions,
		log:       log,
		now:       time.Now,
	}
}

// Options configures the built-in rule set
type Options struct {
	AssumeFullTimeEnrollment bool
	ZeroCriteriaQualifies    bool
}

// NewDefault creates an Aggregator using the built-in GPA, major and enrollment rules
func NewDefault(decisions DecisionStore, opts Options, log zerolog.Logger) *Aggregator {
	scorer := eligibility.NewScorer(
		eligibility.NewEvaluator(eligibility.Options{AssumeFullTimeEnrollment: opts.AssumeFullTimeEnrollment}),
		eligibility.ScorerConfig{ZeroCriteriaQualifies: opts.ZeroCriteriaQualifies},
	)
	return New(scorer, decisions, log)
}

// Source supplies the scholarships and applicants a run evaluates
type Source interface {
	ListScholarships(ctx context.Context, opts database.ScholarshipListOptions) ([]database.Scholarship, error)
	ListApplicants(ctx context.Context) ([]database.Applicant, error)
}

// Run loads every scholarship and applicant from src and aggregates them
func (ag *Aggregator) Run(ctx context.Context, src Source, scholarshipName string) (*Report, error) {
	scholarships, err := src.ListScholarships(ctx, database.ScholarshipListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list scholarships: %w", err)
	}
	applicants, err := src.ListApplicants(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list applicants: %w", err)
	}
	return ag.Aggregate(ctx, scholarships, applicants, scholarshipName)
}

type applicantState struct {
	applicant    database.Applicant
	completeness eligibility.Completeness
}

// Aggregate builds a prescreening report. When scholarshipName is non-empty only
// that scholarship is evaluated; an unknown name yields an empty report.
func (ag *Aggregator) Aggregate(ctx context.Context, scholarships []database.Scholarship, applicants []database.Applicant, scholarshipName string) (*Report, error) {
	seen := make(map[string]bool, len(scholarships))
	for _, s := range scholarships {
		if seen[s.Name] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateScholarship, s.Name)
		}
		seen[s.Name] = true
	}

	selected := scholarships
	if scholarshipName != "" {
		selected = nil
		for _, s := range scholarships {
			if s.Name == scholarshipName {
				selected = append(selected, s)
			}
		}
		if len(selected) == 0 {
			ag.log.Warn().Str("scholarship", scholarshipName).Msg("No scholarship with that name; report will be empty")
		}
	}

	// Completeness does not depend on the scholarship, so classify each applicant once
	states := make([]applicantState, len(applicants))
	for i := range applicants {
		a := applicants[i]
		a.FillDefaults()
		states[i] = applicantState{applicant: a, completeness: eligibility.Classify(&a)}
	}

	report := &Report{
		GeneratedAt: ag.now(),
		Policy: Policy{
			UnknownCriteria:       eligibility.StatusUnsupported,
			ZeroCriteriaQualifies: ag.scorer.Config().ZeroCriteriaQualifies,
			Rules:                 ag.scorer.Evaluator().Rules(),
		},
		Matches:             make([]ScholarshipMatch, 0, len(selected)),
		QualifiedApplicants: make(map[string][]Assessment, len(selected)),
		ApplicantAnalysis:   make(map[string][]Assessment, len(applicants)),
		Summary: Summary{
			TotalApplicants:      len(applicants),
			ScholarshipsReviewed: len(selected),
		},
	}

	for _, s := range selected {
		match, qualified, err := ag.evaluateScholarship(ctx, s, states, report)
		if err != nil {
			return nil, err
		}
		report.Matches = append(report.Matches, match)
		report.QualifiedApplicants[s.Name] = qualified
		report.Summary.TotalMatches += len(qualified)

		for _, q := range qualified {
			if q.AwardDecision == nil {
				continue
			}
			switch q.AwardDecision.Decision {
			case database.DecisionAwarded:
				report.Summary.AwardDecisions.Awarded++
			case database.DecisionNotAwarded:
				report.Summary.AwardDecisions.NotAwarded++
			case database.DecisionPending:
				report.Summary.AwardDecisions.Pending++
			}
		}
	}

	summarizeApplicants(&report.Summary, states)
	if len(applicants) > 0 {
		report.Summary.MatchRate = float64(report.Summary.TotalMatches) / float64(len(applicants))
	}

	ag.log.Debug().
		Int("scholarships", report.Summary.ScholarshipsReviewed).
		Int("applicants", report.Summary.TotalApplicants).
		Int("matches", report.Summary.TotalMatches).
		Msg("Prescreening complete")

	return report, nil
}

func (ag *Aggregator) evaluateScholarship(ctx context.Context, s database.Scholarship, states []applicantState, report *Report) (ScholarshipMatch, []Assessment, error) {
	criteria := s.EligibilityCriteria
	if criteria == nil {
		criteria = []string{}
	}

	match := ScholarshipMatch{
		ScholarshipName:     s.Name,
		Amount:              s.Amount,
		Frequency:           s.Frequency,
		Criteria:            criteria,
		ApplicantsEvaluated: len(states),
		CriterionErrors:     []string{},
		UnsupportedCriteria: []string{},
	}
	qualified := []Assessment{}

	reportedErr := map[string]bool{}
	reportedUnsupported := map[string]bool{}
	var total float64

	for i := range states {
		st := &states[i]
		a := &st.applicant

		q := ag.scorer.Score(criteria, a)
		for _, err := range q.Errors {
			if !reportedErr[err.Error()] {
				reportedErr[err.Error()] = true
				match.CriterionErrors = append(match.CriterionErrors, err.Error())
				ag.log.Warn().Err(err).Str("scholarship", s.Name).Msg("Criterion could not be evaluated")
			}
		}
		for _, j := range q.Judgments {
			if j.Status == eligibility.StatusUnsupported && !reportedUnsupported[j.Criterion] {
				reportedUnsupported[j.Criterion] = true
				match.UnsupportedCriteria = append(match.UnsupportedCriteria, j.Criterion)
			}
		}

		decision, err := ag.decisions.GetDecision(ctx, a.StudentID, s.Name)
		if err != nil {
			return match, nil, fmt.Errorf("failed to load decision for %s / %q: %w", a.StudentID, s.Name, err)
		}

		assessment := Assessment{
			ScholarshipName: s.Name,
			Applicant: ApplicantSnapshot{
				Name:          a.Name,
				StudentID:     a.StudentID,
				Major:         a.Major,
				GPA:           a.GPA,
				AcademicLevel: a.AcademicLevel,
			},
			QualificationScore: q.Score,
			CriteriaMet:        q.CriteriaMet,
			TotalCriteria:      q.TotalCriteria,
			FullyQualified:     q.FullyQualified,
			Eligibility:        q.Judgments,
			Completeness:       st.completeness,
			Review: Review{
				Essays:            a.Essays,
				InterviewNotes:    a.InterviewNotes,
				CommitteeFeedback: a.CommitteeFeedback,
			},
			AwardDecision: decision,
		}

		report.ApplicantAnalysis[a.StudentID] = append(report.ApplicantAnalysis[a.StudentID], assessment)
		report.Summary.ScoreRanges.add(q.Score)

		if q.FullyQualified {
			qualified = append(qualified, assessment)
		}

		if i == 0 || q.Score < match.ScoreDistribution.Min {
			match.ScoreDistribution.Min = q.Score
		}
		if i == 0 || q.Score > match.ScoreDistribution.Max {
			match.ScoreDistribution.Max = q.Score
		}
		total += q.Score
	}

	if len(states) > 0 {
		match.ScoreDistribution.Mean = total / float64(len(states))
	}

	sort.SliceStable(qualified, func(i, j int) bool {
		return qualified[i].QualificationScore > qualified[j].QualificationScore
	})
	match.QualifiedCount = len(qualified)

	return match, qualified, nil
}

func summarizeApplicants(sum *Summary, states []applicantState) {
	sum.ReviewCompletion.Expected = 2 * len(states)

	for i := range states {
		a := &states[i].applicant
		if a.HasAcademicReview() {
			sum.ReviewCompletion.Completed++
		}
		if a.HasInterview() {
			sum.ReviewCompletion.Completed++
		}

		switch states[i].completeness.Status {
		case eligibility.CompletionComplete:
			sum.ApplicationCompletion.Complete++
		case eligibility.CompletionInProgress:
			sum.ApplicationCompletion.InProgress++
		default:
			sum.ApplicationCompletion.Incomplete++
		}
	}

	if sum.ReviewCompletion.Expected > 0 {
		sum.ReviewCompletion.Rate = float64(sum.ReviewCompletion.Completed) / float64(sum.ReviewCompletion.Expected)
	}
}

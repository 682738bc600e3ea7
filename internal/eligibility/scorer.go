package eligibility

import (
	"github.com/joshdeandev/sams/internal/database"
)

// ScorerConfig configures qualification scoring
type ScorerConfig struct {
	// ZeroCriteriaQualifies lets a scholarship without criteria qualify everyone
	ZeroCriteriaQualifies bool
}

// Qualification is one applicant's standing against one criterion list
type Qualification struct {
	Score          float64    `json:"qualification_score"`
	CriteriaMet    int        `json:"criteria_met"`
	TotalCriteria  int        `json:"total_criteria"`
	FullyQualified bool       `json:"fully_qualified"`
	Judgments      []Judgment `json:"eligibility"`
	Errors         []error    `json:"-"`
}

// Scorer evaluates a scholarship's criteria against applicants
type Scorer struct {
	evaluator *Evaluator
	config    ScorerConfig
}

// NewScorer creates a new Scorer backed by the given evaluator
func NewScorer(evaluator *Evaluator, config ScorerConfig) *Scorer {
	return &Scorer{evaluator: evaluator, config: config}
}

// Score evaluates every criterion in order. FullyQualified requires every
// criterion to be met; a partial score never qualifies.
func (s *Scorer) Score(criteria []string, a *database.Applicant) Qualification {
	q := Qualification{
		TotalCriteria: len(criteria),
		Judgments:     make([]Judgment, 0, len(criteria)),
	}

	for _, c := range criteria {
		j, err := s.evaluator.Evaluate(c, a)
		if err != nil {
			q.Errors = append(q.Errors, err)
		}
		if j.IsMet {
			q.CriteriaMet++
		}
		q.Judgments = append(q.Judgments, j)
	}

	if q.TotalCriteria == 0 {
		q.FullyQualified = s.config.ZeroCriteriaQualifies
		return q
	}

	q.Score = 100 * float64(q.CriteriaMet) / float64(q.TotalCriteria)
	q.FullyQualified = q.CriteriaMet == q.TotalCriteria
	return q
}

// Config returns the scorer configuration
func (s *Scorer) Config() ScorerConfig {
	return s.config
}

// Evaluator returns the evaluator used for each criterion
func (s *Scorer) Evaluator() *Evaluator {
	return s.evaluator
}

package eligibility

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/joshdeandev/sams/internal/database"
)

// ErrMalformedCriterion is returned when a recognized criterion cannot be parsed
var ErrMalformedCriterion = errors.New("malformed criterion")

// Status is the outcome of evaluating one criterion
type Status string

const (
	StatusMet         Status = "met"
	StatusNotMet      Status = "not_met"
	StatusUnsupported Status = "unsupported"
	StatusError       Status = "error"
)

// Judgment is the result of evaluating one criterion against one applicant
type Judgment struct {
	Criterion string         `json:"criterion"`
	Rule      string         `json:"rule"`
	Status    Status         `json:"status"`
	IsMet     bool           `json:"is_met"`
	Reason    string         `json:"reason"`
	Details   map[string]any `json:"details,omitempty"`
}

// Rule recognizes and evaluates one family of criterion text
type Rule interface {
	Name() string
	Matches(criterion string) bool
	Evaluate(criterion string, a *database.Applicant) (Judgment, error)
}

// Options configures the built-in rules
type Options struct {
	// AssumeFullTimeEnrollment marks enrollment criteria met; no enrollment data is stored
	AssumeFullTimeEnrollment bool
}

// Evaluator dispatches criteria to the first matching rule, in registration order
type Evaluator struct {
	rules    []Rule
	fallback Rule
}

// NewEvaluator creates an Evaluator with the GPA, major and enrollment rules
func NewEvaluator(opts Options) *Evaluator {
	return &Evaluator{
		rules: []Rule{
			GPARule{},
			MajorRule{},
			EnrollmentRule{AssumeFullTime: opts.AssumeFullTimeEnrollment},
		},
		fallback: unsupportedRule{},
	}
}

// Register adds a rule after the existing ones and before the unsupported catch-all
func (e *Evaluator) Register(r Rule) {
	e.rules = append(e.rules, r)
}

// Rules returns the rule names in dispatch order
func (e *Evaluator) Rules() []string {
	names := make([]string, 0, len(e.rules)+1)
	for _, r := range e.rules {
		names = append(names, r.Name())
	}
	return append(names, e.fallback.Name())
}

// Evaluate judges a single criterion. A rule error is folded into the returned
// judgment with StatusError and also returned so callers can report it.
func (e *Evaluator) Evaluate(criterion string, a *database.Applicant) (Judgment, error) {
	rule := e.fallback
	for _, r := range e.rules {
		if r.Matches(criterion) {
			rule = r
			break
		}
	}

	j, err := rule.Evaluate(criterion, a)
	j.Criterion = criterion
	j.Rule = rule.Name()
	if err != nil {
		j.Status = StatusError
		j.IsMet = false
		j.Reason = err.Error()
		return j, fmt.Errorf("criterion %q: %w", criterion, err)
	}

	if j.Status == "" {
		j.Status = StatusNotMet
		if j.IsMet {
			j.Status = StatusMet
		}
	}
	return j, nil
}

// GPARule handles criteria such as "3.5+ GPA"
type GPARule struct{}

func (GPARule) Name() string { return "gpa" }

func (GPARule) Matches(criterion string) bool {
	return strings.Contains(criterion, "GPA")
}

func (GPARule) Evaluate(criterion string, a *database.Applicant) (Judgment, error) {
	before, _, found := strings.Cut(criterion, "+")
	if !found {
		return Judgment{}, fmt.Errorf("%w: no minimum GPA before '+'", ErrMalformedCriterion)
	}

	// The literal is the run of digits and dots directly before '+'
	start := len(before)
	for start > 0 && (before[start-1] == '.' || (before[start-1] >= '0' && before[start-1] <= '9')) {
		start--
	}
	literal := before[start:]
	if literal == "" {
		return Judgment{}, fmt.Errorf("%w: no minimum GPA before '+'", ErrMalformedCriterion)
	}

	required, err := strconv.ParseFloat(literal, 64)
	if err != nil {
		return Judgment{}, fmt.Errorf("%w: bad GPA %q", ErrMalformedCriterion, literal)
	}

	met := a.GPA >= required
	return Judgment{
		IsMet:  met,
		Reason: fmt.Sprintf("GPA %.2f vs required %.2f", a.GPA, required),
		Details: map[string]any{
			"required_gpa":  required,
			"applicant_gpa": a.GPA,
		},
	}, nil
}

// majorKeyword is matched against the original text so offsets stay valid for slicing
var majorKeyword = regexp.MustCompile(`(?i)major`)

// MajorRule handles criteria such as "Engineering major".
// The required major matches any applicant major containing it.
type MajorRule struct{}

func (MajorRule) Name() string { return "major" }

func (MajorRule) Matches(criterion string) bool {
	return majorKeyword.MatchString(criterion)
}

func (MajorRule) Evaluate(criterion string, a *database.Applicant) (Judgment, error) {
	loc := majorKeyword.FindStringIndex(criterion)
	if loc == nil {
		return Judgment{}, fmt.Errorf("%w: no major named", ErrMalformedCriterion)
	}
	required := strings.TrimSpace(criterion[:loc[0]])
	if required == "" {
		return Judgment{}, fmt.Errorf("%w: no major named", ErrMalformedCriterion)
	}

	met := strings.Contains(strings.ToLower(a.Major), strings.ToLower(required))
	return Judgment{
		IsMet:  met,
		Reason: fmt.Sprintf("Major %q vs required %q", a.Major, required),
		Details: map[string]any{
			"required_major":  required,
			"applicant_major": a.Major,
		},
	}, nil
}

// EnrollmentRule handles enrollment criteria. Applicant records carry no
// enrollment data, so the outcome is a configured assumption.
type EnrollmentRule struct {
	AssumeFullTime bool
}

func (EnrollmentRule) Name() string { return "enrollment" }

func (EnrollmentRule) Matches(criterion string) bool {
	return strings.Contains(strings.ToLower(criterion), "enrollment")
}

func (r EnrollmentRule) Evaluate(criterion string, a *database.Applicant) (Judgment, error) {
	if !r.AssumeFullTime {
		return Judgment{
			Status: StatusUnsupported,
			Reason: "Enrollment status is not recorded",
		}, nil
	}
	return Judgment{
		IsMet:   true,
		Reason:  "Full-time enrollment assumed",
		Details: map[string]any{"assumed": true},
	}, nil
}

type unsupportedRule struct{}

func (unsupportedRule) Name() string { return "unsupported" }

func (unsupportedRule) Matches(string) bool { return true }

func (unsupportedRule) Evaluate(criterion string, a *database.Applicant) (Judgment, error) {
	return Judgment{
		Status: StatusUnsupported,
		Reason: "No rule recognizes this criterion",
	}, nil
}

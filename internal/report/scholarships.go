package report

import (
	"sort"

	"github.com/joshdeandev/sams/internal/database"
)

// NoDeadline is shown for scholarships without a deadline
const NoDeadline = "No deadline set"

// Filter narrows the scholarships included in a summary
type Filter struct {
	Frequency string
}

// ScholarshipDetail is one scholarship as listed in a summary
type ScholarshipDetail struct {
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	Eligibility  []string       `json:"eligibility"`
	Donor        database.Donor `json:"donor"`
	Requirements []string       `json:"requirements"`
	Frequency    string         `json:"frequency"`
	Amount       float64        `json:"amount"`
	Deadline     string         `json:"deadline"`
}

// ScholarshipSummary is the scholarship catalogue report
type ScholarshipSummary struct {
	TotalScholarships     int                 `json:"total_scholarships"`
	TotalAmount           float64             `json:"total_amount"`
	FrequencyDistribution map[string]int      `json:"frequency_distribution"`
	Scholarships          []ScholarshipDetail `json:"scholarships"`
}

// Frequencies returns the distribution keys in sorted order
func (s *ScholarshipSummary) Frequencies() []string {
	keys := make([]string, 0, len(s.FrequencyDistribution))
	for k := range s.FrequencyDistribution {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Summarize builds the scholarship catalogue report
func Summarize(scholarships []database.Scholarship, filter Filter) *ScholarshipSummary {
	summary := &ScholarshipSummary{
		FrequencyDistribution: map[string]int{},
		Scholarships:          []ScholarshipDetail{},
	}

	for _, s := range scholarships {
		if filter.Frequency != "" && s.Frequency != filter.Frequency {
			continue
		}

		summary.TotalScholarships++
		summary.TotalAmount += s.Amount
		summary.FrequencyDistribution[s.Frequency]++

		deadline := NoDeadline
		if s.Deadline != nil {
			deadline = s.Deadline.Format("2006-01-02")
		}

		summary.Scholarships = append(summary.Scholarships, ScholarshipDetail{
			Name:         s.Name,
			Description:  s.Description,
			Eligibility:  nonNil(s.EligibilityCriteria),
			Donor:        s.Donor,
			Requirements: nonNil(s.DisbursementRequirements),
			Frequency:    s.Frequency,
			Amount:       s.Amount,
			Deadline:     deadline,
		})
	}

	return summary
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

package report

import (
	"sort"

	"github.com/joshdeandev/sams/internal/database"
)

// DonorSummary totals what one donor funds and what has been awarded from it
type DonorSummary struct {
	Donor           string   `json:"donor"`
	Contact         string   `json:"contact,omitempty"`
	Scholarships    []string `json:"scholarships"`
	TotalOffered    float64  `json:"total_offered"`
	ActiveAwards    int      `json:"active_awards"`
	CompletedAwards int      `json:"completed_awards"`
	AwardedAmount   float64  `json:"awarded_amount"`
}

// Donors groups scholarships by donor name and folds in their awards.
// Cancelled awards are not counted. Scholarships without a donor are grouped under "".
func Donors(scholarships []database.Scholarship, awards []database.ScholarshipAward) []DonorSummary {
	byDonor := map[string]*DonorSummary{}
	donorOf := map[string]string{}

	for _, s := range scholarships {
		d, ok := byDonor[s.Donor.Name]
		if !ok {
			d = &DonorSummary{Donor: s.Donor.Name, Contact: s.Donor.Contact, Scholarships: []string{}}
			byDonor[s.Donor.Name] = d
		}
		d.Scholarships = append(d.Scholarships, s.Name)
		d.TotalOffered += s.Amount
		donorOf[s.Name] = s.Donor.Name
	}

	for _, w := range awards {
		name, ok := donorOf[w.ScholarshipName]
		if !ok {
			continue
		}
		d := byDonor[name]
		switch w.Status {
		case database.AwardActive:
			d.ActiveAwards++
		case database.AwardCompleted:
			d.CompletedAwards++
		default:
			continue
		}
		d.AwardedAmount += w.AwardAmount
	}

	out := make([]DonorSummary, 0, len(byDonor))
	for _, d := range byDonor {
		sort.Strings(d.Scholarships)
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Donor < out[j].Donor
	})
	return out
}

package intake

import (
	"time"

	"github.com/joshdeandev/sams/internal/database"
)

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func str(s string) *string { return &s }

func gpa(v float64) *float64 { return &v }

// DemoData returns sample applicants and scholarships for a fresh install
func DemoData() *Document {
	return &Document{
		Scholarships: []database.Scholarship{
			{
				Name:        "Engineering Excellence Scholarship",
				Description: "Merit-based scholarship for outstanding engineering students",
				EligibilityCriteria: []string{
					"3.5+ GPA",
					"Engineering major",
					"Full-time enrollment",
				},
				Donor: database.Donor{
					Name:    "Engineering Industry Association",
					Contact: "donor@example.com",
				},
				DisbursementRequirements: []string{
					"Maintain 3.5 GPA",
					"Submit semester progress report",
				},
				Frequency: "annual",
				Amount:    5000,
				Deadline:  day(2026, time.March, 15),
			},
			{
				Name:        "CS Leadership Scholarship",
				Description: "For computer science students demonstrating leadership",
				EligibilityCriteria: []string{
					"3.0+ GPA",
					"Computer Science major",
					"Leadership role in student organization",
				},
				Donor: database.Donor{
					Name:    "Tech Leaders Foundation",
					Contact: "foundation@techleaders.org",
				},
				DisbursementRequirements: []string{
					"Maintain leadership position",
					"Submit leadership impact report",
				},
				Frequency: "semester",
				Amount:    3000,
				Deadline:  day(2026, time.February, 1),
			},
		},
		Applicants: []database.Applicant{
			{
				Name:               "John Doe",
				StudentID:          "12345678",
				NetID:              str("jdoe"),
				Major:              "Systems Engineering",
				Minor:              str("Computer Science"),
				GPA:                3.8,
				AcademicLevel:      "Junior",
				ExpectedGraduation: day(2027, time.May, 15),
				Achievements: []database.Achievement{
					{Type: "Dean's List", Date: day(2024, time.December, 15), Description: "Fall 2024 Semester"},
					{
						Type:    "Research Publication",
						Date:    day(2025, time.March, 1),
						Title:   "Innovation in Systems Design",
						Journal: "Engineering Research Quarterly",
					},
				},
				FinancialInfo: map[string]any{
					"fafsa_submitted":  true,
					"efc":              5000,
					"household_income": "50000-75000",
					"current_aid": []any{
						map[string]any{"type": "Federal Grant", "amount": 2500},
						map[string]any{"type": "State Grant", "amount": 1500},
					},
				},
				Essays: []database.Essay{
					{
						Prompt:         "Describe your career goals in engineering.",
						Content:        "My passion for systems engineering stems from...",
						SubmissionDate: day(2025, time.February, 1),
						Evaluation: &database.EssayEvaluation{
							Score:    9.2,
							Feedback: "Excellent vision and clear career trajectory.",
							Reviewer: "Dr. Sarah Chen",
							Date:     day(2025, time.February, 15),
						},
					},
					{
						Prompt:         "How will this scholarship impact your education?",
						Content:        "This scholarship will enable me to...",
						SubmissionDate: day(2025, time.February, 1),
						Evaluation: &database.EssayEvaluation{
							Score:    8.8,
							Feedback: "Strong understanding of opportunity and impact.",
							Reviewer: "Prof. Michael Roberts",
							Date:     day(2025, time.February, 16),
						},
					},
				},
				AcademicHistory: []database.Term{
					{
						Term: "Fall 2024",
						Courses: []database.Course{
							{Code: "SYE301", Name: "Systems Engineering Fundamentals", Grade: "A"},
							{Code: "CS210", Name: "Software Systems", Grade: "A-"},
						},
						GPA: gpa(3.85),
					},
				},
				InterviewNotes: str("Conducted on 2025-03-01. Demonstrated strong leadership potential and excellent communication skills. Shows clear understanding of systems engineering principles."),
				CommitteeFeedback: []database.CommitteeFeedback{
					{
						Member:         "Dr. James Wilson",
						Role:           "Department Chair",
						Comments:       "Outstanding candidate with proven academic excellence.",
						Recommendation: "Highly Recommend",
						Date:           day(2025, time.March, 5),
					},
					{
						Member:         "Prof. Lisa Martinez",
						Role:           "Scholarship Committee Head",
						Comments:       "Strong technical background and leadership potential.",
						Recommendation: "Strongly Recommend",
						Date:           day(2025, time.March, 6),
					},
				},
			},
			{
				Name:               "Alice Smith",
				StudentID:          "12346789",
				NetID:              str("asmith"),
				Major:              "Engineering",
				Minor:              str("Mathematics"),
				GPA:                3.8,
				AcademicLevel:      "Junior",
				ExpectedGraduation: day(2027, time.May, 15),
				AcademicHistory: []database.Term{
					{
						Term: "Fall 2024",
						Courses: []database.Course{
							{Code: "ENG301", Name: "Advanced Engineering", Grade: "A"},
							{Code: "MATH400", Name: "Applied Mathematics", Grade: "A-"},
						},
						GPA: gpa(3.8),
					},
				},
				Essays: []database.Essay{
					{
						Prompt:         "Describe your research interests.",
						Content:        "My research focuses on sustainable engineering...",
						SubmissionDate: day(2025, time.February, 1),
						Evaluation: &database.EssayEvaluation{
							Score:    9.5,
							Feedback: "Exceptional research vision and clarity.",
							Reviewer: "Dr. Thompson",
							Date:     day(2025, time.February, 10),
						},
					},
				},
				FinancialInfo: map[string]any{
					"fafsa_submitted":  true,
					"efc":              4000,
					"household_income": "40000-60000",
				},
				InterviewNotes: str("Outstanding interview performance. Shows great potential."),
				CommitteeFeedback: []database.CommitteeFeedback{
					{
						Member:         "Dr. Rodriguez",
						Comments:       "Top candidate with excellent credentials.",
						Recommendation: "Highly Recommend",
						Date:           day(2025, time.March, 1),
					},
				},
			},
			{
				Name:               "Bob Johnson",
				StudentID:          "12347890",
				NetID:              str("bjohnson"),
				Major:              "Computer Science",
				GPA:                3.2,
				AcademicLevel:      "Sophomore",
				ExpectedGraduation: day(2027, time.December, 15),
				Essays: []database.Essay{
					{
						Prompt:         "Describe your programming experience.",
						Content:        "I have developed several applications...",
						SubmissionDate: day(2025, time.February, 2),
						Evaluation: &database.EssayEvaluation{
							Score:    7.8,
							Feedback: "Good technical background, needs more detail.",
							Reviewer: "Prof. Chen",
							Date:     day(2025, time.February, 12),
						},
					},
				},
				FinancialInfo: map[string]any{
					"fafsa_submitted":  true,
					"efc":              8000,
					"household_income": "75000-100000",
				},
			},
		},
	}
}

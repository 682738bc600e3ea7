package decision

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/joshdeandev/sams/internal/database"
)

// SubmitRequest is a reviewer's decision for one applicant and scholarship
type SubmitRequest struct {
	StudentID       string            `json:"student_id"`
	ScholarshipName string            `json:"scholarship_name"`
	Decision        database.Decision `json:"decision"`
	Comments        *string           `json:"comments,omitempty"`
	// CreateAward also records an active award when the decision is awarded
	CreateAward bool `json:"create_award"`
	// AwardAmount overrides the scholarship amount for the created award
	AwardAmount *float64 `json:"award_amount,omitempty"`
}

// SubmitResult is the stored decision and any award created with it
type SubmitResult struct {
	Decision *database.AwardDecision    `json:"decision"`
	Award    *database.ScholarshipAward `json:"award,omitempty"`
}

// Service records award decisions
type Service struct {
	db  *database.DB
	log zerolog.Logger
}

// NewService creates a decision service
func NewService(db *database.DB, log zerolog.Logger) *Service {
	return &Service{db: db, log: log}
}

// Submit records the decision, overwriting any earlier one for the same pair.
// The decision and the optional award commit together.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (*SubmitResult, error) {
	if !req.Decision.Valid() {
		return nil, fmt.Errorf("%w: %q", database.ErrInvalidDecision, req.Decision)
	}
	if req.StudentID == "" || req.ScholarshipName == "" {
		return nil, fmt.Errorf("student ID and scholarship name are required")
	}

	materialize := req.CreateAward && req.Decision == database.DecisionAwarded

	var amount float64
	if materialize {
		if req.AwardAmount != nil {
			amount = *req.AwardAmount
		} else {
			sch, err := s.db.GetScholarship(ctx, req.ScholarshipName)
			if err != nil {
				return nil, fmt.Errorf("failed to look up scholarship: %w", err)
			}
			if sch == nil {
				return nil, fmt.Errorf("%w: %q", database.ErrScholarshipNotFound, req.ScholarshipName)
			}
			amount = sch.Amount
		}
	}

	result := &SubmitResult{}
	err := s.db.Transaction(ctx, func(tx *database.Tx) error {
		d, err := tx.RecordDecision(ctx, req.StudentID, req.ScholarshipName, req.Decision, req.Comments)
		if err != nil {
			return err
		}
		result.Decision = d

		if !materialize {
			return nil
		}

		award := &database.ScholarshipAward{
			StudentID:       req.StudentID,
			ScholarshipName: req.ScholarshipName,
			AwardAmount:     amount,
			Status:          database.AwardActive,
		}
		if err := tx.CreateAward(ctx, award); err != nil {
			return err
		}
		result.Award = award
		return nil
	})
	if err != nil {
		return nil, err
	}

	event := s.log.Info().
		Str("student_id", req.StudentID).
		Str("scholarship", req.ScholarshipName).
		Str("decision", string(req.Decision))
	if result.Award != nil {
		event = event.Str("award_id", result.Award.ID).Float64("amount", result.Award.AwardAmount)
	}
	event.Msg("Decision recorded")

	return result, nil
}

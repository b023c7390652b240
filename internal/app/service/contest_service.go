package service

import (
	"context"
	"time"

	"shnoor_lms/internal/common"
	"shnoor_lms/internal/domain/model"
	"shnoor_lms/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

type ContestService struct {
	contestRepo repository.ContestRepository
}

func NewContestService(contestRepo repository.ContestRepository) *ContestService {
	return &ContestService{contestRepo: contestRepo}
}

type CreateContestRequest struct {
	Title          string             `json:"title"`
	Description    *string            `json:"description,omitempty"`
	CourseID       *string            `json:"course_id,omitempty"`
	Duration       int                `json:"duration"`
	ValidityValue  int                `json:"validity_value"`
	ValidityUnit   model.ValidityUnit `json:"validity_unit"`
	PassPercentage *int               `json:"pass_percentage,omitempty"`
}

func (s *ContestService) CreateContest(ctx context.Context, instructorID string, req CreateContestRequest) (*model.Contest, error) {
	if req.Title == "" || req.Duration == 0 || req.ValidityValue == 0 || req.ValidityUnit == "" {
		return nil, common.Errorf("missing required fields for contest creation: %w", common.ErrValidation)
	}
	if !model.IsKnownValidityUnit(req.ValidityUnit) {
		return nil, common.Errorf("unknown validity unit %q: %w", req.ValidityUnit, common.ErrValidation)
	}

	contest := &model.Contest{
		ID:             uuid.NewString(),
		Title:          req.Title,
		Slug:           slug.Make(req.Title),
		Description:    req.Description,
		CourseID:       req.CourseID,
		InstructorID:   instructorID,
		Duration:       req.Duration,
		ValidityValue:  req.ValidityValue,
		ValidityUnit:   req.ValidityUnit,
		PassPercentage: req.PassPercentage,
	}

	if err := s.contestRepo.Create(ctx, contest); err != nil {
		return nil, common.Errorf("failed to create contest: %w", err)
	}
	contest.Status = contest.StatusAt(time.Now())
	return contest, nil
}

func (s *ContestService) ListMine(ctx context.Context, instructorID string) ([]model.Contest, error) {
	contests, err := s.contestRepo.ListByInstructor(ctx, instructorID)
	if err != nil {
		return nil, common.Errorf("failed to list instructor contests: %w", err)
	}
	attachStatus(contests)
	return contests, nil
}

func (s *ContestService) ListAvailable(ctx context.Context) ([]model.Contest, error) {
	contests, err := s.contestRepo.ListAll(ctx)
	if err != nil {
		return nil, common.Errorf("failed to list contests: %w", err)
	}
	attachStatus(contests)
	return contests, nil
}

func (s *ContestService) GetByID(ctx context.Context, id string) (*model.Contest, error) {
	contest, err := s.contestRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	contest.Status = contest.StatusAt(time.Now())
	return contest, nil
}

func (s *ContestService) UpdateContest(ctx context.Context, id, instructorID string, upd repository.ContestUpdate) (*model.Contest, error) {
	if upd.ValidityUnit != nil && !model.IsKnownValidityUnit(*upd.ValidityUnit) {
		return nil, common.Errorf("unknown validity unit %q: %w", *upd.ValidityUnit, common.ErrValidation)
	}
	contest, err := s.contestRepo.Update(ctx, id, instructorID, upd)
	if err != nil {
		return nil, err
	}
	contest.Status = contest.StatusAt(time.Now())
	return contest, nil
}

func (s *ContestService) DeleteContest(ctx context.Context, id, instructorID string) error {
	return s.contestRepo.Delete(ctx, id, instructorID)
}

// attachStatus derives the lifecycle status for each row against one shared
// clock reading, so a single response cannot disagree with itself.
func attachStatus(contests []model.Contest) {
	now := time.Now()
	for i := range contests {
		contests[i].Status = contests[i].StatusAt(now)
	}
}

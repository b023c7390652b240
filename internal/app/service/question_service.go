package service

import (
	"context"
	"database/sql"

	"shnoor_lms/internal/common"
	"shnoor_lms/internal/domain/model"
	"shnoor_lms/internal/domain/repository"

	"github.com/google/uuid"
)

type QuestionService struct {
	questionRepo repository.QuestionRepository
	contestRepo  repository.ContestRepository
	db           *sql.DB // For transactions
}

func NewQuestionService(
	questionRepo repository.QuestionRepository,
	contestRepo repository.ContestRepository,
	db *sql.DB,
) *QuestionService {
	return &QuestionService{
		questionRepo: questionRepo,
		contestRepo:  contestRepo,
		db:           db,
	}
}

type AddQuestionRequest struct {
	QuestionText string              `json:"questionText"`
	Options      []AddQuestionOption `json:"options"`
}

type AddQuestionOption struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

// AddQuestion inserts a question and its options atomically. The contest
// ownership check runs inside the same transaction, so a concurrent delete
// of the contest cannot leave orphaned question rows.
func (s *QuestionService) AddQuestion(ctx context.Context, contestID, instructorID string, req AddQuestionRequest) (string, error) {
	if req.QuestionText == "" || len(req.Options) < 2 {
		return "", common.Errorf("question text and at least 2 options are required: %w", common.ErrValidation)
	}
	correctCount := 0
	for _, opt := range req.Options {
		if opt.IsCorrect {
			correctCount++
		}
	}
	if correctCount != 1 {
		return "", common.Errorf("exactly one option must be marked as correct: %w", common.ErrValidation)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", common.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // Rollback if not committed

	owned, err := s.contestRepo.ExistsOwned(ctx, tx, contestID, instructorID)
	if err != nil {
		return "", common.Errorf("failed to verify contest ownership: %w", err)
	}
	if !owned {
		// Missing and not-owned are deliberately indistinguishable.
		return "", common.ErrNotFound
	}

	question := &model.Question{
		ID:           uuid.NewString(),
		ContestID:    contestID,
		QuestionText: req.QuestionText,
	}
	if err := s.questionRepo.CreateQuestion(ctx, tx, question); err != nil {
		return "", common.Errorf("failed to create question: %w", err)
	}

	options := make([]model.Option, 0, len(req.Options))
	for _, opt := range req.Options {
		options = append(options, model.Option{
			ID:         uuid.NewString(),
			QuestionID: question.ID,
			OptionText: opt.Text,
			IsCorrect:  opt.IsCorrect,
		})
	}
	if err := s.questionRepo.CreateOptions(ctx, tx, question.ID, options); err != nil {
		return "", common.Errorf("failed to create options: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", common.Errorf("failed to commit transaction: %w", err)
	}
	return question.ID, nil
}

func (s *QuestionService) GetQuestionsForStudent(ctx context.Context, contestID string) ([]model.StudentQuestion, error) {
	questions, err := s.questionRepo.ListForStudent(ctx, contestID)
	if err != nil {
		return nil, common.Errorf("failed to list contest questions: %w", err)
	}
	return questions, nil
}

package service

import (
	"context"
	"database/sql"
	"log"

	"shnoor_lms/internal/common"
	"shnoor_lms/internal/domain/model"
	"shnoor_lms/internal/domain/repository"

	"github.com/google/uuid"
)

// RebuildEnqueuer requests an asynchronous standings refresh for a contest.
// Satisfied by LeaderboardService.
type RebuildEnqueuer interface {
	EnqueueRebuild(ctx context.Context, contestID string) error
}

type SubmissionService struct {
	submissionRepo repository.SubmissionRepository
	questionRepo   repository.QuestionRepository
	contestRepo    repository.ContestRepository
	leaderboard    RebuildEnqueuer
	db             *sql.DB // For transactions
}

func NewSubmissionService(
	submissionRepo repository.SubmissionRepository,
	questionRepo repository.QuestionRepository,
	contestRepo repository.ContestRepository,
	leaderboard RebuildEnqueuer,
	db *sql.DB,
) *SubmissionService {
	return &SubmissionService{
		submissionRepo: submissionRepo,
		questionRepo:   questionRepo,
		contestRepo:    contestRepo,
		leaderboard:    leaderboard,
		db:             db,
	}
}

type SubmitRequest struct {
	// answers maps question id to the chosen option id.
	Answers map[string]string `json:"answers"`
}

type SubmitResponse struct {
	Message        string `json:"message"`
	SubmissionID   string `json:"submission_id"`
	StudentID      string `json:"student_id"`
	ContestID      string `json:"exam_id"`
	TotalQuestions int    `json:"totalQuestions"`
	CorrectAnswers int    `json:"correctAnswers"`
}

// Submit scores a student's answers against the contest's correct-option map
// and persists the submission with its chosen answers in one transaction.
// Resubmission is allowed without limit; no partial credit, no negative
// marking.
func (s *SubmissionService) Submit(ctx context.Context, contestID, studentID string, req SubmitRequest) (*SubmitResponse, error) {
	if req.Answers == nil {
		return nil, common.Errorf("answers are required: %w", common.ErrValidation)
	}

	if _, err := s.contestRepo.FindByID(ctx, contestID); err != nil {
		return nil, err
	}

	correct, err := s.questionRepo.CorrectOptionsByContest(ctx, contestID)
	if err != nil {
		return nil, common.Errorf("failed to load correct options: %w", err)
	}

	correctMap := make(map[string]string, len(correct))
	for _, pair := range correct {
		correctMap[pair.QuestionID] = pair.OptionID
	}

	score := 0
	for questionID, optionID := range req.Answers {
		if want, ok := correctMap[questionID]; ok && want == optionID {
			score++
		}
	}

	submission := &model.Submission{
		ID:             uuid.NewString(),
		ContestID:      contestID,
		StudentID:      studentID,
		TotalQuestions: len(correct),
		CorrectAnswers: score,
	}

	answers := make([]model.Answer, 0, len(req.Answers))
	for questionID, optionID := range req.Answers {
		answers = append(answers, model.Answer{
			SubmissionID: submission.ID,
			QuestionID:   questionID,
			OptionID:     optionID,
		})
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, common.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // Rollback if not committed

	if err := s.submissionRepo.CreateSubmission(ctx, tx, submission); err != nil {
		return nil, common.Errorf("failed to persist submission: %w", err)
	}
	if err := s.submissionRepo.CreateAnswers(ctx, tx, answers); err != nil {
		return nil, common.Errorf("failed to persist answers: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, common.Errorf("failed to commit transaction: %w", err)
	}

	// Standings refresh is best-effort; the submission is already durable.
	if err := s.leaderboard.EnqueueRebuild(ctx, contestID); err != nil {
		log.Printf("ERROR: Failed to enqueue leaderboard rebuild for contest %s: %v", contestID, err)
	}

	return &SubmitResponse{
		Message:        "Submission evaluated",
		SubmissionID:   submission.ID,
		StudentID:      studentID,
		ContestID:      contestID,
		TotalQuestions: submission.TotalQuestions,
		CorrectAnswers: submission.CorrectAnswers,
	}, nil
}

func (s *SubmissionService) GetSubmissionResult(ctx context.Context, submissionID string) (*model.SubmissionResult, error) {
	return s.submissionRepo.FindResultByID(ctx, submissionID)
}

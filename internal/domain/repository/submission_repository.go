package repository

import (
	"context"
	"database/sql"
	"fmt"

	"shnoor_lms/internal/common"
	"shnoor_lms/internal/domain/model"
)

type SubmissionRepository interface {
	CreateSubmission(ctx context.Context, tx *sql.Tx, submission *model.Submission) error
	CreateAnswers(ctx context.Context, tx *sql.Tx, answers []model.Answer) error
	FindResultByID(ctx context.Context, submissionID string) (*model.SubmissionResult, error)
	BestByStudent(ctx context.Context, contestID string) ([]model.LeaderboardEntry, error)
}

type pgSubmissionRepository struct {
	db *sql.DB
}

func NewPgSubmissionRepository(db *sql.DB) SubmissionRepository {
	return &pgSubmissionRepository{db: db}
}

func (r *pgSubmissionRepository) CreateSubmission(ctx context.Context, tx *sql.Tx, s *model.Submission) error {
	query := `INSERT INTO contest_submissions
	            (submission_id, exam_id, student_id, total_questions, correct_answers)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING submitted_at`
	var err error
	if tx != nil {
		err = tx.QueryRowContext(ctx, query, s.ID, s.ContestID, s.StudentID, s.TotalQuestions, s.CorrectAnswers).Scan(&s.SubmittedAt)
	} else {
		err = r.db.QueryRowContext(ctx, query, s.ID, s.ContestID, s.StudentID, s.TotalQuestions, s.CorrectAnswers).Scan(&s.SubmittedAt)
	}
	if err != nil {
		return fmt.Errorf("pgSubmissionRepository.CreateSubmission: %w", err)
	}
	return nil
}

func (r *pgSubmissionRepository) CreateAnswers(ctx context.Context, tx *sql.Tx, answers []model.Answer) error {
	if len(answers) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO contest_answers (submission_id, question_id, option_id)
	                                     VALUES ($1, $2, $3)`)
	if err != nil {
		return fmt.Errorf("pgSubmissionRepository.CreateAnswers prepare: %w", err)
	}
	defer stmt.Close()

	for _, a := range answers {
		if _, err := stmt.ExecContext(ctx, a.SubmissionID, a.QuestionID, a.OptionID); err != nil {
			return fmt.Errorf("pgSubmissionRepository.CreateAnswers exec for question %s: %w", a.QuestionID, err)
		}
	}
	return nil
}

// FindResultByID reads the result stored on the submission row, so the
// counts always match what Submit computed and persisted.
func (r *pgSubmissionRepository) FindResultByID(ctx context.Context, submissionID string) (*model.SubmissionResult, error) {
	query := `SELECT submission_id, total_questions, correct_answers
	          FROM contest_submissions
	          WHERE submission_id = $1`
	result := &model.SubmissionResult{}
	err := r.db.QueryRowContext(ctx, query, submissionID).Scan(
		&result.SubmissionID, &result.TotalQuestions, &result.CorrectAnswers,
	)
	if err == sql.ErrNoRows {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("pgSubmissionRepository.FindResultByID: %w", err)
	}
	result.Score = result.CorrectAnswers
	return result, nil
}

// BestByStudent ranks a contest's submissions: one row per student carrying
// their best score, ties broken by the earlier submission.
func (r *pgSubmissionRepository) BestByStudent(ctx context.Context, contestID string) ([]model.LeaderboardEntry, error) {
	query := `SELECT DISTINCT ON (s.student_id)
	            s.student_id, u.username, s.correct_answers, s.total_questions, s.submitted_at
	          FROM contest_submissions s
	          JOIN users u ON u.id = s.student_id
	          WHERE s.exam_id = $1
	          ORDER BY s.student_id, s.correct_answers DESC, s.submitted_at ASC`
	rows, err := r.db.QueryContext(ctx, query, contestID)
	if err != nil {
		return nil, fmt.Errorf("pgSubmissionRepository.BestByStudent query: %w", err)
	}
	defer rows.Close()

	entries := []model.LeaderboardEntry{}
	for rows.Next() {
		var e model.LeaderboardEntry
		if err := rows.Scan(&e.StudentID, &e.Username, &e.Score, &e.Total, &e.SubmittedAt); err != nil {
			return nil, fmt.Errorf("pgSubmissionRepository.BestByStudent scan: %w", err)
		}
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgSubmissionRepository.BestByStudent rows.Err: %w", err)
	}
	return entries, nil
}

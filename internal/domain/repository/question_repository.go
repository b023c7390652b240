package repository

import (
	"context"
	"database/sql"
	"fmt"

	"shnoor_lms/internal/domain/model"
)

type QuestionRepository interface {
	CreateQuestion(ctx context.Context, tx *sql.Tx, question *model.Question) error
	CreateOptions(ctx context.Context, tx *sql.Tx, questionID string, options []model.Option) error
	ListForStudent(ctx context.Context, contestID string) ([]model.StudentQuestion, error)
	CorrectOptionsByContest(ctx context.Context, contestID string) ([]model.CorrectOption, error)
}

type pgQuestionRepository struct {
	db *sql.DB
}

func NewPgQuestionRepository(db *sql.DB) QuestionRepository {
	return &pgQuestionRepository{db: db}
}

func (r *pgQuestionRepository) CreateQuestion(ctx context.Context, tx *sql.Tx, q *model.Question) error {
	query := `INSERT INTO contest_questions (question_id, exam_id, question_text)
	          VALUES ($1, $2, $3)`
	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, q.ID, q.ContestID, q.QuestionText)
	} else {
		_, err = r.db.ExecContext(ctx, query, q.ID, q.ContestID, q.QuestionText)
	}
	if err != nil {
		return fmt.Errorf("pgQuestionRepository.CreateQuestion: %w", err)
	}
	return nil
}

func (r *pgQuestionRepository) CreateOptions(ctx context.Context, tx *sql.Tx, questionID string, options []model.Option) error {
	if len(options) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO contest_options (option_id, question_id, option_text, is_correct)
	                                     VALUES ($1, $2, $3, $4)`)
	if err != nil {
		return fmt.Errorf("pgQuestionRepository.CreateOptions prepare: %w", err)
	}
	defer stmt.Close()

	for _, opt := range options {
		if _, err := stmt.ExecContext(ctx, opt.ID, questionID, opt.OptionText, opt.IsCorrect); err != nil {
			return fmt.Errorf("pgQuestionRepository.CreateOptions exec for option %s: %w", opt.ID, err)
		}
	}
	return nil
}

// ListForStudent returns a contest's questions with their options grouped
// under each question, ordered by question id ascending. The query never
// selects is_correct.
func (r *pgQuestionRepository) ListForStudent(ctx context.Context, contestID string) ([]model.StudentQuestion, error) {
	query := `SELECT q.question_id, q.question_text, o.option_id, o.option_text
	          FROM contest_questions q
	          JOIN contest_options o ON o.question_id = q.question_id
	          WHERE q.exam_id = $1
	          ORDER BY q.question_id ASC, o.option_id ASC`
	rows, err := r.db.QueryContext(ctx, query, contestID)
	if err != nil {
		return nil, fmt.Errorf("pgQuestionRepository.ListForStudent query: %w", err)
	}
	defer rows.Close()

	questions := []model.StudentQuestion{}
	for rows.Next() {
		var qID, qText, oID, oText string
		if err := rows.Scan(&qID, &qText, &oID, &oText); err != nil {
			return nil, fmt.Errorf("pgQuestionRepository.ListForStudent scan: %w", err)
		}
		if len(questions) == 0 || questions[len(questions)-1].ID != qID {
			questions = append(questions, model.StudentQuestion{ID: qID, QuestionText: qText})
		}
		last := &questions[len(questions)-1]
		last.Options = append(last.Options, model.StudentOption{ID: oID, OptionText: oText})
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgQuestionRepository.ListForStudent rows.Err: %w", err)
	}
	return questions, nil
}

func (r *pgQuestionRepository) CorrectOptionsByContest(ctx context.Context, contestID string) ([]model.CorrectOption, error) {
	query := `SELECT q.question_id, o.option_id
	          FROM contest_questions q
	          JOIN contest_options o ON o.question_id = q.question_id
	          WHERE q.exam_id = $1 AND o.is_correct = TRUE`
	rows, err := r.db.QueryContext(ctx, query, contestID)
	if err != nil {
		return nil, fmt.Errorf("pgQuestionRepository.CorrectOptionsByContest query: %w", err)
	}
	defer rows.Close()

	var pairs []model.CorrectOption
	for rows.Next() {
		var p model.CorrectOption
		if err := rows.Scan(&p.QuestionID, &p.OptionID); err != nil {
			return nil, fmt.Errorf("pgQuestionRepository.CorrectOptionsByContest scan: %w", err)
		}
		pairs = append(pairs, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgQuestionRepository.CorrectOptionsByContest rows.Err: %w", err)
	}
	return pairs, nil
}

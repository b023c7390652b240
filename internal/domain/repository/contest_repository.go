package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shnoor_lms/internal/common"
	"shnoor_lms/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

// ContestUpdate carries the optional fields of a partial update. Nil fields
// are preserved by COALESCE in the UPDATE statement.
type ContestUpdate struct {
	Title          *string             `json:"title,omitempty"`
	Description    *string             `json:"description,omitempty"`
	CourseID       *string             `json:"course_id,omitempty"`
	Duration       *int                `json:"duration,omitempty"`
	ValidityValue  *int                `json:"validity_value,omitempty"`
	ValidityUnit   *model.ValidityUnit `json:"validity_unit,omitempty"`
	PassPercentage *int                `json:"pass_percentage,omitempty"`
}

type ContestRepository interface {
	Create(ctx context.Context, contest *model.Contest) error
	ListByInstructor(ctx context.Context, instructorID string) ([]model.Contest, error)
	ListAll(ctx context.Context) ([]model.Contest, error)
	FindByID(ctx context.Context, id string) (*model.Contest, error)
	Update(ctx context.Context, id, instructorID string, upd ContestUpdate) (*model.Contest, error)
	Delete(ctx context.Context, id, instructorID string) error
	// ExistsOwned checks id+owner within a transaction, for authoring flows.
	ExistsOwned(ctx context.Context, tx *sql.Tx, id, instructorID string) (bool, error)
}

type pgContestRepository struct {
	db *sql.DB
}

func NewPgContestRepository(db *sql.DB) ContestRepository {
	return &pgContestRepository{db: db}
}

const contestColumns = `exam_id, title, slug, description, course_id, instructor_id, duration,
	       validity_value, validity_unit, pass_percentage, created_at`

func scanContest(row interface{ Scan(...interface{}) error }) (*model.Contest, error) {
	c := &model.Contest{}
	err := row.Scan(
		&c.ID, &c.Title, &c.Slug, &c.Description, &c.CourseID, &c.InstructorID, &c.Duration,
		&c.ValidityValue, &c.ValidityUnit, &c.PassPercentage, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *pgContestRepository) Create(ctx context.Context, c *model.Contest) error {
	query := `INSERT INTO exams
	            (exam_id, title, slug, description, course_id, instructor_id, duration,
	             validity_value, validity_unit, pass_percentage, exam_type)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	          RETURNING created_at`
	err := r.db.QueryRowContext(ctx, query,
		c.ID, c.Title, c.Slug, c.Description, c.CourseID, c.InstructorID, c.Duration,
		c.ValidityValue, c.ValidityUnit, c.PassPercentage, model.ExamTypeContest,
	).Scan(&c.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique constraint for slug
			return fmt.Errorf("contest with this slug already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgContestRepository.Create: %w", err)
	}
	return nil
}

func (r *pgContestRepository) ListByInstructor(ctx context.Context, instructorID string) ([]model.Contest, error) {
	query := `SELECT ` + contestColumns + `
	          FROM exams
	          WHERE instructor_id = $1 AND exam_type = $2
	          ORDER BY created_at DESC`
	return r.list(ctx, query, instructorID, model.ExamTypeContest)
}

func (r *pgContestRepository) ListAll(ctx context.Context) ([]model.Contest, error) {
	query := `SELECT ` + contestColumns + `
	          FROM exams
	          WHERE exam_type = $1
	          ORDER BY created_at DESC`
	return r.list(ctx, query, model.ExamTypeContest)
}

func (r *pgContestRepository) list(ctx context.Context, query string, args ...interface{}) ([]model.Contest, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pgContestRepository.list query: %w", err)
	}
	defer rows.Close()

	contests := []model.Contest{}
	for rows.Next() {
		c, err := scanContest(rows)
		if err != nil {
			return nil, fmt.Errorf("pgContestRepository.list scan: %w", err)
		}
		contests = append(contests, *c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgContestRepository.list rows.Err: %w", err)
	}
	return contests, nil
}

func (r *pgContestRepository) FindByID(ctx context.Context, id string) (*model.Contest, error) {
	query := `SELECT ` + contestColumns + `
	          FROM exams
	          WHERE exam_id = $1 AND exam_type = $2`
	c, err := scanContest(r.db.QueryRowContext(ctx, query, id, model.ExamTypeContest))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgContestRepository.FindByID: %w", err)
	}
	return c, nil
}

func (r *pgContestRepository) Update(ctx context.Context, id, instructorID string, upd ContestUpdate) (*model.Contest, error) {
	query := `UPDATE exams SET
	            title = COALESCE($1, title),
	            description = COALESCE($2, description),
	            course_id = COALESCE($3, course_id),
	            duration = COALESCE($4, duration),
	            validity_value = COALESCE($5, validity_value),
	            validity_unit = COALESCE($6, validity_unit),
	            pass_percentage = COALESCE($7, pass_percentage)
	          WHERE exam_id = $8 AND instructor_id = $9 AND exam_type = $10
	          RETURNING ` + contestColumns
	c, err := scanContest(r.db.QueryRowContext(ctx, query,
		upd.Title, upd.Description, upd.CourseID, upd.Duration,
		upd.ValidityValue, upd.ValidityUnit, upd.PassPercentage,
		id, instructorID, model.ExamTypeContest,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Not found or not owned; indistinguishable on purpose.
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgContestRepository.Update: %w", err)
	}
	return c, nil
}

func (r *pgContestRepository) Delete(ctx context.Context, id, instructorID string) error {
	query := `DELETE FROM exams
	          WHERE exam_id = $1 AND instructor_id = $2 AND exam_type = $3`
	res, err := r.db.ExecContext(ctx, query, id, instructorID, model.ExamTypeContest)
	if err != nil {
		return fmt.Errorf("pgContestRepository.Delete: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgContestRepository.Delete rows affected: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgContestRepository) ExistsOwned(ctx context.Context, tx *sql.Tx, id, instructorID string) (bool, error) {
	query := `SELECT exam_id FROM exams
	          WHERE exam_id = $1 AND instructor_id = $2 AND exam_type = $3`
	var found string
	var err error
	if tx != nil {
		err = tx.QueryRowContext(ctx, query, id, instructorID, model.ExamTypeContest).Scan(&found)
	} else {
		err = r.db.QueryRowContext(ctx, query, id, instructorID, model.ExamTypeContest).Scan(&found)
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("pgContestRepository.ExistsOwned: %w", err)
	}
	return true, nil
}

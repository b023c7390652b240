package service

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"sort"
	"time"

	"shnoor_lms/internal/common"
	"shnoor_lms/internal/domain/model"
	"shnoor_lms/internal/domain/repository"
)

// ---- stub sql driver -------------------------------------------------------
//
// The services own their transaction boundaries via *sql.DB, so tests hand
// them a DB backed by this stub driver. It only supports BeginTx/Commit/
// Rollback and counts what happened; the fake repositories below ignore the
// *sql.Tx they are given.

type stubConnector struct {
	commits   int
	rollbacks int
}

func (c *stubConnector) Connect(context.Context) (driver.Conn, error) { return &stubConn{c: c}, nil }
func (c *stubConnector) Driver() driver.Driver                        { return stubDriver{} }

type stubDriver struct{}

func (stubDriver) Open(string) (driver.Conn, error) { return nil, errors.New("use OpenDB") }

type stubConn struct {
	c *stubConnector
}

func (conn *stubConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("stubConn: prepare unsupported")
}
func (conn *stubConn) Close() error { return nil }
func (conn *stubConn) Begin() (driver.Tx, error) {
	return &stubTx{c: conn.c}, nil
}
func (conn *stubConn) BeginTx(context.Context, driver.TxOptions) (driver.Tx, error) {
	return &stubTx{c: conn.c}, nil
}

type stubTx struct {
	c *stubConnector
}

func (tx *stubTx) Commit() error {
	tx.c.commits++
	return nil
}
func (tx *stubTx) Rollback() error {
	tx.c.rollbacks++
	return nil
}

func newStubDB() (*sql.DB, *stubConnector) {
	c := &stubConnector{}
	return sql.OpenDB(c), c
}

// ---- fake repositories -----------------------------------------------------

type fakeContestRepo struct {
	contests map[string]*model.Contest
	owned    map[string]string // contest id -> instructor id
}

func newFakeContestRepo() *fakeContestRepo {
	return &fakeContestRepo{
		contests: map[string]*model.Contest{},
		owned:    map[string]string{},
	}
}

func (r *fakeContestRepo) Create(_ context.Context, c *model.Contest) error {
	stored := *c
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	c.CreatedAt = stored.CreatedAt
	r.contests[c.ID] = &stored
	r.owned[c.ID] = c.InstructorID
	return nil
}

func (r *fakeContestRepo) ListByInstructor(_ context.Context, instructorID string) ([]model.Contest, error) {
	out := []model.Contest{}
	for _, c := range r.contests {
		if c.InstructorID == instructorID {
			out = append(out, *c)
		}
	}
	sortByCreatedDesc(out)
	return out, nil
}

func (r *fakeContestRepo) ListAll(context.Context) ([]model.Contest, error) {
	out := []model.Contest{}
	for _, c := range r.contests {
		out = append(out, *c)
	}
	sortByCreatedDesc(out)
	return out, nil
}

func sortByCreatedDesc(contests []model.Contest) {
	sort.SliceStable(contests, func(i, j int) bool {
		return contests[i].CreatedAt.After(contests[j].CreatedAt)
	})
}

func (r *fakeContestRepo) FindByID(_ context.Context, id string) (*model.Contest, error) {
	c, ok := r.contests[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (r *fakeContestRepo) Update(_ context.Context, id, instructorID string, upd repository.ContestUpdate) (*model.Contest, error) {
	c, ok := r.contests[id]
	if !ok || c.InstructorID != instructorID {
		return nil, common.ErrNotFound
	}
	if upd.Title != nil {
		c.Title = *upd.Title
	}
	if upd.Description != nil {
		c.Description = upd.Description
	}
	if upd.CourseID != nil {
		c.CourseID = upd.CourseID
	}
	if upd.Duration != nil {
		c.Duration = *upd.Duration
	}
	if upd.ValidityValue != nil {
		c.ValidityValue = *upd.ValidityValue
	}
	if upd.ValidityUnit != nil {
		c.ValidityUnit = *upd.ValidityUnit
	}
	if upd.PassPercentage != nil {
		c.PassPercentage = upd.PassPercentage
	}
	copied := *c
	return &copied, nil
}

func (r *fakeContestRepo) Delete(_ context.Context, id, instructorID string) error {
	c, ok := r.contests[id]
	if !ok || c.InstructorID != instructorID {
		return common.ErrNotFound
	}
	delete(r.contests, id)
	delete(r.owned, id)
	return nil
}

func (r *fakeContestRepo) ExistsOwned(_ context.Context, _ *sql.Tx, id, instructorID string) (bool, error) {
	owner, ok := r.owned[id]
	return ok && owner == instructorID, nil
}

type fakeQuestionRepo struct {
	questions  []model.Question
	options    []model.Option
	correct    []model.CorrectOption
	student    []model.StudentQuestion
	optionsErr error
}

func (r *fakeQuestionRepo) CreateQuestion(_ context.Context, _ *sql.Tx, q *model.Question) error {
	r.questions = append(r.questions, *q)
	return nil
}

func (r *fakeQuestionRepo) CreateOptions(_ context.Context, _ *sql.Tx, questionID string, options []model.Option) error {
	if r.optionsErr != nil {
		return r.optionsErr
	}
	r.options = append(r.options, options...)
	return nil
}

func (r *fakeQuestionRepo) ListForStudent(context.Context, string) ([]model.StudentQuestion, error) {
	return r.student, nil
}

func (r *fakeQuestionRepo) CorrectOptionsByContest(context.Context, string) ([]model.CorrectOption, error) {
	return r.correct, nil
}

type fakeSubmissionRepo struct {
	submissions []model.Submission
	answers     []model.Answer
	result      *model.SubmissionResult
	entries     []model.LeaderboardEntry
}

func (r *fakeSubmissionRepo) CreateSubmission(_ context.Context, _ *sql.Tx, s *model.Submission) error {
	if s.SubmittedAt.IsZero() {
		s.SubmittedAt = time.Now()
	}
	r.submissions = append(r.submissions, *s)
	return nil
}

func (r *fakeSubmissionRepo) CreateAnswers(_ context.Context, _ *sql.Tx, answers []model.Answer) error {
	r.answers = append(r.answers, answers...)
	return nil
}

func (r *fakeSubmissionRepo) FindResultByID(_ context.Context, submissionID string) (*model.SubmissionResult, error) {
	for _, s := range r.submissions {
		if s.ID == submissionID {
			return &model.SubmissionResult{
				SubmissionID:   s.ID,
				TotalQuestions: s.TotalQuestions,
				CorrectAnswers: s.CorrectAnswers,
				Score:          s.CorrectAnswers,
			}, nil
		}
	}
	if r.result == nil || r.result.SubmissionID != submissionID {
		return nil, common.ErrNotFound
	}
	copied := *r.result
	return &copied, nil
}

func (r *fakeSubmissionRepo) BestByStudent(context.Context, string) ([]model.LeaderboardEntry, error) {
	return r.entries, nil
}

type fakeUserRepo struct {
	users map[string]*model.User // by id
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*model.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return common.ErrConflict
		}
	}
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

type fakeEnqueuer struct {
	enqueued []string
}

func (f *fakeEnqueuer) EnqueueRebuild(_ context.Context, contestID string) error {
	f.enqueued = append(f.enqueued, contestID)
	return nil
}

package model

import "time"

type Submission struct {
	ID             string    `json:"submission_id"`
	ContestID      string    `json:"exam_id"`
	StudentID      string    `json:"student_id"`
	TotalQuestions int       `json:"total_questions"`
	CorrectAnswers int       `json:"correct_answers"`
	SubmittedAt    time.Time `json:"submitted_at"`
}

// Answer records one chosen option within a submission.
type Answer struct {
	SubmissionID string `json:"submission_id"`
	QuestionID   string `json:"question_id"`
	OptionID     string `json:"option_id"`
}

// CorrectOption pairs a question with its single correct option, as fetched
// for scoring.
type CorrectOption struct {
	QuestionID string
	OptionID   string
}

type SubmissionResult struct {
	SubmissionID   string `json:"submission_id"`
	TotalQuestions int    `json:"total_questions"`
	CorrectAnswers int    `json:"correct_answers"`
	Score          int    `json:"score"`
}

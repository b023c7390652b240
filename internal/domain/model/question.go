package model

type Question struct {
	ID           string   `json:"question_id"`
	ContestID    string   `json:"exam_id"`
	QuestionText string   `json:"question_text"`
	Options      []Option `json:"options,omitempty"`
}

type Option struct {
	ID         string `json:"option_id"`
	QuestionID string `json:"question_id"`
	OptionText string `json:"option_text"`
	IsCorrect  bool   `json:"is_correct"`
}

// StudentQuestion is the answer-blind view served to students. It has no
// correctness field at all, so is_correct can never be serialized by accident.
type StudentQuestion struct {
	ID           string          `json:"question_id"`
	QuestionText string          `json:"question_text"`
	Options      []StudentOption `json:"options"`
}

type StudentOption struct {
	ID         string `json:"option_id"`
	OptionText string `json:"option_text"`
}

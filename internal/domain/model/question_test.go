package model

import (
	"encoding/json"
	"strings"
	"testing"
)

// Students must never see which option is correct, no matter how the
// payload is assembled.
func TestStudentQuestionNeverSerializesCorrectness(t *testing.T) {
	questions := []StudentQuestion{
		{
			ID:           "q1",
			QuestionText: "What does ACID stand for?",
			Options: []StudentOption{
				{ID: "o1", OptionText: "Atomicity, Consistency, Isolation, Durability"},
				{ID: "o2", OptionText: "Availability, Consistency, Integrity, Durability"},
			},
		},
	}

	payload, err := json.Marshal(questions)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(payload), "is_correct") {
		t.Errorf("student payload leaks is_correct: %s", payload)
	}
	if strings.Contains(string(payload), "IsCorrect") {
		t.Errorf("student payload leaks IsCorrect: %s", payload)
	}
}

func TestOptionSerializesCorrectnessForInstructors(t *testing.T) {
	payload, err := json.Marshal(Option{ID: "o1", QuestionID: "q1", OptionText: "42", IsCorrect: true})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(payload), `"is_correct":true`) {
		t.Errorf("instructor option payload missing is_correct: %s", payload)
	}
}

package model

import "time"

type LeaderboardEntry struct {
	Rank        int       `json:"rank"`
	StudentID   string    `json:"student_id"`
	Username    string    `json:"username"`
	Score       int       `json:"score"`
	Total       int       `json:"total"`
	SubmittedAt time.Time `json:"submitted_at"`
}

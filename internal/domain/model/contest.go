package model

import (
	"time"
)

type ValidityUnit string
type ContestStatus string

const (
	UnitHour  ValidityUnit = "hour"
	UnitDay   ValidityUnit = "day"
	UnitWeek  ValidityUnit = "week"
	UnitMonth ValidityUnit = "month"

	StatusUpcoming ContestStatus = "upcoming"
	StatusActive   ContestStatus = "active"
	StatusEnded    ContestStatus = "ended"
)

// ExamTypeContest tags the contest subset of the shared exams table. Every
// contest query must be fenced by it so other exam kinds never leak through.
const ExamTypeContest = "contest"

func IsKnownValidityUnit(unit ValidityUnit) bool {
	switch unit {
	case UnitHour, UnitDay, UnitWeek, UnitMonth:
		return true
	}
	return false
}

type Contest struct {
	ID             string        `json:"exam_id"`
	Title          string        `json:"title"`
	Slug           string        `json:"slug"`
	Description    *string       `json:"description,omitempty"`
	CourseID       *string       `json:"course_id,omitempty"`
	InstructorID   string        `json:"instructor_id"`
	Duration       int           `json:"duration"` // minutes
	ValidityValue  int           `json:"validity_value"`
	ValidityUnit   ValidityUnit  `json:"validity_unit"`
	PassPercentage *int          `json:"pass_percentage,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	Status         ContestStatus `json:"status,omitempty"` // derived, never stored
}

// EndsAt computes the end of the joinable window: created_at plus the
// validity span. Months go through AddDate so end-of-month overflow
// normalizes the same way the calendar does.
func (c *Contest) EndsAt() time.Time {
	start := c.CreatedAt
	switch c.ValidityUnit {
	case UnitHour:
		return start.Add(time.Duration(c.ValidityValue) * time.Hour)
	case UnitDay:
		return start.AddDate(0, 0, c.ValidityValue)
	case UnitWeek:
		return start.AddDate(0, 0, c.ValidityValue*7)
	case UnitMonth:
		return start.AddDate(0, c.ValidityValue, 0)
	}
	return start
}

// StatusAt derives the lifecycle status at the given instant. The window is
// half-open: a contest is active on [created_at, end) and ended from end on.
func (c *Contest) StatusAt(now time.Time) ContestStatus {
	if now.Before(c.CreatedAt) {
		return StatusUpcoming
	}
	if !now.Before(c.EndsAt()) {
		return StatusEnded
	}
	return StatusActive
}

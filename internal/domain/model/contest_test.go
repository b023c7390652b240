package model

import (
	"testing"
	"time"
)

func newContest(value int, unit ValidityUnit, createdAt time.Time) *Contest {
	return &Contest{
		ID:            "c1",
		Title:         "Weekly Contest 1",
		InstructorID:  "i1",
		Duration:      30,
		ValidityValue: value,
		ValidityUnit:  unit,
		CreatedAt:     createdAt,
	}
}

func TestEndsAt(t *testing.T) {
	start := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		value int
		unit  ValidityUnit
		want  time.Time
	}{
		{"hours", 6, UnitHour, start.Add(6 * time.Hour)},
		{"days", 7, UnitDay, start.AddDate(0, 0, 7)},
		{"weeks", 2, UnitWeek, start.AddDate(0, 0, 14)},
		{"months", 1, UnitMonth, time.Date(2025, time.April, 10, 12, 0, 0, 0, time.UTC)},
		{"unknown unit collapses to start", 5, ValidityUnit("fortnight"), start},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newContest(tt.value, tt.unit, start)
			if got := c.EndsAt(); !got.Equal(tt.want) {
				t.Errorf("EndsAt() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEndsAtMonthOverflowNormalizes(t *testing.T) {
	// Jan 31 + 1 month has no Feb 31; the calendar add normalizes forward.
	start := time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC)
	c := newContest(1, UnitMonth, start)
	want := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)
	if got := c.EndsAt(); !got.Equal(want) {
		t.Errorf("EndsAt() = %v, want %v", got, want)
	}
}

func TestStatusAtSevenDayWindow(t *testing.T) {
	start := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	c := newContest(7, UnitDay, start)
	end := start.AddDate(0, 0, 7)

	tests := []struct {
		name string
		now  time.Time
		want ContestStatus
	}{
		{"before start", start.Add(-time.Second), StatusUpcoming},
		{"at start", start, StatusActive},
		{"mid window", start.AddDate(0, 0, 3), StatusActive},
		{"just before end", end.Add(-time.Second), StatusActive},
		{"at end", end, StatusEnded},
		{"after end", end.Add(48 * time.Hour), StatusEnded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.StatusAt(tt.now); got != tt.want {
				t.Errorf("StatusAt(%v) = %q, want %q", tt.now, got, tt.want)
			}
		})
	}
}

func TestStatusAtHourWindow(t *testing.T) {
	start := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	c := newContest(2, UnitHour, start)

	if got := c.StatusAt(start.Add(time.Hour)); got != StatusActive {
		t.Errorf("StatusAt(+1h) = %q, want %q", got, StatusActive)
	}
	if got := c.StatusAt(start.Add(2 * time.Hour)); got != StatusEnded {
		t.Errorf("StatusAt(+2h) = %q, want %q", got, StatusEnded)
	}
}

func TestIsKnownValidityUnit(t *testing.T) {
	for _, unit := range []ValidityUnit{UnitHour, UnitDay, UnitWeek, UnitMonth} {
		if !IsKnownValidityUnit(unit) {
			t.Errorf("IsKnownValidityUnit(%q) = false, want true", unit)
		}
	}
	if IsKnownValidityUnit(ValidityUnit("year")) {
		t.Error(`IsKnownValidityUnit("year") = true, want false`)
	}
	if IsKnownValidityUnit("") {
		t.Error(`IsKnownValidityUnit("") = true, want false`)
	}
}

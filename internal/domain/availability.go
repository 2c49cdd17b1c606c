package domain

import "time"

type AvailabilitySlot struct {
	Date          time.Time      `json:"date"`
	DayOfWeek     int            `json:"day_of_week"`
	StartTime     string         `json:"start_time"`
	EndTime       string         `json:"end_time"`
	IsException   bool           `json:"is_exception"`
	ExceptionType *ExceptionType `json:"exception_type,omitempty"`
	IsAvailable   bool           `json:"is_available"`
}

// Window converts the slot into absolute instants in loc.
func (s AvailabilitySlot) Window(loc *time.Location) (time.Time, time.Time, error) {
	startMin, err := ClockMinutes(s.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	endMin, err := ClockMinutes(s.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	base := time.Date(s.Date.Year(), s.Date.Month(), s.Date.Day(), 0, 0, 0, 0, loc)
	return base.Add(time.Duration(startMin) * time.Minute), base.Add(time.Duration(endMin) * time.Minute), nil
}

type ConflictKind string

const (
	ConflictAppointment ConflictKind = "appointment"
	ConflictTimeBlock   ConflictKind = "time_block"
)

type ConflictingEvent struct {
	Kind      ConflictKind `json:"kind"`
	ID        int64        `json:"id"`
	StartTime time.Time    `json:"start_time"`
	EndTime   time.Time    `json:"end_time"`
	Label     string       `json:"label,omitempty"`
}

type ConflictResult struct {
	HasConflict       bool               `json:"has_conflict"`
	ConflictingEvents []ConflictingEvent `json:"conflicting_events"`
}

// Overlaps implements half-open [s1,e1) vs [s2,e2) overlap; touching endpoints do not overlap.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && e1.After(s2)
}

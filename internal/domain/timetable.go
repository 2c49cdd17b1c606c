package domain

import (
	"fmt"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

type Timetable struct {
	ID         int64                `json:"id"`
	EmployeeID int64                `json:"employee_id"`
	ValidFrom  time.Time            `json:"valid_from"`
	ValidTo    *time.Time           `json:"valid_to"`
	IsActive   bool                 `json:"is_active"`
	Slots      []TimetableSlot      `json:"slots"`
	Exceptions []TimetableException `json:"exceptions,omitempty"`
	CreatedAt  time.Time            `json:"created_at"`
	UpdatedAt  time.Time            `json:"updated_at"`
}

// Covers reports whether the timetable's validity window contains day.
func (t Timetable) Covers(day time.Time) bool {
	if day.Before(t.ValidFrom) {
		return false
	}
	if t.ValidTo != nil && day.After(*t.ValidTo) {
		return false
	}
	return true
}

// TimetableSlot is one recurring weekly interval. DayOfWeek is 0 for Monday.
type TimetableSlot struct {
	ID          int64  `json:"id"`
	TimetableID int64  `json:"timetable_id"`
	DayOfWeek   int    `json:"day_of_week"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	IsBreak     bool   `json:"is_break"`
}

type ExceptionType string

const (
	ExceptionDayOff      ExceptionType = "day_off"
	ExceptionHoliday     ExceptionType = "holiday"
	ExceptionVacation    ExceptionType = "vacation"
	ExceptionSickLeave   ExceptionType = "sick_leave"
	ExceptionTraining    ExceptionType = "training"
	ExceptionCustomHours ExceptionType = "custom_hours"
	ExceptionOther       ExceptionType = "other"
)

func (t ExceptionType) IsValid() bool {
	switch t {
	case ExceptionDayOff, ExceptionHoliday, ExceptionVacation, ExceptionSickLeave,
		ExceptionTraining, ExceptionCustomHours, ExceptionOther:
		return true
	}
	return false
}

type ExceptionStatus string

const (
	ExceptionApproved ExceptionStatus = "approved"
	ExceptionPending  ExceptionStatus = "pending"
	ExceptionRejected ExceptionStatus = "rejected"
)

type TimetableException struct {
	ID          int64           `json:"id"`
	TimetableID int64           `json:"timetable_id"`
	Date        time.Time       `json:"date"`
	Type        ExceptionType   `json:"type"`
	StartTime   *string         `json:"start_time"`
	EndTime     *string         `json:"end_time"`
	IsAllDay    bool            `json:"is_all_day"`
	Status      ExceptionStatus `json:"status"`
	Reason      *string         `json:"reason"`
	ReviewedBy  *int64          `json:"reviewed_by"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Overrides reports whether the exception replaces the regular schedule of its date.
func (e TimetableException) Overrides() bool {
	return e.Status != ExceptionRejected
}

type CreateTimetableSlotDTO struct {
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	IsBreak   bool   `json:"is_break"`
}

type CreateTimetableDTO struct {
	EmployeeID int64                    `json:"employee_id" binding:"required"`
	ValidFrom  string                   `json:"valid_from" binding:"required"`
	ValidTo    *string                  `json:"valid_to"`
	Slots      []CreateTimetableSlotDTO `json:"slots" binding:"required,dive"`
}

type CreateExceptionDTO struct {
	Date      string        `json:"date" binding:"required"`
	Type      ExceptionType `json:"type" binding:"required"`
	StartTime *string       `json:"start_time"`
	EndTime   *string       `json:"end_time"`
	IsAllDay  bool          `json:"is_all_day"`
	Reason    *string       `json:"reason"`
}

type ReviewExceptionDTO struct {
	Approve bool `json:"approve"`
}

// ClockMinutes parses an HH:mm wall-clock time into minutes after midnight.
func ClockMinutes(value string) (int, error) {
	t, err := time.Parse(ClockLayout, value)
	if err != nil {
		return 0, Validationf("неверный формат времени %q, ожидается HH:MM", value)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ParseDate parses YYYY-MM-DD as a civil date (UTC midnight).
func ParseDate(value string) (time.Time, error) {
	d, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, Validationf("неверный формат даты %q, ожидается YYYY-MM-DD", value)
	}
	return d, nil
}

// CivilDate truncates t to its calendar date in loc, represented at UTC midnight.
func CivilDate(t time.Time, loc *time.Location) time.Time {
	if loc != nil {
		t = t.In(loc)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// WeekdayIndex maps a date to 0..6 with Monday as 0.
func WeekdayIndex(day time.Time) int {
	return (int(day.Weekday()) + 6) % 7
}

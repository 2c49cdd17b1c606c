package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestAppointmentStatus_CanTransitionTo(t *testing.T) {
	t.Parallel()

	cases := []struct {
		from, to AppointmentStatus
		allowed  bool
	}{
		{AppointmentStatusScheduled, AppointmentStatusConfirmed, true},
		{AppointmentStatusScheduled, AppointmentStatusCompleted, true},
		{AppointmentStatusConfirmed, AppointmentStatusInProgress, true},
		{AppointmentStatusConfirmed, AppointmentStatusScheduled, false},
		{AppointmentStatusInProgress, AppointmentStatusConfirmed, false},
		{AppointmentStatusInProgress, AppointmentStatusNoShow, true},
		{AppointmentStatusCompleted, AppointmentStatusCancelled, false},
		{AppointmentStatusCancelled, AppointmentStatusCancelled, false},
		{AppointmentStatusNoShow, AppointmentStatusCompleted, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
			t.Errorf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.allowed, got)
		}
	}

	for _, s := range []AppointmentStatus{AppointmentStatusCompleted, AppointmentStatusCancelled, AppointmentStatusNoShow} {
		if !s.IsTerminal() {
			t.Errorf("%s must be terminal", s)
		}
	}
	if AppointmentStatusConfirmed.IsTerminal() {
		t.Errorf("confirmed must not be terminal")
	}
}

func TestOverlaps_HalfOpen(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	hour := time.Hour

	if Overlaps(base, base.Add(hour), base.Add(hour), base.Add(2*hour)) {
		t.Errorf("touching intervals must not overlap")
	}
	if !Overlaps(base, base.Add(hour), base.Add(59*time.Minute), base.Add(2*hour)) {
		t.Errorf("one minute of shared time must overlap")
	}
	if !Overlaps(base, base.Add(3*hour), base.Add(hour), base.Add(2*hour)) {
		t.Errorf("containment must overlap")
	}
}

func TestClockAndDateHelpers(t *testing.T) {
	t.Parallel()

	minutes, err := ClockMinutes("09:30")
	if err != nil || minutes != 570 {
		t.Fatalf("ClockMinutes: got %d, %v", minutes, err)
	}
	if FormatClock(570) != "09:30" {
		t.Fatalf("FormatClock: got %s", FormatClock(570))
	}
	if _, err := ClockMinutes("25:00"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := ParseDate("2026-13-01"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	monday, _ := ParseDate("2026-03-02")
	if WeekdayIndex(monday) != 0 || WeekdayIndex(monday.AddDate(0, 0, 6)) != 6 {
		t.Fatalf("expected Monday=0 and Sunday=6")
	}

	warsaw, err := time.LoadLocation("Europe/Warsaw")
	if err == nil {
		lateUTC := time.Date(2026, 3, 1, 23, 30, 0, 0, time.UTC)
		if got := CivilDate(lateUTC, warsaw); !got.Equal(monday) {
			t.Fatalf("expected local date 2026-03-02, got %s", got)
		}
	}
}

func TestTimetable_Covers(t *testing.T) {
	t.Parallel()

	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	timetable := Timetable{ValidFrom: from, ValidTo: &to}

	if timetable.Covers(from.AddDate(0, 0, -1)) {
		t.Errorf("day before validFrom must not be covered")
	}
	if !timetable.Covers(from) || !timetable.Covers(to) {
		t.Errorf("validity bounds are inclusive")
	}
	if timetable.Covers(to.AddDate(0, 0, 1)) {
		t.Errorf("day after validTo must not be covered")
	}
}

func TestNewOffer(t *testing.T) {
	t.Parallel()

	service := Service{ID: 1, DurationMinutes: 60, Price: 100}
	if offer := NewOffer(service, nil); offer.Duration != time.Hour || offer.Price != 100 {
		t.Fatalf("unexpected base offer %+v", offer)
	}

	minutes := 45
	offer := NewOffer(service, &ServiceVariant{ID: 2, ServiceID: 1, DurationMinutes: &minutes})
	if offer.Duration != 45*time.Minute || offer.Price != 100 {
		t.Fatalf("variant without price must keep service price, got %+v", offer)
	}
}

func TestRoundMoney(t *testing.T) {
	t.Parallel()

	cases := map[float64]float64{
		10:       10,
		12.346:   12.35,
		0.004:    0,
		1.005001: 1.01,
	}
	for in, want := range cases {
		if got := RoundMoney(in); got != want {
			t.Errorf("RoundMoney(%v): expected %v, got %v", in, want, got)
		}
	}
}

func TestErrors_MatchSentinels(t *testing.T) {
	t.Parallel()

	conflict := fmt.Errorf("wrapped: %w", &ConflictError{Events: []ConflictingEvent{{Kind: ConflictAppointment, ID: 3}}})
	if !errors.Is(conflict, ErrConflict) {
		t.Errorf("ConflictError must match ErrConflict")
	}
	var target *ConflictError
	if !errors.As(conflict, &target) || target.Events[0].ID != 3 {
		t.Errorf("ConflictError must be extractable")
	}

	transition := &TransitionError{From: AppointmentStatusCancelled, To: AppointmentStatusCompleted}
	if !errors.Is(transition, ErrIllegalTransition) {
		t.Errorf("TransitionError must match ErrIllegalTransition")
	}
	if errors.Is(transition, ErrConflict) {
		t.Errorf("TransitionError must not match ErrConflict")
	}
	if !errors.Is(NotFoundf("x %d", 1), ErrNotFound) || !errors.Is(Validationf("y"), ErrValidation) {
		t.Errorf("helpers must wrap their sentinels")
	}
}

package service

import (
	"context"
	"errors"
	"testing"

	"salon/internal/domain"
)

func weekdaySlots() []domain.CreateTimetableSlotDTO {
	return []domain.CreateTimetableSlotDTO{
		{DayOfWeek: 0, StartTime: "09:00", EndTime: "12:00"},
		{DayOfWeek: 0, StartTime: "12:00", EndTime: "13:00", IsBreak: true},
		{DayOfWeek: 0, StartTime: "13:00", EndTime: "17:00"},
	}
}

func TestTimetableService_CreateReplacesActiveTimetable(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()

	first, err := f.services.Timetable.Create(ctx, employeeActor, domain.CreateTimetableDTO{
		EmployeeID: employeeID,
		ValidFrom:  "2026-02-01",
		Slots:      weekdaySlots(),
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	second, err := f.services.Timetable.Create(ctx, adminActor, domain.CreateTimetableDTO{
		EmployeeID: employeeID,
		ValidFrom:  "2026-03-01",
		ValidTo:    PointerTo("2026-06-30"),
		Slots:      []domain.CreateTimetableSlotDTO{{DayOfWeek: 0, StartTime: "10:00", EndTime: "14:00"}},
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if second.ValidTo == nil {
		t.Fatalf("expected validTo to be stored")
	}

	active, err := f.services.Timetable.List(ctx, employeeID, true)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(active) != 1 || active[0].ID != second.ID {
		t.Fatalf("expected only the new timetable active, got %+v", active)
	}

	stored, err := f.services.Timetable.GetByID(ctx, first.ID)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if stored.IsActive {
		t.Fatalf("expected the previous timetable to be deactivated")
	}
	if len(f.cache.invalidated) != 2 {
		t.Fatalf("expected cache invalidation per change, got %v", f.cache.invalidated)
	}

	slots, err := f.services.Availability.GetAvailability(ctx, employeeID, testMonday, testMonday)
	if err != nil {
		t.Fatalf("GetAvailability returned error: %v", err)
	}
	if len(slots) != 1 || slots[0].StartTime != "10:00" || slots[0].EndTime != "14:00" {
		t.Fatalf("expected the new timetable hours, got %+v", slots)
	}
}

func TestTimetableService_CreateValidation(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()

	cases := []struct {
		name string
		dto  domain.CreateTimetableDTO
		err  error
	}{
		{
			name: "foreign employee",
			dto:  domain.CreateTimetableDTO{EmployeeID: 2, ValidFrom: "2026-03-01"},
			err:  domain.ErrForbidden,
		},
		{
			name: "bad date",
			dto:  domain.CreateTimetableDTO{EmployeeID: employeeID, ValidFrom: "01.03.2026"},
			err:  domain.ErrValidation,
		},
		{
			name: "validTo before validFrom",
			dto:  domain.CreateTimetableDTO{EmployeeID: employeeID, ValidFrom: "2026-03-01", ValidTo: PointerTo("2026-02-01")},
			err:  domain.ErrValidation,
		},
		{
			name: "day out of range",
			dto: domain.CreateTimetableDTO{EmployeeID: employeeID, ValidFrom: "2026-03-01",
				Slots: []domain.CreateTimetableSlotDTO{{DayOfWeek: 7, StartTime: "09:00", EndTime: "10:00"}}},
			err: domain.ErrValidation,
		},
		{
			name: "start after end",
			dto: domain.CreateTimetableDTO{EmployeeID: employeeID, ValidFrom: "2026-03-01",
				Slots: []domain.CreateTimetableSlotDTO{{DayOfWeek: 1, StartTime: "18:00", EndTime: "09:00"}}},
			err: domain.ErrValidation,
		},
		{
			name: "bad clock",
			dto: domain.CreateTimetableDTO{EmployeeID: employeeID, ValidFrom: "2026-03-01",
				Slots: []domain.CreateTimetableSlotDTO{{DayOfWeek: 1, StartTime: "9am", EndTime: "10:00"}}},
			err: domain.ErrValidation,
		},
		{
			name: "overlapping working slots",
			dto: domain.CreateTimetableDTO{EmployeeID: employeeID, ValidFrom: "2026-03-01",
				Slots: []domain.CreateTimetableSlotDTO{
					{DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00"},
					{DayOfWeek: 1, StartTime: "11:00", EndTime: "15:00"},
				}},
			err: domain.ErrValidation,
		},
	}

	for _, tc := range cases {
		if _, err := f.services.Timetable.Create(ctx, employeeActor, tc.dto); !errors.Is(err, tc.err) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.err, err)
		}
	}

	if len(f.timetables.timetables) != 0 {
		t.Fatalf("invalid input must not be stored")
	}
}

func TestTimetableService_VacationNeedsReview(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()

	timetable, err := f.services.Timetable.Create(ctx, employeeActor, domain.CreateTimetableDTO{
		EmployeeID: employeeID,
		ValidFrom:  "2026-02-01",
		Slots:      weekdaySlots(),
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	exception, err := f.services.Timetable.AddException(ctx, employeeActor, timetable.ID, domain.CreateExceptionDTO{
		Date: "2026-03-02",
		Type: domain.ExceptionVacation,
	})
	if err != nil {
		t.Fatalf("AddException returned error: %v", err)
	}
	if exception.Status != domain.ExceptionPending || !exception.IsAllDay {
		t.Fatalf("expected a pending all-day request, got %+v", exception)
	}

	if _, err := f.services.Timetable.ReviewException(ctx, employeeActor, exception.ID, domain.ReviewExceptionDTO{Approve: true}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("employees must not review, got %v", err)
	}

	reviewed, err := f.services.Timetable.ReviewException(ctx, adminActor, exception.ID, domain.ReviewExceptionDTO{Approve: false})
	if err != nil {
		t.Fatalf("ReviewException returned error: %v", err)
	}
	if reviewed.Status != domain.ExceptionRejected || reviewed.ReviewedBy == nil || *reviewed.ReviewedBy != adminUserID {
		t.Fatalf("unexpected review result %+v", reviewed)
	}

	if _, err := f.services.Timetable.ReviewException(ctx, adminActor, exception.ID, domain.ReviewExceptionDTO{Approve: true}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("second review must fail validation, got %v", err)
	}

	slots, err := f.services.Availability.GetAvailability(ctx, employeeID, testMonday, testMonday)
	if err != nil {
		t.Fatalf("GetAvailability returned error: %v", err)
	}
	if len(slots) != 2 || !slots[0].IsAvailable {
		t.Fatalf("rejected vacation must leave regular hours, got %+v", slots)
	}
}

func TestTimetableService_CustomHoursException(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()

	timetable, err := f.services.Timetable.Create(ctx, adminActor, domain.CreateTimetableDTO{
		EmployeeID: employeeID,
		ValidFrom:  "2026-02-01",
		Slots:      []domain.CreateTimetableSlotDTO{{DayOfWeek: 0, StartTime: "09:00", EndTime: "17:00"}},
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if _, err := f.services.Timetable.AddException(ctx, adminActor, timetable.ID, domain.CreateExceptionDTO{
		Date: "2026-03-02",
		Type: domain.ExceptionCustomHours,
	}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("custom hours without times must fail validation, got %v", err)
	}

	exception, err := f.services.Timetable.AddException(ctx, adminActor, timetable.ID, domain.CreateExceptionDTO{
		Date:      "2026-03-02",
		Type:      domain.ExceptionCustomHours,
		StartTime: PointerTo("11:00"),
		EndTime:   PointerTo("15:00"),
	})
	if err != nil {
		t.Fatalf("AddException returned error: %v", err)
	}
	if exception.Status != domain.ExceptionApproved {
		t.Fatalf("expected approved exception, got %s", exception.Status)
	}

	if _, err := f.services.Timetable.AddException(ctx, adminActor, timetable.ID, domain.CreateExceptionDTO{
		Date: "2026-03-02",
		Type: domain.ExceptionDayOff,
	}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("duplicate date must fail validation, got %v", err)
	}

	slots, err := f.services.Availability.GetAvailability(ctx, employeeID, testMonday, testMonday)
	if err != nil {
		t.Fatalf("GetAvailability returned error: %v", err)
	}
	if len(slots) != 1 || slots[0].StartTime != "11:00" || slots[0].EndTime != "15:00" || !slots[0].IsException {
		t.Fatalf("expected custom window, got %+v", slots)
	}

	if err := f.services.Timetable.RemoveException(ctx, adminActor, exception.ID); err != nil {
		t.Fatalf("RemoveException returned error: %v", err)
	}
	slots, err = f.services.Availability.GetAvailability(ctx, employeeID, testMonday, testMonday)
	if err != nil {
		t.Fatalf("GetAvailability returned error: %v", err)
	}
	if len(slots) != 1 || slots[0].StartTime != "09:00" || slots[0].IsException {
		t.Fatalf("expected regular hours after removal, got %+v", slots)
	}
}

func TestTimetableService_Deactivate(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()
	f.catalog.employees[2] = &domain.Employee{ID: 2, UserID: 101, FirstName: "Ewa", IsActive: true}

	timetable, err := f.services.Timetable.Create(ctx, adminActor, domain.CreateTimetableDTO{
		EmployeeID: employeeID,
		ValidFrom:  "2026-02-01",
		Slots:      weekdaySlots(),
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	other := domain.Actor{UserID: 101, Role: domain.UserRoleEmployee}
	if err := f.services.Timetable.Deactivate(ctx, other, timetable.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("foreign employee must be forbidden, got %v", err)
	}
	if err := f.services.Timetable.Deactivate(ctx, employeeActor, timetable.ID); err != nil {
		t.Fatalf("Deactivate returned error: %v", err)
	}

	slots, err := f.services.Availability.GetAvailability(ctx, employeeID, testMonday, testMonday)
	if err != nil {
		t.Fatalf("GetAvailability returned error: %v", err)
	}
	if len(slots) != 1 || slots[0].IsAvailable {
		t.Fatalf("deactivated timetable must not produce availability, got %+v", slots)
	}

	f.audit.mu.Lock()
	defer f.audit.mu.Unlock()
	if last := f.audit.actions[len(f.audit.actions)-1]; last != auditTimetableDeactivated {
		t.Fatalf("expected deactivation audit, got %s", last)
	}
}

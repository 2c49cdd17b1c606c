package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"

	"salon/internal/domain"
)

func appointmentRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "employee_id", "client_id", "service_id", "service_variant_id", "start_time", "end_time", "price", "status", "notes",
		"paid_amount", "tip_amount", "payment_method", "finalized_at", "finalized_by", "created_at", "updated_at",
	})
}

func TestAppointmentRepository_GetByID(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewAppointmentRepository(mock)
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	method := "card"

	mock.ExpectQuery(regexp.QuoteMeta(`FROM appointments WHERE id = $1`)).
		WithArgs(int64(5)).
		WillReturnRows(appointmentRows().AddRow(
			int64(5), int64(1), int64(2), int64(3), nil, start, end, 120.0, "completed", nil,
			nil, nil, &method, nil, nil, start, start,
		))

	appointment, err := repo.GetByID(context.Background(), 5)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}

	if appointment.Status != domain.AppointmentStatusCompleted {
		t.Fatalf("unexpected status %s", appointment.Status)
	}
	if appointment.PaymentMethod == nil || *appointment.PaymentMethod != domain.PaymentMethodCard {
		t.Fatalf("unexpected payment method %+v", appointment.PaymentMethod)
	}
	if appointment.Duration() != time.Hour {
		t.Fatalf("unexpected duration %s", appointment.Duration())
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAppointmentRepository_CreateExclusionViolation(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewAppointmentRepository(mock)
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	createdAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO appointments`)).
		WithArgs(int64(1), int64(2), int64(3), pgxmock.AnyArg(), start, end, 100.0, "scheduled", pgxmock.AnyArg(), createdAt).
		WillReturnError(&pgconn.PgError{Code: exclusionViolationCode, ConstraintName: "appointments_no_overlap"})

	_, err = repo.Create(context.Background(), &domain.Appointment{
		EmployeeID: 1,
		ClientID:   2,
		ServiceID:  3,
		StartTime:  start,
		EndTime:    end,
		Price:      100,
		Status:     domain.AppointmentStatusScheduled,
		CreatedAt:  createdAt,
	})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAppointmentRepository_FindOverlapping(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewAppointmentRepository(mock)
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	exclude := int64(9)

	mock.ExpectQuery(regexp.QuoteMeta(`AND status <> 'cancelled'`)).
		WithArgs(int64(1), start, end, &exclude).
		WillReturnRows(pgxmock.NewRows([]string{"id", "start_time", "end_time", "status"}).
			AddRow(int64(4), start.Add(30*time.Minute), end.Add(30*time.Minute), "scheduled"))

	events, err := repo.FindOverlapping(context.Background(), 1, start, end, &exclude)
	if err != nil {
		t.Fatalf("FindOverlapping returned error: %v", err)
	}

	if len(events) != 1 || events[0].ID != 4 || events[0].Kind != domain.ConflictAppointment {
		t.Fatalf("unexpected events %+v", events)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAppointmentRepository_LockEmployeeCalendarUsesTransaction(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewAppointmentRepository(mock)
	tm := NewTransactionManager(mock)

	mock.ExpectBeginTx(pgx.TxOptions{AccessMode: pgx.ReadWrite})
	mock.ExpectExec(regexp.QuoteMeta(`SELECT pg_advisory_xact_lock($1)`)).
		WithArgs(int64(7)).
		WillReturnResult(pgxmock.NewResult("SELECT", 1))
	mock.ExpectCommit()

	err = tm.WithinReadWrite(context.Background(), func(ctx context.Context) error {
		return repo.LockEmployeeCalendar(ctx, 7)
	})
	if err != nil {
		t.Fatalf("LockEmployeeCalendar returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAppointmentRepository_UpdateMissing(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewAppointmentRepository(mock)

	updatedAt := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE appointments`)).
		WithArgs(
			pgxmock.AnyArg(), pgxmock.AnyArg(), "cancelled", pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), updatedAt, int64(42),
		).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err = repo.Update(context.Background(), &domain.Appointment{ID: 42, Status: domain.AppointmentStatusCancelled, UpdatedAt: updatedAt})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAppointmentRepository_ListWithFilters(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewAppointmentRepository(mock)
	employeeID := int64(1)
	status := domain.AppointmentStatusScheduled
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE employee_id = $1 AND status = $2 ORDER BY start_time DESC, id DESC LIMIT 10`)).
		WithArgs(employeeID, "scheduled").
		WillReturnRows(appointmentRows().AddRow(
			int64(5), int64(1), int64(2), int64(3), nil, start, start.Add(time.Hour), 80.0, "scheduled", nil,
			nil, nil, nil, nil, nil, start, start,
		))

	appointments, err := repo.List(context.Background(), domain.AppointmentFilter{
		EmployeeID: &employeeID,
		Status:     &status,
		Limit:      10,
	})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(appointments) != 1 || appointments[0].PaymentMethod != nil {
		t.Fatalf("unexpected appointments %+v", appointments)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

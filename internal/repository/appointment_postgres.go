package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"salon/internal/domain"
)

const appointmentColumns = `id, employee_id, client_id, service_id, service_variant_id, start_time, end_time, price, status, notes,
		       paid_amount, tip_amount, payment_method, finalized_at, finalized_by, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

type AppointmentRepo struct {
	db Queryer
}

func NewAppointmentRepository(db Queryer) *AppointmentRepo {
	return &AppointmentRepo{db: db}
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var (
		a             domain.Appointment
		status        string
		paymentMethod *string
	)

	err := row.Scan(
		&a.ID,
		&a.EmployeeID,
		&a.ClientID,
		&a.ServiceID,
		&a.ServiceVariantID,
		&a.StartTime,
		&a.EndTime,
		&a.Price,
		&status,
		&a.Notes,
		&a.PaidAmount,
		&a.TipAmount,
		&paymentMethod,
		&a.FinalizedAt,
		&a.FinalizedBy,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, translatePgError(err, "запись")
	}

	a.Status = domain.AppointmentStatus(status)
	if paymentMethod != nil {
		pm := domain.PaymentMethod(*paymentMethod)
		a.PaymentMethod = &pm
	}

	return &a, nil
}

func (r *AppointmentRepo) Create(ctx context.Context, a *domain.Appointment) (int64, error) {
	exec := QueryerFromContext(ctx, r.db)

	query := `
		INSERT INTO appointments (employee_id, client_id, service_id, service_variant_id, start_time, end_time, price, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
		RETURNING id
	`

	var id int64
	err := exec.QueryRow(ctx, query,
		a.EmployeeID,
		a.ClientID,
		a.ServiceID,
		a.ServiceVariantID,
		a.StartTime,
		a.EndTime,
		a.Price,
		string(a.Status),
		a.Notes,
		a.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, translatePgError(err, "запись")
	}

	return id, nil
}

func (r *AppointmentRepo) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	exec := QueryerFromContext(ctx, r.db)
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE id = $1`
	return scanAppointment(exec.QueryRow(ctx, query, id))
}

func (r *AppointmentRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Appointment, error) {
	exec := QueryerFromContext(ctx, r.db)
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE id = $1 FOR UPDATE`
	return scanAppointment(exec.QueryRow(ctx, query, id))
}

func (r *AppointmentRepo) Update(ctx context.Context, a *domain.Appointment) error {
	exec := QueryerFromContext(ctx, r.db)

	var paymentMethod *string
	if a.PaymentMethod != nil {
		pm := string(*a.PaymentMethod)
		paymentMethod = &pm
	}

	query := `
		UPDATE appointments
		SET start_time = $1, end_time = $2, status = $3, notes = $4,
		    paid_amount = $5, tip_amount = $6, payment_method = $7,
		    finalized_at = $8, finalized_by = $9, updated_at = $10
		WHERE id = $11
	`

	tag, err := exec.Exec(ctx, query,
		a.StartTime,
		a.EndTime,
		string(a.Status),
		a.Notes,
		a.PaidAmount,
		a.TipAmount,
		paymentMethod,
		a.FinalizedAt,
		a.FinalizedBy,
		a.UpdatedAt,
		a.ID,
	)
	if err != nil {
		return translatePgError(err, "запись")
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFoundf("запись %d не найдена", a.ID)
	}

	return nil
}

func appointmentConditions(filter domain.AppointmentFilter) ([]string, []interface{}) {
	var conditions []string
	var args []interface{}
	argCount := 1

	if filter.EmployeeID != nil {
		conditions = append(conditions, fmt.Sprintf("employee_id = $%d", argCount))
		args = append(args, *filter.EmployeeID)
		argCount++
	}

	if filter.ClientID != nil {
		conditions = append(conditions, fmt.Sprintf("client_id = $%d", argCount))
		args = append(args, *filter.ClientID)
		argCount++
	}

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argCount))
		args = append(args, string(*filter.Status))
		argCount++
	}

	if filter.StartDate != nil {
		conditions = append(conditions, fmt.Sprintf("start_time >= $%d", argCount))
		args = append(args, *filter.StartDate)
		argCount++
	}

	if filter.EndDate != nil {
		conditions = append(conditions, fmt.Sprintf("start_time < $%d", argCount))
		args = append(args, *filter.EndDate)
	}

	return conditions, args
}

func (r *AppointmentRepo) List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error) {
	exec := QueryerFromContext(ctx, r.db)

	conditions, args := appointmentConditions(filter)

	query := `SELECT ` + appointmentColumns + ` FROM appointments`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY start_time DESC, id DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}
	defer rows.Close()

	appointments := make([]domain.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		appointments = append(appointments, *a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при обработке результатов: %w", err)
	}

	return appointments, nil
}

func (r *AppointmentRepo) CountByFilter(ctx context.Context, filter domain.AppointmentFilter) (int, error) {
	exec := QueryerFromContext(ctx, r.db)

	conditions, args := appointmentConditions(filter)

	query := `SELECT COUNT(*) FROM appointments`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	var count int
	if err := exec.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("ошибка подсчета записей: %w", err)
	}

	return count, nil
}

func (r *AppointmentRepo) FindOverlapping(ctx context.Context, employeeID int64, start, end time.Time, excludeID *int64) ([]domain.ConflictingEvent, error) {
	exec := QueryerFromContext(ctx, r.db)

	query := `
		SELECT id, start_time, end_time, status
		FROM appointments
		WHERE employee_id = $1
		AND status <> 'cancelled'
		AND start_time < $3
		AND end_time > $2
		AND ($4::bigint IS NULL OR id <> $4)
		ORDER BY start_time
	`

	rows, err := exec.Query(ctx, query, employeeID, start, end, excludeID)
	if err != nil {
		return nil, fmt.Errorf("ошибка проверки пересечений записей: %w", err)
	}
	defer rows.Close()

	events := make([]domain.ConflictingEvent, 0)
	for rows.Next() {
		ev := domain.ConflictingEvent{Kind: domain.ConflictAppointment}
		if err := rows.Scan(&ev.ID, &ev.StartTime, &ev.EndTime, &ev.Label); err != nil {
			return nil, fmt.Errorf("ошибка сканирования пересечения: %w", err)
		}
		events = append(events, ev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при обработке результатов: %w", err)
	}

	return events, nil
}

func (r *AppointmentRepo) LockEmployeeCalendar(ctx context.Context, employeeID int64) error {
	exec := QueryerFromContext(ctx, r.db)
	if _, err := exec.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, employeeID); err != nil {
		return fmt.Errorf("ошибка блокировки календаря сотрудника: %w", err)
	}
	return nil
}

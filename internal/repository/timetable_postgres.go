package repository

import (
	"context"
	"fmt"
	"time"

	"salon/internal/domain"
)

type TimetableRepo struct {
	db Queryer
}

func NewTimetableRepository(db Queryer) *TimetableRepo {
	return &TimetableRepo{db: db}
}

// Create stores the timetable and its slots; callers run it inside a transaction.
func (r *TimetableRepo) Create(ctx context.Context, timetable *domain.Timetable) (int64, error) {
	exec := QueryerFromContext(ctx, r.db)

	query := `
		INSERT INTO timetables (employee_id, valid_from, valid_to, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING id
	`

	var id int64
	err := exec.QueryRow(ctx, query,
		timetable.EmployeeID,
		timetable.ValidFrom,
		timetable.ValidTo,
		timetable.IsActive,
		timetable.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, translatePgError(err, "расписание")
	}

	slotQuery := `
		INSERT INTO timetable_slots (timetable_id, day_of_week, start_time, end_time, is_break)
		VALUES ($1, $2, $3::time, $4::time, $5)
		RETURNING id
	`
	for i := range timetable.Slots {
		slot := &timetable.Slots[i]
		if err := exec.QueryRow(ctx, slotQuery, id, slot.DayOfWeek, slot.StartTime, slot.EndTime, slot.IsBreak).Scan(&slot.ID); err != nil {
			return 0, translatePgError(err, "слот расписания")
		}
		slot.TimetableID = id
	}

	return id, nil
}

func (r *TimetableRepo) GetByID(ctx context.Context, id int64) (*domain.Timetable, error) {
	exec := QueryerFromContext(ctx, r.db)

	query := `
		SELECT id, employee_id, valid_from, valid_to, is_active, created_at, updated_at
		FROM timetables
		WHERE id = $1
	`

	var t domain.Timetable
	err := exec.QueryRow(ctx, query, id).Scan(
		&t.ID,
		&t.EmployeeID,
		&t.ValidFrom,
		&t.ValidTo,
		&t.IsActive,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, translatePgError(err, "расписание")
	}

	slots, err := r.listSlots(ctx, []int64{t.ID})
	if err != nil {
		return nil, err
	}
	t.Slots = slots[t.ID]
	if t.Slots == nil {
		t.Slots = []domain.TimetableSlot{}
	}

	return &t, nil
}

// ListByEmployee returns timetables ordered by valid_from DESC, id DESC, slots included.
func (r *TimetableRepo) ListByEmployee(ctx context.Context, employeeID int64, activeOnly bool) ([]domain.Timetable, error) {
	exec := QueryerFromContext(ctx, r.db)

	query := `
		SELECT id, employee_id, valid_from, valid_to, is_active, created_at, updated_at
		FROM timetables
		WHERE employee_id = $1 AND ($2 = false OR is_active = true)
		ORDER BY valid_from DESC, id DESC
	`

	rows, err := exec.Query(ctx, query, employeeID, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения расписаний: %w", err)
	}
	defer rows.Close()

	timetables := make([]domain.Timetable, 0)
	ids := make([]int64, 0)
	for rows.Next() {
		var t domain.Timetable
		if err := rows.Scan(
			&t.ID,
			&t.EmployeeID,
			&t.ValidFrom,
			&t.ValidTo,
			&t.IsActive,
			&t.CreatedAt,
			&t.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("ошибка сканирования расписания: %w", err)
		}
		timetables = append(timetables, t)
		ids = append(ids, t.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при обработке результатов: %w", err)
	}

	if len(ids) == 0 {
		return timetables, nil
	}

	slots, err := r.listSlots(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range timetables {
		timetables[i].Slots = slots[timetables[i].ID]
		if timetables[i].Slots == nil {
			timetables[i].Slots = []domain.TimetableSlot{}
		}
	}

	return timetables, nil
}

func (r *TimetableRepo) listSlots(ctx context.Context, timetableIDs []int64) (map[int64][]domain.TimetableSlot, error) {
	exec := QueryerFromContext(ctx, r.db)

	query := `
		SELECT id, timetable_id, day_of_week, TO_CHAR(start_time, 'HH24:MI'), TO_CHAR(end_time, 'HH24:MI'), is_break
		FROM timetable_slots
		WHERE timetable_id = ANY($1)
		ORDER BY timetable_id, day_of_week, start_time
	`

	rows, err := exec.Query(ctx, query, timetableIDs)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения слотов расписания: %w", err)
	}
	defer rows.Close()

	result := make(map[int64][]domain.TimetableSlot)
	for rows.Next() {
		var s domain.TimetableSlot
		if err := rows.Scan(&s.ID, &s.TimetableID, &s.DayOfWeek, &s.StartTime, &s.EndTime, &s.IsBreak); err != nil {
			return nil, fmt.Errorf("ошибка сканирования слота: %w", err)
		}
		result[s.TimetableID] = append(result[s.TimetableID], s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при обработке результатов: %w", err)
	}

	return result, nil
}

func (r *TimetableRepo) DeactivateActive(ctx context.Context, employeeID int64) (int64, error) {
	exec := QueryerFromContext(ctx, r.db)

	tag, err := exec.Exec(ctx,
		`UPDATE timetables SET is_active = false, updated_at = NOW() WHERE employee_id = $1 AND is_active = true`,
		employeeID,
	)
	if err != nil {
		return 0, fmt.Errorf("ошибка деактивации расписаний: %w", err)
	}

	return tag.RowsAffected(), nil
}

func (r *TimetableRepo) Deactivate(ctx context.Context, id int64) error {
	exec := QueryerFromContext(ctx, r.db)

	tag, err := exec.Exec(ctx, `UPDATE timetables SET is_active = false, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка деактивации расписания: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFoundf("расписание %d не найдено", id)
	}

	return nil
}

const exceptionColumns = `id, timetable_id, date, type, TO_CHAR(start_time, 'HH24:MI'), TO_CHAR(end_time, 'HH24:MI'),
		       is_all_day, status, reason, reviewed_by, created_at`

func scanException(row rowScanner) (*domain.TimetableException, error) {
	var (
		e      domain.TimetableException
		typ    string
		status string
	)
	err := row.Scan(
		&e.ID,
		&e.TimetableID,
		&e.Date,
		&typ,
		&e.StartTime,
		&e.EndTime,
		&e.IsAllDay,
		&status,
		&e.Reason,
		&e.ReviewedBy,
		&e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.Type = domain.ExceptionType(typ)
	e.Status = domain.ExceptionStatus(status)
	return &e, nil
}

func (r *TimetableRepo) CreateException(ctx context.Context, exception *domain.TimetableException) (int64, error) {
	exec := QueryerFromContext(ctx, r.db)

	query := `
		INSERT INTO timetable_exceptions (timetable_id, date, type, start_time, end_time, is_all_day, status, reason, created_at)
		VALUES ($1, $2, $3, $4::time, $5::time, $6, $7, $8, $9)
		RETURNING id
	`

	var id int64
	err := exec.QueryRow(ctx, query,
		exception.TimetableID,
		exception.Date,
		string(exception.Type),
		exception.StartTime,
		exception.EndTime,
		exception.IsAllDay,
		string(exception.Status),
		exception.Reason,
		exception.CreatedAt,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.Validationf("исключение на дату %s уже существует", exception.Date.Format(domain.DateLayout))
		}
		return 0, translatePgError(err, "исключение расписания")
	}

	return id, nil
}

func (r *TimetableRepo) GetException(ctx context.Context, id int64) (*domain.TimetableException, error) {
	exec := QueryerFromContext(ctx, r.db)

	query := `SELECT ` + exceptionColumns + ` FROM timetable_exceptions WHERE id = $1`

	e, err := scanException(exec.QueryRow(ctx, query, id))
	if err != nil {
		return nil, translatePgError(err, "исключение расписания")
	}
	return e, nil
}

func (r *TimetableRepo) DeleteException(ctx context.Context, id int64) error {
	exec := QueryerFromContext(ctx, r.db)

	tag, err := exec.Exec(ctx, `DELETE FROM timetable_exceptions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления исключения: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFoundf("исключение %d не найдено", id)
	}

	return nil
}

func (r *TimetableRepo) UpdateExceptionStatus(ctx context.Context, id int64, status domain.ExceptionStatus, reviewedBy int64) error {
	exec := QueryerFromContext(ctx, r.db)

	tag, err := exec.Exec(ctx,
		`UPDATE timetable_exceptions SET status = $1, reviewed_by = $2 WHERE id = $3`,
		string(status), reviewedBy, id,
	)
	if err != nil {
		return fmt.Errorf("ошибка обновления исключения: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFoundf("исключение %d не найдено", id)
	}

	return nil
}

func (r *TimetableRepo) ListExceptions(ctx context.Context, timetableIDs []int64, from, to time.Time) ([]domain.TimetableException, error) {
	if len(timetableIDs) == 0 {
		return []domain.TimetableException{}, nil
	}

	exec := QueryerFromContext(ctx, r.db)

	query := `SELECT ` + exceptionColumns + `
		FROM timetable_exceptions
		WHERE timetable_id = ANY($1) AND date >= $2 AND date <= $3
		ORDER BY date, id`

	rows, err := exec.Query(ctx, query, timetableIDs, from, to)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения исключений: %w", err)
	}
	defer rows.Close()

	exceptions := make([]domain.TimetableException, 0)
	for rows.Next() {
		e, err := scanException(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования исключения: %w", err)
		}
		exceptions = append(exceptions, *e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при обработке результатов: %w", err)
	}

	return exceptions, nil
}

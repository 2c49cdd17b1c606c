package repository

import (
	"context"
	"fmt"
	"time"

	"salon/internal/domain"
)

type TimeBlockRepo struct {
	db Queryer
}

func NewTimeBlockRepository(db Queryer) *TimeBlockRepo {
	return &TimeBlockRepo{db: db}
}

func (r *TimeBlockRepo) Create(ctx context.Context, block *domain.TimeBlock) (int64, error) {
	exec := QueryerFromContext(ctx, r.db)

	query := `
		INSERT INTO time_blocks (employee_id, kind, start_time, end_time, reason, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	var id int64
	err := exec.QueryRow(ctx, query,
		block.EmployeeID,
		string(block.Kind),
		block.StartTime,
		block.EndTime,
		block.Reason,
		block.CreatedBy,
		block.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, translatePgError(err, "блокировка времени")
	}

	return id, nil
}

func (r *TimeBlockRepo) GetByID(ctx context.Context, id int64) (*domain.TimeBlock, error) {
	exec := QueryerFromContext(ctx, r.db)

	query := `
		SELECT id, employee_id, kind, start_time, end_time, reason, created_by, created_at
		FROM time_blocks
		WHERE id = $1
	`

	var (
		block domain.TimeBlock
		kind  string
	)
	err := exec.QueryRow(ctx, query, id).Scan(
		&block.ID,
		&block.EmployeeID,
		&kind,
		&block.StartTime,
		&block.EndTime,
		&block.Reason,
		&block.CreatedBy,
		&block.CreatedAt,
	)
	if err != nil {
		return nil, translatePgError(err, "блокировка времени")
	}
	block.Kind = domain.TimeBlockKind(kind)

	return &block, nil
}

func (r *TimeBlockRepo) Delete(ctx context.Context, id int64) error {
	exec := QueryerFromContext(ctx, r.db)

	tag, err := exec.Exec(ctx, `DELETE FROM time_blocks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления блокировки времени: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFoundf("блокировка времени %d не найдена", id)
	}

	return nil
}

func (r *TimeBlockRepo) ListByEmployee(ctx context.Context, employeeID int64, from, to time.Time) ([]domain.TimeBlock, error) {
	exec := QueryerFromContext(ctx, r.db)

	query := `
		SELECT id, employee_id, kind, start_time, end_time, reason, created_by, created_at
		FROM time_blocks
		WHERE employee_id = $1 AND start_time < $3 AND end_time > $2
		ORDER BY start_time
	`

	rows, err := exec.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения блокировок времени: %w", err)
	}
	defer rows.Close()

	blocks := make([]domain.TimeBlock, 0)
	for rows.Next() {
		var (
			block domain.TimeBlock
			kind  string
		)
		if err := rows.Scan(
			&block.ID,
			&block.EmployeeID,
			&kind,
			&block.StartTime,
			&block.EndTime,
			&block.Reason,
			&block.CreatedBy,
			&block.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("ошибка сканирования блокировки времени: %w", err)
		}
		block.Kind = domain.TimeBlockKind(kind)
		blocks = append(blocks, block)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при обработке результатов: %w", err)
	}

	return blocks, nil
}

func (r *TimeBlockRepo) FindOverlapping(ctx context.Context, employeeID int64, start, end time.Time) ([]domain.ConflictingEvent, error) {
	exec := QueryerFromContext(ctx, r.db)

	query := `
		SELECT id, start_time, end_time, kind
		FROM time_blocks
		WHERE employee_id = $1 AND start_time < $3 AND end_time > $2
		ORDER BY start_time
	`

	rows, err := exec.Query(ctx, query, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("ошибка проверки пересечений блокировок: %w", err)
	}
	defer rows.Close()

	events := make([]domain.ConflictingEvent, 0)
	for rows.Next() {
		ev := domain.ConflictingEvent{Kind: domain.ConflictTimeBlock}
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

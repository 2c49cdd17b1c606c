package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"salon/internal/domain"
)

type CommissionRepo struct {
	db Queryer
}

func NewCommissionRepository(db Queryer) *CommissionRepo {
	return &CommissionRepo{db: db}
}

const ruleColumns = `id, employee_id, service_id, category_id, percent, created_at, updated_at`

func scanRule(row rowScanner) (*domain.CommissionRule, error) {
	var rule domain.CommissionRule
	err := row.Scan(
		&rule.ID,
		&rule.EmployeeID,
		&rule.ServiceID,
		&rule.CategoryID,
		&rule.Percent,
		&rule.CreatedAt,
		&rule.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *CommissionRepo) findRule(ctx context.Context, query string, args ...any) (*domain.CommissionRule, error) {
	exec := QueryerFromContext(ctx, r.db)

	rule, err := scanRule(exec.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка получения правила комиссии: %w", err)
	}
	return rule, nil
}

func (r *CommissionRepo) FindRuleForService(ctx context.Context, employeeID, serviceID int64) (*domain.CommissionRule, error) {
	return r.findRule(ctx,
		`SELECT `+ruleColumns+` FROM commission_rules WHERE employee_id = $1 AND service_id = $2`,
		employeeID, serviceID,
	)
}

func (r *CommissionRepo) FindRuleForCategory(ctx context.Context, employeeID, categoryID int64) (*domain.CommissionRule, error) {
	return r.findRule(ctx,
		`SELECT `+ruleColumns+` FROM commission_rules WHERE employee_id = $1 AND category_id = $2`,
		employeeID, categoryID,
	)
}

// UpsertRule replaces the percent of an existing (employee, service) or (employee, category) rule.
func (r *CommissionRepo) UpsertRule(ctx context.Context, rule *domain.CommissionRule) (*domain.CommissionRule, error) {
	exec := QueryerFromContext(ctx, r.db)

	conflictTarget := "(employee_id, service_id) WHERE service_id IS NOT NULL"
	if rule.ServiceID == nil {
		conflictTarget = "(employee_id, category_id) WHERE category_id IS NOT NULL"
	}

	query := `
		INSERT INTO commission_rules (employee_id, service_id, category_id, percent, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT ` + conflictTarget + `
		DO UPDATE SET percent = EXCLUDED.percent, updated_at = EXCLUDED.updated_at
		RETURNING ` + ruleColumns

	stored, err := scanRule(exec.QueryRow(ctx, query,
		rule.EmployeeID,
		rule.ServiceID,
		rule.CategoryID,
		rule.Percent,
		rule.UpdatedAt,
	))
	if err != nil {
		return nil, translatePgError(err, "правило комиссии")
	}

	return stored, nil
}

func (r *CommissionRepo) DeleteRule(ctx context.Context, id int64) error {
	exec := QueryerFromContext(ctx, r.db)

	tag, err := exec.Exec(ctx, `DELETE FROM commission_rules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления правила комиссии: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFoundf("правило комиссии %d не найдено", id)
	}

	return nil
}

func (r *CommissionRepo) ListRules(ctx context.Context, employeeID int64) ([]domain.CommissionRule, error) {
	exec := QueryerFromContext(ctx, r.db)

	rows, err := exec.Query(ctx,
		`SELECT `+ruleColumns+` FROM commission_rules WHERE employee_id = $1 ORDER BY id`,
		employeeID,
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения правил комиссии: %w", err)
	}
	defer rows.Close()

	rules := make([]domain.CommissionRule, 0)
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования правила: %w", err)
		}
		rules = append(rules, *rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при обработке результатов: %w", err)
	}

	return rules, nil
}

const commissionColumns = `id, employee_id, appointment_id, service_id, base_amount, percent, amount, source, created_by, created_at`

func scanCommission(row rowScanner) (*domain.Commission, error) {
	var (
		c      domain.Commission
		source string
	)
	err := row.Scan(
		&c.ID,
		&c.EmployeeID,
		&c.AppointmentID,
		&c.ServiceID,
		&c.BaseAmount,
		&c.Percent,
		&c.Amount,
		&source,
		&c.CreatedBy,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Source = domain.CommissionSource(source)
	return &c, nil
}

func (r *CommissionRepo) GetByAppointment(ctx context.Context, appointmentID int64) (*domain.Commission, error) {
	exec := QueryerFromContext(ctx, r.db)

	c, err := scanCommission(exec.QueryRow(ctx,
		`SELECT `+commissionColumns+` FROM commissions WHERE appointment_id = $1`,
		appointmentID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка получения комиссии: %w", err)
	}
	return c, nil
}

func (r *CommissionRepo) Create(ctx context.Context, commission *domain.Commission) (*domain.Commission, bool, error) {
	exec := QueryerFromContext(ctx, r.db)

	query := `
		INSERT INTO commissions (employee_id, appointment_id, service_id, base_amount, percent, amount, source, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (appointment_id) DO NOTHING
		RETURNING ` + commissionColumns

	stored, err := scanCommission(exec.QueryRow(ctx, query,
		commission.EmployeeID,
		commission.AppointmentID,
		commission.ServiceID,
		commission.BaseAmount,
		commission.Percent,
		commission.Amount,
		string(commission.Source),
		commission.CreatedBy,
		commission.CreatedAt,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		existing, getErr := r.GetByAppointment(ctx, commission.AppointmentID)
		if getErr != nil {
			return nil, false, getErr
		}
		if existing == nil {
			return nil, false, fmt.Errorf("комиссия для записи %d не найдена после конфликта", commission.AppointmentID)
		}
		return existing, false, nil
	}
	if err != nil {
		return nil, false, translatePgError(err, "комиссия")
	}

	return stored, true, nil
}

func (r *CommissionRepo) List(ctx context.Context, filter domain.CommissionFilter) ([]domain.Commission, error) {
	exec := QueryerFromContext(ctx, r.db)

	var conditions []string
	var args []interface{}
	argCount := 1

	if filter.EmployeeID != nil {
		conditions = append(conditions, fmt.Sprintf("employee_id = $%d", argCount))
		args = append(args, *filter.EmployeeID)
		argCount++
	}

	if filter.From != nil {
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", argCount))
		args = append(args, *filter.From)
		argCount++
	}

	if filter.To != nil {
		conditions = append(conditions, fmt.Sprintf("created_at < $%d", argCount))
		args = append(args, *filter.To)
	}

	query := `SELECT ` + commissionColumns + ` FROM commissions`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at, id"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения комиссий: %w", err)
	}
	defer rows.Close()

	commissions := make([]domain.Commission, 0)
	for rows.Next() {
		c, err := scanCommission(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования комиссии: %w", err)
		}
		commissions = append(commissions, *c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при обработке результатов: %w", err)
	}

	return commissions, nil
}

package repository

import (
	"context"

	"salon/internal/domain"
)

// CatalogRepo reads the reference data owned by other parts of the salon system.
type CatalogRepo struct {
	db Queryer
}

func NewCatalogRepository(db Queryer) *CatalogRepo {
	return &CatalogRepo{db: db}
}

const employeeColumns = `e.id, e.user_id, u.first_name, u.last_name, u.email, e.commission_rate, e.is_active, e.created_at, e.updated_at`

func scanEmployee(row rowScanner) (*domain.Employee, error) {
	var e domain.Employee
	err := row.Scan(
		&e.ID,
		&e.UserID,
		&e.FirstName,
		&e.LastName,
		&e.Email,
		&e.CommissionRate,
		&e.IsActive,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, translatePgError(err, "сотрудник")
	}
	return &e, nil
}

func (r *CatalogRepo) GetEmployee(ctx context.Context, id int64) (*domain.Employee, error) {
	exec := QueryerFromContext(ctx, r.db)

	query := `SELECT ` + employeeColumns + `
		FROM employees e
		JOIN users u ON u.id = e.user_id
		WHERE e.id = $1`

	return scanEmployee(exec.QueryRow(ctx, query, id))
}

func (r *CatalogRepo) GetEmployeeByUserID(ctx context.Context, userID int64) (*domain.Employee, error) {
	exec := QueryerFromContext(ctx, r.db)

	query := `SELECT ` + employeeColumns + `
		FROM employees e
		JOIN users u ON u.id = e.user_id
		WHERE e.user_id = $1`

	return scanEmployee(exec.QueryRow(ctx, query, userID))
}

func (r *CatalogRepo) GetService(ctx context.Context, id int64) (*domain.Service, error) {
	exec := QueryerFromContext(ctx, r.db)

	query := `
		SELECT id, name, category_id, duration_minutes, price, is_active
		FROM services
		WHERE id = $1
	`

	var s domain.Service
	err := exec.QueryRow(ctx, query, id).Scan(
		&s.ID,
		&s.Name,
		&s.CategoryID,
		&s.DurationMinutes,
		&s.Price,
		&s.IsActive,
	)
	if err != nil {
		return nil, translatePgError(err, "услуга")
	}

	return &s, nil
}

func (r *CatalogRepo) GetServiceVariant(ctx context.Context, id int64) (*domain.ServiceVariant, error) {
	exec := QueryerFromContext(ctx, r.db)

	query := `
		SELECT id, service_id, name, duration_minutes, price
		FROM service_variants
		WHERE id = $1
	`

	var v domain.ServiceVariant
	err := exec.QueryRow(ctx, query, id).Scan(
		&v.ID,
		&v.ServiceID,
		&v.Name,
		&v.DurationMinutes,
		&v.Price,
	)
	if err != nil {
		return nil, translatePgError(err, "вариант услуги")
	}

	return &v, nil
}

func (r *CatalogRepo) GetCategory(ctx context.Context, id int64) (*domain.ServiceCategory, error) {
	exec := QueryerFromContext(ctx, r.db)

	var c domain.ServiceCategory
	err := exec.QueryRow(ctx, `SELECT id, parent_id, name FROM service_categories WHERE id = $1`, id).Scan(
		&c.ID,
		&c.ParentID,
		&c.Name,
	)
	if err != nil {
		return nil, translatePgError(err, "категория услуг")
	}

	return &c, nil
}

func (r *CatalogRepo) GetContact(ctx context.Context, userID int64) (*domain.Contact, error) {
	exec := QueryerFromContext(ctx, r.db)

	query := `
		SELECT id, TRIM(first_name || ' ' || last_name), email, COALESCE(phone, '')
		FROM users
		WHERE id = $1
	`

	var c domain.Contact
	err := exec.QueryRow(ctx, query, userID).Scan(&c.UserID, &c.Name, &c.Email, &c.Phone)
	if err != nil {
		return nil, translatePgError(err, "пользователь")
	}

	return &c, nil
}

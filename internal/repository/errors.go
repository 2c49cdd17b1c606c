package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"salon/internal/domain"
)

const (
	foreignKeyViolationCode = "23503"
	uniqueViolationCode     = "23505"
	checkViolationCode      = "23514"
	exclusionViolationCode  = "23P01"
)

// translatePgError maps storage failures onto domain errors; anything else passes through.
func translatePgError(err error, entity string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return domain.NotFoundf("%s не найден", entity)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case exclusionViolationCode:
			return &domain.ConflictError{}
		case uniqueViolationCode:
			return fmt.Errorf("%w: %s уже существует (%s)", domain.ErrValidation, entity, pgErr.ConstraintName)
		case foreignKeyViolationCode:
			return domain.NotFoundf("связанная запись для %s не найдена (%s)", entity, pgErr.ConstraintName)
		case checkViolationCode:
			return domain.Validationf("%s: нарушено ограничение %s", entity, pgErr.ConstraintName)
		}
	}

	return fmt.Errorf("%s: %w", entity, err)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

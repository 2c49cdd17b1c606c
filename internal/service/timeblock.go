package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"salon/internal/domain"
	"salon/internal/repository"
)

const (
	auditTimeBlockCreated = "time_block.created"
	auditTimeBlockDeleted = "time_block.deleted"
)

type TimeBlockServiceImpl struct {
	repo         repository.TimeBlockRepository
	catalog      repository.CatalogRepository
	appointments repository.AppointmentRepository
	detector     *ConflictDetector
	tx           TransactionManager
	audit        AuditLogger
	clock        Clock
	logger       *zap.Logger
}

func NewTimeBlockService(
	repo repository.TimeBlockRepository,
	catalog repository.CatalogRepository,
	appointments repository.AppointmentRepository,
	detector *ConflictDetector,
	tx TransactionManager,
	audit AuditLogger,
	clock Clock,
	logger *zap.Logger,
) *TimeBlockServiceImpl {
	if tx == nil {
		tx = noopTransactionManager{}
	}
	if audit == nil {
		audit = noopAuditLogger{}
	}
	if clock == nil {
		clock = realClock{}
	}
	return &TimeBlockServiceImpl{
		repo:         repo,
		catalog:      catalog,
		appointments: appointments,
		detector:     detector,
		tx:           tx,
		audit:        audit,
		clock:        clock,
		logger:       logger,
	}
}

// Create occupies the calendar under the same per-employee lock as bookings.
func (s *TimeBlockServiceImpl) Create(ctx context.Context, actor domain.Actor, dto domain.CreateTimeBlockDTO) (*domain.TimeBlock, error) {
	if err := authorizeEmployeeScope(ctx, s.catalog, actor, dto.EmployeeID); err != nil {
		return nil, err
	}
	if !dto.Kind.IsValid() {
		return nil, domain.Validationf("неизвестный тип блокировки %q", dto.Kind)
	}

	start, end := dto.StartTime.UTC(), dto.EndTime.UTC()
	if !start.Before(end) {
		return nil, domain.Validationf("время начала должно быть раньше времени окончания")
	}

	block := &domain.TimeBlock{
		EmployeeID: dto.EmployeeID,
		Kind:       dto.Kind,
		StartTime:  start,
		EndTime:    end,
		Reason:     dto.Reason,
		CreatedBy:  actor.UserID,
		CreatedAt:  s.clock.Now(),
	}

	err := s.tx.WithinReadWrite(ctx, func(ctx context.Context) error {
		if _, err := s.catalog.GetEmployee(ctx, dto.EmployeeID); err != nil {
			return err
		}

		if err := s.appointments.LockEmployeeCalendar(ctx, dto.EmployeeID); err != nil {
			return err
		}

		conflicts, err := s.detector.Detect(ctx, dto.EmployeeID, start, end, nil)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return &domain.ConflictError{Events: conflicts}
		}

		id, err := s.repo.Create(ctx, block)
		if err != nil {
			return err
		}
		block.ID = id
		return nil
	})
	if err != nil {
		if !isDomainError(err) {
			s.logger.Error("ошибка создания блокировки времени", zap.Int64("employeeID", dto.EmployeeID), zap.Error(err))
		}
		return nil, err
	}

	if auditErr := s.audit.LogAction(ctx, actor, auditTimeBlockCreated, map[string]any{
		"time_block_id": block.ID,
		"employee_id":   block.EmployeeID,
		"kind":          string(block.Kind),
	}); auditErr != nil {
		s.logger.Warn("ошибка записи в журнал аудита", zap.Error(auditErr))
	}

	return block, nil
}

func (s *TimeBlockServiceImpl) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	block, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authorizeEmployeeScope(ctx, s.catalog, actor, block.EmployeeID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if auditErr := s.audit.LogAction(ctx, actor, auditTimeBlockDeleted, map[string]any{"time_block_id": id}); auditErr != nil {
		s.logger.Warn("ошибка записи в журнал аудита", zap.Error(auditErr))
	}
	return nil
}

func (s *TimeBlockServiceImpl) List(ctx context.Context, employeeID int64, from, to time.Time) ([]domain.TimeBlock, error) {
	if !from.Before(to) {
		return nil, domain.Validationf("некорректный период")
	}
	return s.repo.ListByEmployee(ctx, employeeID, from.UTC(), to.UTC())
}

package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"salon/internal/domain"
	"salon/internal/repository"
)

const (
	auditTimetableCreated     = "timetable.created"
	auditTimetableDeactivated = "timetable.deactivated"
	auditExceptionAdded       = "timetable.exception_added"
	auditExceptionRemoved     = "timetable.exception_removed"
	auditExceptionReviewed    = "timetable.exception_reviewed"
)

type TimetableServiceImpl struct {
	repo    repository.TimetableRepository
	catalog repository.CatalogRepository
	cache   AvailabilityCache
	tx      TransactionManager
	audit   AuditLogger
	clock   Clock
	logger  *zap.Logger
}

func NewTimetableService(
	repo repository.TimetableRepository,
	catalog repository.CatalogRepository,
	cache AvailabilityCache,
	tx TransactionManager,
	audit AuditLogger,
	clock Clock,
	logger *zap.Logger,
) *TimetableServiceImpl {
	if cache == nil {
		cache = noopCache{}
	}
	if tx == nil {
		tx = noopTransactionManager{}
	}
	if audit == nil {
		audit = noopAuditLogger{}
	}
	if clock == nil {
		clock = realClock{}
	}
	return &TimetableServiceImpl{
		repo:    repo,
		catalog: catalog,
		cache:   cache,
		tx:      tx,
		audit:   audit,
		clock:   clock,
		logger:  logger,
	}
}

// Create stores a new active timetable and deactivates the employee's previous ones in the same transaction.
func (s *TimetableServiceImpl) Create(ctx context.Context, actor domain.Actor, dto domain.CreateTimetableDTO) (*domain.Timetable, error) {
	if err := authorizeEmployeeScope(ctx, s.catalog, actor, dto.EmployeeID); err != nil {
		return nil, err
	}

	validFrom, err := domain.ParseDate(dto.ValidFrom)
	if err != nil {
		return nil, err
	}

	timetable := &domain.Timetable{
		EmployeeID: dto.EmployeeID,
		ValidFrom:  validFrom,
		IsActive:   true,
	}

	if dto.ValidTo != nil && *dto.ValidTo != "" {
		validTo, err := domain.ParseDate(*dto.ValidTo)
		if err != nil {
			return nil, err
		}
		if validTo.Before(validFrom) {
			return nil, domain.Validationf("дата окончания расписания раньше даты начала")
		}
		timetable.ValidTo = &validTo
	}

	slots, err := validateSlots(dto.Slots)
	if err != nil {
		return nil, err
	}
	timetable.Slots = slots

	now := s.clock.Now()
	timetable.CreatedAt = now
	timetable.UpdatedAt = now

	err = s.tx.WithinReadWrite(ctx, func(ctx context.Context) error {
		if _, err := s.catalog.GetEmployee(ctx, dto.EmployeeID); err != nil {
			return err
		}

		deactivated, err := s.repo.DeactivateActive(ctx, dto.EmployeeID)
		if err != nil {
			return err
		}
		if deactivated > 0 {
			s.logger.Info("предыдущие расписания деактивированы",
				zap.Int64("employeeID", dto.EmployeeID),
				zap.Int64("count", deactivated))
		}

		id, err := s.repo.Create(ctx, timetable)
		if err != nil {
			return err
		}
		timetable.ID = id
		return nil
	})
	if err != nil {
		if !isDomainError(err) {
			s.logger.Error("ошибка создания расписания", zap.Int64("employeeID", dto.EmployeeID), zap.Error(err))
		}
		return nil, err
	}

	s.invalidate(ctx, dto.EmployeeID)
	s.logAction(ctx, actor, auditTimetableCreated, map[string]any{
		"timetable_id": timetable.ID,
		"employee_id":  timetable.EmployeeID,
	})

	return timetable, nil
}

func validateSlots(in []domain.CreateTimetableSlotDTO) ([]domain.TimetableSlot, error) {
	type interval struct{ start, end int }
	working := make(map[int][]interval)

	slots := make([]domain.TimetableSlot, 0, len(in))
	for _, dto := range in {
		if dto.DayOfWeek < 0 || dto.DayOfWeek > 6 {
			return nil, domain.Validationf("день недели должен быть в диапазоне 0-6")
		}
		start, err := domain.ClockMinutes(dto.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := domain.ClockMinutes(dto.EndTime)
		if err != nil {
			return nil, err
		}
		if start >= end {
			return nil, domain.Validationf("слот %s-%s: время начала должно быть раньше окончания", dto.StartTime, dto.EndTime)
		}

		if !dto.IsBreak {
			for _, other := range working[dto.DayOfWeek] {
				if start < other.end && end > other.start {
					return nil, domain.Validationf("рабочие слоты дня %d пересекаются", dto.DayOfWeek)
				}
			}
			working[dto.DayOfWeek] = append(working[dto.DayOfWeek], interval{start, end})
		}

		slots = append(slots, domain.TimetableSlot{
			DayOfWeek: dto.DayOfWeek,
			StartTime: domain.FormatClock(start),
			EndTime:   domain.FormatClock(end),
			IsBreak:   dto.IsBreak,
		})
	}

	return slots, nil
}

func (s *TimetableServiceImpl) GetByID(ctx context.Context, id int64) (*domain.Timetable, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *TimetableServiceImpl) List(ctx context.Context, employeeID int64, activeOnly bool) ([]domain.Timetable, error) {
	return s.repo.ListByEmployee(ctx, employeeID, activeOnly)
}

func (s *TimetableServiceImpl) Deactivate(ctx context.Context, actor domain.Actor, id int64) error {
	timetable, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authorizeEmployeeScope(ctx, s.catalog, actor, timetable.EmployeeID); err != nil {
		return err
	}

	if err := s.repo.Deactivate(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx, timetable.EmployeeID)
	s.logAction(ctx, actor, auditTimetableDeactivated, map[string]any{"timetable_id": id})
	return nil
}

// AddException registers a date override. Vacation requested by the employee stays pending until reviewed.
func (s *TimetableServiceImpl) AddException(ctx context.Context, actor domain.Actor, timetableID int64, dto domain.CreateExceptionDTO) (*domain.TimetableException, error) {
	timetable, err := s.repo.GetByID(ctx, timetableID)
	if err != nil {
		return nil, err
	}
	if err := authorizeEmployeeScope(ctx, s.catalog, actor, timetable.EmployeeID); err != nil {
		return nil, err
	}

	if !dto.Type.IsValid() {
		return nil, domain.Validationf("неизвестный тип исключения %q", dto.Type)
	}

	date, err := domain.ParseDate(dto.Date)
	if err != nil {
		return nil, err
	}

	exception := &domain.TimetableException{
		TimetableID: timetableID,
		Date:        date,
		Type:        dto.Type,
		IsAllDay:    dto.IsAllDay,
		Status:      domain.ExceptionApproved,
		Reason:      dto.Reason,
		CreatedAt:   s.clock.Now(),
	}

	if dto.Type == domain.ExceptionCustomHours && !dto.IsAllDay {
		if dto.StartTime == nil || dto.EndTime == nil {
			return nil, domain.Validationf("для особых часов нужно указать время начала и окончания")
		}
		start, err := domain.ClockMinutes(*dto.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := domain.ClockMinutes(*dto.EndTime)
		if err != nil {
			return nil, err
		}
		if start >= end {
			return nil, domain.Validationf("время начала должно быть раньше окончания")
		}
		exception.StartTime = PointerTo(domain.FormatClock(start))
		exception.EndTime = PointerTo(domain.FormatClock(end))
	} else {
		exception.IsAllDay = true
	}

	if dto.Type == domain.ExceptionVacation && actor.Role != domain.UserRoleAdmin {
		exception.Status = domain.ExceptionPending
	}

	id, err := s.repo.CreateException(ctx, exception)
	if err != nil {
		return nil, err
	}
	exception.ID = id

	s.invalidate(ctx, timetable.EmployeeID)
	s.logAction(ctx, actor, auditExceptionAdded, map[string]any{
		"exception_id": id,
		"timetable_id": timetableID,
		"date":         dto.Date,
		"type":         string(dto.Type),
		"status":       string(exception.Status),
	})

	return exception, nil
}

func (s *TimetableServiceImpl) RemoveException(ctx context.Context, actor domain.Actor, id int64) error {
	exception, err := s.repo.GetException(ctx, id)
	if err != nil {
		return err
	}
	timetable, err := s.repo.GetByID(ctx, exception.TimetableID)
	if err != nil {
		return err
	}
	if err := authorizeEmployeeScope(ctx, s.catalog, actor, timetable.EmployeeID); err != nil {
		return err
	}

	if err := s.repo.DeleteException(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx, timetable.EmployeeID)
	s.logAction(ctx, actor, auditExceptionRemoved, map[string]any{"exception_id": id})
	return nil
}

func (s *TimetableServiceImpl) ReviewException(ctx context.Context, actor domain.Actor, id int64, dto domain.ReviewExceptionDTO) (*domain.TimetableException, error) {
	if actor.Role != domain.UserRoleAdmin {
		return nil, domain.ErrForbidden
	}

	exception, err := s.repo.GetException(ctx, id)
	if err != nil {
		return nil, err
	}
	if exception.Status != domain.ExceptionPending {
		return nil, domain.Validationf("исключение уже рассмотрено (%s)", exception.Status)
	}

	status := domain.ExceptionRejected
	if dto.Approve {
		status = domain.ExceptionApproved
	}

	if err := s.repo.UpdateExceptionStatus(ctx, id, status, actor.UserID); err != nil {
		return nil, err
	}
	exception.Status = status
	exception.ReviewedBy = &actor.UserID

	timetable, err := s.repo.GetByID(ctx, exception.TimetableID)
	if err != nil {
		return nil, fmt.Errorf("исключение обновлено, но расписание не найдено: %w", err)
	}

	s.invalidate(ctx, timetable.EmployeeID)
	s.logAction(ctx, actor, auditExceptionReviewed, map[string]any{
		"exception_id": id,
		"status":       string(status),
	})

	return exception, nil
}

func (s *TimetableServiceImpl) invalidate(ctx context.Context, employeeID int64) {
	if err := s.cache.Invalidate(ctx, employeeID); err != nil {
		s.logger.Warn("ошибка инвалидации кэша доступности", zap.Int64("employeeID", employeeID), zap.Error(err))
	}
}

func (s *TimetableServiceImpl) logAction(ctx context.Context, actor domain.Actor, action string, metadata map[string]any) {
	if err := s.audit.LogAction(ctx, actor, action, metadata); err != nil {
		s.logger.Warn("ошибка записи в журнал аудита", zap.String("action", action), zap.Error(err))
	}
}

package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"salon/config"
	"salon/internal/domain"
	"salon/internal/repository"
)

const (
	auditAppointmentCreated     = "appointment.created"
	auditAppointmentConfirmed   = "appointment.confirmed"
	auditAppointmentStarted     = "appointment.started"
	auditAppointmentCancelled   = "appointment.cancelled"
	auditAppointmentCompleted   = "appointment.completed"
	auditAppointmentNoShow      = "appointment.no_show"
	auditAppointmentRescheduled = "appointment.rescheduled"
)

type AppointmentServiceDeps struct {
	Appointments repository.AppointmentRepository
	Catalog      repository.CatalogRepository
	Detector     *ConflictDetector
	Calculator   *CommissionCalculator
	Availability AvailabilityService
	Tx           TransactionManager
	Notifier     Notifier
	Audit        AuditLogger
	Clock        Clock
	Config       config.SchedulingConfig
	Logger       *zap.Logger
}

type AppointmentServiceImpl struct {
	repo         repository.AppointmentRepository
	catalog      repository.CatalogRepository
	detector     *ConflictDetector
	calculator   *CommissionCalculator
	availability AvailabilityService
	tx           TransactionManager
	notifier     Notifier
	audit        AuditLogger
	clock        Clock
	cfg          config.SchedulingConfig
	logger       *zap.Logger
}

func NewAppointmentService(deps AppointmentServiceDeps) *AppointmentServiceImpl {
	s := &AppointmentServiceImpl{
		repo:         deps.Appointments,
		catalog:      deps.Catalog,
		detector:     deps.Detector,
		calculator:   deps.Calculator,
		availability: deps.Availability,
		tx:           deps.Tx,
		notifier:     deps.Notifier,
		audit:        deps.Audit,
		clock:        deps.Clock,
		cfg:          deps.Config,
		logger:       deps.Logger,
	}
	if s.tx == nil {
		s.tx = noopTransactionManager{}
	}
	if s.notifier == nil {
		s.notifier = noopNotifier{}
	}
	if s.audit == nil {
		s.audit = noopAuditLogger{}
	}
	if s.clock == nil {
		s.clock = realClock{}
	}
	if s.cfg.Location == nil {
		s.cfg.Location = time.UTC
	}
	return s
}

func (s *AppointmentServiceImpl) Create(ctx context.Context, actor domain.Actor, dto domain.CreateAppointmentDTO) (*domain.Appointment, error) {
	clientID := actor.UserID
	switch {
	case actor.Role.IsStaff():
		if dto.ClientID <= 0 {
			return nil, domain.Validationf("не указан клиент")
		}
		clientID = dto.ClientID
		if err := authorizeEmployeeScope(ctx, s.catalog, actor, dto.EmployeeID); err != nil {
			return nil, err
		}
	case actor.Role != domain.UserRoleClient:
		return nil, domain.ErrForbidden
	}

	if dto.EmployeeID <= 0 || dto.ServiceID <= 0 {
		return nil, domain.Validationf("не указан сотрудник или услуга")
	}
	if dto.StartTime.IsZero() {
		return nil, domain.Validationf("не указано время начала")
	}

	now := s.clock.Now()
	start := dto.StartTime.UTC()
	if !start.After(now) && !(actor.Role.IsStaff() && s.cfg.AllowPastBookingForStaff) {
		return nil, domain.Validationf("время начала записи должно быть в будущем")
	}

	var (
		appointment *domain.Appointment
		details     domain.BookingDetails
	)

	err := s.tx.WithinReadWrite(ctx, func(ctx context.Context) error {
		employee, err := s.catalog.GetEmployee(ctx, dto.EmployeeID)
		if err != nil {
			return err
		}
		if !employee.IsActive {
			return domain.Validationf("сотрудник не принимает записи")
		}

		service, err := s.catalog.GetService(ctx, dto.ServiceID)
		if err != nil {
			return err
		}
		if !service.IsActive {
			return domain.Validationf("услуга недоступна для записи")
		}

		var variant *domain.ServiceVariant
		if dto.ServiceVariantID != nil {
			variant, err = s.catalog.GetServiceVariant(ctx, *dto.ServiceVariantID)
			if err != nil {
				return err
			}
			if variant.ServiceID != service.ID {
				return domain.Validationf("вариант %d не относится к услуге %d", variant.ID, service.ID)
			}
		}

		offer := domain.NewOffer(*service, variant)
		if offer.Duration <= 0 {
			return domain.Validationf("длительность услуги должна быть положительной")
		}
		end := start.Add(offer.Duration)

		if s.cfg.RequireWithinAvailability && s.availability != nil {
			if err := s.ensureWithinAvailability(ctx, employee.ID, start, end); err != nil {
				return err
			}
		}

		if err := s.repo.LockEmployeeCalendar(ctx, employee.ID); err != nil {
			return err
		}

		conflicts, err := s.detector.Detect(ctx, employee.ID, start, end, nil)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return &domain.ConflictError{Events: conflicts}
		}

		appointment = &domain.Appointment{
			EmployeeID:       employee.ID,
			ClientID:         clientID,
			ServiceID:        service.ID,
			ServiceVariantID: dto.ServiceVariantID,
			StartTime:        start,
			EndTime:          end,
			Price:            offer.Price,
			Status:           domain.AppointmentStatusScheduled,
			Notes:            dto.Notes,
			CreatedAt:        now,
			UpdatedAt:        now,
		}

		id, err := s.repo.Create(ctx, appointment)
		if err != nil {
			return err
		}
		appointment.ID = id

		details = bookingDetails(appointment, employee, service)
		return nil
	})
	if err != nil {
		if !isDomainError(err) {
			s.logger.Error("ошибка создания записи",
				zap.Int64("employeeID", dto.EmployeeID),
				zap.Int64("serviceID", dto.ServiceID),
				zap.Error(err))
		}
		return nil, err
	}

	s.logger.Info("запись создана",
		zap.Int64("appointmentID", appointment.ID),
		zap.Int64("employeeID", appointment.EmployeeID),
		zap.Time("start", appointment.StartTime))

	s.logAction(ctx, actor, auditAppointmentCreated, appointment)
	s.notify(ctx, appointment.ClientID, details, s.notifier.SendBookingConfirmation)

	return appointment, nil
}

func (s *AppointmentServiceImpl) ensureWithinAvailability(ctx context.Context, employeeID int64, start, end time.Time) error {
	day := domain.CivilDate(start, s.cfg.Location)
	slots, err := s.availability.GetAvailability(ctx, employeeID, day, day)
	if err != nil {
		return err
	}
	if !withinAvailability(slots, start, end, s.cfg.Location) {
		return domain.Validationf("выбранное время вне рабочего графика сотрудника")
	}
	return nil
}

func (s *AppointmentServiceImpl) Get(ctx context.Context, actor domain.Actor, id int64) (*domain.Appointment, error) {
	appointment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, actor, appointment, false); err != nil {
		return nil, err
	}
	return appointment, nil
}

func (s *AppointmentServiceImpl) List(ctx context.Context, actor domain.Actor, filter domain.AppointmentFilter) ([]domain.Appointment, int, error) {
	switch actor.Role {
	case domain.UserRoleAdmin:
	case domain.UserRoleEmployee:
		employee, err := s.catalog.GetEmployeeByUserID(ctx, actor.UserID)
		if err != nil {
			return nil, 0, domain.ErrForbidden
		}
		filter.EmployeeID = &employee.ID
	case domain.UserRoleClient:
		filter.ClientID = &actor.UserID
	default:
		return nil, 0, domain.ErrForbidden
	}

	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, 0, domain.Validationf("неизвестный статус %q", *filter.Status)
	}
	filter.Limit, filter.Offset = normalizePage(filter.Limit, filter.Offset)

	appointments, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка получения списка записей", zap.Error(err))
		return nil, 0, err
	}

	count, err := s.repo.CountByFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка получения количества записей", zap.Error(err))
		return nil, 0, err
	}

	return appointments, count, nil
}

func (s *AppointmentServiceImpl) Confirm(ctx context.Context, actor domain.Actor, id int64) (*domain.Appointment, error) {
	appointment, _, err := s.transition(ctx, actor, id, domain.AppointmentStatusConfirmed, true, nil)
	if err != nil {
		return nil, err
	}
	s.logAction(ctx, actor, auditAppointmentConfirmed, appointment)
	return appointment, nil
}

func (s *AppointmentServiceImpl) Start(ctx context.Context, actor domain.Actor, id int64) (*domain.Appointment, error) {
	appointment, _, err := s.transition(ctx, actor, id, domain.AppointmentStatusInProgress, true, nil)
	if err != nil {
		return nil, err
	}
	s.logAction(ctx, actor, auditAppointmentStarted, appointment)
	return appointment, nil
}

func (s *AppointmentServiceImpl) Cancel(ctx context.Context, actor domain.Actor, id int64) (*domain.Appointment, error) {
	appointment, _, err := s.transition(ctx, actor, id, domain.AppointmentStatusCancelled, false, nil)
	if err != nil {
		return nil, err
	}
	s.logAction(ctx, actor, auditAppointmentCancelled, appointment)
	return appointment, nil
}

func (s *AppointmentServiceImpl) Complete(ctx context.Context, actor domain.Actor, id int64, dto domain.CompleteAppointmentDTO) (*domain.Appointment, error) {
	if dto.PaidAmount != nil && *dto.PaidAmount < 0 {
		return nil, domain.Validationf("сумма оплаты не может быть отрицательной")
	}
	if dto.TipAmount != nil && *dto.TipAmount < 0 {
		return nil, domain.Validationf("сумма чаевых не может быть отрицательной")
	}
	if dto.PaymentMethod != nil && !dto.PaymentMethod.IsValid() {
		return nil, domain.Validationf("неизвестный способ оплаты %q", *dto.PaymentMethod)
	}

	var commission *domain.Commission

	appointment, details, err := s.transition(ctx, actor, id, domain.AppointmentStatusCompleted, true,
		func(ctx context.Context, a *domain.Appointment, now time.Time, employee *domain.Employee, service *domain.Service) error {
			a.FinalizedAt = &now
			a.FinalizedBy = &actor.UserID
			a.PaidAmount = dto.PaidAmount
			a.TipAmount = dto.TipAmount
			a.PaymentMethod = dto.PaymentMethod

			var err error
			commission, err = s.calculator.CalculateAndPersist(ctx, employee, service, a, actor)
			return err
		})
	if err != nil {
		return nil, err
	}

	fields := []zap.Field{zap.Int64("appointmentID", appointment.ID)}
	if commission != nil {
		fields = append(fields, zap.Float64("commission", commission.Amount), zap.String("source", string(commission.Source)))
	}
	s.logger.Info("запись завершена", fields...)

	s.logAction(ctx, actor, auditAppointmentCompleted, appointment)
	s.notify(ctx, appointment.ClientID, details, s.notifier.SendFollowUp)

	return appointment, nil
}

func (s *AppointmentServiceImpl) NoShow(ctx context.Context, actor domain.Actor, id int64) (*domain.Appointment, error) {
	appointment, _, err := s.transition(ctx, actor, id, domain.AppointmentStatusNoShow, true,
		func(_ context.Context, a *domain.Appointment, now time.Time, _ *domain.Employee, _ *domain.Service) error {
			a.FinalizedAt = &now
			a.FinalizedBy = &actor.UserID
			a.PaidAmount = nil
			a.TipAmount = nil
			a.PaymentMethod = nil
			return nil
		})
	if err != nil {
		return nil, err
	}
	s.logAction(ctx, actor, auditAppointmentNoShow, appointment)
	return appointment, nil
}

func (s *AppointmentServiceImpl) Reschedule(ctx context.Context, actor domain.Actor, id int64, dto domain.RescheduleAppointmentDTO) (*domain.Appointment, error) {
	if dto.StartTime.IsZero() {
		return nil, domain.Validationf("не указано время начала")
	}

	now := s.clock.Now()
	start := dto.StartTime.UTC()
	if !start.After(now) && !(actor.Role.IsStaff() && s.cfg.AllowPastBookingForStaff) {
		return nil, domain.Validationf("время начала записи должно быть в будущем")
	}

	var appointment *domain.Appointment

	err := s.tx.WithinReadWrite(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := s.authorize(ctx, actor, current, false); err != nil {
			return err
		}
		if current.Status.IsTerminal() {
			return domain.IllegalTransitionf("нельзя перенести запись в статусе %s", current.Status)
		}

		end := start.Add(current.Duration())

		if s.cfg.RequireWithinAvailability && s.availability != nil {
			if err := s.ensureWithinAvailability(ctx, current.EmployeeID, start, end); err != nil {
				return err
			}
		}

		if err := s.repo.LockEmployeeCalendar(ctx, current.EmployeeID); err != nil {
			return err
		}

		conflicts, err := s.detector.Detect(ctx, current.EmployeeID, start, end, &current.ID)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return &domain.ConflictError{Events: conflicts}
		}

		current.StartTime = start
		current.EndTime = end
		current.UpdatedAt = now

		if err := s.repo.Update(ctx, current); err != nil {
			return err
		}

		appointment = current
		return nil
	})
	if err != nil {
		if !isDomainError(err) {
			s.logger.Error("ошибка переноса записи", zap.Int64("appointmentID", id), zap.Error(err))
		}
		return nil, err
	}

	s.logAction(ctx, actor, auditAppointmentRescheduled, appointment)
	return appointment, nil
}

type transitionFunc func(ctx context.Context, a *domain.Appointment, now time.Time, employee *domain.Employee, service *domain.Service) error

// transition applies one guarded status change under a row lock and returns details for notifications.
func (s *AppointmentServiceImpl) transition(
	ctx context.Context,
	actor domain.Actor,
	id int64,
	to domain.AppointmentStatus,
	staffOnly bool,
	mutate transitionFunc,
) (*domain.Appointment, domain.BookingDetails, error) {
	var (
		appointment *domain.Appointment
		details     domain.BookingDetails
	)

	err := s.tx.WithinReadWrite(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := s.authorize(ctx, actor, current, staffOnly); err != nil {
			return err
		}
		if !current.Status.CanTransitionTo(to) {
			return &domain.TransitionError{From: current.Status, To: to}
		}

		employee, err := s.catalog.GetEmployee(ctx, current.EmployeeID)
		if err != nil {
			return err
		}
		service, err := s.catalog.GetService(ctx, current.ServiceID)
		if err != nil {
			return err
		}

		now := s.clock.Now()
		if mutate != nil {
			if err := mutate(ctx, current, now, employee, service); err != nil {
				return err
			}
		}
		current.Status = to
		current.UpdatedAt = now

		if err := s.repo.Update(ctx, current); err != nil {
			return err
		}

		appointment = current
		details = bookingDetails(current, employee, service)
		return nil
	})
	if err != nil {
		if !isDomainError(err) {
			s.logger.Error("ошибка смены статуса записи",
				zap.Int64("appointmentID", id),
				zap.String("to", string(to)),
				zap.Error(err))
		}
		return nil, domain.BookingDetails{}, err
	}

	return appointment, details, nil
}

// authorize admits admins, the appointment's own employee and, unless staffOnly, its own client.
func (s *AppointmentServiceImpl) authorize(ctx context.Context, actor domain.Actor, a *domain.Appointment, staffOnly bool) error {
	switch actor.Role {
	case domain.UserRoleAdmin:
		return nil
	case domain.UserRoleEmployee:
		return authorizeEmployeeScope(ctx, s.catalog, actor, a.EmployeeID)
	case domain.UserRoleClient:
		if staffOnly || a.ClientID != actor.UserID {
			return domain.ErrForbidden
		}
		return nil
	default:
		return domain.ErrForbidden
	}
}

func (s *AppointmentServiceImpl) logAction(ctx context.Context, actor domain.Actor, action string, a *domain.Appointment) {
	err := s.audit.LogAction(ctx, actor, action, map[string]any{
		"appointment_id": a.ID,
		"employee_id":    a.EmployeeID,
		"client_id":      a.ClientID,
		"status":         string(a.Status),
		"start_time":     a.StartTime,
	})
	if err != nil {
		s.logger.Warn("ошибка записи в журнал аудита", zap.String("action", action), zap.Error(err))
	}
}

func (s *AppointmentServiceImpl) notify(
	ctx context.Context,
	clientID int64,
	details domain.BookingDetails,
	send func(context.Context, domain.Contact, domain.BookingDetails) error,
) {
	ctx = context.WithoutCancel(ctx)
	if s.cfg.NotificationTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.NotificationTimeout)
		defer cancel()
	}

	contact, err := s.catalog.GetContact(ctx, clientID)
	if err != nil {
		s.logger.Warn("не удалось получить контакт клиента для уведомления",
			zap.Int64("clientID", clientID),
			zap.Error(err))
		return
	}
	details.ClientName = contact.Name

	if err := send(ctx, *contact, details); err != nil {
		s.logger.Warn("ошибка отправки уведомления",
			zap.Int64("appointmentID", details.AppointmentID),
			zap.Error(err))
	}
}

func bookingDetails(a *domain.Appointment, employee *domain.Employee, service *domain.Service) domain.BookingDetails {
	return domain.BookingDetails{
		AppointmentID: a.ID,
		EmployeeName:  employee.FullName(),
		ServiceName:   service.Name,
		StartTime:     a.StartTime,
		EndTime:       a.EndTime,
		Price:         a.Price,
	}
}

func isDomainError(err error) bool {
	return errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, domain.ErrConflict) ||
		errors.Is(err, domain.ErrIllegalTransition) ||
		errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrForbidden)
}

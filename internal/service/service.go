package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"salon/config"
	"salon/internal/domain"
	"salon/internal/repository"
	"salon/internal/storage"
)

const (
	defaultListPageSize = 50
	maxListPageSize     = 200
)

type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

func (noopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// Notifier delivers client-facing messages. Failures never undo a committed change.
type Notifier interface {
	SendBookingConfirmation(ctx context.Context, recipient domain.Contact, details domain.BookingDetails) error
	SendFollowUp(ctx context.Context, recipient domain.Contact, details domain.BookingDetails) error
}

// AuditLogger records who did what. Best-effort.
type AuditLogger interface {
	LogAction(ctx context.Context, actor domain.Actor, action string, metadata map[string]any) error
}

// AvailabilityCache stores resolved availability per employee and date range.
type AvailabilityCache interface {
	Get(ctx context.Context, employeeID int64, from, to time.Time) ([]domain.AvailabilitySlot, int64, bool, error)
	Set(ctx context.Context, employeeID, version int64, from, to time.Time, slots []domain.AvailabilitySlot) error
	Invalidate(ctx context.Context, employeeID int64) error
}

type noopNotifier struct{}

func (noopNotifier) SendBookingConfirmation(context.Context, domain.Contact, domain.BookingDetails) error {
	return nil
}

func (noopNotifier) SendFollowUp(context.Context, domain.Contact, domain.BookingDetails) error {
	return nil
}

type noopAuditLogger struct{}

func (noopAuditLogger) LogAction(context.Context, domain.Actor, string, map[string]any) error {
	return nil
}

type noopCache struct{}

func (noopCache) Get(context.Context, int64, time.Time, time.Time) ([]domain.AvailabilitySlot, int64, bool, error) {
	return nil, 0, false, nil
}

func (noopCache) Set(context.Context, int64, int64, time.Time, time.Time, []domain.AvailabilitySlot) error {
	return nil
}

func (noopCache) Invalidate(context.Context, int64) error {
	return nil
}

type Deps struct {
	Repos    *repository.Repositories
	Logger   *zap.Logger
	Config   *config.Config
	Notifier Notifier
	Audit    AuditLogger
	Cache    AvailabilityCache
	Reports  storage.ReportStorage
	Clock    Clock
	// Tx overrides the repositories' transaction manager.
	Tx TransactionManager
}

type Services struct {
	Availability AvailabilityService
	Conflict     ConflictService
	Appointment  AppointmentService
	Commission   CommissionService
	Timetable    TimetableService
	TimeBlock    TimeBlockService
}

func NewServices(deps Deps) *Services {
	tx := deps.Tx
	if tx == nil {
		tx = noopTransactionManager{}
		if deps.Repos.Tx != nil {
			tx = deps.Repos.Tx
		}
	}
	if deps.Clock == nil {
		deps.Clock = realClock{}
	}
	if deps.Notifier == nil {
		deps.Notifier = noopNotifier{}
	}
	if deps.Audit == nil {
		deps.Audit = noopAuditLogger{}
	}
	if deps.Cache == nil {
		deps.Cache = noopCache{}
	}

	scheduling := deps.Config.Scheduling

	detector := NewConflictDetector(deps.Repos.Appointment, deps.Repos.TimeBlock)
	calculator := NewCommissionCalculator(deps.Repos.Commission, deps.Repos.Catalog, deps.Clock)
	availability := NewAvailabilityService(deps.Repos.Timetable, deps.Repos.Catalog, deps.Cache, scheduling, deps.Logger)

	return &Services{
		Availability: availability,
		Conflict:     NewConflictService(detector, tx, deps.Logger),
		Appointment: NewAppointmentService(AppointmentServiceDeps{
			Appointments: deps.Repos.Appointment,
			Catalog:      deps.Repos.Catalog,
			Detector:     detector,
			Calculator:   calculator,
			Availability: availability,
			Tx:           tx,
			Notifier:     deps.Notifier,
			Audit:        deps.Audit,
			Clock:        deps.Clock,
			Config:       scheduling,
			Logger:       deps.Logger,
		}),
		Commission: NewCommissionService(deps.Repos.Commission, deps.Repos.Catalog, calculator, deps.Reports, deps.Clock, deps.Logger),
		Timetable:  NewTimetableService(deps.Repos.Timetable, deps.Repos.Catalog, deps.Cache, tx, deps.Audit, deps.Clock, deps.Logger),
		TimeBlock:  NewTimeBlockService(deps.Repos.TimeBlock, deps.Repos.Catalog, deps.Repos.Appointment, detector, tx, deps.Audit, deps.Clock, deps.Logger),
	}
}

type AvailabilityService interface {
	GetAvailability(ctx context.Context, employeeID int64, from, to time.Time) ([]domain.AvailabilitySlot, error)
}

type ConflictService interface {
	CheckConflict(ctx context.Context, employeeID int64, start, end time.Time, excludeID *int64) (*domain.ConflictResult, error)
}

type AppointmentService interface {
	Create(ctx context.Context, actor domain.Actor, dto domain.CreateAppointmentDTO) (*domain.Appointment, error)
	Get(ctx context.Context, actor domain.Actor, id int64) (*domain.Appointment, error)
	List(ctx context.Context, actor domain.Actor, filter domain.AppointmentFilter) ([]domain.Appointment, int, error)
	Confirm(ctx context.Context, actor domain.Actor, id int64) (*domain.Appointment, error)
	Start(ctx context.Context, actor domain.Actor, id int64) (*domain.Appointment, error)
	Cancel(ctx context.Context, actor domain.Actor, id int64) (*domain.Appointment, error)
	Complete(ctx context.Context, actor domain.Actor, id int64, dto domain.CompleteAppointmentDTO) (*domain.Appointment, error)
	NoShow(ctx context.Context, actor domain.Actor, id int64) (*domain.Appointment, error)
	Reschedule(ctx context.Context, actor domain.Actor, id int64, dto domain.RescheduleAppointmentDTO) (*domain.Appointment, error)
}

type CommissionService interface {
	UpsertRule(ctx context.Context, actor domain.Actor, dto domain.UpsertCommissionRuleDTO) (*domain.CommissionRule, error)
	DeleteRule(ctx context.Context, actor domain.Actor, id int64) error
	ListRules(ctx context.Context, actor domain.Actor, employeeID int64) ([]domain.CommissionRule, error)
	List(ctx context.Context, actor domain.Actor, filter domain.CommissionFilter) ([]domain.Commission, error)
	ExportStatement(ctx context.Context, actor domain.Actor, employeeID int64, from, to time.Time) (*domain.CommissionStatement, error)
	DownloadStatement(ctx context.Context, actor domain.Actor, employeeID int64, name string) ([]byte, error)
}

type TimetableService interface {
	Create(ctx context.Context, actor domain.Actor, dto domain.CreateTimetableDTO) (*domain.Timetable, error)
	GetByID(ctx context.Context, id int64) (*domain.Timetable, error)
	List(ctx context.Context, employeeID int64, activeOnly bool) ([]domain.Timetable, error)
	Deactivate(ctx context.Context, actor domain.Actor, id int64) error
	AddException(ctx context.Context, actor domain.Actor, timetableID int64, dto domain.CreateExceptionDTO) (*domain.TimetableException, error)
	RemoveException(ctx context.Context, actor domain.Actor, id int64) error
	ReviewException(ctx context.Context, actor domain.Actor, id int64, dto domain.ReviewExceptionDTO) (*domain.TimetableException, error)
}

type TimeBlockService interface {
	Create(ctx context.Context, actor domain.Actor, dto domain.CreateTimeBlockDTO) (*domain.TimeBlock, error)
	Delete(ctx context.Context, actor domain.Actor, id int64) error
	List(ctx context.Context, employeeID int64, from, to time.Time) ([]domain.TimeBlock, error)
}

// authorizeEmployeeScope lets admins act on any employee and employees only on themselves.
func authorizeEmployeeScope(ctx context.Context, catalog repository.CatalogRepository, actor domain.Actor, employeeID int64) error {
	switch actor.Role {
	case domain.UserRoleAdmin:
		return nil
	case domain.UserRoleEmployee:
		employee, err := catalog.GetEmployeeByUserID(ctx, actor.UserID)
		if err != nil {
			return domain.ErrForbidden
		}
		if employee.ID != employeeID {
			return domain.ErrForbidden
		}
		return nil
	default:
		return domain.ErrForbidden
	}
}

func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultListPageSize
	}
	if limit > maxListPageSize {
		limit = maxListPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func PointerTo[T any](v T) *T {
	return &v
}

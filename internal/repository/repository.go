package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"salon/internal/domain"
)

type Repositories struct {
	Appointment AppointmentRepository
	TimeBlock   TimeBlockRepository
	Timetable   TimetableRepository
	Catalog     CatalogRepository
	Commission  CommissionRepository
	Tx          *TransactionManager
}

func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		Appointment: NewAppointmentRepository(db),
		TimeBlock:   NewTimeBlockRepository(db),
		Timetable:   NewTimetableRepository(db),
		Catalog:     NewCatalogRepository(db),
		Commission:  NewCommissionRepository(db),
		Tx:          NewTransactionManager(db),
	}
}

type AppointmentRepository interface {
	Create(ctx context.Context, appointment *domain.Appointment) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	// GetByIDForUpdate row-locks the appointment for the surrounding transaction.
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Appointment, error)
	Update(ctx context.Context, appointment *domain.Appointment) error
	List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error)
	CountByFilter(ctx context.Context, filter domain.AppointmentFilter) (int, error)
	FindOverlapping(ctx context.Context, employeeID int64, start, end time.Time, excludeID *int64) ([]domain.ConflictingEvent, error)
	// LockEmployeeCalendar serializes calendar writes for one employee until the transaction ends.
	LockEmployeeCalendar(ctx context.Context, employeeID int64) error
}

type TimeBlockRepository interface {
	Create(ctx context.Context, block *domain.TimeBlock) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.TimeBlock, error)
	Delete(ctx context.Context, id int64) error
	ListByEmployee(ctx context.Context, employeeID int64, from, to time.Time) ([]domain.TimeBlock, error)
	FindOverlapping(ctx context.Context, employeeID int64, start, end time.Time) ([]domain.ConflictingEvent, error)
}

type TimetableRepository interface {
	Create(ctx context.Context, timetable *domain.Timetable) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Timetable, error)
	ListByEmployee(ctx context.Context, employeeID int64, activeOnly bool) ([]domain.Timetable, error)
	DeactivateActive(ctx context.Context, employeeID int64) (int64, error)
	Deactivate(ctx context.Context, id int64) error

	CreateException(ctx context.Context, exception *domain.TimetableException) (int64, error)
	GetException(ctx context.Context, id int64) (*domain.TimetableException, error)
	DeleteException(ctx context.Context, id int64) error
	UpdateExceptionStatus(ctx context.Context, id int64, status domain.ExceptionStatus, reviewedBy int64) error
	ListExceptions(ctx context.Context, timetableIDs []int64, from, to time.Time) ([]domain.TimetableException, error)
}

type CatalogRepository interface {
	GetEmployee(ctx context.Context, id int64) (*domain.Employee, error)
	GetEmployeeByUserID(ctx context.Context, userID int64) (*domain.Employee, error)
	GetService(ctx context.Context, id int64) (*domain.Service, error)
	GetServiceVariant(ctx context.Context, id int64) (*domain.ServiceVariant, error)
	GetCategory(ctx context.Context, id int64) (*domain.ServiceCategory, error)
	GetContact(ctx context.Context, userID int64) (*domain.Contact, error)
}

type CommissionRepository interface {
	// FindRuleForService and FindRuleForCategory return nil, nil when no rule exists.
	FindRuleForService(ctx context.Context, employeeID, serviceID int64) (*domain.CommissionRule, error)
	FindRuleForCategory(ctx context.Context, employeeID, categoryID int64) (*domain.CommissionRule, error)
	UpsertRule(ctx context.Context, rule *domain.CommissionRule) (*domain.CommissionRule, error)
	DeleteRule(ctx context.Context, id int64) error
	ListRules(ctx context.Context, employeeID int64) ([]domain.CommissionRule, error)

	// GetByAppointment returns nil, nil when the appointment has no commission yet.
	GetByAppointment(ctx context.Context, appointmentID int64) (*domain.Commission, error)
	// Create inserts a commission; created is false when one already existed for the appointment.
	Create(ctx context.Context, commission *domain.Commission) (stored *domain.Commission, created bool, err error)
	List(ctx context.Context, filter domain.CommissionFilter) ([]domain.Commission, error)
}

package domain

import (
	"time"
)

type AppointmentStatus string

const (
	AppointmentStatusScheduled  AppointmentStatus = "scheduled"
	AppointmentStatusConfirmed  AppointmentStatus = "confirmed"
	AppointmentStatusInProgress AppointmentStatus = "in_progress"
	AppointmentStatusCompleted  AppointmentStatus = "completed"
	AppointmentStatusCancelled  AppointmentStatus = "cancelled"
	AppointmentStatusNoShow     AppointmentStatus = "no_show"
)

var appointmentTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentStatusScheduled: {
		AppointmentStatusConfirmed,
		AppointmentStatusInProgress,
		AppointmentStatusCompleted,
		AppointmentStatusCancelled,
		AppointmentStatusNoShow,
	},
	AppointmentStatusConfirmed: {
		AppointmentStatusInProgress,
		AppointmentStatusCompleted,
		AppointmentStatusCancelled,
		AppointmentStatusNoShow,
	},
	AppointmentStatusInProgress: {
		AppointmentStatusCompleted,
		AppointmentStatusCancelled,
		AppointmentStatusNoShow,
	},
}

func (s AppointmentStatus) IsValid() bool {
	switch s {
	case AppointmentStatusScheduled, AppointmentStatusConfirmed, AppointmentStatusInProgress,
		AppointmentStatusCompleted, AppointmentStatusCancelled, AppointmentStatusNoShow:
		return true
	}
	return false
}

func (s AppointmentStatus) IsTerminal() bool {
	_, ok := appointmentTransitions[s]
	return !ok
}

func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range appointmentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodTransfer PaymentMethod = "transfer"
	PaymentMethodVoucher  PaymentMethod = "voucher"
)

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodTransfer, PaymentMethodVoucher:
		return true
	}
	return false
}

type Appointment struct {
	ID               int64             `json:"id"`
	EmployeeID       int64             `json:"employee_id"`
	ClientID         int64             `json:"client_id"`
	ServiceID        int64             `json:"service_id"`
	ServiceVariantID *int64            `json:"service_variant_id"`
	StartTime        time.Time         `json:"start_time"`
	EndTime          time.Time         `json:"end_time"`
	Price            float64           `json:"price"`
	Status           AppointmentStatus `json:"status"`
	Notes            *string           `json:"notes"`
	PaidAmount       *float64          `json:"paid_amount"`
	TipAmount        *float64          `json:"tip_amount"`
	PaymentMethod    *PaymentMethod    `json:"payment_method"`
	FinalizedAt      *time.Time        `json:"finalized_at"`
	FinalizedBy      *int64            `json:"finalized_by"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

func (a Appointment) Duration() time.Duration {
	return a.EndTime.Sub(a.StartTime)
}

type CreateAppointmentDTO struct {
	ClientID         int64     `json:"client_id"`
	EmployeeID       int64     `json:"employee_id" binding:"required"`
	ServiceID        int64     `json:"service_id" binding:"required"`
	ServiceVariantID *int64    `json:"service_variant_id"`
	StartTime        time.Time `json:"start_time" binding:"required"`
	Notes            *string   `json:"notes"`
}

type RescheduleAppointmentDTO struct {
	StartTime time.Time `json:"start_time" binding:"required"`
}

type CompleteAppointmentDTO struct {
	PaidAmount    *float64       `json:"paid_amount"`
	TipAmount     *float64       `json:"tip_amount"`
	PaymentMethod *PaymentMethod `json:"payment_method"`
}

type AppointmentFilter struct {
	ClientID   *int64             `json:"client_id"`
	EmployeeID *int64             `json:"employee_id"`
	Status     *AppointmentStatus `json:"status"`
	StartDate  *time.Time         `json:"start_date"`
	EndDate    *time.Time         `json:"end_date"`
	Limit      int                `json:"limit"`
	Offset     int                `json:"offset"`
}

// BookingDetails is the payload handed to the notification dispatcher.
type BookingDetails struct {
	AppointmentID int64
	ClientName    string
	EmployeeName  string
	ServiceName   string
	StartTime     time.Time
	EndTime       time.Time
	Price         float64
}

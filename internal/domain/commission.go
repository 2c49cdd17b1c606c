package domain

import (
	"math"
	"time"
)

type CommissionRule struct {
	ID         int64     `json:"id"`
	EmployeeID int64     `json:"employee_id"`
	ServiceID  *int64    `json:"service_id"`
	CategoryID *int64    `json:"category_id"`
	Percent    float64   `json:"percent"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type CommissionSource string

const (
	CommissionSourceServiceRule  CommissionSource = "service_rule"
	CommissionSourceCategoryRule CommissionSource = "category_rule"
	CommissionSourceBaseRate     CommissionSource = "base_rate"
)

type Commission struct {
	ID            int64            `json:"id"`
	EmployeeID    int64            `json:"employee_id"`
	AppointmentID int64            `json:"appointment_id"`
	ServiceID     int64            `json:"service_id"`
	BaseAmount    float64          `json:"base_amount"`
	Percent       float64          `json:"percent"`
	Amount        float64          `json:"amount"`
	Source        CommissionSource `json:"source"`
	CreatedBy     int64            `json:"created_by"`
	CreatedAt     time.Time        `json:"created_at"`
}

type UpsertCommissionRuleDTO struct {
	EmployeeID int64   `json:"employee_id" binding:"required"`
	ServiceID  *int64  `json:"service_id"`
	CategoryID *int64  `json:"category_id"`
	Percent    float64 `json:"percent"`
}

type CommissionFilter struct {
	EmployeeID *int64     `json:"employee_id"`
	From       *time.Time `json:"from"`
	To         *time.Time `json:"to"`
	Limit      int        `json:"limit"`
	Offset     int        `json:"offset"`
}

// CommissionStatement is an exported payroll document.
type CommissionStatement struct {
	EmployeeID  int64     `json:"employee_id"`
	From        time.Time `json:"from"`
	To          time.Time `json:"to"`
	Count       int       `json:"count"`
	TotalAmount float64   `json:"total_amount"`
	ObjectKey   string    `json:"object_key"`
	URL         string    `json:"url"`
}

// RoundMoney rounds to the currency's minor unit (grosze for PLN).
func RoundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

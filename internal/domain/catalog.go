package domain

import "time"

type Employee struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Email          string    `json:"email"`
	CommissionRate *float64  `json:"commission_rate"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (e Employee) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}

// BaseCommissionRate returns the fallback percentage, 0 when unset.
func (e Employee) BaseCommissionRate() float64 {
	if e.CommissionRate == nil {
		return 0
	}
	return *e.CommissionRate
}

type ServiceCategory struct {
	ID       int64  `json:"id"`
	ParentID *int64 `json:"parent_id"`
	Name     string `json:"name"`
}

type Service struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	CategoryID      *int64  `json:"category_id"`
	DurationMinutes int     `json:"duration_minutes"`
	Price           float64 `json:"price"`
	IsActive        bool    `json:"is_active"`
}

type ServiceVariant struct {
	ID              int64    `json:"id"`
	ServiceID       int64    `json:"service_id"`
	Name            string   `json:"name"`
	DurationMinutes *int     `json:"duration_minutes"`
	Price           *float64 `json:"price"`
}

// Offer is the effective duration and price of a service, variant overrides applied.
type Offer struct {
	Service  Service
	Variant  *ServiceVariant
	Duration time.Duration
	Price    float64
}

func NewOffer(service Service, variant *ServiceVariant) Offer {
	offer := Offer{
		Service:  service,
		Variant:  variant,
		Duration: time.Duration(service.DurationMinutes) * time.Minute,
		Price:    service.Price,
	}
	if variant != nil {
		if variant.DurationMinutes != nil {
			offer.Duration = time.Duration(*variant.DurationMinutes) * time.Minute
		}
		if variant.Price != nil {
			offer.Price = *variant.Price
		}
	}
	return offer
}

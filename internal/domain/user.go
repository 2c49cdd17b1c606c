package domain

type UserRole string

const (
	UserRoleClient   UserRole = "client"
	UserRoleEmployee UserRole = "employee"
	UserRoleAdmin    UserRole = "admin"
)

func (r UserRole) IsValid() bool {
	return r == UserRoleClient || r == UserRoleEmployee || r == UserRoleAdmin
}

func (r UserRole) IsStaff() bool {
	return r == UserRoleEmployee || r == UserRoleAdmin
}

// Actor is the acting principal as supplied by the identity provider.
type Actor struct {
	UserID int64    `json:"user_id"`
	Role   UserRole `json:"role"`
}

// Contact is what notifications need to reach a person.
type Contact struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
}

package user

import (
	"net/http"
	"time"

	"github.com/barbershop/appointments-backend/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "user not found")
	ErrEmailAlreadyUsed   = apperror.New(http.StatusConflict, "email already used")
	ErrInvalidCredentials = apperror.New(http.StatusUnauthorized, "invalid email or password")
	ErrEmailRequired      = apperror.New(http.StatusBadRequest, "email is required")
	ErrPasswordTooShort   = apperror.New(http.StatusBadRequest, "password must be at least 8 characters")
	ErrInvalidRole        = apperror.New(http.StatusBadRequest, "role must be admin or barber")
)

// Role is the dashboard permission level of a staff member.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleBarber Role = "barber"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleBarber
}

// User is a dashboard staff account.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	DisplayName  *string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	LastLoginAt  *time.Time
}

// Filter defines filter options for listing staff.
type Filter struct {
	Email    string
	Role     Role
	IsActive *bool

	Page     int
	PageSize int
}

// CreateRequest carries the fields an admin sets for a new staff account.
type CreateRequest struct {
	Email       string
	Password    string
	DisplayName string
	Role        Role
}

// UpdateRequest lists the fields PATCH may change. Nil means untouched.
type UpdateRequest struct {
	DisplayName *string
	Role        *Role
	IsActive    *bool
	Password    *string
}

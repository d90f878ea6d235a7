package customer

import (
	"net/http"
	"time"

	"github.com/barbershop/appointments-backend/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.New(http.StatusNotFound, "customer not found")
	ErrPhoneTaken      = apperror.NewWithReason(http.StatusConflict, "phone_taken", "a customer with this phone number already exists")
	ErrInvalidLanguage = apperror.New(http.StatusBadRequest, "preferred_language must be en or es")
	ErrNameRequired    = apperror.New(http.StatusBadRequest, "name is required")
	ErrPhoneRequired   = apperror.New(http.StatusBadRequest, "phone is required")
)

// Language is the locale customer-facing messages are written in.
type Language string

const (
	LanguageEN Language = "en"
	LanguageES Language = "es"

	DefaultLanguage = LanguageES
)

func (l Language) Valid() bool {
	return l == LanguageEN || l == LanguageES
}

// Customer is a person who books appointments. Phone is unique across customers.
type Customer struct {
	ID                string
	Name              string
	Phone             string
	Email             *string
	PreferredLanguage Language
	Notes             *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type Filter struct {
	Search   string // matched against name and phone
	Page     int
	PageSize int
}

type CreateRequest struct {
	Name              string
	Phone             string
	Email             *string
	PreferredLanguage Language
	Notes             *string
}

type UpdateRequest struct {
	Name              *string
	Email             *string
	PreferredLanguage *Language
	Notes             *string
}

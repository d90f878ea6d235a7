package catalog

import (
	"net/http"
	"time"

	"github.com/barbershop/appointments-backend/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.NewWithReason(http.StatusNotFound, "service_not_found", "service not found")
	ErrInvalidDuration = apperror.New(http.StatusBadRequest, "duration_minutes must be positive")
	ErrInvalidPrice    = apperror.New(http.StatusBadRequest, "price must not be negative")
	ErrNameRequired    = apperror.New(http.StatusBadRequest, "name and name_es are required")
)

// Offering is a bookable service on the shop's menu.
type Offering struct {
	ID              string
	Name            string
	NameES          string
	Description     *string
	DurationMinutes int
	Price           float64
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (o *Offering) Duration() time.Duration {
	return time.Duration(o.DurationMinutes) * time.Minute
}

// LocalizedName returns the Spanish name for "es" and the English name otherwise.
func (o *Offering) LocalizedName(lang string) string {
	if lang == "es" && o.NameES != "" {
		return o.NameES
	}
	return o.Name
}

type CreateRequest struct {
	Name            string
	NameES          string
	Description     *string
	DurationMinutes int
	Price           float64
	Active          *bool
}

type UpdateRequest struct {
	Name            *string
	NameES          *string
	Description     *string
	DurationMinutes *int
	Price           *float64
	Active          *bool
}

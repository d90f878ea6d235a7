package settings

import (
	"net/http"
	"time"

	"github.com/barbershop/appointments-backend/internal/pkg/apperror"
	"github.com/barbershop/appointments-backend/internal/schedule"
)

var (
	ErrNotFound        = apperror.New(http.StatusServiceUnavailable, "business settings not configured")
	ErrInvalidTimezone = apperror.New(http.StatusBadRequest, "timezone must be a valid IANA zone name")
	ErrInvalidHours    = apperror.New(http.StatusBadRequest, "invalid business hours")
	ErrNegativeValue   = apperror.New(http.StatusBadRequest, "buffer_minutes and advance_booking_days must not be negative")
	ErrNameRequired    = apperror.New(http.StatusBadRequest, "business_name is required")
)

// BusinessSettings is the single configuration row for the shop.
//
// BufferMinutes and AdvanceBookingDays are stored and returned but the booking rules do not
// read them.
type BusinessSettings struct {
	BusinessName       string
	PhoneNumber        *string
	Timezone           string
	BusinessHours      schedule.WeeklyHours
	BufferMinutes      int
	AdvanceBookingDays int
	UpdatedAt          time.Time
}

// Calendar binds the weekly hours to the configured timezone.
func (s *BusinessSettings) Calendar() (*schedule.Calendar, error) {
	return schedule.NewCalendar(s.BusinessHours, s.Timezone)
}

// UpdateRequest lists the settings fields that may be changed. Nil means untouched.
type UpdateRequest struct {
	BusinessName       *string
	PhoneNumber        *string
	Timezone           *string
	BusinessHours      *schedule.WeeklyHours
	BufferMinutes      *int
	AdvanceBookingDays *int
}

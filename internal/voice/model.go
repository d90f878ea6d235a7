package voice

import (
	"net/http"
	"strings"

	"github.com/barbershop/appointments-backend/internal/appointment"
	"github.com/barbershop/appointments-backend/internal/catalog"
	"github.com/barbershop/appointments-backend/internal/pkg/apperror"
	"github.com/barbershop/appointments-backend/internal/schedule"
	"github.com/barbershop/appointments-backend/internal/settings"
)

var ErrUnknownIntent = apperror.NewWithReason(http.StatusBadRequest, "unknown_intent", "intent must be book, cancel, reschedule or inquiry")

// Intent is the action the voice assistant extracted from the call.
type Intent string

const (
	IntentBook       Intent = "book"
	IntentCancel     Intent = "cancel"
	IntentReschedule Intent = "reschedule"
	IntentInquiry    Intent = "inquiry"
)

// Request holds the structured fields the assistant sends. Which fields are needed depends on
// the intent.
type Request struct {
	Intent        Intent
	CustomerName  string
	CustomerPhone string
	ServiceType   string
	PreferredDate string // YYYY-MM-DD in the business timezone
	PreferredTime string // HH:MM in the business timezone
	AppointmentID string
	Language      string
}

// Lang returns "en" for English callers and "es" for everyone else.
func (r Request) Lang() string {
	if strings.EqualFold(strings.TrimSpace(r.Language), "en") {
		return "en"
	}
	return "es"
}

// Reply is what the assistant reads back to the caller, plus the records it refers to.
type Reply struct {
	Success     bool
	Message     string
	Reason      schedule.Kind // set when a booking or reschedule was rejected
	Appointment *appointment.Appointment
	Services    []*catalog.Offering
	Settings    *settings.BusinessSettings
}

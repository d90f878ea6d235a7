package schedule

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/barbershop/appointments-backend/internal/pkg/apperror"
)

// Kind names why a booking request was rejected. The empty Kind means accepted.
type Kind string

const (
	KindNone                 Kind = ""
	KindPastTime             Kind = "past_time"
	KindInvalidOrdering      Kind = "invalid_ordering"
	KindConfigMissing        Kind = "config_missing"
	KindOutsideBusinessHours Kind = "outside_business_hours"
	KindAppointmentConflict  Kind = "appointment_conflict"
	KindTimeBlocked          Kind = "time_blocked"
	KindServiceNotFound      Kind = "service_not_found"
	KindServiceInactive      Kind = "service_inactive"
	KindInvalidCustomerName  Kind = "invalid_customer_name"
	KindInvalidPhone         Kind = "invalid_phone"
)

var rejections = map[Kind]*apperror.AppError{
	KindPastTime:             apperror.NewWithReason(http.StatusBadRequest, string(KindPastTime), "cannot book appointments in the past"),
	KindInvalidOrdering:      apperror.NewWithReason(http.StatusBadRequest, string(KindInvalidOrdering), "end time must be after start time"),
	KindConfigMissing:        apperror.NewWithReason(http.StatusServiceUnavailable, string(KindConfigMissing), "business settings not found"),
	KindOutsideBusinessHours: apperror.NewWithReason(http.StatusUnprocessableEntity, string(KindOutsideBusinessHours), "requested time is outside business hours"),
	KindAppointmentConflict:  apperror.NewWithReason(http.StatusConflict, string(KindAppointmentConflict), "this time slot conflicts with existing appointments"),
	KindTimeBlocked:          apperror.NewWithReason(http.StatusConflict, string(KindTimeBlocked), "this time is blocked"),
	KindServiceNotFound:      apperror.NewWithReason(http.StatusNotFound, string(KindServiceNotFound), "service not found"),
	KindServiceInactive:      apperror.NewWithReason(http.StatusUnprocessableEntity, string(KindServiceInactive), "service is not active"),
	KindInvalidCustomerName:  apperror.NewWithReason(http.StatusBadRequest, string(KindInvalidCustomerName), "customer name must be at least 2 characters"),
	KindInvalidPhone:         apperror.NewWithReason(http.StatusBadRequest, string(KindInvalidPhone), "invalid phone number"),
}

// Err returns the transport error for k, or nil for KindNone.
func (k Kind) Err() error {
	if k == KindNone {
		return nil
	}
	if e, ok := rejections[k]; ok {
		return e
	}
	return apperror.NewWithReason(http.StatusBadRequest, string(k), string(k))
}

// KindOf extracts the rejection kind from an error produced by Kind.Err or Decision.Err.
func KindOf(err error) Kind {
	for k, e := range rejections {
		if errors.Is(err, e) {
			return k
		}
	}
	return KindNone
}

// Keyed is a busy record with a stable identifier, used to skip the record being rescheduled.
type Keyed interface {
	Busy
	Key() string
}

// BookingRequest is the interval a caller wants to occupy.
type BookingRequest struct {
	Start time.Time
	End   time.Time
	// ExcludeID skips the appointment with this key, so an appointment being moved does not
	// conflict with itself.
	ExcludeID string
}

// Decision is the outcome of ValidateBooking. Rejections are ordinary values, not errors.
type Decision[A Keyed, B Busy] struct {
	Kind         Kind
	Appointments []A // set when Kind is KindAppointmentConflict
	Blocked      []B // set when Kind is KindTimeBlocked
}

func (d Decision[A, B]) Valid() bool {
	return d.Kind == KindNone
}

// Err converts a rejection into an *apperror.AppError carrying the conflicting records.
func (d Decision[A, B]) Err() error {
	if d.Valid() {
		return nil
	}
	base, ok := rejections[d.Kind]
	if !ok {
		return d.Kind.Err()
	}
	switch d.Kind {
	case KindAppointmentConflict:
		return base.WithDetails(d.Appointments)
	case KindTimeBlocked:
		return base.WithDetails(d.Blocked)
	}
	return base
}

// ValidateBooking runs the pre-commit checks for a requested interval and stops at the first
// failure: past start, inverted range, missing configuration, business hours, overlapping
// appointments, blocked times.
//
// appointments and blocked should cover at least the calendar day of req.Start. A nil cal means
// the business settings are missing.
func ValidateBooking[A Keyed, B Busy](now time.Time, cal *Calendar, req BookingRequest, appointments []A, blocked []B) Decision[A, B] {
	if req.Start.Before(now) {
		return Decision[A, B]{Kind: KindPastTime}
	}
	if !req.End.After(req.Start) {
		return Decision[A, B]{Kind: KindInvalidOrdering}
	}
	if cal == nil {
		return Decision[A, B]{Kind: KindConfigMissing}
	}

	window, open := cal.Window(req.Start)
	if !open {
		return Decision[A, B]{Kind: KindOutsideBusinessHours}
	}
	candidate := Interval{Start: req.Start, End: req.End}
	if !window.Covers(candidate) {
		return Decision[A, B]{Kind: KindOutsideBusinessHours}
	}

	others := appointments
	if req.ExcludeID != "" {
		others = make([]A, 0, len(appointments))
		for _, a := range appointments {
			if a.Key() != req.ExcludeID {
				others = append(others, a)
			}
		}
	}
	if hits := Overlapping(candidate, others); len(hits) > 0 {
		return Decision[A, B]{Kind: KindAppointmentConflict, Appointments: hits}
	}
	if hits := Overlapping(candidate, blocked); len(hits) > 0 {
		return Decision[A, B]{Kind: KindTimeBlocked, Blocked: hits}
	}
	return Decision[A, B]{}
}

const (
	minNameLength  = 2
	minPhoneLength = 10
)

// ValidateCustomerInfo checks the name and phone a booking arrives with. It is purely syntactic.
func ValidateCustomerInfo(name, phone string) Kind {
	if len([]rune(strings.TrimSpace(name))) < minNameLength {
		return KindInvalidCustomerName
	}
	if len([]rune(strings.TrimSpace(phone))) < minPhoneLength {
		return KindInvalidPhone
	}
	return KindNone
}

// CheckService rejects unknown or inactive services.
func CheckService(found, active bool) Kind {
	if !found {
		return KindServiceNotFound
	}
	if !active {
		return KindServiceInactive
	}
	return KindNone
}

package appointment

import (
	"net/http"
	"time"

	"github.com/barbershop/appointments-backend/internal/pkg/apperror"
	"github.com/barbershop/appointments-backend/internal/schedule"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "appointment not found")
	ErrInvalidStatus      = apperror.New(http.StatusBadRequest, "invalid appointment status")
	ErrInvalidSource      = apperror.New(http.StatusBadRequest, "created_by must be voice_ai, manual or customer")
	ErrInvalidRange       = apperror.NewWithReason(http.StatusBadRequest, "invalid_ordering", "end of range must be after its start")
	ErrInvalidDate        = apperror.New(http.StatusBadRequest, "dates must use the YYYY-MM-DD format")
	ErrNoUpcoming         = apperror.NewWithReason(http.StatusNotFound, "no_upcoming_appointment", "no upcoming appointment for this customer")
	ErrStorageUnavailable = apperror.NewWithReason(http.StatusServiceUnavailable, "storage_unavailable", "booking data is temporarily unavailable")
	// ErrTimeConflict is returned when the database overlap constraint rejects a write that
	// passed validation against a stale snapshot.
	ErrTimeConflict = apperror.NewWithReason(http.StatusConflict, string(schedule.KindAppointmentConflict), "this time slot conflicts with existing appointments")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// Source records which channel created an appointment.
type Source string

const (
	SourceVoiceAI  Source = "voice_ai"
	SourceManual   Source = "manual"
	SourceCustomer Source = "customer"
)

func (s Source) Valid() bool {
	return s == SourceVoiceAI || s == SourceManual || s == SourceCustomer
}

// Appointment is a booked interval for one customer and one service.
type Appointment struct {
	ID           string
	CustomerID   string
	ServiceID    string
	StartTime    time.Time
	EndTime      time.Time
	Status       Status
	Price        float64 // service price when booked
	Notes        *string
	CreatedBy    Source
	ReminderSent bool
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Read-only, joined from customers and services.
	CustomerName     string
	CustomerPhone    string
	CustomerLanguage string
	ServiceName      string
	ServiceNameES    string
}

func (a *Appointment) Span() schedule.Interval {
	return schedule.Interval{Start: a.StartTime, End: a.EndTime}
}

func (a *Appointment) Key() string {
	return a.ID
}

func (a *Appointment) Released() bool {
	return a.Status == StatusCancelled
}

// Filter selects appointments intersecting [From, To).
type Filter struct {
	From             time.Time
	To               time.Time
	Status           Status
	CustomerID       string
	IncludeCancelled bool
	ReminderSent     *bool
	// StartsFrom, when set, keeps only appointments starting at or after it. From/To still
	// select by overlap, so without it an appointment already in progress matches.
	StartsFrom time.Time
	Limit      int
}

// ListQuery selects business days in the shop's timezone. Date wins over StartDate/EndDate;
// with neither, today is listed. EndDate is inclusive.
type ListQuery struct {
	Date      string
	StartDate string
	EndDate   string
	Status    Status
}

type CreateRequest struct {
	CustomerName     string
	CustomerPhone    string
	CustomerLanguage string
	ServiceID        string
	StartTime        time.Time
	Notes            *string
	CreatedBy        Source
}

// UpdateRequest lists the fields a reschedule or status change may touch. Nil means untouched.
type UpdateRequest struct {
	StartTime *time.Time
	ServiceID *string
	Status    *Status
	Notes     *string
}

// Availability is the set of open slots for one service on one business day.
type Availability struct {
	Date        time.Time
	ServiceID   string
	ServiceName string
	Slots       []schedule.Interval
}

// Conflict is the caller-facing view of a record that blocked a booking.
type Conflict struct {
	ID        string    `json:"id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Reason    *string   `json:"reason,omitempty"`
}

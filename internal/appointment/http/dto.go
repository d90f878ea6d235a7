package http

import (
	"time"

	"github.com/barbershop/appointments-backend/internal/appointment"
	"github.com/barbershop/appointments-backend/internal/pkg/request"
)

type ListAppointmentsRequest struct {
	Date      string `form:"date"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Status    string `form:"status" binding:"omitempty,oneof=pending confirmed completed cancelled no_show"`
}

type AppointmentResponse struct {
	ID            string    `json:"id"`
	CustomerID    string    `json:"customer_id"`
	CustomerName  string    `json:"customer_name"`
	CustomerPhone string    `json:"customer_phone"`
	ServiceID     string    `json:"service_id"`
	ServiceName   string    `json:"service_name"`
	ServiceNameES string    `json:"service_name_es"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	Status        string    `json:"status"`
	Price         float64   `json:"price"`
	Notes         *string   `json:"notes"`
	CreatedBy     string    `json:"created_by"`
	ReminderSent  bool      `json:"reminder_sent"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func NewAppointmentResponse(a *appointment.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:            a.ID,
		CustomerID:    a.CustomerID,
		CustomerName:  a.CustomerName,
		CustomerPhone: a.CustomerPhone,
		ServiceID:     a.ServiceID,
		ServiceName:   a.ServiceName,
		ServiceNameES: a.ServiceNameES,
		StartTime:     a.StartTime,
		EndTime:       a.EndTime,
		Status:        string(a.Status),
		Price:         a.Price,
		Notes:         a.Notes,
		CreatedBy:     string(a.CreatedBy),
		ReminderSent:  a.ReminderSent,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

type CreateAppointmentRequest struct {
	CustomerName     string    `json:"customer_name" binding:"required"`
	CustomerPhone    string    `json:"customer_phone" binding:"required"`
	CustomerLanguage string    `json:"customer_language" binding:"omitempty,oneof=en es"`
	ServiceID        string    `json:"service_id" binding:"required,uuid"`
	StartTime        time.Time `json:"start_time" binding:"required"`
	Notes            *string   `json:"notes"`
	CreatedBy        string    `json:"created_by" binding:"omitempty,oneof=voice_ai manual customer"`
}

type UpdateAppointmentRequest struct {
	StartTime *time.Time `json:"start_time"`
	ServiceID *string    `json:"service_id" binding:"omitempty,uuid"`
	Status    *string    `json:"status" binding:"omitempty,oneof=pending confirmed completed cancelled no_show"`
	Notes     *string    `json:"notes"`
}

type AvailabilityRequest struct {
	Date      string `form:"date" json:"date" binding:"required"`
	ServiceID string `form:"service_id" json:"service_id" binding:"required,uuid"`
}

type SlotResponse struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type AvailabilityResponse struct {
	Available      bool           `json:"available"`
	AvailableSlots []SlotResponse `json:"available_slots"`
	Date           string         `json:"date"`
	ServiceID      string         `json:"service_id"`
	ServiceName    string         `json:"service_name"`
}

func NewAvailabilityResponse(av *appointment.Availability) AvailabilityResponse {
	slots := make([]SlotResponse, len(av.Slots))
	for i, s := range av.Slots {
		slots[i] = SlotResponse{Start: s.Start.UTC(), End: s.End.UTC()}
	}
	return AvailabilityResponse{
		Available:      len(slots) > 0,
		AvailableSlots: slots,
		Date:           av.Date.Format(request.DateLayout),
		ServiceID:      av.ServiceID,
		ServiceName:    av.ServiceName,
	}
}

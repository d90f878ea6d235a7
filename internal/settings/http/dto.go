package http

import (
	"time"

	"github.com/barbershop/appointments-backend/internal/schedule"
	"github.com/barbershop/appointments-backend/internal/settings"
)

type SettingsResponse struct {
	BusinessName       string               `json:"business_name"`
	PhoneNumber        *string              `json:"phone_number"`
	Timezone           string               `json:"timezone"`
	BusinessHours      schedule.WeeklyHours `json:"business_hours"`
	BufferMinutes      int                  `json:"buffer_minutes"`
	AdvanceBookingDays int                  `json:"advance_booking_days"`
	UpdatedAt          time.Time            `json:"updated_at"`
}

func NewSettingsResponse(s *settings.BusinessSettings) SettingsResponse {
	return SettingsResponse{
		BusinessName:       s.BusinessName,
		PhoneNumber:        s.PhoneNumber,
		Timezone:           s.Timezone,
		BusinessHours:      s.BusinessHours,
		BufferMinutes:      s.BufferMinutes,
		AdvanceBookingDays: s.AdvanceBookingDays,
		UpdatedAt:          s.UpdatedAt,
	}
}

// UpdateSettingsRequest is the body of PUT/PATCH /v1/settings. Omitted fields are left as they are.
type UpdateSettingsRequest struct {
	BusinessName       *string               `json:"business_name"`
	PhoneNumber        *string               `json:"phone_number"`
	Timezone           *string               `json:"timezone"`
	BusinessHours      *schedule.WeeklyHours `json:"business_hours"`
	BufferMinutes      *int                  `json:"buffer_minutes" binding:"omitempty,min=0"`
	AdvanceBookingDays *int                  `json:"advance_booking_days" binding:"omitempty,min=0"`
}

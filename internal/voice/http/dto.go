package http

import (
	apphttp "github.com/barbershop/appointments-backend/internal/appointment/http"
	cataloghttp "github.com/barbershop/appointments-backend/internal/catalog/http"
	settingshttp "github.com/barbershop/appointments-backend/internal/settings/http"
	"github.com/barbershop/appointments-backend/internal/voice"
)

type WebhookRequest struct {
	Intent        string `json:"intent" binding:"required"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	ServiceType   string `json:"service_type"`
	PreferredDate string `json:"preferred_date"`
	PreferredTime string `json:"preferred_time"`
	AppointmentID string `json:"appointment_id"`
	Language      string `json:"language"`
}

func (r WebhookRequest) toDomain() voice.Request {
	return voice.Request{
		Intent:        voice.Intent(r.Intent),
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		ServiceType:   r.ServiceType,
		PreferredDate: r.PreferredDate,
		PreferredTime: r.PreferredTime,
		AppointmentID: r.AppointmentID,
		Language:      r.Language,
	}
}

type ReplyData struct {
	Appointment *apphttp.AppointmentResponse   `json:"appointment,omitempty"`
	Services    []cataloghttp.ServiceResponse  `json:"services,omitempty"`
	Settings    *settingshttp.SettingsResponse `json:"settings,omitempty"`
	Reason      string                         `json:"reason,omitempty"`
}

type WebhookResponse struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	Data    *ReplyData `json:"data,omitempty"`
}

func NewWebhookResponse(r *voice.Reply) WebhookResponse {
	out := WebhookResponse{Success: r.Success, Message: r.Message}

	var data ReplyData
	empty := true
	if r.Appointment != nil {
		a := apphttp.NewAppointmentResponse(r.Appointment)
		data.Appointment = &a
		empty = false
	}
	if len(r.Services) > 0 {
		data.Services = make([]cataloghttp.ServiceResponse, len(r.Services))
		for i, o := range r.Services {
			data.Services[i] = cataloghttp.NewServiceResponse(o)
		}
		empty = false
	}
	if r.Settings != nil {
		s := settingshttp.NewSettingsResponse(r.Settings)
		data.Settings = &s
		empty = false
	}
	if r.Reason != "" {
		data.Reason = string(r.Reason)
		empty = false
	}
	if !empty {
		out.Data = &data
	}
	return out
}

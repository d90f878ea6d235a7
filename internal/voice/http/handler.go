package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/barbershop/appointments-backend/internal/appointment"
	apphttp "github.com/barbershop/appointments-backend/internal/appointment/http"
	"github.com/barbershop/appointments-backend/internal/pkg/apperror"
	"github.com/barbershop/appointments-backend/internal/pkg/response"
	"github.com/barbershop/appointments-backend/internal/voice"
)

type Handler struct {
	service      voice.Service
	appointments appointment.Service
}

func NewHandler(service voice.Service, appointments appointment.Service) *Handler {
	return &Handler{service: service, appointments: appointments}
}

// Webhook answers one voice assistant turn. Replies are always {success, message, data?} so the
// assistant can read the message out loud, including on failure.
func (h *Handler) Webhook(c *gin.Context) {
	var body WebhookRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, WebhookResponse{Message: voice.NotUnderstood(body.Language)})
		return
	}

	req := body.toDomain()
	reply, err := h.service.Handle(c.Request.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		msg := voice.Apology(req.Language)
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			status = appErr.Code
		}
		if errors.Is(err, voice.ErrUnknownIntent) {
			msg = voice.NotUnderstood(req.Language)
		} else {
			_ = c.Error(err)
		}
		c.JSON(status, WebhookResponse{Message: msg})
		return
	}
	c.JSON(http.StatusOK, NewWebhookResponse(reply))
}

// Availability is the POST flavour of the public availability query used by the assistant.
func (h *Handler) Availability(c *gin.Context) {
	var req apphttp.AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "date and service_id are required", err)
		return
	}

	av, err := h.appointments.Availability(c.Request.Context(), req.Date, req.ServiceID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, apphttp.NewAvailabilityResponse(av))
}

package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/barbershop/appointments-backend/internal/appointment"
	"github.com/barbershop/appointments-backend/internal/pkg/request"
	"github.com/barbershop/appointments-backend/internal/pkg/response"
)

type Handler struct {
	service appointment.Service
}

func NewHandler(service appointment.Service) *Handler {
	return &Handler{service: service}
}

// List returns non-cancelled appointments for a day (?date=), an inclusive day range
// (?start_date=&end_date=), or today. Days are in the business timezone.
func (h *Handler) List(c *gin.Context) {
	var req ListAppointmentsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}

	items, err := h.service.List(c.Request.Context(), appointment.ListQuery{
		Date:      req.Date,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Status:    appointment.Status(req.Status),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]AppointmentResponse, len(items))
	for i, a := range items {
		out[i] = NewAppointmentResponse(a)
	}
	c.JSON(http.StatusOK, gin.H{"appointments": out})
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid UUID", err)
		return
	}

	a, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointment": NewAppointmentResponse(a)})
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateAppointmentRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	a, err := h.service.Create(c.Request.Context(), appointment.CreateRequest{
		CustomerName:     body.CustomerName,
		CustomerPhone:    body.CustomerPhone,
		CustomerLanguage: body.CustomerLanguage,
		ServiceID:        body.ServiceID,
		StartTime:        body.StartTime,
		Notes:            body.Notes,
		CreatedBy:        appointment.Source(body.CreatedBy),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"appointment": NewAppointmentResponse(a)})
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid UUID", err)
		return
	}

	var body UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	req := appointment.UpdateRequest{
		StartTime: body.StartTime,
		ServiceID: body.ServiceID,
		Notes:     body.Notes,
	}
	if body.Status != nil {
		st := appointment.Status(*body.Status)
		req.Status = &st
	}

	a, err := h.service.Update(c.Request.Context(), uri.ID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointment": NewAppointmentResponse(a)})
}

// Cancel soft-cancels an appointment. The record is kept with status cancelled.
func (h *Handler) Cancel(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid UUID", err)
		return
	}

	a, err := h.service.Cancel(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":     "appointment cancelled",
		"appointment": NewAppointmentResponse(a),
	})
}

func (h *Handler) Availability(c *gin.Context) {
	var req AvailabilityRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "date and service_id are required", err)
		return
	}

	av, err := h.service.Availability(c.Request.Context(), req.Date, req.ServiceID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewAvailabilityResponse(av))
}

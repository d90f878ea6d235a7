package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/barbershop/appointments-backend/internal/pkg/response"
	"github.com/barbershop/appointments-backend/internal/settings"
)

type Handler struct {
	service settings.Service
}

func NewHandler(service settings.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Get(c *gin.Context) {
	s, err := h.service.Get(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewSettingsResponse(s))
}

func (h *Handler) Update(c *gin.Context) {
	var body UpdateSettingsRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	s, err := h.service.Update(c.Request.Context(), settings.UpdateRequest{
		BusinessName:       body.BusinessName,
		PhoneNumber:        body.PhoneNumber,
		Timezone:           body.Timezone,
		BusinessHours:      body.BusinessHours,
		BufferMinutes:      body.BufferMinutes,
		AdvanceBookingDays: body.AdvanceBookingDays,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewSettingsResponse(s))
}

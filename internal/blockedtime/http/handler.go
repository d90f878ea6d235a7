package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/barbershop/appointments-backend/internal/blockedtime"
	"github.com/barbershop/appointments-backend/internal/pkg/request"
	"github.com/barbershop/appointments-backend/internal/pkg/response"
)

// defaultListWindow is how far ahead List looks when no end bound is given.
const defaultListWindow = 30 * 24 * time.Hour

type Handler struct {
	service blockedtime.Service
	now     func() time.Time
}

func NewHandler(service blockedtime.Service) *Handler {
	return &Handler{service: service, now: time.Now}
}

// List returns blocks intersecting [from, to). from defaults to now and to to thirty days later.
func (h *Handler) List(c *gin.Context) {
	var req ListBlockedTimesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}

	from := h.now()
	if req.From != nil {
		from = *req.From
	}
	to := from.Add(defaultListWindow)
	if req.To != nil {
		to = *req.To
	}

	items, err := h.service.ListRange(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]BlockedTimeResponse, len(items))
	for i, b := range items {
		out[i] = NewBlockedTimeResponse(b)
	}
	c.JSON(http.StatusOK, gin.H{"items": out})
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBlockedTimeRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	b, err := h.service.Create(c.Request.Context(), blockedtime.CreateRequest{
		StartTime: body.StartTime,
		EndTime:   body.EndTime,
		Reason:    body.Reason,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewBlockedTimeResponse(b))
}

func (h *Handler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid UUID", err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), uri.ID); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

package http

import (
	"time"

	"github.com/barbershop/appointments-backend/internal/blockedtime"
)

// ListBlockedTimesRequest takes an RFC 3339 range. Both bounds are optional; see Handler.List.
type ListBlockedTimesRequest struct {
	From *time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To   *time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
}

type BlockedTimeResponse struct {
	ID        string    `json:"id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Reason    *string   `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

func NewBlockedTimeResponse(b *blockedtime.BlockedTime) BlockedTimeResponse {
	return BlockedTimeResponse{
		ID:        b.ID,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		Reason:    b.Reason,
		CreatedAt: b.CreatedAt,
	}
}

type CreateBlockedTimeRequest struct {
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
	Reason    *string   `json:"reason"`
}

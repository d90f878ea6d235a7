package blockedtime

import (
	"net/http"
	"time"

	"github.com/barbershop/appointments-backend/internal/pkg/apperror"
	"github.com/barbershop/appointments-backend/internal/schedule"
)

var (
	ErrNotFound     = apperror.New(http.StatusNotFound, "blocked time not found")
	ErrInvalidRange = apperror.NewWithReason(http.StatusBadRequest, "invalid_ordering", "end_time must be after start_time")
)

// BlockedTime is a manually declared interval in which nothing can be booked.
type BlockedTime struct {
	ID        string
	StartTime time.Time
	EndTime   time.Time
	Reason    *string
	CreatedAt time.Time
}

func (b *BlockedTime) Span() schedule.Interval {
	return schedule.Interval{Start: b.StartTime, End: b.EndTime}
}

type CreateRequest struct {
	StartTime time.Time
	EndTime   time.Time
	Reason    *string
}

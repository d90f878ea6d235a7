package blockedtime

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
)

type Service interface {
	ListRange(ctx context.Context, from, to time.Time) ([]*BlockedTime, error)
	Create(ctx context.Context, req CreateRequest) (*BlockedTime, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
	log  *zap.Logger
}

func NewService(repo Repository, log *zap.Logger) Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &service{repo: repo, log: log}
}

func (s *service) ListRange(ctx context.Context, from, to time.Time) ([]*BlockedTime, error) {
	if !to.After(from) {
		return nil, ErrInvalidRange
	}
	return s.repo.ListRange(ctx, from, to)
}

// Create stores a block. Existing appointments inside it are left alone; the block only
// prevents new bookings.
func (s *service) Create(ctx context.Context, req CreateRequest) (*BlockedTime, error) {
	if !req.EndTime.After(req.StartTime) {
		return nil, ErrInvalidRange
	}

	b := &BlockedTime{StartTime: req.StartTime, EndTime: req.EndTime}
	if req.Reason != nil {
		if reason := strings.TrimSpace(*req.Reason); reason != "" {
			b.Reason = &reason
		}
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	s.log.Info("time blocked",
		zap.String("blocked_time_id", b.ID),
		zap.Time("start", b.StartTime),
		zap.Time("end", b.EndTime),
	)
	return b, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("blocked time removed", zap.String("blocked_time_id", id))
	return nil
}

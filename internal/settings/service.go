package settings

import (
	"context"
	"strings"
	"time"

	"github.com/barbershop/appointments-backend/internal/schedule"
)

type Service interface {
	Get(ctx context.Context) (*BusinessSettings, error)
	Update(ctx context.Context, req UpdateRequest) (*BusinessSettings, error)
	// Calendar returns the business calendar, or ErrNotFound when the shop is not configured.
	Calendar(ctx context.Context) (*schedule.Calendar, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Get(ctx context.Context) (*BusinessSettings, error) {
	return s.repo.Get(ctx)
}

func (s *service) Calendar(ctx context.Context) (*schedule.Calendar, error) {
	bs, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	return bs.Calendar()
}

func (s *service) Update(ctx context.Context, req UpdateRequest) (*BusinessSettings, error) {
	bs, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}

	if req.BusinessName != nil {
		name := strings.TrimSpace(*req.BusinessName)
		if name == "" {
			return nil, ErrNameRequired
		}
		bs.BusinessName = name
	}
	if req.PhoneNumber != nil {
		phone := strings.TrimSpace(*req.PhoneNumber)
		bs.PhoneNumber = &phone
	}
	if req.Timezone != nil {
		if _, err := time.LoadLocation(*req.Timezone); err != nil || *req.Timezone == "" {
			return nil, ErrInvalidTimezone
		}
		bs.Timezone = *req.Timezone
	}
	if req.BusinessHours != nil {
		if err := req.BusinessHours.Validate(); err != nil {
			return nil, ErrInvalidHours.WithDetails(err.Error())
		}
		bs.BusinessHours = *req.BusinessHours
	}
	if req.BufferMinutes != nil {
		if *req.BufferMinutes < 0 {
			return nil, ErrNegativeValue
		}
		bs.BufferMinutes = *req.BufferMinutes
	}
	if req.AdvanceBookingDays != nil {
		if *req.AdvanceBookingDays < 0 {
			return nil, ErrNegativeValue
		}
		bs.AdvanceBookingDays = *req.AdvanceBookingDays
	}

	if err := s.repo.Save(ctx, bs); err != nil {
		return nil, err
	}
	return bs, nil
}

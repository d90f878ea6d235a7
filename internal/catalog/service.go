package catalog

import (
	"context"
	"strings"
)

type Service interface {
	List(ctx context.Context, includeInactive bool) ([]*Offering, error)
	GetByID(ctx context.Context, id string) (*Offering, error)
	FindByName(ctx context.Context, name string) (*Offering, error)
	Create(ctx context.Context, req CreateRequest) (*Offering, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Offering, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, includeInactive bool) ([]*Offering, error) {
	return s.repo.List(ctx, includeInactive)
}

func (s *service) GetByID(ctx context.Context, id string) (*Offering, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) FindByName(ctx context.Context, name string) (*Offering, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNotFound
	}
	return s.repo.FindByName(ctx, name)
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Offering, error) {
	o := &Offering{
		Name:            strings.TrimSpace(req.Name),
		NameES:          strings.TrimSpace(req.NameES),
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		Active:          true,
	}
	if req.Active != nil {
		o.Active = *req.Active
	}
	if err := validate(o); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Offering, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		o.Name = strings.TrimSpace(*req.Name)
	}
	if req.NameES != nil {
		o.NameES = strings.TrimSpace(*req.NameES)
	}
	if req.Description != nil {
		o.Description = req.Description
	}
	if req.DurationMinutes != nil {
		o.DurationMinutes = *req.DurationMinutes
	}
	if req.Price != nil {
		o.Price = *req.Price
	}
	if req.Active != nil {
		o.Active = *req.Active
	}
	if err := validate(o); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func validate(o *Offering) error {
	if o.Name == "" || o.NameES == "" {
		return ErrNameRequired
	}
	if o.DurationMinutes <= 0 {
		return ErrInvalidDuration
	}
	if o.Price < 0 {
		return ErrInvalidPrice
	}
	return nil
}

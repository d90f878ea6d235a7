package customer

import (
	"context"
	"errors"
	"strings"
)

type Service interface {
	List(ctx context.Context, filter Filter) ([]*Customer, int, error)
	GetByID(ctx context.Context, id string) (*Customer, error)
	GetByPhone(ctx context.Context, phone string) (*Customer, error)
	Create(ctx context.Context, req CreateRequest) (*Customer, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Customer, error)
	// FindOrCreate returns the customer owning phone, creating one from req when none exists.
	// An existing customer is returned as stored; req does not overwrite it.
	FindOrCreate(ctx context.Context, req CreateRequest) (*Customer, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Customer, int, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	return s.repo.List(ctx, filter)
}

func (s *service) GetByID(ctx context.Context, id string) (*Customer, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByPhone(ctx context.Context, phone string) (*Customer, error) {
	return s.repo.GetByPhone(ctx, strings.TrimSpace(phone))
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Customer, error) {
	c, err := newCustomer(req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) FindOrCreate(ctx context.Context, req CreateRequest) (*Customer, error) {
	phone := strings.TrimSpace(req.Phone)
	existing, err := s.repo.GetByPhone(ctx, phone)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	c, err := s.Create(ctx, req)
	if errors.Is(err, ErrPhoneTaken) {
		// Another request created the same phone between our read and insert.
		return s.repo.GetByPhone(ctx, phone)
	}
	return c, err
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Customer, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		c.Name = name
	}
	if req.Email != nil {
		c.Email = trimmedOrNil(*req.Email)
	}
	if req.PreferredLanguage != nil {
		if !req.PreferredLanguage.Valid() {
			return nil, ErrInvalidLanguage
		}
		c.PreferredLanguage = *req.PreferredLanguage
	}
	if req.Notes != nil {
		c.Notes = trimmedOrNil(*req.Notes)
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func newCustomer(req CreateRequest) (*Customer, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	phone := strings.TrimSpace(req.Phone)
	if phone == "" {
		return nil, ErrPhoneRequired
	}

	lang := req.PreferredLanguage
	if lang == "" {
		lang = DefaultLanguage
	}
	if !lang.Valid() {
		return nil, ErrInvalidLanguage
	}

	c := &Customer{
		Name:              name,
		Phone:             phone,
		PreferredLanguage: lang,
	}
	if req.Email != nil {
		c.Email = trimmedOrNil(*req.Email)
	}
	if req.Notes != nil {
		c.Notes = trimmedOrNil(*req.Notes)
	}
	return c, nil
}

func trimmedOrNil(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

package http

import (
	"time"

	"github.com/barbershop/appointments-backend/internal/catalog"
)

type ServiceResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	NameES          string    `json:"name_es"`
	Description     *string   `json:"description"`
	DurationMinutes int       `json:"duration_minutes"`
	Price           float64   `json:"price"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func NewServiceResponse(o *catalog.Offering) ServiceResponse {
	return ServiceResponse{
		ID:              o.ID,
		Name:            o.Name,
		NameES:          o.NameES,
		Description:     o.Description,
		DurationMinutes: o.DurationMinutes,
		Price:           o.Price,
		Active:          o.Active,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

type ListServicesRequest struct {
	IncludeInactive bool `form:"include_inactive"`
}

type CreateServiceRequest struct {
	Name            string  `json:"name" binding:"required"`
	NameES          string  `json:"name_es" binding:"required"`
	Description     *string `json:"description"`
	DurationMinutes int     `json:"duration_minutes" binding:"required,gt=0"`
	Price           float64 `json:"price" binding:"gte=0"`
	Active          *bool   `json:"active"`
}

type UpdateServiceRequest struct {
	Name            *string  `json:"name"`
	NameES          *string  `json:"name_es"`
	Description     *string  `json:"description"`
	DurationMinutes *int     `json:"duration_minutes" binding:"omitempty,gt=0"`
	Price           *float64 `json:"price" binding:"omitempty,gte=0"`
	Active          *bool    `json:"active"`
}

package http

import (
	"time"

	"github.com/barbershop/appointments-backend/internal/customer"
	"github.com/barbershop/appointments-backend/internal/pkg/request"
)

type ListCustomersRequest struct {
	request.ListParams
	Search string `form:"search"`
}

type CustomerResponse struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Phone             string    `json:"phone"`
	Email             *string   `json:"email"`
	PreferredLanguage string    `json:"preferred_language"`
	Notes             *string   `json:"notes"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func NewCustomerResponse(c *customer.Customer) CustomerResponse {
	return CustomerResponse{
		ID:                c.ID,
		Name:              c.Name,
		Phone:             c.Phone,
		Email:             c.Email,
		PreferredLanguage: string(c.PreferredLanguage),
		Notes:             c.Notes,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}

type CreateCustomerRequest struct {
	Name              string  `json:"name" binding:"required"`
	Phone             string  `json:"phone" binding:"required"`
	Email             *string `json:"email" binding:"omitempty,email"`
	PreferredLanguage string  `json:"preferred_language" binding:"omitempty,oneof=en es"`
	Notes             *string `json:"notes"`
}

// UpdateCustomerRequest omits phone: it is the dedup key and stays fixed once created.
type UpdateCustomerRequest struct {
	Name              *string `json:"name"`
	Email             *string `json:"email"`
	PreferredLanguage *string `json:"preferred_language" binding:"omitempty,oneof=en es"`
	Notes             *string `json:"notes"`
}

package handler

import (
	"time"

	"github.com/devmanager/dev-manager/internal/core/domain"
)

type createClientRequest struct {
	Name       string `json:"name"        validate:"required"`
	Email      string `json:"email"       validate:"required,email"`
	Phone      string `json:"phone"`
	Company    string `json:"company"`
	Website    string `json:"website"`
	Address    string `json:"address"`
	ClientType string `json:"client_type" validate:"omitempty,oneof=individual startup enterprise agency"`
}

type updateClientRequest struct {
	Name       *string `json:"name"`
	Email      *string `json:"email"       validate:"omitempty,email"`
	Phone      *string `json:"phone"`
	Company    *string `json:"company"`
	Website    *string `json:"website"`
	Address    *string `json:"address"`
	ClientType *string `json:"client_type" validate:"omitempty,oneof=individual startup enterprise agency"`
}

type clientResponse struct {
	ID         string    `json:"_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone,omitempty"`
	Company    string    `json:"company,omitempty"`
	Website    string    `json:"website,omitempty"`
	Address    string    `json:"address,omitempty"`
	ClientType string    `json:"client_type"`
	CreatedBy  string    `json:"created_by"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listClientsResponse struct {
	Data       []clientResponse   `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

func toClientResponse(c *domain.Client) clientResponse {
	return clientResponse{
		ID:         c.ID,
		Name:       c.Name,
		Email:      c.Email,
		Phone:      c.Phone,
		Company:    c.Company,
		Website:    c.Website,
		Address:    c.Address,
		ClientType: string(c.ClientType),
		CreatedBy:  c.CreatedBy,
		CreatedAt:  c.CreatedAt.UTC(),
		UpdatedAt:  c.UpdatedAt.UTC(),
	}
}

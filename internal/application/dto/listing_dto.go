package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateListingRequest entrada para crear un alojamiento (admin).
type CreateListingRequest struct {
	Title         string          `json:"title" validate:"required,max=200"`
	Description   string          `json:"description" validate:"required,max=5000"`
	PricePerNight decimal.Decimal `json:"pricePerNight"`
	Category      string          `json:"category" validate:"max=100"`
	Location      string          `json:"location" validate:"max=200"`
	ImageURL      string          `json:"imageUrl" validate:"omitempty,url"`
}

// UpdateListingRequest actualización parcial: solo se aplican los campos presentes.
type UpdateListingRequest struct {
	Title         *string          `json:"title" validate:"omitempty,min=1,max=200"`
	Description   *string          `json:"description" validate:"omitempty,min=1,max=5000"`
	PricePerNight *decimal.Decimal `json:"pricePerNight"`
	Category      *string          `json:"category" validate:"omitempty,max=100"`
	Location      *string          `json:"location" validate:"omitempty,max=200"`
	ImageURL      *string          `json:"imageUrl" validate:"omitempty,url"`
}

// ListingQuery filtros del catálogo público.
type ListingQuery struct {
	Category string `query:"category"`
	Location string `query:"location"`
}

// ListingResponse salida de un alojamiento.
type ListingResponse struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	PricePerNight decimal.Decimal `json:"pricePerNight"`
	Category      string          `json:"category"`
	Location      string          `json:"location"`
	ImageURL      string          `json:"imageUrl,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
	DeletedAt     *time.Time      `json:"deletedAt,omitempty"`
}

package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// CreateBookingRequest entrada para reservar. TotalPrice es informativo y se ignora:
// el precio siempre se recalcula en el servidor.
type CreateBookingRequest struct {
	ListingID    string          `json:"listingId" validate:"required"`
	CheckInDate  string          `json:"checkInDate" validate:"required,stay_date"`
	CheckOutDate string          `json:"checkOutDate" validate:"required,stay_date"`
	TotalPrice   json.RawMessage `json:"totalPrice,omitempty"`
}

// UpdateBookingStatusRequest entrada para cambiar el estado (admin).
type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,booking_status"`
}

// BookingQuery filtros del listado admin.
type BookingQuery struct {
	Status    string `query:"status" validate:"omitempty,booking_status"`
	ListingID string `query:"listing_id"`
	UserID    string `query:"user_id"`
}

// BookingResponse salida de una reserva. Fechas en formato AAAA-MM-DD.
type BookingResponse struct {
	ID         string           `json:"id"`
	UserID     string           `json:"userId"`
	ListingID  string           `json:"listingId"`
	CheckIn    string           `json:"checkIn"`
	CheckOut   string           `json:"checkOut"`
	Nights     int              `json:"nights"`
	TotalPrice decimal.Decimal  `json:"totalPrice"`
	Status     string           `json:"status"`
	CreatedAt  time.Time        `json:"createdAt"`
	UpdatedAt  time.Time        `json:"updatedAt"`
	Listing    *ListingResponse `json:"listing,omitempty"`
}

// CreateBookingResponse salida de POST /api/bookings.
type CreateBookingResponse struct {
	Message string          `json:"message"`
	Booking BookingResponse `json:"booking"`
}

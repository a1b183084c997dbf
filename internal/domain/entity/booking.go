package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/internal/domain"
)

// BookingStatus ciclo de vida de una reserva.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCanceled  BookingStatus = "canceled"
)

// ParseBookingStatus valida el estado recibido o leído de la base.
func ParseBookingStatus(s string) (BookingStatus, error) {
	switch st := BookingStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case BookingPending, BookingConfirmed, BookingCanceled:
		return st, nil
	}
	return "", fmt.Errorf("%w: %q", domain.ErrInvalidStatus, s)
}

// Booking vincula un usuario y un alojamiento en un rango de fechas.
// TotalPrice = Nights * PricePerNight del alojamiento al momento de reservar.
type Booking struct {
	ID         string
	UserID     string
	ListingID  string
	CheckIn    time.Time // fecha UTC a medianoche
	CheckOut   time.Time // estrictamente posterior a CheckIn
	Nights     int
	TotalPrice decimal.Decimal
	Status     BookingStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

package repository

import (
	"context"
	"time"

	"github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/internal/domain/entity"
)

// BookingFilter criterios opcionales para listar reservas.
type BookingFilter struct {
	UserID    string
	ListingID string
	Status    entity.BookingStatus
}

// BookingRepository es el libro de reservas. Nunca borra registros.
type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	GetByID(ctx context.Context, id string) (*entity.Booking, error)
	List(ctx context.Context, filter BookingFilter) ([]*entity.Booking, error)
	// UpdateStatus devuelve (nil, nil) si la reserva no existe.
	UpdateStatus(ctx context.Context, id string, status entity.BookingStatus, at time.Time) (*entity.Booking, error)
}

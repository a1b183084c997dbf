package memory

import (
	"context"
	"time"

	"github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/internal/domain"
	"github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/internal/domain/entity"
	"github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/internal/domain/repository"
)

var _ repository.BookingRepository = (*BookingRepo)(nil)

type bookingRecord struct {
	booking entity.Booking
	seq     int64
}

// BookingRepo implementación en memoria del libro de reservas.
type BookingRepo struct {
	s *Store
}

// NewBookingRepository construye el repositorio sobre el Store.
func NewBookingRepository(s *Store) *BookingRepo {
	return &BookingRepo{s: s}
}

// Create persiste una reserva. Usuario y alojamiento deben existir (clave foránea).
func (r *BookingRepo) Create(_ context.Context, b *entity.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[b.UserID]; !ok {
		return domain.ErrUserNotFound
	}
	if _, ok := r.s.listings[b.ListingID]; !ok {
		return domain.ErrListingNotFound
	}
	if _, ok := r.s.bookings[b.ID]; ok {
		return domain.ErrConflict
	}
	r.s.bookings[b.ID] = bookingRecord{booking: *b, seq: r.s.next()}
	return nil
}

// GetByID obtiene una reserva o nil.
func (r *BookingRepo) GetByID(_ context.Context, id string) (*entity.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rec, ok := r.s.bookings[id]
	if !ok {
		return nil, nil
	}
	b := rec.booking
	return &b, nil
}

// List devuelve las reservas que cumplen el filtro, más recientes primero.
func (r *BookingRepo) List(_ context.Context, filter repository.BookingFilter) ([]*entity.Booking, error) {
	r.s.mu.RLock()
	recs := make([]bookingRecord, 0, len(r.s.bookings))
	for _, rec := range r.s.bookings {
		b := rec.booking
		if filter.UserID != "" && b.UserID != filter.UserID {
			continue
		}
		if filter.ListingID != "" && b.ListingID != filter.ListingID {
			continue
		}
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		recs = append(recs, rec)
	}
	r.s.mu.RUnlock()

	sortNewestFirst(recs, func(rec bookingRecord) int64 { return rec.seq })
	out := make([]*entity.Booking, 0, len(recs))
	for _, rec := range recs {
		b := rec.booking
		out = append(out, &b)
	}
	return out, nil
}

// UpdateStatus cambia el estado; devuelve nil si la reserva no existe.
func (r *BookingRepo) UpdateStatus(_ context.Context, id string, status entity.BookingStatus, at time.Time) (*entity.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.bookings[id]
	if !ok {
		return nil, nil
	}
	rec.booking.Status = status
	rec.booking.UpdatedAt = at
	r.s.bookings[id] = rec
	b := rec.booking
	return &b, nil
}

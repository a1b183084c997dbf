package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/internal/domain"
	"github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/internal/domain/entity"
	"github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/internal/domain/repository"
)

var _ repository.BookingRepository = (*BookingRepo)(nil)

const bookingColumns = `id, user_id, listing_id, check_in, check_out, nights, total_price, status, created_at, updated_at`

// BookingRepo libro de reservas sobre PostgreSQL. Solo INSERT y UPDATE de estado.
type BookingRepo struct {
	q Querier
}

// NewBookingRepository construye el adaptador. Acepta pool o tx (Querier).
func NewBookingRepository(q Querier) *BookingRepo {
	return &BookingRepo{q: q}
}

// Create inserta la reserva en una única escritura.
func (r *BookingRepo) Create(ctx context.Context, b *entity.Booking) error {
	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		b.ID, b.UserID, b.ListingID, b.CheckIn, b.CheckOut, b.Nights, b.TotalPrice, string(b.Status),
		b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return bookingInsertError(err)
	}
	return nil
}

// bookingInsertError traduce los errores de constraint del INSERT a errores de dominio.
func bookingInsertError(err error) error {
	switch {
	case isForeignKeyViolation(err):
		if strings.Contains(constraintName(err), "user") {
			return domain.ErrUserNotFound
		}
		return domain.ErrListingNotFound
	case isUniqueViolation(err):
		return domain.ErrConflict
	case isOutOfDomain(err):
		return fmt.Errorf("%w: insert booking: %s", domain.ErrInvalidInput, constraintName(err))
	}
	return fmt.Errorf("insert booking: %w", err)
}

// GetByID obtiene una reserva; nil si no existe.
func (r *BookingRepo) GetByID(ctx context.Context, id string) (*entity.Booking, error) {
	b, err := scanBooking(r.q.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id))
	if err != nil {
		if isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return b, nil
}

// List devuelve las reservas que cumplen el filtro, más recientes primero.
func (r *BookingRepo) List(ctx context.Context, filter repository.BookingFilter) ([]*entity.Booking, error) {
	query, args := bookingListQuery(filter)
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()
	var list []*entity.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

func bookingListQuery(filter repository.BookingFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(col, val string) {
		if val == "" {
			return
		}
		args = append(args, val)
		conds = append(conds, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	add("user_id::text", filter.UserID)
	add("listing_id::text", filter.ListingID)
	add("status", string(filter.Status))

	query := `SELECT ` + bookingColumns + ` FROM bookings`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY created_at DESC`
	return query, args
}

// UpdateStatus cambia el estado y devuelve la fila actualizada; nil si no existe.
func (r *BookingRepo) UpdateStatus(ctx context.Context, id string, status entity.BookingStatus, at time.Time) (*entity.Booking, error) {
	row := r.q.QueryRow(ctx,
		`UPDATE bookings SET status = $2, updated_at = $3 WHERE id = $1 RETURNING `+bookingColumns,
		id, string(status), at,
	)
	b, err := scanBooking(row)
	if err != nil {
		if isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("update booking status: %w", err)
	}
	return b, nil
}

// scanBooking lee una fila validando el estado. (nil, nil) si no hay filas.
func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var (
		b      entity.Booking
		status string
	)
	err := row.Scan(&b.ID, &b.UserID, &b.ListingID, &b.CheckIn, &b.CheckOut, &b.Nights, &b.TotalPrice,
		&status, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if b.Status, err = entity.ParseBookingStatus(status); err != nil {
		return nil, fmt.Errorf("reserva %s: %w", b.ID, err)
	}
	return &b, nil
}

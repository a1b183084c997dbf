package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/internal/domain"
	"github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/internal/domain/entity"
	"github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/internal/domain/repository"
)

func pgErr(code, constraint string) error {
	return fmt.Errorf("exec: %w", &pgconn.PgError{Code: code, ConstraintName: constraint})
}

// ─── likePattern ─────────────────────────────────────────────────────

func TestLikePattern_EscapaComodines(t *testing.T) {
	cases := map[string]string{
		"Lahore":    `%Lahore%`,
		"50%":       `%50\%%`,
		"casa_azul": `%casa\_azul%`,
		`C:\temp`:   `%C:\\temp%`,
		"":          `%%`,
	}
	for in, want := range cases {
		assert.Equal(t, want, likePattern(in), "entrada %q", in)
	}
}

// ─── Consultas de listado ────────────────────────────────────────────

func TestListingListQuery_Filtros(t *testing.T) {
	query, args := listingListQuery(repository.ListingFilter{})
	assert.Equal(t, `SELECT `+listingColumns+` FROM listings WHERE deleted_at IS NULL ORDER BY created_at DESC`, query)
	assert.Empty(t, args)

	query, args = listingListQuery(repository.ListingFilter{IncludeDeleted: true})
	assert.Equal(t, `SELECT `+listingColumns+` FROM listings ORDER BY created_at DESC`, query)
	assert.Empty(t, args)

	query, args = listingListQuery(repository.ListingFilter{Category: " Villa ", Location: "la_hore"})
	assert.Equal(t, `SELECT `+listingColumns+` FROM listings WHERE deleted_at IS NULL AND lower(category) = lower($1) AND location ILIKE $2 ORDER BY created_at DESC`, query)
	assert.Equal(t, []any{"Villa", `%la\_hore%`}, args)

	query, args = listingListQuery(repository.ListingFilter{Location: "Lahore", IncludeDeleted: true})
	assert.Equal(t, `SELECT `+listingColumns+` FROM listings WHERE location ILIKE $1 ORDER BY created_at DESC`, query)
	assert.Equal(t, []any{"%Lahore%"}, args)
}

func TestBookingListQuery_Filtros(t *testing.T) {
	query, args := bookingListQuery(repository.BookingFilter{})
	assert.Equal(t, `SELECT `+bookingColumns+` FROM bookings ORDER BY created_at DESC`, query)
	assert.Empty(t, args)

	query, args = bookingListQuery(repository.BookingFilter{UserID: "u-1", Status: entity.BookingConfirmed})
	assert.Equal(t, `SELECT `+bookingColumns+` FROM bookings WHERE user_id::text = $1 AND status = $2 ORDER BY created_at DESC`, query)
	assert.Equal(t, []any{"u-1", "confirmed"}, args)

	query, args = bookingListQuery(repository.BookingFilter{UserID: "u-1", ListingID: "l-1", Status: entity.BookingPending})
	assert.Equal(t, `SELECT `+bookingColumns+` FROM bookings WHERE user_id::text = $1 AND listing_id::text = $2 AND status = $3 ORDER BY created_at DESC`, query)
	assert.Equal(t, []any{"u-1", "l-1", "pending"}, args)
}

// ─── Traducción de errores ───────────────────────────────────────────

func TestBookingInsertError_Constraints(t *testing.T) {
	assert.ErrorIs(t, bookingInsertError(pgErr(codeForeignKeyViolation, "bookings_user_id_fkey")), domain.ErrUserNotFound)
	assert.ErrorIs(t, bookingInsertError(pgErr(codeForeignKeyViolation, "bookings_listing_id_fkey")), domain.ErrListingNotFound)
	assert.ErrorIs(t, bookingInsertError(pgErr(codeUniqueViolation, "bookings_pkey")), domain.ErrConflict)
	assert.ErrorIs(t, bookingInsertError(pgErr(codeNumericOutOfRange, "")), domain.ErrInvalidInput)
	assert.ErrorIs(t, bookingInsertError(pgErr(codeCheckViolation, "bookings_range_check")), domain.ErrInvalidInput)

	other := errors.New("conexión perdida")
	err := bookingInsertError(other)
	assert.ErrorIs(t, err, other)
	assert.NotErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListingWriteError_Constraints(t *testing.T) {
	assert.ErrorIs(t, listingWriteError("insert listing", pgErr(codeUniqueViolation, "listings_pkey")), domain.ErrConflict)

	err := listingWriteError("insert listing", pgErr(codeCheckViolation, "listings_price_per_night_check"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "listings_price_per_night_check")

	assert.ErrorIs(t, listingWriteError("update listing", pgErr(codeNumericOutOfRange, "")), domain.ErrInvalidInput)
	assert.NotErrorIs(t, listingWriteError("update listing", errors.New("x")), domain.ErrInvalidInput)
}

func TestPgCode_AtraviesaWrapping(t *testing.T) {
	err := pgErr(codeInvalidText, "")
	assert.True(t, isInvalidText(err))
	assert.False(t, isUniqueViolation(err))
	assert.Equal(t, "", pgCode(errors.New("plain")))
	assert.Equal(t, "users_email_key", constraintName(pgErr(codeUniqueViolation, "users_email_key")))
}

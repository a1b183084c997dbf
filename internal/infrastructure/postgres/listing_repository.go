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

var _ repository.ListingRepository = (*ListingRepo)(nil)

const listingColumns = `id, title, description, price_per_night, category, location, image_url, created_at, updated_at, deleted_at`

// ListingRepo implementación del catálogo sobre PostgreSQL.
type ListingRepo struct {
	q Querier
}

// NewListingRepository construye el adaptador. Acepta pool o tx (Querier).
func NewListingRepository(q Querier) *ListingRepo {
	return &ListingRepo{q: q}
}

// Create persiste un nuevo alojamiento.
func (r *ListingRepo) Create(ctx context.Context, l *entity.Listing) error {
	query := `
		INSERT INTO listings (` + listingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		l.ID, l.Title, l.Description, l.PricePerNight, l.Category, l.Location, l.ImageURL,
		l.CreatedAt, l.UpdatedAt, l.DeletedAt,
	)
	if err != nil {
		return listingWriteError("insert listing", err)
	}
	return nil
}

func listingWriteError(op string, err error) error {
	switch {
	case isUniqueViolation(err):
		return domain.ErrConflict
	case isOutOfDomain(err):
		return fmt.Errorf("%w: %s: %s", domain.ErrInvalidInput, op, constraintName(err))
	}
	return fmt.Errorf("%s: %w", op, err)
}

// GetByID obtiene un alojamiento (aunque esté dado de baja); nil si no existe.
func (r *ListingRepo) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	var l entity.Listing
	err := r.q.QueryRow(ctx, `SELECT `+listingColumns+` FROM listings WHERE id = $1`, id).Scan(listingDest(&l)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get listing: %w", err)
	}
	return &l, nil
}

// List filtra por categoría (igualdad sin mayúsculas) y ubicación (ILIKE subcadena).
func (r *ListingRepo) List(ctx context.Context, filter repository.ListingFilter) ([]*entity.Listing, error) {
	query, args := listingListQuery(filter)
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}
	defer rows.Close()
	var list []*entity.Listing
	for rows.Next() {
		var l entity.Listing
		if err := rows.Scan(listingDest(&l)...); err != nil {
			return nil, fmt.Errorf("scan listing: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

func listingListQuery(filter repository.ListingFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if !filter.IncludeDeleted {
		conds = append(conds, "deleted_at IS NULL")
	}
	if c := strings.TrimSpace(filter.Category); c != "" {
		args = append(args, c)
		conds = append(conds, fmt.Sprintf("lower(category) = lower($%d)", len(args)))
	}
	if loc := strings.TrimSpace(filter.Location); loc != "" {
		args = append(args, likePattern(loc))
		conds = append(conds, fmt.Sprintf("location ILIKE $%d", len(args)))
	}
	query := `SELECT ` + listingColumns + ` FROM listings`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY created_at DESC`
	return query, args
}

// Update actualiza los campos editables. No toca deleted_at.
func (r *ListingRepo) Update(ctx context.Context, l *entity.Listing) error {
	query := `
		UPDATE listings SET title = $2, description = $3, price_per_night = $4, category = $5,
			location = $6, image_url = $7, updated_at = $8
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		l.ID, l.Title, l.Description, l.PricePerNight, l.Category, l.Location, l.ImageURL, l.UpdatedAt,
	)
	if err != nil {
		return listingWriteError("update listing", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

// SoftDelete marca deleted_at. Sin filas afectadas (inexistente o ya dado de baja) -> ErrListingNotFound.
func (r *ListingRepo) SoftDelete(ctx context.Context, id string, at time.Time) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE listings SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`,
		id, at,
	)
	if err != nil {
		if isInvalidText(err) {
			return domain.ErrListingNotFound
		}
		return fmt.Errorf("soft delete listing: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

func listingDest(l *entity.Listing) []any {
	return []any{
		&l.ID, &l.Title, &l.Description, &l.PricePerNight, &l.Category, &l.Location, &l.ImageURL,
		&l.CreatedAt, &l.UpdatedAt, &l.DeletedAt,
	}
}

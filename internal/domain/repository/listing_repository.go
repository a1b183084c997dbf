package repository

import (
	"context"
	"time"

	"github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/internal/domain/entity"
)

// ListingFilter criterios del catálogo. Category: igualdad sin distinguir mayúsculas;
// Location: subcadena sin distinguir mayúsculas.
type ListingFilter struct {
	Category       string
	Location       string
	IncludeDeleted bool
}

// ListingRepository define el puerto de persistencia para Listing.
type ListingRepository interface {
	Create(ctx context.Context, listing *entity.Listing) error
	// GetByID devuelve también alojamientos dados de baja; el caso de uso decide.
	GetByID(ctx context.Context, id string) (*entity.Listing, error)
	List(ctx context.Context, filter ListingFilter) ([]*entity.Listing, error)
	Update(ctx context.Context, listing *entity.Listing) error
	SoftDelete(ctx context.Context, id string, at time.Time) error
}

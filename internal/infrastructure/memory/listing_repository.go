package memory

import (
	"context"
	"strings"
	"time"

	"github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/internal/domain"
	"github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/internal/domain/entity"
	"github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/internal/domain/repository"
)

var _ repository.ListingRepository = (*ListingRepo)(nil)

type listingRecord struct {
	listing entity.Listing
	seq     int64
}

// ListingRepo implementación en memoria de ListingRepository.
type ListingRepo struct {
	s *Store
}

// NewListingRepository construye el repositorio sobre el Store.
func NewListingRepository(s *Store) *ListingRepo {
	return &ListingRepo{s: s}
}

func cloneListing(l entity.Listing) *entity.Listing {
	if l.DeletedAt != nil {
		at := *l.DeletedAt
		l.DeletedAt = &at
	}
	return &l
}

// Create persiste un alojamiento.
func (r *ListingRepo) Create(_ context.Context, listing *entity.Listing) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.listings[listing.ID]; ok {
		return domain.ErrConflict
	}
	r.s.listings[listing.ID] = listingRecord{listing: *cloneListing(*listing), seq: r.s.next()}
	return nil
}

// GetByID obtiene un alojamiento (incluidos los dados de baja) o nil.
func (r *ListingRepo) GetByID(_ context.Context, id string) (*entity.Listing, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rec, ok := r.s.listings[id]
	if !ok {
		return nil, nil
	}
	return cloneListing(rec.listing), nil
}

// List filtra por categoría exacta y ubicación por subcadena, ambas con case folding.
func (r *ListingRepo) List(_ context.Context, filter repository.ListingFilter) ([]*entity.Listing, error) {
	category, location := fold(filter.Category), fold(filter.Location)

	r.s.mu.RLock()
	recs := make([]listingRecord, 0, len(r.s.listings))
	for _, rec := range r.s.listings {
		if rec.listing.IsDeleted() && !filter.IncludeDeleted {
			continue
		}
		if category != "" && fold(rec.listing.Category) != category {
			continue
		}
		if location != "" && !strings.Contains(fold(rec.listing.Location), location) {
			continue
		}
		recs = append(recs, rec)
	}
	r.s.mu.RUnlock()

	sortNewestFirst(recs, func(rec listingRecord) int64 { return rec.seq })
	out := make([]*entity.Listing, 0, len(recs))
	for _, rec := range recs {
		out = append(out, cloneListing(rec.listing))
	}
	return out, nil
}

// Update reemplaza los campos editables de un alojamiento existente.
func (r *ListingRepo) Update(_ context.Context, listing *entity.Listing) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.listings[listing.ID]
	if !ok {
		return domain.ErrListingNotFound
	}
	deletedAt := rec.listing.DeletedAt
	rec.listing = *cloneListing(*listing)
	rec.listing.DeletedAt = deletedAt
	r.s.listings[listing.ID] = rec
	return nil
}

// SoftDelete marca DeletedAt. Si no existe o ya estaba dado de baja devuelve ErrListingNotFound.
func (r *ListingRepo) SoftDelete(_ context.Context, id string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.listings[id]
	if !ok || rec.listing.IsDeleted() {
		return domain.ErrListingNotFound
	}
	rec.listing.DeletedAt = &at
	rec.listing.UpdatedAt = at
	r.s.listings[id] = rec
	return nil
}

package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/internal/application/dto"
	"github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/internal/application/validation"
	"github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/internal/domain"
	"github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/internal/domain/entity"
	"github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/internal/domain/repository"
	"github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/internal/domain/stay"
)

// ListingUseCase catálogo de alojamientos: lectura pública y gestión admin con baja lógica.
type ListingUseCase struct {
	repo      repository.ListingRepository
	validator *validation.Validator
	now       func() time.Time
}

// NewListingUseCase construye el caso de uso.
func NewListingUseCase(repo repository.ListingRepository, v *validation.Validator) *ListingUseCase {
	return &ListingUseCase{repo: repo, validator: v, now: time.Now}
}

// Find devuelve un alojamiento activo o nil si no existe o está dado de baja.
func (uc *ListingUseCase) Find(ctx context.Context, id string) (*entity.Listing, error) {
	listing, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing == nil || listing.IsDeleted() {
		return nil, nil
	}
	return listing, nil
}

// GetByID versión DTO de Find para el catálogo público.
func (uc *ListingUseCase) GetByID(ctx context.Context, id string) (*dto.ListingResponse, error) {
	listing, err := uc.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToListingResponse(listing), nil
}

// List lista alojamientos activos; categoría exacta y ubicación por subcadena, sin distinguir mayúsculas.
func (uc *ListingUseCase) List(ctx context.Context, q dto.ListingQuery) ([]dto.ListingResponse, error) {
	return uc.list(ctx, repository.ListingFilter{
		Category: strings.TrimSpace(q.Category),
		Location: strings.TrimSpace(q.Location),
	})
}

// AdminList incluye opcionalmente los alojamientos dados de baja.
func (uc *ListingUseCase) AdminList(ctx context.Context, includeDeleted bool) ([]dto.ListingResponse, error) {
	return uc.list(ctx, repository.ListingFilter{IncludeDeleted: includeDeleted})
}

func (uc *ListingUseCase) list(ctx context.Context, filter repository.ListingFilter) ([]dto.ListingResponse, error) {
	list, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ListingResponse, 0, len(list))
	for _, l := range list {
		items = append(items, *ToListingResponse(l))
	}
	return items, nil
}

// AdminGet obtiene un alojamiento aunque esté dado de baja.
func (uc *ListingUseCase) AdminGet(ctx context.Context, id string) (*dto.ListingResponse, error) {
	listing, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, domain.ErrListingNotFound
	}
	return ToListingResponse(listing), nil
}

// Create crea un alojamiento. El precio por noche debe ser positivo.
func (uc *ListingUseCase) Create(ctx context.Context, in dto.CreateListingRequest) (*dto.ListingResponse, error) {
	if err := uc.validator.Struct(in); err != nil {
		return nil, err
	}
	if err := validatePrice(in.PricePerNight); err != nil {
		return nil, err
	}
	now := uc.now().UTC()
	listing := &entity.Listing{
		ID:            uuid.New().String(),
		Title:         strings.TrimSpace(in.Title),
		Description:   strings.TrimSpace(in.Description),
		PricePerNight: in.PricePerNight,
		Category:      strings.TrimSpace(in.Category),
		Location:      strings.TrimSpace(in.Location),
		ImageURL:      in.ImageURL,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, listing); err != nil {
		return nil, err
	}
	return ToListingResponse(listing), nil
}

// Update aplica una actualización parcial. Un alojamiento dado de baja no se puede editar.
func (uc *ListingUseCase) Update(ctx context.Context, id string, in dto.UpdateListingRequest) (*dto.ListingResponse, error) {
	if err := uc.validator.Struct(in); err != nil {
		return nil, err
	}
	listing, err := uc.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, domain.ErrListingNotFound
	}
	if in.Title != nil {
		listing.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		listing.Description = strings.TrimSpace(*in.Description)
	}
	if in.PricePerNight != nil {
		if err := validatePrice(*in.PricePerNight); err != nil {
			return nil, err
		}
		listing.PricePerNight = *in.PricePerNight
	}
	if in.Category != nil {
		listing.Category = strings.TrimSpace(*in.Category)
	}
	if in.Location != nil {
		listing.Location = strings.TrimSpace(*in.Location)
	}
	if in.ImageURL != nil {
		listing.ImageURL = *in.ImageURL
	}
	if listing.Title == "" || listing.Description == "" {
		return nil, domain.NewValidationError("title", "title y description no pueden quedar vacíos")
	}
	listing.UpdatedAt = uc.now().UTC()
	if err := uc.repo.Update(ctx, listing); err != nil {
		return nil, err
	}
	return ToListingResponse(listing), nil
}

// SoftDelete da de baja el alojamiento. Repetir la baja devuelve ErrListingNotFound.
func (uc *ListingUseCase) SoftDelete(ctx context.Context, id string) error {
	return uc.repo.SoftDelete(ctx, id, uc.now().UTC())
}

// validatePrice exige el mismo dominio que la columna price_per_night: positivo, dos decimales como máximo y acotado.
func validatePrice(p decimal.Decimal) error {
	switch {
	case !p.IsPositive():
		return domain.NewValidationError("pricePerNight", fmt.Sprintf("debe ser un número positivo (recibido %s)", p.String()))
	case !p.Equal(p.Round(stay.PriceScale)):
		return domain.NewValidationError("pricePerNight", fmt.Sprintf("admite como máximo %d decimales (recibido %s)", stay.PriceScale, p.String()))
	case p.GreaterThan(stay.MaxPricePerNight):
		return domain.NewValidationError("pricePerNight", fmt.Sprintf("no puede superar %s", stay.MaxPricePerNight.String()))
	}
	return nil
}

// ToListingResponse convierte la entidad a DTO.
func ToListingResponse(l *entity.Listing) *dto.ListingResponse {
	if l == nil {
		return nil
	}
	return &dto.ListingResponse{
		ID:            l.ID,
		Title:         l.Title,
		Description:   l.Description,
		PricePerNight: l.PricePerNight,
		Category:      l.Category,
		Location:      l.Location,
		ImageURL:      l.ImageURL,
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
		DeletedAt:     l.DeletedAt,
	}
}

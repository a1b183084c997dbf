package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/internal/application/dto"
	"github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/internal/application/usecase"
	"github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/internal/application/validation"
	"github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/internal/domain"
	"github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/internal/domain/entity"
	"github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/internal/domain/repository"
	"github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/internal/domain/stay"
)

// BookingUseCase orquesta el ciclo de vida de una reserva: valida fechas contra el catálogo,
// calcula el precio en el servidor y escribe una única vez en el libro de reservas.
type BookingUseCase struct {
	bookings  repository.BookingRepository
	listings  repository.ListingRepository
	users     repository.UserRepository
	receipts  ReceiptGenerator
	validator *validation.Validator
	now       func() time.Time
}

// NewBookingUseCase construye el orquestador. receipts puede ser nil (sin comprobantes PDF).
func NewBookingUseCase(
	bookings repository.BookingRepository,
	listings repository.ListingRepository,
	users repository.UserRepository,
	receipts ReceiptGenerator,
	v *validation.Validator,
) *BookingUseCase {
	return &BookingUseCase{
		bookings:  bookings,
		listings:  listings,
		users:     users,
		receipts:  receipts,
		validator: v,
		now:       time.Now,
	}
}

// WithClock fija el reloj usado para los timestamps (tests).
func (uc *BookingUseCase) WithClock(now func() time.Time) *BookingUseCase {
	uc.now = now
	return uc
}

// CreateBooking crea una reserva pending para el actor.
// El totalPrice enviado por el cliente se ignora: siempre se recalcula como noches * precio por noche.
func (uc *BookingUseCase) CreateBooking(ctx context.Context, actor Actor, in dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	if err := uc.validator.Struct(in); err != nil {
		return nil, err
	}
	checkIn, err := stay.ParseDate(in.CheckInDate)
	if err != nil {
		return nil, err
	}
	checkOut, err := stay.ParseDate(in.CheckOutDate)
	if err != nil {
		return nil, err
	}

	listing, err := uc.activeListing(ctx, in.ListingID)
	if err != nil {
		return nil, err
	}
	guest, err := uc.users.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if guest == nil {
		return nil, domain.ErrUserNotFound
	}

	quote, err := stay.NewQuote(checkIn, checkOut, listing.PricePerNight)
	if err != nil {
		return nil, err
	}

	now := uc.now().UTC()
	b := &entity.Booking{
		ID:         uuid.New().String(),
		UserID:     guest.ID,
		ListingID:  listing.ID,
		CheckIn:    quote.CheckIn,
		CheckOut:   quote.CheckOut,
		Nights:     quote.Nights,
		TotalPrice: quote.TotalPrice,
		Status:     entity.BookingPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.bookings.Create(ctx, b); err != nil {
		return nil, err
	}
	return ToBookingResponse(b, nil), nil
}

// TransitionStatus cambia el estado de una reserva. La autorización admin se exige aguas arriba
// (RequireAdmin). Cualquier estado puede pasar a cualquier otro dentro del enum.
func (uc *BookingUseCase) TransitionStatus(ctx context.Context, bookingID string, in dto.UpdateBookingStatusRequest) (*dto.BookingResponse, error) {
	if err := uc.validator.Struct(in); err != nil {
		return nil, err
	}
	status, err := entity.ParseBookingStatus(in.Status)
	if err != nil {
		return nil, err
	}
	b, err := uc.bookings.UpdateStatus(ctx, bookingID, status, uc.now().UTC())
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrBookingNotFound
	}
	return ToBookingResponse(b, nil), nil
}

// ListMine lista las reservas del actor.
func (uc *BookingUseCase) ListMine(ctx context.Context, actor Actor) ([]dto.BookingResponse, error) {
	return uc.list(ctx, repository.BookingFilter{UserID: actor.UserID}, false)
}

// AdminList lista todas las reservas (filtros opcionales) con el alojamiento embebido.
func (uc *BookingUseCase) AdminList(ctx context.Context, q dto.BookingQuery) ([]dto.BookingResponse, error) {
	if err := uc.validator.Struct(q); err != nil {
		return nil, err
	}
	filter := repository.BookingFilter{UserID: q.UserID, ListingID: q.ListingID}
	if q.Status != "" {
		st, err := entity.ParseBookingStatus(q.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = st
	}
	return uc.list(ctx, filter, true)
}

func (uc *BookingUseCase) list(ctx context.Context, filter repository.BookingFilter, withListing bool) ([]dto.BookingResponse, error) {
	list, err := uc.bookings.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	cache := make(map[string]*entity.Listing)
	items := make([]dto.BookingResponse, 0, len(list))
	for _, b := range list {
		var listing *entity.Listing
		if withListing {
			l, ok := cache[b.ListingID]
			if !ok {
				if l, err = uc.listings.GetByID(ctx, b.ListingID); err != nil {
					return nil, err
				}
				cache[b.ListingID] = l
			}
			listing = l
		}
		items = append(items, *ToBookingResponse(b, listing))
	}
	return items, nil
}

// Get devuelve una reserva visible para el actor: el dueño o un admin.
func (uc *BookingUseCase) Get(ctx context.Context, actor Actor, id string) (*dto.BookingResponse, error) {
	b, listing, err := uc.visible(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return ToBookingResponse(b, listing), nil
}

// Receipt genera el comprobante PDF de una reserva visible para el actor.
func (uc *BookingUseCase) Receipt(ctx context.Context, actor Actor, id string) ([]byte, error) {
	if uc.receipts == nil {
		return nil, domain.ErrNotFound
	}
	b, listing, err := uc.visible(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	guest, err := uc.users.GetByID(ctx, b.UserID)
	if err != nil {
		return nil, err
	}
	if guest == nil {
		return nil, domain.ErrUserNotFound
	}
	return uc.receipts.GenerateReceipt(ctx, b, listing, guest)
}

func (uc *BookingUseCase) visible(ctx context.Context, actor Actor, id string) (*entity.Booking, *entity.Listing, error) {
	b, err := uc.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if b == nil {
		return nil, nil, domain.ErrBookingNotFound
	}
	if b.UserID != actor.UserID && !actor.Role.IsAdmin() {
		return nil, nil, domain.ErrForbidden
	}
	listing, err := uc.listings.GetByID(ctx, b.ListingID)
	if err != nil {
		return nil, nil, err
	}
	if listing == nil {
		return nil, nil, domain.ErrListingNotFound
	}
	return b, listing, nil
}

func (uc *BookingUseCase) activeListing(ctx context.Context, id string) (*entity.Listing, error) {
	listing, err := uc.listings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing == nil || listing.IsDeleted() {
		return nil, domain.ErrListingNotFound
	}
	return listing, nil
}

// ToBookingResponse convierte la entidad a DTO; listing es opcional.
func ToBookingResponse(b *entity.Booking, listing *entity.Listing) *dto.BookingResponse {
	if b == nil {
		return nil
	}
	return &dto.BookingResponse{
		ID:         b.ID,
		UserID:     b.UserID,
		ListingID:  b.ListingID,
		CheckIn:    b.CheckIn.Format(stay.DateLayout),
		CheckOut:   b.CheckOut.Format(stay.DateLayout),
		Nights:     b.Nights,
		TotalPrice: b.TotalPrice,
		Status:     string(b.Status),
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
		Listing:    usecase.ToListingResponse(listing),
	}
}

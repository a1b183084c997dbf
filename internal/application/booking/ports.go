package booking

import (
	"context"

	"github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/internal/domain/entity"
)

// Actor identidad ya autenticada por el middleware (user id + rol del token).
type Actor struct {
	UserID string
	Role   entity.Role
}

// ReceiptGenerator genera el comprobante PDF de una reserva.
type ReceiptGenerator interface {
	GenerateReceipt(ctx context.Context, booking *entity.Booking, listing *entity.Listing, guest *entity.User) ([]byte, error)
}

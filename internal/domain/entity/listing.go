package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Listing representa un alojamiento reservable. El borrado es lógico (DeletedAt).
type Listing struct {
	ID            string
	Title         string
	Description   string
	PricePerNight decimal.Decimal // > 0
	Category      string
	Location      string
	ImageURL      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     *time.Time
}

// IsDeleted indica si el alojamiento fue dado de baja.
func (l *Listing) IsDeleted() bool {
	return l.DeletedAt != nil
}

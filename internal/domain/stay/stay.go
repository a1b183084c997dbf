// Package stay contiene las reglas de fechas y precio de una estancia (servicio de dominio puro).
//
// Política de fechas: se aceptan "2006-01-02" y RFC 3339. La hora del día se descarta
// (floor): el instante se lleva a UTC y se trunca a la fecha calendario. Las noches son la
// diferencia entera en días entre ambas fechas truncadas.
package stay

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/internal/domain"
)

const (
	// DateLayout formato canónico de las fechas de reserva.
	DateLayout = "2006-01-02"
	// MaxNights tope de noches de una reserva.
	MaxNights = 3650
	// PriceScale decimales admitidos en importes (NUMERIC(x,2)).
	PriceScale    = 2
	secondsPerDay = 24 * 60 * 60
)

// MaxPricePerNight tope del precio por noche. Con MaxNights el total cabe en NUMERIC(14,2).
var MaxPricePerNight = decimal.NewFromInt(1_000_000)

// ParseDate interpreta una fecha de entrada/salida y la trunca a medianoche UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: fecha vacía", domain.ErrInvalidInput)
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: fecha %q no reconocida", domain.ErrInvalidInput, s)
	}
	return Floor(t), nil
}

// Floor lleva un instante a la medianoche UTC de su fecha.
func Floor(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Nights devuelve las noches entre checkIn y checkOut. checkOut debe ser estrictamente posterior.
func Nights(checkIn, checkOut time.Time) (int, error) {
	in, out := Floor(checkIn), Floor(checkOut)
	if !out.After(in) {
		return 0, domain.ErrInvalidRange
	}
	return int((out.Unix() - in.Unix()) / secondsPerDay), nil
}

// TotalPrice = noches * precio por noche. Se calcula siempre en el servidor.
func TotalPrice(nights int, pricePerNight decimal.Decimal) decimal.Decimal {
	return pricePerNight.Mul(decimal.NewFromInt(int64(nights)))
}

// NightlyRate tarifa por noche implícita en un total ya cotizado. Cero si no hay noches.
func NightlyRate(total decimal.Decimal, nights int) decimal.Decimal {
	if nights <= 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(int64(nights))).Round(PriceScale)
}

// Quote agrupa el resultado de validar y cotizar una estancia.
type Quote struct {
	CheckIn    time.Time
	CheckOut   time.Time
	Nights     int
	TotalPrice decimal.Decimal
}

// NewQuote valida el rango y calcula el precio total.
func NewQuote(checkIn, checkOut time.Time, pricePerNight decimal.Decimal) (Quote, error) {
	if !pricePerNight.IsPositive() {
		return Quote{}, fmt.Errorf("%w: precio por noche no positivo", domain.ErrInvalidInput)
	}
	nights, err := Nights(checkIn, checkOut)
	if err != nil {
		return Quote{}, err
	}
	if nights > MaxNights {
		return Quote{}, domain.NewValidationError("checkOut", fmt.Sprintf("la estancia no puede superar %d noches", MaxNights))
	}
	return Quote{
		CheckIn:    Floor(checkIn),
		CheckOut:   Floor(checkOut),
		Nights:     nights,
		TotalPrice: TotalPrice(nights, pricePerNight),
	}, nil
}

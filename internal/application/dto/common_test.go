package dto_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/internal/application/dto"
)

func TestImportes_SeSerializanComoNumero(t *testing.T) {
	raw, err := json.Marshal(dto.BookingResponse{
		TotalPrice: decimal.NewFromInt(300),
		Listing:    &dto.ListingResponse{PricePerNight: decimal.RequireFromString("89.99")},
	})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"totalPrice":300`)
	assert.Contains(t, string(raw), `"pricePerNight":89.99`)
}

func TestImportes_EntradaNumeroOCadena(t *testing.T) {
	for _, body := range []string{`{"pricePerNight":120.5}`, `{"pricePerNight":"120.50"}`} {
		var in dto.CreateListingRequest
		require.NoError(t, json.Unmarshal([]byte(body), &in), body)
		assert.True(t, decimal.RequireFromString("120.5").Equal(in.PricePerNight), body)
	}
}

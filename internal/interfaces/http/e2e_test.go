package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/internal/application/auth"
	"github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/internal/application/booking"
	"github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/internal/application/dto"
	"github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/internal/application/usecase"
	"github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/internal/application/validation"
	"github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/internal/domain/repository"
	"github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/internal/infrastructure/memory"
	"github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/internal/infrastructure/pdf"
	apphttp "github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/internal/interfaces/http"
	"github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Servidor completo sobre el almacenamiento en memoria
// ──────────────────────────────────────────────────────────────────────────────

type testServer struct {
	app       *fiber.App
	bookings  *memory.BookingRepo
	authUC    *auth.AuthUseCase
	listingUC *usecase.ListingUseCase
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := memory.NewStore()
	users := memory.NewUserRepository(store)
	listings := memory.NewListingRepository(store)
	bookings := memory.NewBookingRepository(store)
	v := validation.New()
	tokens := newTokenService(t)

	authUC := auth.NewAuthUseCase(users, tokens, v).WithHashCost(bcrypt.MinCost)
	listingUC := usecase.NewListingUseCase(listings, v)
	bookingUC := booking.NewBookingUseCase(bookings, listings, users, pdf.NewReceiptGenerator("StayBook"), v)

	app := apphttp.NewApp(apphttp.AppOptions{Name: "staybook-test", Logger: logger.Nop().Zerolog()}, apphttp.RouterDeps{
		AuthUC:    authUC,
		ListingUC: listingUC,
		BookingUC: bookingUC,
		Tokens:    tokens,
	})
	return &testServer{app: app, bookings: bookings, authUC: authUC, listingUC: listingUC}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out), "cuerpo: %s", raw)
}

// registerAndLogin registra un usuario y devuelve su token.
func (s *testServer) registerAndLogin(t *testing.T, name, email, password string) string {
	t.Helper()
	resp := s.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": name, "email": email, "password": password,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return s.login(t, email, password)
}

func (s *testServer) login(t *testing.T, email, password string) string {
	t.Helper()
	resp := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.LoginResponse
	decode(t, resp, &out)
	require.NotEmpty(t, out.Token)
	return out.Token
}

func (s *testServer) adminToken(t *testing.T) string {
	t.Helper()
	_, _, err := s.authUC.EnsureAdmin(context.Background(), "admin@x.com", "admin-pw")
	require.NoError(t, err)
	return s.login(t, "admin@x.com", "admin-pw")
}

func (s *testServer) seedListing(t *testing.T, price int64) string {
	t.Helper()
	out, err := s.listingUC.Create(context.Background(), dto.CreateListingRequest{
		Title: "Loft céntrico", Description: "Dos habitaciones", PricePerNight: decimal.NewFromInt(price),
		Category: "Apartment", Location: "Lahore",
	})
	require.NoError(t, err)
	return out.ID
}

func (s *testServer) bookingCount(t *testing.T) int {
	t.Helper()
	list, err := s.bookings.List(context.Background(), repository.BookingFilter{})
	require.NoError(t, err)
	return len(list)
}

type bookingEnvelope struct {
	Message string `json:"message"`
	Booking struct {
		ID         string  `json:"id"`
		UserID     string  `json:"userId"`
		ListingID  string  `json:"listingId"`
		CheckIn    string  `json:"checkIn"`
		CheckOut   string  `json:"checkOut"`
		Nights     int     `json:"nights"`
		TotalPrice float64 `json:"totalPrice"`
		Status     string  `json:"status"`
	} `json:"booking"`
}

func bookingBody(listingID, in, out string) map[string]interface{} {
	return map[string]interface{}{"listingId": listingID, "checkInDate": in, "checkOutDate": out}
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenarios extremo a extremo
// ──────────────────────────────────────────────────────────────────────────────

// Registro, login y reserva de 3 noches a 100/noche: 201, total 300, pending.
func TestE2E_ReservaCalculaPrecioEnServidor(t *testing.T) {
	s := newTestServer(t)
	listingID := s.seedListing(t, 100)
	token := s.registerAndLogin(t, "Ana", "a@x.com", "pw")

	body := bookingBody(listingID, "2024-01-01", "2024-01-04")
	body["totalPrice"] = 1 // el precio del cliente se ignora
	resp := s.do(t, http.MethodPost, "/api/bookings", token, body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var out bookingEnvelope
	decode(t, resp, &out)
	assert.NotEmpty(t, out.Message)
	assert.NotEmpty(t, out.Booking.ID)
	assert.Equal(t, 300.0, out.Booking.TotalPrice, "totalPrice es un número JSON")
	assert.Equal(t, "pending", out.Booking.Status)
	assert.Equal(t, 3, out.Booking.Nights)
	assert.Equal(t, "2024-01-01", out.Booking.CheckIn)
	assert.Equal(t, "2024-01-04", out.Booking.CheckOut)
	assert.Equal(t, listingID, out.Booking.ListingID)
	assert.Equal(t, 1, s.bookingCount(t))
}

// Sin Authorization: 401 y ninguna reserva creada.
func TestE2E_ReservaSinToken_Retorna401(t *testing.T) {
	s := newTestServer(t)
	listingID := s.seedListing(t, 100)

	resp := s.do(t, http.MethodPost, "/api/bookings", "", bookingBody(listingID, "2024-01-01", "2024-01-04"))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Zero(t, s.bookingCount(t))
}

// Un usuario sin rol admin no puede editar alojamientos: 403.
func TestE2E_UsuarioNoAdminEditaListing_Retorna403(t *testing.T) {
	s := newTestServer(t)
	listingID := s.seedListing(t, 100)
	token := s.registerAndLogin(t, "Ana", "a@x.com", "pw")

	resp := s.do(t, http.MethodPut, "/api/admin/listings/"+listingID, token, map[string]string{"title": "Hackeado"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	got, err := s.listingUC.Find(context.Background(), listingID)
	require.NoError(t, err)
	assert.Equal(t, "Loft céntrico", got.Title)
}

func TestE2E_AdminEditaListing(t *testing.T) {
	s := newTestServer(t)
	listingID := s.seedListing(t, 100)
	admin := s.adminToken(t)

	resp := s.do(t, http.MethodPut, "/api/admin/listings/"+listingID, admin, map[string]interface{}{
		"title": "Loft renovado", "pricePerNight": "120.50",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.ListingResponse
	decode(t, resp, &out)
	assert.Equal(t, "Loft renovado", out.Title)
	assert.Equal(t, "Dos habitaciones", out.Description, "la actualización es parcial")
	assert.True(t, decimal.RequireFromString("120.5").Equal(out.PricePerNight))
}

func TestE2E_RegistroDuplicado_Retorna400(t *testing.T) {
	s := newTestServer(t)
	s.registerAndLogin(t, "Ana", "a@x.com", "pw")

	resp := s.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Otra", "email": "A@X.com", "password": "pw2",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "EMAIL_EXISTS", errorCode(t, resp))
}

func TestE2E_Login_Errores(t *testing.T) {
	s := newTestServer(t)
	s.registerAndLogin(t, "Ana", "a@x.com", "pw")

	resp := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "nadie@x.com", "password": "pw"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "a@x.com", "password": "mala"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestE2E_Protected_EcoDeIdentidad(t *testing.T) {
	s := newTestServer(t)
	token := s.registerAndLogin(t, "Ana", "a@x.com", "pw")

	resp := s.do(t, http.MethodGet, "/api/protected", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.ProtectedResponse
	decode(t, resp, &out)
	assert.Equal(t, "user", out.User.Role)
	assert.Equal(t, "a@x.com", out.User.Email)
	assert.NotEmpty(t, out.User.UserID)
}

func TestE2E_RangoInvertido_NoPersiste(t *testing.T) {
	s := newTestServer(t)
	listingID := s.seedListing(t, 100)
	token := s.registerAndLogin(t, "Ana", "a@x.com", "pw")

	for _, r := range [][2]string{{"2024-01-04", "2024-01-01"}, {"2024-01-04", "2024-01-04"}} {
		resp := s.do(t, http.MethodPost, "/api/bookings", token, bookingBody(listingID, r[0], r[1]))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "rango %v", r)
	}
	assert.Zero(t, s.bookingCount(t))
}

func TestE2E_ReservaListingDadoDeBaja_Retorna404(t *testing.T) {
	s := newTestServer(t)
	listingID := s.seedListing(t, 100)
	admin := s.adminToken(t)
	token := s.registerAndLogin(t, "Ana", "a@x.com", "pw")

	resp := s.do(t, http.MethodDelete, "/api/admin/listings/"+listingID, admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = s.do(t, http.MethodDelete, "/api/admin/listings/"+listingID, admin, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "segunda baja")

	resp = s.do(t, http.MethodGet, "/api/listings/"+listingID, "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = s.do(t, http.MethodPost, "/api/bookings", token, bookingBody(listingID, "2024-01-01", "2024-01-04"))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Zero(t, s.bookingCount(t))

	resp = s.do(t, http.MethodGet, "/api/admin/listings?include_deleted=true", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var all []dto.ListingResponse
	decode(t, resp, &all)
	require.Len(t, all, 1)
	assert.NotNil(t, all[0].DeletedAt)
}

func TestE2E_CatalogoPublicoFiltra(t *testing.T) {
	s := newTestServer(t)
	s.seedListing(t, 100)

	resp := s.do(t, http.MethodGet, "/api/listings?category=apartment&location=lah", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []dto.ListingResponse
	decode(t, resp, &list)
	assert.Len(t, list, 1)

	resp = s.do(t, http.MethodGet, "/api/listings?category=villa", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &list)
	assert.Empty(t, list)
}

func TestE2E_TransicionDeEstado(t *testing.T) {
	s := newTestServer(t)
	listingID := s.seedListing(t, 100)
	admin := s.adminToken(t)
	token := s.registerAndLogin(t, "Ana", "a@x.com", "pw")

	resp := s.do(t, http.MethodPost, "/api/bookings", token, bookingBody(listingID, "2024-01-01", "2024-01-04"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created bookingEnvelope
	decode(t, resp, &created)
	path := "/api/admin/bookings/" + created.Booking.ID

	resp = s.do(t, http.MethodPut, path, token, map[string]string{"status": "confirmed"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "solo admin cambia estados")

	resp = s.do(t, http.MethodPut, path, admin, map[string]string{"status": "archived"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = s.do(t, http.MethodPut, "/api/admin/bookings/no-existe", admin, map[string]string{"status": "confirmed"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = s.do(t, http.MethodPut, path, admin, map[string]string{"status": "confirmed"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated dto.BookingResponse
	decode(t, resp, &updated)
	assert.Equal(t, "confirmed", updated.Status)
	assert.Equal(t, "300", updated.TotalPrice.String(), "el precio no cambia con el estado")

	resp = s.do(t, http.MethodGet, "/api/admin/bookings?status=confirmed", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []dto.BookingResponse
	decode(t, resp, &list)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Listing, "el listado admin embebe el alojamiento")
	assert.Equal(t, listingID, list[0].Listing.ID)
}

func TestE2E_VisibilidadDeReservas(t *testing.T) {
	s := newTestServer(t)
	listingID := s.seedListing(t, 100)
	admin := s.adminToken(t)
	ana := s.registerAndLogin(t, "Ana", "a@x.com", "pw")
	beto := s.registerAndLogin(t, "Beto", "b@x.com", "pw")

	resp := s.do(t, http.MethodPost, "/api/bookings", ana, bookingBody(listingID, "2024-03-01", "2024-03-02"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created bookingEnvelope
	decode(t, resp, &created)
	path := "/api/bookings/" + created.Booking.ID

	resp = s.do(t, http.MethodGet, path, ana, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp = s.do(t, http.MethodGet, path, beto, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp = s.do(t, http.MethodGet, path, admin, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var mine []dto.BookingResponse
	resp = s.do(t, http.MethodGet, "/api/bookings", beto, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &mine)
	assert.Empty(t, mine)

	resp = s.do(t, http.MethodGet, path+"/receipt", ana, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
}

func TestE2E_ValidacionDeCampos(t *testing.T) {
	s := newTestServer(t)
	token := s.registerAndLogin(t, "Ana", "a@x.com", "pw")

	resp := s.do(t, http.MethodPost, "/api/bookings", token, map[string]string{"checkInDate": "ayer"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var out dto.ErrorResponse
	decode(t, resp, &out)
	assert.Equal(t, "VALIDATION", out.Code)
	assert.Contains(t, out.Fields, "listingId")
	assert.Contains(t, out.Fields, "checkInDate")
	assert.Contains(t, out.Fields, "checkOutDate")

	resp = s.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{"email": "no-es-email", "password": "pw"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestE2E_Health(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out map[string]string
	decode(t, resp, &out)
	assert.Equal(t, "ok", out["status"])
}

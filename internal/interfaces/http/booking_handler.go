package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/internal/application/booking"
	"github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/internal/application/dto"
)

// BookingHandler reservas del usuario autenticado y gestión admin.
type BookingHandler struct {
	uc *booking.BookingUseCase
}

// NewBookingHandler construye el handler.
func NewBookingHandler(uc *booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{uc: uc}
}

// Create godoc
// @Summary      Crear reserva
// @Description  El precio total se calcula en el servidor (noches × precio por noche); totalPrice del cliente se ignora.
// @Tags         bookings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBookingRequest  true  "listingId, checkInDate, checkOutDate"
// @Success      201   {object}  dto.CreateBookingResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/bookings [post]
func (h *BookingHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBookingRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateBooking(c.UserContext(), actorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreateBookingResponse{Message: "Reserva creada correctamente", Booking: *out})
}

// ListMine godoc
// @Summary      Mis reservas
// @Tags         bookings
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.BookingResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/bookings [get]
func (h *BookingHandler) ListMine(c *fiber.Ctx) error {
	out, err := h.uc.ListMine(c.UserContext(), actorFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener reserva (dueño o admin)
// @Tags         bookings
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la reserva"
// @Success      200  {object}  dto.BookingResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/bookings/{id} [get]
func (h *BookingHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), actorFrom(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Receipt godoc
// @Summary      Comprobante PDF de la reserva
// @Tags         bookings
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la reserva"
// @Success      200  {file}    binary
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/bookings/{id}/receipt [get]
func (h *BookingHandler) Receipt(c *fiber.Ctx) error {
	id := c.Params("id")
	pdf, err := h.uc.Receipt(c.UserContext(), actorFrom(c), id)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="reserva-`+id+`.pdf"`)
	return c.Send(pdf)
}

// AdminList godoc
// @Summary      Listar reservas (admin)
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        status      query  string  false  "pending | confirmed | canceled"
// @Param        listing_id  query  string  false  "Filtrar por alojamiento"
// @Param        user_id     query  string  false  "Filtrar por usuario"
// @Success      200  {array}   dto.BookingResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/bookings [get]
func (h *BookingHandler) AdminList(c *fiber.Ctx) error {
	var q dto.BookingQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.uc.AdminList(c.UserContext(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AdminGet godoc
// @Summary      Obtener reserva (admin)
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la reserva"
// @Success      200  {object}  dto.BookingResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/bookings/{id} [get]
func (h *BookingHandler) AdminGet(c *fiber.Ctx) error {
	return h.Get(c)
}

// UpdateStatus godoc
// @Summary      Cambiar estado de una reserva
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                          true  "ID de la reserva"
// @Param        body  body  dto.UpdateBookingStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.BookingResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/bookings/{id} [put]
func (h *BookingHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateBookingStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.TransitionStatus(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

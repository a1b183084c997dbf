package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/internal/application/dto"
	"github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/internal/application/usecase"
	"github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/internal/domain"
)

// ListingHandler catálogo público y gestión admin de alojamientos.
type ListingHandler struct {
	uc *usecase.ListingUseCase
}

// NewListingHandler construye el handler.
func NewListingHandler(uc *usecase.ListingUseCase) *ListingHandler {
	return &ListingHandler{uc: uc}
}

// List godoc
// @Summary      Listar alojamientos
// @Tags         listings
// @Produce      json
// @Param        category  query  string  false  "Categoría exacta (sin mayúsculas)"
// @Param        location  query  string  false  "Subcadena de ubicación"
// @Success      200  {array}   dto.ListingResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/listings [get]
func (h *ListingHandler) List(c *fiber.Ctx) error {
	var q dto.ListingQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.uc.List(c.UserContext(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener alojamiento
// @Tags         listings
// @Produce      json
// @Param        id   path  string  true  "ID del alojamiento"
// @Success      200  {object}  dto.ListingResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/listings/{id} [get]
func (h *ListingHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return writeError(c, domain.ErrListingNotFound)
	}
	return c.JSON(out)
}

// AdminList godoc
// @Summary      Listar alojamientos (admin)
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        include_deleted  query  bool  false  "Incluir dados de baja"
// @Success      200  {array}   dto.ListingResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/listings [get]
func (h *ListingHandler) AdminList(c *fiber.Ctx) error {
	out, err := h.uc.AdminList(c.UserContext(), c.QueryBool("include_deleted", false))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AdminGet godoc
// @Summary      Obtener alojamiento (admin)
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del alojamiento"
// @Success      200  {object}  dto.ListingResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/listings/{id} [get]
func (h *ListingHandler) AdminGet(c *fiber.Ctx) error {
	out, err := h.uc.AdminGet(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear alojamiento
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateListingRequest  true  "Datos del alojamiento"
// @Success      201   {object}  dto.ListingResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/admin/listings [post]
func (h *ListingHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateListingRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar alojamiento (parcial)
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del alojamiento"
// @Param        body  body  dto.UpdateListingRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.ListingResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/listings/{id} [put]
func (h *ListingHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateListingRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Dar de baja alojamiento
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del alojamiento"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/listings/{id} [delete]
func (h *ListingHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.SoftDelete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Alojamiento dado de baja"})
}

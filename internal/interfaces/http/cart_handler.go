package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/marketplace-api/internal/application/checkout"
	"github.com/tu-usuario/marketplace-api/internal/application/dto"
)

// CartHandler maneja el carrito activo del usuario autenticado.
type CartHandler struct {
	uc *checkout.CartUseCase
}

// NewCartHandler construye el handler.
func NewCartHandler(uc *checkout.CartUseCase) *CartHandler {
	return &CartHandler{uc: uc}
}

// Get godoc
// @Summary      Obtener (o crear) el carrito activo
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CartResponse
// @Router       /api/cart [get]
func (h *CartHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetOrCreateActive(GetCaller(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AddItem godoc
// @Summary      Añadir un producto al carrito
// @Tags         cart
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddCartItemRequest  true  "product_id, quantity, discount"
// @Success      200   {object}  dto.CartResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cart/items [post]
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	var in dto.AddCartItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.AddItem(GetCaller(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateItem godoc
// @Summary      Cambiar la cantidad de una línea
// @Tags         cart
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        itemId  path  string  true  "ID de la línea"
// @Param        body    body  dto.UpdateCartItemRequest  true  "quantity"
// @Success      200     {object}  dto.CartResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/cart/items/{itemId} [put]
func (h *CartHandler) UpdateItem(c *fiber.Ctx) error {
	var in dto.UpdateCartItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateItem(GetCaller(c), c.Params("itemId"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RemoveItem godoc
// @Summary      Quitar una línea del carrito
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Param        itemId  path  string  true  "ID de la línea"
// @Success      200     {object}  dto.CartResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/cart/items/{itemId} [delete]
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	out, err := h.uc.RemoveItem(GetCaller(c), c.Params("itemId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ApplyDiscount godoc
// @Summary      Aplicar descuento a nivel carrito
// @Tags         cart
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ApplyCartDiscountRequest  true  "discount_amount"
// @Success      200   {object}  dto.CartResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/cart/discount [post]
func (h *CartHandler) ApplyDiscount(c *fiber.Ctx) error {
	var in dto.ApplyCartDiscountRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.ApplyDiscount(GetCaller(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ExpireStale godoc
// @Summary      Marcar abandoned los carritos vencidos (limpieza admin)
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]int64
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/carts/expire [post]
func (h *CartHandler) ExpireStale(c *fiber.Ctx) error {
	n, err := h.uc.ExpireStale(GetCaller(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"expired": n})
}

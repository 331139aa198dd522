package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/marketplace-api/internal/application/dto"
	"github.com/tu-usuario/marketplace-api/internal/application/payments"
)

// PaymentHandler maneja los callbacks del proveedor de pagos y los reembolsos.
type PaymentHandler struct {
	uc *payments.PaymentUseCase
}

// NewPaymentHandler construye el handler.
func NewPaymentHandler(uc *payments.PaymentUseCase) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

// Webhook godoc
// @Summary      Callback del proveedor de pagos (idempotente por event_id)
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        orderId  path  string  true  "ID de la orden"
// @Param        body     body  dto.PaymentWebhookRequest  true  "event_id, transaction_id, status"
// @Success      200      {object}  dto.PaymentResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      409      {object}  dto.ErrorResponse
// @Router       /api/payments/webhook/{orderId} [post]
func (h *PaymentHandler) Webhook(c *fiber.Ctx) error {
	var in dto.PaymentWebhookRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.HandleWebhook(c.Context(), c.Params("orderId"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByOrder godoc
// @Summary      Obtener el pago de una orden (dueño o admin)
// @Tags         payments
// @Security     Bearer
// @Produce      json
// @Param        orderId  path  string  true  "ID de la orden"
// @Success      200      {object}  dto.PaymentResponse
// @Failure      403      {object}  dto.ErrorResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Router       /api/orders/{orderId}/payment [get]
func (h *PaymentHandler) GetByOrder(c *fiber.Ctx) error {
	out, err := h.uc.GetByOrder(GetCaller(c), c.Params("orderId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Refund godoc
// @Summary      Reembolsar un pago, parcial o total (solo admin)
// @Tags         payments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del pago"
// @Param        body  body  dto.RefundRequest  true  "amount, reason"
// @Success      200   {object}  dto.PaymentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/payments/{id}/refund [post]
func (h *PaymentHandler) Refund(c *fiber.Ctx) error {
	var in dto.RefundRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Refund(c.Context(), GetCaller(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

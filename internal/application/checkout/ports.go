package checkout

import (
	"context"

	"github.com/tu-usuario/marketplace-api/internal/domain/entity"
	"github.com/tu-usuario/marketplace-api/internal/domain/repository"
)

// CheckoutTxRunner ejecuta el callback con repos atados a una misma
// transacción: la conversión carrito -> orden -> pago es atómica.
type CheckoutTxRunner interface {
	RunCheckout(ctx context.Context, fn func(
		cartRepo repository.CartRepository,
		orderRepo repository.OrderRepository,
		paymentRepo repository.PaymentRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// ReceiptGenerator produce la representación PDF de una orden.
type ReceiptGenerator interface {
	Generate(order *entity.Order) ([]byte, error)
}

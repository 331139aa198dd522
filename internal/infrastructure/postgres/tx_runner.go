package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/marketplace-api/internal/application/checkout"
	"github.com/tu-usuario/marketplace-api/internal/domain/repository"
)

var _ checkout.CheckoutTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción, entregando repos
// atados al pgx.Tx. Cualquier error del callback hace rollback completo.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el ejecutor de transacciones del checkout.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunCheckout abre la transacción y llama fn con los cuatro repos que
// participan en la conversión carrito -> orden -> pago.
func (t *TxRunner) RunCheckout(ctx context.Context, fn func(
	cartRepo repository.CartRepository,
	orderRepo repository.OrderRepository,
	paymentRepo repository.PaymentRepository,
	productRepo repository.ProductRepository,
) error) error {
	tx, err := t.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	err = fn(
		NewCartRepository(tx),
		NewOrderRepository(tx),
		NewPaymentRepository(tx),
		NewProductRepository(tx),
	)
	if err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

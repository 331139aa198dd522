package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/marketplace-api/internal/domain/entity"
	"github.com/tu-usuario/marketplace-api/internal/domain/repository"
)

var _ repository.CartRepository = (*CartRepo)(nil)

const cartColumns = `id, user_id, total_amount, discount_amount, final_amount, currency, status, expires_at, created_at, updated_at`

// CartRepo implementación del puerto CartRepository sobre PostgreSQL.
// Las líneas viven en cart_items; SaveItems las reemplaza completas.
type CartRepo struct {
	q Querier
}

// NewCartRepository construye el adaptador de persistencia para carritos.
func NewCartRepository(q Querier) *CartRepo {
	return &CartRepo{q: q}
}

// Create persiste un carrito vacío. El índice único parcial sobre
// (user_id) WHERE status = 'active' garantiza un solo carrito activo.
func (r *CartRepo) Create(c *entity.Cart) error {
	query := `
		INSERT INTO carts (` + cartColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.UserID, c.TotalAmount, c.DiscountAmount, c.FinalAmount,
		c.Currency, c.Status, c.ExpiresAt, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert cart: %w", err)
	}
	return nil
}

// GetByID obtiene un carrito con sus líneas.
func (r *CartRepo) GetByID(id string) (*entity.Cart, error) {
	return r.getOne(`SELECT `+cartColumns+` FROM carts WHERE id = $1`, id)
}

// GetActiveByUser devuelve el único carrito active del usuario, o nil.
func (r *CartRepo) GetActiveByUser(userID string) (*entity.Cart, error) {
	return r.getOne(`SELECT `+cartColumns+` FROM carts WHERE user_id = $1 AND status = 'active'`, userID)
}

// SaveItems reemplaza las líneas y persiste los totales recalculados.
func (r *CartRepo) SaveItems(c *entity.Cart) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, c.ID); err != nil {
		return fmt.Errorf("clear cart items: %w", err)
	}
	for _, it := range c.Items {
		_, err := r.q.Exec(ctx,
			`INSERT INTO cart_items (id, cart_id, product_id, quantity, price, discount)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			it.ID, c.ID, it.ProductID, it.Quantity, it.Price, it.Discount,
		)
		if err != nil {
			return fmt.Errorf("insert cart item: %w", err)
		}
	}
	_, err := r.q.Exec(ctx,
		`UPDATE carts SET total_amount = $2, discount_amount = $3, final_amount = $4, expires_at = $5, updated_at = $6
		 WHERE id = $1`,
		c.ID, c.TotalAmount, c.DiscountAmount, c.FinalAmount, c.ExpiresAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update cart totals: %w", err)
	}
	return nil
}

// UpdateStatus hace compare-and-swap sobre el estado del carrito.
func (r *CartRepo) UpdateStatus(id, expected, next string) (bool, error) {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE carts SET status = $3, updated_at = now() WHERE id = $1 AND status = $2`,
		id, expected, next,
	)
	if err != nil {
		return false, fmt.Errorf("update cart status: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// ExpireStale marca abandoned los carritos active con expires_at vencido.
func (r *CartRepo) ExpireStale() (int64, error) {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE carts SET status = 'abandoned', updated_at = now()
		 WHERE status = 'active' AND expires_at < now()`,
	)
	if err != nil {
		return 0, fmt.Errorf("expire carts: %w", err)
	}
	return cmd.RowsAffected(), nil
}

func (r *CartRepo) getOne(query string, arg any) (*entity.Cart, error) {
	var c entity.Cart
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&c.ID, &c.UserID, &c.TotalAmount, &c.DiscountAmount, &c.FinalAmount,
		&c.Currency, &c.Status, &c.ExpiresAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}
	items, err := r.loadItems(c.ID)
	if err != nil {
		return nil, err
	}
	c.Items = items
	return &c, nil
}

func (r *CartRepo) loadItems(cartID string) ([]entity.CartItem, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, cart_id, product_id, quantity, price, discount FROM cart_items WHERE cart_id = $1`, cartID)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	defer rows.Close()
	var items []entity.CartItem
	for rows.Next() {
		var it entity.CartItem
		if err := rows.Scan(&it.ID, &it.CartID, &it.ProductID, &it.Quantity, &it.Price, &it.Discount); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

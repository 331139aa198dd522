package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/marketplace-api/internal/domain"
	"github.com/tu-usuario/marketplace-api/internal/domain/entity"
	"github.com/tu-usuario/marketplace-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `id, user_id, cart_id, order_number, subtotal, shipping_fee, tax_amount, discount_amount, total_amount, status, payment_status, shipping_address, created_at, updated_at`

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL.
// Las líneas (order_items) son snapshot inmutable: se insertan con la orden
// y nunca se actualizan.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de persistencia para órdenes.
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste la orden y todas sus líneas.
func (r *OrderRepo) Create(o *entity.Order) error {
	ctx := context.Background()
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.UserID, o.CartID, o.OrderNumber, o.Subtotal, o.ShippingFee,
		o.TaxAmount, o.DiscountAmount, o.TotalAmount, o.Status, o.PaymentStatus,
		o.ShippingAddress, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}
	for _, it := range o.Items {
		_, err := r.q.Exec(ctx,
			`INSERT INTO order_items (id, order_id, product_id, product_name, quantity, price, discount, subtotal, total)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			it.ID, o.ID, it.ProductID, it.ProductName, it.Quantity, it.Price, it.Discount, it.Subtotal, it.Total,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una orden con sus líneas.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	return r.getOne(`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
}

// GetByNumber obtiene una orden por su número único.
func (r *OrderRepo) GetByNumber(orderNumber string) (*entity.Order, error) {
	return r.getOne(`SELECT `+orderColumns+` FROM orders WHERE order_number = $1`, orderNumber)
}

// ListByUser lista órdenes del usuario con paginación, más recientes primero.
func (r *OrderRepo) ListByUser(userID string, limit, offset int) ([]*entity.Order, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		var o entity.Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, err
		}
		list = append(list, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, o := range list {
		items, err := r.loadItems(o.ID)
		if err != nil {
			return nil, err
		}
		o.Items = items
	}
	return list, nil
}

// UpdateStatus hace compare-and-swap sobre el estado logístico de la orden.
func (r *OrderRepo) UpdateStatus(id, expected, next string) (bool, error) {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE orders SET status = $3, updated_at = now() WHERE id = $1 AND status = $2`,
		id, expected, next,
	)
	if err != nil {
		return false, fmt.Errorf("update order status: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// UpdatePaymentStatus actualiza solo el reflejo del estado de pago.
func (r *OrderRepo) UpdatePaymentStatus(id, paymentStatus string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE orders SET payment_status = $2, updated_at = now() WHERE id = $1`,
		id, paymentStatus,
	)
	if err != nil {
		return fmt.Errorf("update order payment status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *OrderRepo) getOne(query string, arg any) (*entity.Order, error) {
	var o entity.Order
	err := scanOrder(r.q.QueryRow(context.Background(), query, arg), &o)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	items, err := r.loadItems(o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (r *OrderRepo) loadItems(orderID string) ([]entity.OrderItem, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, order_id, product_id, product_name, quantity, price, discount, subtotal, total
		 FROM order_items WHERE order_id = $1`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	var items []entity.OrderItem
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName,
			&it.Quantity, &it.Price, &it.Discount, &it.Subtotal, &it.Total); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func scanOrder(row pgx.Row, o *entity.Order) error {
	return row.Scan(
		&o.ID, &o.UserID, &o.CartID, &o.OrderNumber, &o.Subtotal, &o.ShippingFee,
		&o.TaxAmount, &o.DiscountAmount, &o.TotalAmount, &o.Status, &o.PaymentStatus,
		&o.ShippingAddress, &o.CreatedAt, &o.UpdatedAt,
	)
}

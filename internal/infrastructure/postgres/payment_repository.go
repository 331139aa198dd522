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

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

const paymentColumns = `id, order_id, user_id, amount, method, provider, status, transaction_id, refunded_amount, failure_reason, created_at, updated_at`

// PaymentRepo implementación del puerto PaymentRepository sobre PostgreSQL.
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador de persistencia para pagos.
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

// Create persiste un nuevo pago (uno por orden; índice único sobre order_id).
func (r *PaymentRepo) Create(p *entity.Payment) error {
	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.OrderID, p.UserID, p.Amount, p.Method, p.Provider, p.Status,
		nullIfEmpty(p.TransactionID), p.RefundedAmount, p.FailureReason, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// GetByID obtiene un pago por ID.
func (r *PaymentRepo) GetByID(id string) (*entity.Payment, error) {
	return r.getOne(`SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id)
}

// GetByOrderID obtiene el pago asociado a una orden.
func (r *PaymentRepo) GetByOrderID(orderID string) (*entity.Payment, error) {
	return r.getOne(`SELECT `+paymentColumns+` FROM payments WHERE order_id = $1`, orderID)
}

// GetByTransactionID obtiene un pago por la referencia del proveedor.
func (r *PaymentRepo) GetByTransactionID(transactionID string) (*entity.Payment, error) {
	if transactionID == "" {
		return nil, nil
	}
	return r.getOne(`SELECT `+paymentColumns+` FROM payments WHERE transaction_id = $1`, transactionID)
}

// Update actualiza estado, referencia y montos reembolsados.
func (r *PaymentRepo) Update(p *entity.Payment) error {
	query := `
		UPDATE payments SET status = $2, transaction_id = $3, refunded_amount = $4,
			failure_reason = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Status, nullIfEmpty(p.TransactionID), p.RefundedAmount, p.FailureReason, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update payment: %w", err)
	}
	return nil
}

func (r *PaymentRepo) getOne(query string, arg any) (*entity.Payment, error) {
	var p entity.Payment
	var txID *string
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&p.ID, &p.OrderID, &p.UserID, &p.Amount, &p.Method, &p.Provider, &p.Status,
		&txID, &p.RefundedAmount, &p.FailureReason, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	if txID != nil {
		p.TransactionID = *txID
	}
	return &p, nil
}

// nullIfEmpty evita colisionar el índice único de transaction_id con cadenas
// vacías de pagos recién creados.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

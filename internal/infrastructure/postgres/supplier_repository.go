package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/marketplace-api/internal/domain/entity"
	"github.com/tu-usuario/marketplace-api/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

const supplierColumns = `id, user_id, company_name, registration_number, address, documents, status, status_reason, created_at, updated_at`

// SupplierRepo implementación del puerto SupplierRepository sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador de persistencia para proveedores.
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

// Create persiste un nuevo proveedor (estado inicial pending).
func (r *SupplierRepo) Create(s *entity.Supplier) error {
	query := `
		INSERT INTO suppliers (` + supplierColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.UserID, s.CompanyName, s.RegistrationNumber, s.Address,
		s.Documents, s.Status, s.StatusReason, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor por ID.
func (r *SupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	return r.getOne(`SELECT `+supplierColumns+` FROM suppliers WHERE id = $1`, id)
}

// GetByUserID obtiene el proveedor más reciente del usuario (una solicitud
// rechazada puede convivir con una nueva en pending).
func (r *SupplierRepo) GetByUserID(userID string) (*entity.Supplier, error) {
	return r.getOne(`SELECT `+supplierColumns+` FROM suppliers WHERE user_id = $1 ORDER BY created_at DESC LIMIT 1`, userID)
}

// Update actualiza los datos de perfil (no el estado; ver UpdateStatus).
func (r *SupplierRepo) Update(s *entity.Supplier) error {
	query := `
		UPDATE suppliers SET company_name = $2, registration_number = $3, address = $4,
			documents = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.CompanyName, s.RegistrationNumber, s.Address, s.Documents, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update supplier: %w", err)
	}
	return nil
}

// UpdateStatus hace compare-and-swap: solo escribe si el estado en DB sigue
// siendo expected. RowsAffected 0 significa que otro request ganó la carrera.
func (r *SupplierRepo) UpdateStatus(id, expected, next, reason string) (bool, error) {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE suppliers SET status = $3, status_reason = $4, updated_at = now() WHERE id = $1 AND status = $2`,
		id, expected, next, reason,
	)
	if err != nil {
		return false, fmt.Errorf("update supplier status: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// ListByStatus lista proveedores por estado con paginación.
func (r *SupplierRepo) ListByStatus(status string, limit, offset int) ([]*entity.Supplier, error) {
	query := `
		SELECT ` + supplierColumns + `
		FROM suppliers WHERE status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		if err := rows.Scan(&s.ID, &s.UserID, &s.CompanyName, &s.RegistrationNumber, &s.Address,
			&s.Documents, &s.Status, &s.StatusReason, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

func (r *SupplierRepo) getOne(query string, arg any) (*entity.Supplier, error) {
	var s entity.Supplier
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&s.ID, &s.UserID, &s.CompanyName, &s.RegistrationNumber, &s.Address,
		&s.Documents, &s.Status, &s.StatusReason, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &s, nil
}

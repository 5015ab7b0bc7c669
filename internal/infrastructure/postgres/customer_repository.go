package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/facturas-api/internal/domain"
	"github.com/tu-usuario/facturas-api/internal/domain/entity"
	"github.com/tu-usuario/facturas-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

const customerColumns = `id, user_id, first_name, last_name, email, company, created_at, updated_at`

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	var company *string
	err := row.Scan(
		&c.ID, &c.UserID, &c.FirstName, &c.LastName, &c.Email, &company,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if company != nil {
		c.Company = *company
	}
	return &c, nil
}

// Create persiste un nuevo cliente.
func (r *CustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	query := `
		INSERT INTO customers (id, user_id, first_name, last_name, email, company, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		customer.ID, customer.UserID, customer.FirstName, customer.LastName,
		customer.Email, nullIfEmpty(customer.Company),
		customer.CreatedAt, customer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID. (nil, nil) si no existe.
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	c, err := scanCustomer(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

// ListByUser lista los clientes del usuario aplicando filtros, orden y
// paginación. first_name filtra por coincidencia parcial (ILIKE); last_name
// y company por igualdad exacta. La columna de orden pasa por la whitelist.
func (r *CustomerRepo) ListByUser(ctx context.Context, userID string, filter repository.CustomerFilter) ([]*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE user_id = $1`
	args := []any{userID}

	if filter.FirstName != "" {
		args = append(args, "%"+filter.FirstName+"%")
		query += fmt.Sprintf(" AND first_name ILIKE $%d", len(args))
	}
	if filter.LastName != "" {
		args = append(args, filter.LastName)
		query += fmt.Sprintf(" AND last_name = $%d", len(args))
	}
	if filter.Company != "" {
		args = append(args, filter.Company)
		query += fmt.Sprintf(" AND company = $%d", len(args))
	}

	orderBy := sortField(filter.OrderBy, customerSortFields, "last_name")
	orderDir := sortDir(filter.OrderDir, "ASC")
	query += fmt.Sprintf(" ORDER BY %s %s", orderBy, orderDir)

	args = append(args, filter.Limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))
	args = append(args, filter.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var list []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Update actualiza los campos mutables de un cliente.
func (r *CustomerRepo) Update(ctx context.Context, customer *entity.Customer) error {
	query := `
		UPDATE customers
		SET first_name = $2, last_name = $3, email = $4, company = $5, user_id = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		customer.ID, customer.FirstName, customer.LastName, customer.Email,
		nullIfEmpty(customer.Company), customer.UserID, customer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update customer: %w", err)
	}
	return nil
}

// Delete elimina un cliente por ID. Las facturas del cliente se eliminan
// antes dentro de la misma transacción (ver TxRunner); aquí no hay cascada.
func (r *CustomerRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	return nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

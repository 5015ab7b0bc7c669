package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/facturas-api/internal/domain"
	"github.com/tu-usuario/facturas-api/internal/domain/entity"
	"github.com/tu-usuario/facturas-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, customer_id, amount, sent_at, status, chrono, created_at, updated_at`

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	err := row.Scan(
		&inv.ID, &inv.CustomerID, &inv.Amount, &inv.SentAt, &inv.Status,
		&inv.Chrono, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// Create persiste una nueva factura.
func (r *InvoiceRepo) Create(ctx context.Context, invoice *entity.Invoice) error {
	if invoice.ID == "" {
		invoice.ID = uuid.New().String()
	}
	query := `
		INSERT INTO invoices (id, customer_id, amount, sent_at, status, chrono, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		invoice.ID, invoice.CustomerID, invoice.Amount, invoice.SentAt,
		invoice.Status, invoice.Chrono, invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// GetByID obtiene una factura por ID. (nil, nil) si no existe.
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	inv, err := scanInvoice(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

// ListByUser lista las facturas de todos los clientes del usuario, con orden
// (amount o sent_at; por defecto sent_at DESC) y paginación.
func (r *InvoiceRepo) ListByUser(ctx context.Context, userID string, filter repository.InvoiceFilter) ([]*entity.Invoice, error) {
	orderBy := sortField(filter.OrderBy, invoiceSortFields, "sent_at")
	orderDir := sortDir(filter.OrderDir, "DESC")
	query := fmt.Sprintf(`
		SELECT i.id, i.customer_id, i.amount, i.sent_at, i.status, i.chrono, i.created_at, i.updated_at
		FROM invoices i
		JOIN customers c ON c.id = i.customer_id
		WHERE c.user_id = $1
		ORDER BY i.%s %s
		LIMIT $2 OFFSET $3`, orderBy, orderDir)

	rows, err := r.q.Query(ctx, query, userID, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

// ListByCustomer devuelve todas las facturas del cliente ordenadas por fecha
// de envío descendente. Sin paginar: alimenta el sub-recurso y los agregados.
func (r *InvoiceRepo) ListByCustomer(ctx context.Context, customerID string) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE customer_id = $1 ORDER BY sent_at DESC`
	rows, err := r.q.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("list invoices by customer: %w", err)
	}
	defer rows.Close()

	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

// Update actualiza los campos mutables de una factura.
func (r *InvoiceRepo) Update(ctx context.Context, invoice *entity.Invoice) error {
	query := `
		UPDATE invoices
		SET amount = $2, sent_at = $3, status = $4, chrono = $5, customer_id = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		invoice.ID, invoice.Amount, invoice.SentAt, invoice.Status,
		invoice.Chrono, invoice.CustomerID, invoice.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	return nil
}

// Delete elimina una factura por ID.
func (r *InvoiceRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	return nil
}

// DeleteByCustomer elimina todas las facturas del cliente.
func (r *InvoiceRepo) DeleteByCustomer(ctx context.Context, customerID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM invoices WHERE customer_id = $1`, customerID)
	if err != nil {
		return fmt.Errorf("delete invoices by customer: %w", err)
	}
	return nil
}

// IncrementChrono aplica chrono = chrono + 1 en una sola sentencia UPDATE:
// el read-modify-write ocurre bajo el lock de fila de PostgreSQL, así que dos
// incrementos concurrentes sobre la misma factura se serializan y ninguno se
// pierde. (nil, nil) si la factura no existe.
func (r *InvoiceRepo) IncrementChrono(ctx context.Context, id string) (*entity.Invoice, error) {
	query := `
		UPDATE invoices
		SET chrono = chrono + 1, updated_at = now()
		WHERE id = $1
		RETURNING ` + invoiceColumns
	inv, err := scanInvoice(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		if IsRetryableTxError(err) {
			// El servidor garantiza que el UPDATE no se aplicó; el caso de
			// uso puede reintentar sin riesgo de incrementar dos veces.
			return nil, fmt.Errorf("%w: increment chrono: %v", domain.ErrConflict, err)
		}
		return nil, fmt.Errorf("increment chrono: %w", err)
	}
	return inv, nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/facturas-api/internal/application/billing"
	"github.com/tu-usuario/facturas-api/internal/domain/repository"
)

var _ billing.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Lo usa el borrado de clientes: facturas y cliente caen
// en la misma transacción o no cae ninguno.
func (r *TxRunner) Run(ctx context.Context, fn func(
	customerRepo repository.CustomerRepository,
	invoiceRepo repository.InvoiceRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	customerRepo := NewCustomerRepository(tx)
	invoiceRepo := NewInvoiceRepository(tx)

	if err := fn(customerRepo, invoiceRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

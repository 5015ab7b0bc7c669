package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/facturas-api/internal/domain/entity"
	"github.com/tu-usuario/facturas-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el resumen de facturación.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// GetStatusTotals agrupa monto y cantidad de facturas por estado para todos
// los clientes del usuario.
func (r *AnalyticsRepo) GetStatusTotals(ctx context.Context, userID string) ([]repository.StatusTotal, error) {
	const query = `
		SELECT i.status, COUNT(*), COALESCE(SUM(i.amount), 0)
		FROM invoices i
		JOIN customers c ON c.id = i.customer_id
		WHERE c.user_id = $1
		GROUP BY i.status
		ORDER BY i.status`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetStatusTotals: %w", err)
	}
	defer rows.Close()

	var results []repository.StatusTotal
	for rows.Next() {
		var row repository.StatusTotal
		if err := rows.Scan(&row.Status, &row.Count, &row.Total); err != nil {
			return nil, fmt.Errorf("analytics.GetStatusTotals scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetUnpaidTotal suma el monto de las facturas no saldadas del usuario.
func (r *AnalyticsRepo) GetUnpaidTotal(ctx context.Context, userID string) (decimal.Decimal, error) {
	const query = `
		SELECT COALESCE(SUM(i.amount), 0)
		FROM invoices i
		JOIN customers c ON c.id = i.customer_id
		WHERE c.user_id = $1
		  AND i.status NOT IN ($2, $3)`

	var total decimal.Decimal
	err := r.pool.QueryRow(ctx, query, userID,
		entity.InvoiceStatusPaid, entity.InvoiceStatusCancelled,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("analytics.GetUnpaidTotal: %w", err)
	}
	return total.Round(2), nil
}

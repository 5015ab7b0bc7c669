package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// StatusTotal total facturado y número de facturas para un estado dado.
type StatusTotal struct {
	Status string
	Count  int64
	Total  decimal.Decimal
}

// AnalyticsRepository consultas de solo lectura para el resumen de
// facturación del usuario.
type AnalyticsRepository interface {
	// GetStatusTotals agrupa monto y cantidad de facturas por estado.
	GetStatusTotals(ctx context.Context, userID string) ([]StatusTotal, error)
	// GetUnpaidTotal suma el monto de las facturas no saldadas (ni PAID ni
	// CANCELLED) de todos los clientes del usuario.
	GetUnpaidTotal(ctx context.Context, userID string) (decimal.Decimal, error)
}

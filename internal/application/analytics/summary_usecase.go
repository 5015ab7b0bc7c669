// Package analytics contiene los casos de uso de reportes de facturación.
package analytics

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/facturas-api/internal/application/dto"
	"github.com/tu-usuario/facturas-api/internal/domain/repository"
)

// SummaryUseCase genera el resumen de facturación del usuario.
//
// Fuente de datos: AnalyticsRepository (consultas read-only). No accede
// directamente a la tabla de facturas; delega todo en el repositorio.
type SummaryUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewSummaryUseCase construye el caso de uso.
func NewSummaryUseCase(analyticsRepo repository.AnalyticsRepository) *SummaryUseCase {
	return &SummaryUseCase{analyticsRepo: analyticsRepo}
}

// GetSummary construye el SummaryResponse para el usuario indicado.
//
// Dos llamadas en paralelo:
//  1. GetStatusTotals → cantidad y total facturado por estado
//  2. GetUnpaidTotal  → total pendiente de cobro
func (uc *SummaryUseCase) GetSummary(ctx context.Context, userID string) (*dto.SummaryResponse, error) {
	type totalsResult struct {
		totals []repository.StatusTotal
		err    error
	}
	type unpaidResult struct {
		total decimal.Decimal
		err   error
	}

	totalsCh := make(chan totalsResult, 1)
	unpaidCh := make(chan unpaidResult, 1)

	go func() {
		totals, err := uc.analyticsRepo.GetStatusTotals(ctx, userID)
		totalsCh <- totalsResult{totals, err}
	}()
	go func() {
		total, err := uc.analyticsRepo.GetUnpaidTotal(ctx, userID)
		unpaidCh <- unpaidResult{total, err}
	}()

	totals := <-totalsCh
	unpaid := <-unpaidCh

	if totals.err != nil {
		return nil, fmt.Errorf("resumen: totales por estado: %w", totals.err)
	}
	if unpaid.err != nil {
		return nil, fmt.Errorf("resumen: total pendiente: %w", unpaid.err)
	}

	byStatus := make([]dto.StatusTotalDTO, 0, len(totals.totals))
	for _, t := range totals.totals {
		byStatus = append(byStatus, dto.StatusTotalDTO{
			Status: t.Status,
			Count:  t.Count,
			Total:  t.Total.Round(2),
		})
	}

	return &dto.SummaryResponse{
		ByStatus:    byStatus,
		UnpaidTotal: unpaid.total.Round(2),
	}, nil
}

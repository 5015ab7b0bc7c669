package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/facturas-api/internal/domain/billing"
	"github.com/tu-usuario/facturas-api/internal/domain/entity"
)

func invoice(id, status, amount string) *entity.Invoice {
	return &entity.Invoice{
		ID:     id,
		Status: status,
		Amount: decimal.RequireFromString(amount),
	}
}

func TestTotalAmount_SumaYRedondea(t *testing.T) {
	invoices := []*entity.Invoice{
		invoice("f1", entity.InvoiceStatusPaid, "100.005"),
		invoice("f2", entity.InvoiceStatusSent, "75.001"),
	}

	total, err := billing.TotalAmount(invoices)
	require.NoError(t, err)
	// 175.006 → 175.01 con redondeo a 2 decimales
	assert.Equal(t, "175.01", total.StringFixed(2), "la suma debe redondearse a 2 decimales")
}

func TestTotalAmount_ConjuntoVacioEsCero(t *testing.T) {
	total, err := billing.TotalAmount(nil)
	require.NoError(t, err)
	assert.True(t, total.IsZero(), "sin facturas el total debe ser 0.00")
}

func TestTotalAmount_EsIdempotente(t *testing.T) {
	invoices := []*entity.Invoice{
		invoice("f1", entity.InvoiceStatusSent, "33.33"),
		invoice("f2", entity.InvoiceStatusPaid, "66.67"),
	}

	a, err := billing.TotalAmount(invoices)
	require.NoError(t, err)
	b, err := billing.TotalAmount(invoices)
	require.NoError(t, err)
	assert.True(t, a.Equal(b), "recalcular sobre el mismo conjunto debe dar el mismo total")
}

func TestAgregados_MezclaDeEstados(t *testing.T) {
	invoices := []*entity.Invoice{
		invoice("f1", entity.InvoiceStatusSent, "100"),
		invoice("f2", entity.InvoiceStatusPaid, "50"),
		invoice("f3", entity.InvoiceStatusCancelled, "25.005"),
	}

	total, err := billing.TotalAmount(invoices)
	require.NoError(t, err)
	assert.Equal(t, "175.01", total.StringFixed(2))

	unpaid, err := billing.UnpaidAmount(invoices)
	require.NoError(t, err)
	assert.Equal(t, "100.00", unpaid.StringFixed(2))
}

func TestUnpaidAmount_ExcluyePagadasYAnuladas(t *testing.T) {
	invoices := []*entity.Invoice{
		invoice("f1", entity.InvoiceStatusSent, "100.005"),
		invoice("f2", entity.InvoiceStatusPaid, "50.00"),
		invoice("f3", entity.InvoiceStatusCancelled, "25.00"),
	}

	unpaid, err := billing.UnpaidAmount(invoices)
	require.NoError(t, err)
	assert.Equal(t, "100.01", unpaid.StringFixed(2), "solo las facturas no saldadas cuentan como pendientes")
}

func TestUnpaidAmount_TodoSaldadoEsCero(t *testing.T) {
	invoices := []*entity.Invoice{
		invoice("f1", entity.InvoiceStatusPaid, "10"),
		invoice("f2", entity.InvoiceStatusCancelled, "20"),
	}

	unpaid, err := billing.UnpaidAmount(invoices)
	require.NoError(t, err)
	assert.True(t, unpaid.IsZero(), "con todo saldado el pendiente debe ser 0.00")
}

func TestAgregados_FallanConMontoInvalido(t *testing.T) {
	cases := []struct {
		name   string
		amount string
	}{
		{"monto cero", "0"},
		{"monto negativo", "-5"},
		{"monto sobre el máximo", "1000000.01"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			invoices := []*entity.Invoice{
				invoice("ok", entity.InvoiceStatusSent, "10"),
				invoice("mala", entity.InvoiceStatusSent, tc.amount),
			}

			_, err := billing.TotalAmount(invoices)
			assert.ErrorIs(t, err, billing.ErrInvalidAmount, "el total debe fallar en voz alta, nunca coaccionar a cero")

			_, err = billing.UnpaidAmount(invoices)
			assert.ErrorIs(t, err, billing.ErrInvalidAmount, "el pendiente debe fallar en voz alta, nunca coaccionar a cero")
		})
	}
}

func TestAgregados_MontoEnElMaximoEsValido(t *testing.T) {
	invoices := []*entity.Invoice{invoice("f1", entity.InvoiceStatusSent, "1000000")}

	total, err := billing.TotalAmount(invoices)
	require.NoError(t, err)
	assert.Equal(t, "1000000.00", total.StringFixed(2))
}

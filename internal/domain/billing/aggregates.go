// Package billing contiene las reglas de negocio puras de facturación:
// agregados derivados sobre el conjunto de facturas de un cliente.
package billing

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/facturas-api/internal/domain/entity"
)

// ErrInvalidAmount señala un monto fuera de rango dentro del conjunto de
// facturas. Los agregados fallan en voz alta en vez de tratar el monto como
// cero: un cero aquí casi siempre es un dato que se saltó la validación.
var ErrInvalidAmount = fmt.Errorf("monto de factura inválido")

// TotalAmount suma los montos de todas las facturas y redondea a 2 decimales.
// Conjunto vacío → 0.00. Se recalcula en cada llamada; nunca se cachea.
func TotalAmount(invoices []*entity.Invoice) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, inv := range invoices {
		if err := checkAmount(inv); err != nil {
			return decimal.Zero, err
		}
		total = total.Add(inv.Amount)
	}
	return total.Round(2), nil
}

// UnpaidAmount suma los montos de las facturas cuyo estado no es PAID ni
// CANCELLED, redondeado a 2 decimales. Conjunto vacío o todo saldado → 0.00.
func UnpaidAmount(invoices []*entity.Invoice) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, inv := range invoices {
		if err := checkAmount(inv); err != nil {
			return decimal.Zero, err
		}
		if inv.Settled() {
			continue
		}
		total = total.Add(inv.Amount)
	}
	return total.Round(2), nil
}

// checkAmount rechaza montos fuera de (0, 1.000.000]. El cero se considera
// monto ausente.
func checkAmount(inv *entity.Invoice) error {
	if inv.Amount.IsZero() || inv.Amount.IsNegative() {
		return fmt.Errorf("%w: factura %s con monto %s", ErrInvalidAmount, inv.ID, inv.Amount.String())
	}
	if inv.Amount.GreaterThan(entity.MaxInvoiceAmount) {
		return fmt.Errorf("%w: factura %s excede el máximo (%s)", ErrInvalidAmount, inv.ID, inv.Amount.String())
	}
	return nil
}

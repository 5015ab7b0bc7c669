package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados válidos de una factura.
const (
	InvoiceStatusSent      = "SENT"      // Enviada al cliente, pendiente de pago
	InvoiceStatusPaid      = "PAID"      // Pagada
	InvoiceStatusCancelled = "CANCELLED" // Anulada
)

// ValidInvoiceStatus indica si s es uno de los tres estados permitidos.
func ValidInvoiceStatus(s string) bool {
	return s == InvoiceStatusSent || s == InvoiceStatusPaid || s == InvoiceStatusCancelled
}

// MaxInvoiceAmount monto máximo permitido por factura.
var MaxInvoiceAmount = decimal.NewFromInt(1_000_000)

// Invoice representa una factura emitida a un cliente. Chrono es el
// consecutivo legal de facturación; solo lo muta la acción de incremento.
type Invoice struct {
	ID         string
	CustomerID string
	Amount     decimal.Decimal
	SentAt     time.Time
	Status     string // SENT, PAID, CANCELLED
	Chrono     int
	Customer   *Customer // cargado bajo demanda
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Settled indica si la factura ya no cuenta como pendiente de cobro.
func (i *Invoice) Settled() bool {
	return i.Status == InvoiceStatusPaid || i.Status == InvoiceStatusCancelled
}

// Owner devuelve el usuario dueño efectivo de la factura: siempre el dueño
// actual de su cliente, nunca un valor almacenado aparte. Nil si el grafo no
// está cargado.
func (i *Invoice) Owner() *User {
	if i.Customer == nil {
		return nil
	}
	return i.Customer.User
}

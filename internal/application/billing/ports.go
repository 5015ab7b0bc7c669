package billing

import (
	"context"

	"github.com/tu-usuario/facturas-api/internal/domain/entity"
	"github.com/tu-usuario/facturas-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con repos atados a ella.
// Lo implementa la infraestructura postgres.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		customerRepo repository.CustomerRepository,
		invoiceRepo repository.InvoiceRepository,
	) error) error
}

// InvoicePDFGenerator genera la representación gráfica de una factura.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, invoice *entity.Invoice, customer *entity.Customer, user *entity.User) ([]byte, error)
}

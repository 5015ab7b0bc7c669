package billing

import (
	"github.com/tu-usuario/facturas-api/internal/application/dto"
	domainbilling "github.com/tu-usuario/facturas-api/internal/domain/billing"
	"github.com/tu-usuario/facturas-api/internal/domain/entity"
)

// BuildCustomerView arma la vista de cliente: campos propios, facturas
// embebidas y los dos agregados derivados, recalculados sobre el conjunto
// recibido. Error si algún monto es inválido (nunca se coacciona a cero).
func BuildCustomerView(customer *entity.Customer, invoices []*entity.Invoice) (*dto.CustomerResponse, error) {
	total, err := domainbilling.TotalAmount(invoices)
	if err != nil {
		return nil, err
	}
	unpaid, err := domainbilling.UnpaidAmount(invoices)
	if err != nil {
		return nil, err
	}

	embedded := make([]dto.InvoiceEmbedded, 0, len(invoices))
	for _, inv := range invoices {
		embedded = append(embedded, dto.InvoiceEmbedded{
			ID:     inv.ID,
			Amount: inv.Amount,
			SentAt: inv.SentAt,
			Status: inv.Status,
			Chrono: inv.Chrono,
		})
	}

	return &dto.CustomerResponse{
		ID:           customer.ID,
		UserID:       customer.UserID,
		FirstName:    customer.FirstName,
		LastName:     customer.LastName,
		Email:        customer.Email,
		Company:      customer.Company,
		TotalAmount:  total,
		UnpaidAmount: unpaid,
		Invoices:     embedded,
	}, nil
}

// buildInvoiceView arma la vista de factura con el cliente embebido y el
// usuario dueño derivado a través del cliente.
func buildInvoiceView(invoice *entity.Invoice, customer *entity.Customer, user *entity.User) *dto.InvoiceResponse {
	return &dto.InvoiceResponse{
		ID:     invoice.ID,
		Amount: invoice.Amount,
		SentAt: invoice.SentAt,
		Status: invoice.Status,
		Chrono: invoice.Chrono,
		Customer: dto.CustomerEmbedded{
			ID:        customer.ID,
			FirstName: customer.FirstName,
			LastName:  customer.LastName,
			Email:     customer.Email,
			Company:   customer.Company,
		},
		User: dto.UserEmbedded{
			ID:        user.ID,
			Email:     user.Email,
			FirstName: user.FirstName,
			LastName:  user.LastName,
		},
	}
}

package repository

import (
	"context"

	"github.com/tu-usuario/facturas-api/internal/domain/entity"
)

// InvoiceFilter orden y paginación para el listado de facturas.
// OrderBy solo admite amount y sent_at; por defecto sent_at DESC.
type InvoiceFilter struct {
	OrderBy  string
	OrderDir string
	Limit    int
	Offset   int
}

// InvoiceRepository define el puerto de persistencia para Invoice.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	// ListByUser lista las facturas cuyos clientes pertenecen al usuario.
	ListByUser(ctx context.Context, userID string, filter InvoiceFilter) ([]*entity.Invoice, error)
	// ListByCustomer devuelve todas las facturas del cliente, sin paginar:
	// alimenta el sub-recurso y el cálculo de agregados.
	ListByCustomer(ctx context.Context, customerID string) ([]*entity.Invoice, error)
	Update(ctx context.Context, invoice *entity.Invoice) error
	Delete(ctx context.Context, id string) error
	// DeleteByCustomer elimina todas las facturas del cliente; se usa dentro
	// de la transacción que borra al cliente para no dejar facturas huérfanas.
	DeleteByCustomer(ctx context.Context, customerID string) error
	// IncrementChrono aplica chrono = chrono + 1 de forma atómica en el
	// storage y devuelve la factura actualizada. (nil, nil) si el id no
	// existe; domain.ErrConflict (envuelto) si el storage garantizó que el
	// incremento no se aplicó y es seguro reintentar.
	IncrementChrono(ctx context.Context, id string) (*entity.Invoice, error)
}

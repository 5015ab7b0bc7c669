package repository

import (
	"context"

	"github.com/tu-usuario/facturas-api/internal/domain/entity"
)

// CustomerFilter filtros y orden para el listado de clientes.
// FirstName busca por coincidencia parcial (ILIKE); LastName y Company son
// coincidencia exacta. OrderBy se valida contra una whitelist en el adaptador.
type CustomerFilter struct {
	FirstName string
	LastName  string
	Company   string
	OrderBy   string
	OrderDir  string
	Limit     int
	Offset    int
}

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	ListByUser(ctx context.Context, userID string, filter CustomerFilter) ([]*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id string) error
}

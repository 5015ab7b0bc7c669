// Package users expone la vista de perfil del usuario autenticado.
package users

import (
	"context"

	"github.com/tu-usuario/facturas-api/internal/application/billing"
	"github.com/tu-usuario/facturas-api/internal/application/dto"
	"github.com/tu-usuario/facturas-api/internal/domain"
	"github.com/tu-usuario/facturas-api/internal/domain/repository"
)

// profilePageSize tamaño de página al recorrer los clientes del perfil.
const profilePageSize = 100

// ProfileUseCase arma la vista completa del usuario: sus clientes anidados,
// cada uno con sus facturas y agregados.
type ProfileUseCase struct {
	userRepo     repository.UserRepository
	customerRepo repository.CustomerRepository
	invoiceRepo  repository.InvoiceRepository
}

// NewProfileUseCase construye el caso de uso.
func NewProfileUseCase(
	userRepo repository.UserRepository,
	customerRepo repository.CustomerRepository,
	invoiceRepo repository.InvoiceRepository,
) *ProfileUseCase {
	return &ProfileUseCase{
		userRepo:     userRepo,
		customerRepo: customerRepo,
		invoiceRepo:  invoiceRepo,
	}
}

// Me devuelve la vista del usuario autenticado con todos sus clientes.
func (uc *ProfileUseCase) Me(ctx context.Context, userID string) (*dto.UserViewResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	view := &dto.UserViewResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Customers: []dto.CustomerResponse{},
	}

	// Se recorren todas las páginas: el perfil no se trunca.
	for offset := 0; ; offset += profilePageSize {
		filter := repository.CustomerFilter{Limit: profilePageSize, Offset: offset}
		customers, err := uc.customerRepo.ListByUser(ctx, userID, filter)
		if err != nil {
			return nil, err
		}
		for _, c := range customers {
			invoices, err := uc.invoiceRepo.ListByCustomer(ctx, c.ID)
			if err != nil {
				return nil, err
			}
			cv, err := billing.BuildCustomerView(c, invoices)
			if err != nil {
				return nil, err
			}
			view.Customers = append(view.Customers, *cv)
		}
		if len(customers) < profilePageSize {
			break
		}
	}
	return view, nil
}

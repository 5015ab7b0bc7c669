package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/facturas-api/internal/application/dto"
	"github.com/tu-usuario/facturas-api/internal/domain"
	"github.com/tu-usuario/facturas-api/internal/domain/entity"
	"github.com/tu-usuario/facturas-api/internal/domain/repository"
	"github.com/tu-usuario/facturas-api/pkg/validate"
)

// CustomerUseCase casos de uso de clientes: CRUD con filtros, agregados
// derivados y borrado transaccional (cliente + facturas, nunca huérfanas).
type CustomerUseCase struct {
	customerRepo repository.CustomerRepository
	invoiceRepo  repository.InvoiceRepository
	userRepo     repository.UserRepository
	tx           TxRunner
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(
	customerRepo repository.CustomerRepository,
	invoiceRepo repository.InvoiceRepository,
	userRepo repository.UserRepository,
	tx TxRunner,
) *CustomerUseCase {
	return &CustomerUseCase{
		customerRepo: customerRepo,
		invoiceRepo:  invoiceRepo,
		userRepo:     userRepo,
		tx:           tx,
	}
}

// Create crea un cliente para el usuario del token. Todas las violaciones de
// validación se devuelven juntas.
func (uc *CustomerUseCase) Create(ctx context.Context, userID string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if violations := validate.Struct(in); violations != nil {
		return nil, violations
	}
	owner, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, domain.ErrUserNotFound
	}

	now := time.Now()
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		UserID:    owner.ID,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Company:   in.Company,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return BuildCustomerView(customer, nil)
}

// Get devuelve la vista de un cliente con sus facturas y agregados,
// recalculados sobre el estado actual.
func (uc *CustomerUseCase) Get(ctx context.Context, userID, id string) (*dto.CustomerResponse, error) {
	customer, err := uc.ownedCustomer(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	invoices, err := uc.invoiceRepo.ListByCustomer(ctx, customer.ID)
	if err != nil {
		return nil, err
	}
	return BuildCustomerView(customer, invoices)
}

// List lista los clientes del usuario con filtros, orden y paginación, cada
// uno con sus agregados al día.
func (uc *CustomerUseCase) List(ctx context.Context, userID string, filter repository.CustomerFilter) ([]*dto.CustomerResponse, error) {
	if filter.Limit <= 0 {
		filter.Limit = dto.DefaultPageSize
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	customers, err := uc.customerRepo.ListByUser(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomerResponse, 0, len(customers))
	for _, c := range customers {
		invoices, err := uc.invoiceRepo.ListByCustomer(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		view, err := BuildCustomerView(c, invoices)
		if err != nil {
			return nil, err
		}
		out = append(out, view)
	}
	return out, nil
}

// Update reemplaza los campos mutables del cliente (PUT).
func (uc *CustomerUseCase) Update(ctx context.Context, userID, id string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if violations := validate.Struct(in); violations != nil {
		return nil, violations
	}
	customer, err := uc.ownedCustomer(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	customer.FirstName = in.FirstName
	customer.LastName = in.LastName
	customer.Email = in.Email
	customer.Company = in.Company
	customer.UpdatedAt = time.Now()
	if err := uc.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	invoices, err := uc.invoiceRepo.ListByCustomer(ctx, customer.ID)
	if err != nil {
		return nil, err
	}
	return BuildCustomerView(customer, invoices)
}

// Patch aplica solo los campos presentes y revalida el estado resultante
// completo antes de persistir.
func (uc *CustomerUseCase) Patch(ctx context.Context, userID, id string, in dto.PatchCustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := uc.ownedCustomer(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	merged := dto.CreateCustomerRequest{
		FirstName: customer.FirstName,
		LastName:  customer.LastName,
		Email:     customer.Email,
		Company:   customer.Company,
	}
	if in.FirstName != nil {
		merged.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		merged.LastName = *in.LastName
	}
	if in.Email != nil {
		merged.Email = *in.Email
	}
	if in.Company != nil {
		merged.Company = *in.Company
	}
	return uc.Update(ctx, userID, id, merged)
}

// Delete elimina el cliente y todas sus facturas en una sola transacción.
func (uc *CustomerUseCase) Delete(ctx context.Context, userID, id string) error {
	customer, err := uc.ownedCustomer(ctx, userID, id)
	if err != nil {
		return err
	}
	return uc.tx.Run(ctx, func(
		customerRepo repository.CustomerRepository,
		invoiceRepo repository.InvoiceRepository,
	) error {
		if err := invoiceRepo.DeleteByCustomer(ctx, customer.ID); err != nil {
			return err
		}
		return customerRepo.Delete(ctx, customer.ID)
	})
}

// ListInvoices sub-recurso GET /customers/:id/invoices: facturas del cliente
// sin referencias inversas.
func (uc *CustomerUseCase) ListInvoices(ctx context.Context, userID, customerID string) ([]dto.InvoiceEmbedded, error) {
	customer, err := uc.ownedCustomer(ctx, userID, customerID)
	if err != nil {
		return nil, err
	}
	invoices, err := uc.invoiceRepo.ListByCustomer(ctx, customer.ID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InvoiceEmbedded, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, dto.InvoiceEmbedded{
			ID:     inv.ID,
			Amount: inv.Amount,
			SentAt: inv.SentAt,
			Status: inv.Status,
			Chrono: inv.Chrono,
		})
	}
	return out, nil
}

// ownedCustomer carga el cliente y verifica que pertenece al usuario.
func (uc *CustomerUseCase) ownedCustomer(ctx context.Context, userID, id string) (*entity.Customer, error) {
	customer, err := uc.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	if customer.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return customer, nil
}

package billing

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/tu-usuario/facturas-api/internal/application/dto"
	"github.com/tu-usuario/facturas-api/internal/domain"
	"github.com/tu-usuario/facturas-api/internal/domain/entity"
	"github.com/tu-usuario/facturas-api/internal/domain/repository"
	"github.com/tu-usuario/facturas-api/pkg/validate"
)

// maxIncrementAttempts reintentos ante conflictos confirmados como no
// aplicados. Agotado el presupuesto se devuelve domain.ErrConflict.
const maxIncrementAttempts = 3

// incrementTimeout cota por intento contra el storage.
const incrementTimeout = 3 * time.Second

// InvoiceUseCase casos de uso de facturas: CRUD, listado ordenable por monto
// o fecha de envío, e incremento atómico del chrono.
type InvoiceUseCase struct {
	invoiceRepo  repository.InvoiceRepository
	customerRepo repository.CustomerRepository
	userRepo     repository.UserRepository
	log          zerolog.Logger
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(
	invoiceRepo repository.InvoiceRepository,
	customerRepo repository.CustomerRepository,
	userRepo repository.UserRepository,
	log zerolog.Logger,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		userRepo:     userRepo,
		log:          log,
	}
}

// Create crea una factura para un cliente del usuario. Todas las violaciones
// de validación se recolectan y devuelven juntas, incluida la de customer_id
// inexistente o ajeno.
func (uc *InvoiceUseCase) Create(ctx context.Context, userID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	violations := validate.Struct(in)
	if v := validate.Amount("amount", in.Amount, entity.MaxInvoiceAmount); v != nil {
		violations = append(violations, *v)
	}
	var sentAt time.Time
	if in.SentAt != "" {
		parsed, v := validate.Date("sent_at", in.SentAt)
		if v != nil {
			violations = append(violations, *v)
		}
		sentAt = parsed
	}

	var customer *entity.Customer
	if in.CustomerID != "" {
		var err error
		customer, err = uc.customerRepo.GetByID(ctx, in.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil || customer.UserID != userID {
			violations = append(violations, validate.Violation{
				Field: "customer_id", Message: "el cliente no existe",
			})
		}
	}
	if len(violations) > 0 {
		return nil, violations
	}

	now := time.Now()
	invoice := &entity.Invoice{
		ID:         uuid.New().String(),
		CustomerID: customer.ID,
		Amount:     in.Amount,
		SentAt:     sentAt,
		Status:     in.Status,
		Chrono:     in.Chrono,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, err
	}

	owner, err := uc.owner(ctx, customer)
	if err != nil {
		return nil, err
	}
	return buildInvoiceView(invoice, customer, owner), nil
}

// Get devuelve una factura con su cliente y usuario embebidos.
func (uc *InvoiceUseCase) Get(ctx context.Context, userID, id string) (*dto.InvoiceResponse, error) {
	invoice, customer, err := uc.ownedInvoice(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	owner, err := uc.owner(ctx, customer)
	if err != nil {
		return nil, err
	}
	return buildInvoiceView(invoice, customer, owner), nil
}

// List lista las facturas del usuario. Orden solo por amount o sent_at; por
// defecto sent_at descendente, 20 por página.
func (uc *InvoiceUseCase) List(ctx context.Context, userID string, filter repository.InvoiceFilter) ([]*dto.InvoiceResponse, error) {
	if filter.Limit <= 0 {
		filter.Limit = dto.DefaultPageSize
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	invoices, err := uc.invoiceRepo.ListByUser(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	owner, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, domain.ErrUserNotFound
	}

	// Las facturas de la página suelen compartir cliente; se cachea por ID.
	customers := make(map[string]*entity.Customer)
	out := make([]*dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		customer, ok := customers[inv.CustomerID]
		if !ok {
			customer, err = uc.customerRepo.GetByID(ctx, inv.CustomerID)
			if err != nil {
				return nil, err
			}
			if customer == nil {
				return nil, domain.ErrNotFound
			}
			customers[inv.CustomerID] = customer
		}
		out = append(out, buildInvoiceView(inv, customer, owner))
	}
	return out, nil
}

// Update reemplaza los campos mutables de la factura (PUT).
func (uc *InvoiceUseCase) Update(ctx context.Context, userID, id string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	invoice, _, err := uc.ownedInvoice(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	violations := validate.Struct(in)
	if v := validate.Amount("amount", in.Amount, entity.MaxInvoiceAmount); v != nil {
		violations = append(violations, *v)
	}
	var sentAt time.Time
	if in.SentAt != "" {
		parsed, v := validate.Date("sent_at", in.SentAt)
		if v != nil {
			violations = append(violations, *v)
		}
		sentAt = parsed
	}
	var customer *entity.Customer
	if in.CustomerID != "" {
		customer, err = uc.customerRepo.GetByID(ctx, in.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil || customer.UserID != userID {
			violations = append(violations, validate.Violation{
				Field: "customer_id", Message: "el cliente no existe",
			})
		}
	}
	if len(violations) > 0 {
		return nil, violations
	}

	invoice.CustomerID = customer.ID
	invoice.Amount = in.Amount
	invoice.SentAt = sentAt
	invoice.Status = in.Status
	invoice.Chrono = in.Chrono
	invoice.UpdatedAt = time.Now()
	if err := uc.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, err
	}

	owner, err := uc.owner(ctx, customer)
	if err != nil {
		return nil, err
	}
	return buildInvoiceView(invoice, customer, owner), nil
}

// Patch aplica solo los campos presentes y revalida el estado completo.
func (uc *InvoiceUseCase) Patch(ctx context.Context, userID, id string, in dto.PatchInvoiceRequest) (*dto.InvoiceResponse, error) {
	invoice, _, err := uc.ownedInvoice(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	merged := dto.CreateInvoiceRequest{
		CustomerID: invoice.CustomerID,
		Amount:     invoice.Amount,
		SentAt:     invoice.SentAt.Format(time.RFC3339),
		Status:     invoice.Status,
		Chrono:     invoice.Chrono,
	}
	if in.CustomerID != nil {
		merged.CustomerID = *in.CustomerID
	}
	if in.Amount != nil {
		merged.Amount = *in.Amount
	}
	if in.SentAt != nil {
		merged.SentAt = *in.SentAt
	}
	if in.Status != nil {
		merged.Status = *in.Status
	}
	if in.Chrono != nil {
		merged.Chrono = *in.Chrono
	}
	return uc.Update(ctx, userID, id, merged)
}

// Delete elimina una factura del usuario.
func (uc *InvoiceUseCase) Delete(ctx context.Context, userID, id string) error {
	invoice, _, err := uc.ownedInvoice(ctx, userID, id)
	if err != nil {
		return err
	}
	return uc.invoiceRepo.Delete(ctx, invoice.ID)
}

// Increment aplica chrono = chrono + 1 de forma atómica. El incremento lo
// hace el storage en una sola sentencia; acá solo se reintenta ante
// conflictos que el storage garantizó como no aplicados, hasta agotar el
// presupuesto. Nunca se incrementa dos veces por una misma petición.
func (uc *InvoiceUseCase) Increment(ctx context.Context, userID, id string) (*dto.InvoiceResponse, error) {
	// Chequeo de propiedad antes de tocar nada.
	_, customer, err := uc.ownedInvoice(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	var invoice *entity.Invoice
	for attempt := 1; ; attempt++ {
		invoice, err = uc.incrementOnce(ctx, id)
		if err == nil {
			break
		}
		if !errors.Is(err, domain.ErrConflict) || attempt >= maxIncrementAttempts {
			if errors.Is(err, domain.ErrConflict) {
				uc.log.Warn().Str("invoice_id", id).Int("attempts", attempt).
					Msg("incremento de chrono agotó los reintentos")
				return nil, domain.ErrConflict
			}
			return nil, err
		}
		uc.log.Debug().Str("invoice_id", id).Int("attempt", attempt).
			Msg("conflicto al incrementar chrono, reintentando")
	}
	if invoice == nil {
		// Borrada entre el chequeo de propiedad y el UPDATE.
		return nil, domain.ErrNotFound
	}

	owner, err := uc.owner(ctx, customer)
	if err != nil {
		return nil, err
	}
	return buildInvoiceView(invoice, customer, owner), nil
}

func (uc *InvoiceUseCase) incrementOnce(ctx context.Context, id string) (*entity.Invoice, error) {
	ctx, cancel := context.WithTimeout(ctx, incrementTimeout)
	defer cancel()
	return uc.invoiceRepo.IncrementChrono(ctx, id)
}

// ownedInvoice carga la factura y su cliente, y verifica la propiedad a
// través del cliente (las facturas no guardan user_id propio).
func (uc *InvoiceUseCase) ownedInvoice(ctx context.Context, userID, id string) (*entity.Invoice, *entity.Customer, error) {
	invoice, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if invoice == nil {
		return nil, nil, domain.ErrNotFound
	}
	customer, err := uc.customerRepo.GetByID(ctx, invoice.CustomerID)
	if err != nil {
		return nil, nil, err
	}
	if customer == nil {
		return nil, nil, domain.ErrNotFound
	}
	if customer.UserID != userID {
		return nil, nil, domain.ErrForbidden
	}
	return invoice, customer, nil
}

func (uc *InvoiceUseCase) owner(ctx context.Context, customer *entity.Customer) (*entity.User, error) {
	owner, err := uc.userRepo.GetByID(ctx, customer.UserID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, domain.ErrUserNotFound
	}
	return owner, nil
}

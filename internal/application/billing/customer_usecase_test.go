package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/facturas-api/internal/application/billing"
	"github.com/tu-usuario/facturas-api/internal/application/dto"
	"github.com/tu-usuario/facturas-api/internal/domain"
	"github.com/tu-usuario/facturas-api/internal/domain/entity"
	"github.com/tu-usuario/facturas-api/internal/domain/repository"
)

type customerFixture struct {
	userRepo     *fakeUserRepo
	customerRepo *fakeCustomerRepo
	invoiceRepo  *fakeInvoiceRepo
	uc           *billing.CustomerUseCase
}

func newCustomerFixture(customers []*entity.Customer, invoices []*entity.Invoice) *customerFixture {
	user := &entity.User{ID: "u1", Email: "ana@example.com", FirstName: "Ana", LastName: "Gómez"}
	otherUser := &entity.User{ID: "u2", Email: "otro@example.com", FirstName: "Luis", LastName: "Pérez"}
	f := &customerFixture{
		userRepo:     newFakeUserRepo(user, otherUser),
		customerRepo: newFakeCustomerRepo(customers...),
		invoiceRepo:  newFakeInvoiceRepo(invoices...),
	}
	tx := &fakeTxRunner{customerRepo: f.customerRepo, invoiceRepo: f.invoiceRepo}
	f.uc = billing.NewCustomerUseCase(f.customerRepo, f.invoiceRepo, f.userRepo, tx)
	return f
}

func customerOf(userID, id, firstName, lastName string) *entity.Customer {
	return &entity.Customer{
		ID: id, UserID: userID,
		FirstName: firstName, LastName: lastName,
		Email: firstName + "@example.com",
	}
}

func invoiceOf(id, customerID, status, amount string) *entity.Invoice {
	return &entity.Invoice{
		ID:         id,
		CustomerID: customerID,
		Amount:     decimal.RequireFromString(amount),
		SentAt:     time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		Status:     status,
		Chrono:     1,
	}
}

func TestGetCustomer_CalculaLosAgregados(t *testing.T) {
	f := newCustomerFixture(
		[]*entity.Customer{customerOf("u1", "c1", "Carlos", "Ruiz")},
		[]*entity.Invoice{
			invoiceOf("f1", "c1", entity.InvoiceStatusSent, "100.005"),
			invoiceOf("f2", "c1", entity.InvoiceStatusPaid, "75.001"),
			invoiceOf("f3", "c1", entity.InvoiceStatusCancelled, "50"),
		},
	)

	out, err := f.uc.Get(context.Background(), "u1", "c1")
	require.NoError(t, err)
	assert.Equal(t, "225.01", out.TotalAmount.StringFixed(2), "total = suma redondeada de todas las facturas")
	assert.Equal(t, "100.01", out.UnpaidAmount.StringFixed(2), "pendiente = solo las no saldadas")
	assert.Len(t, out.Invoices, 3)
}

func TestGetCustomer_MontoInvalidoFallaEnVozAlta(t *testing.T) {
	f := newCustomerFixture(
		[]*entity.Customer{customerOf("u1", "c1", "Carlos", "Ruiz")},
		[]*entity.Invoice{invoiceOf("f1", "c1", entity.InvoiceStatusSent, "-10")},
	)

	_, err := f.uc.Get(context.Background(), "u1", "c1")
	assert.Error(t, err, "un monto inválido nunca se coacciona a cero")
}

func TestGetCustomer_DeOtroUsuario(t *testing.T) {
	f := newCustomerFixture([]*entity.Customer{customerOf("u1", "c1", "Carlos", "Ruiz")}, nil)
	_, err := f.uc.Get(context.Background(), "u2", "c1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCreateCustomer_RecolectaTodasLasViolaciones(t *testing.T) {
	f := newCustomerFixture(nil, nil)
	in := dto.CreateCustomerRequest{
		FirstName: "X",       // demasiado corto
		LastName:  "123",     // sin letras
		Email:     "no-email",
	}

	_, err := f.uc.Create(context.Background(), "u1", in)
	violations := requireViolations(t, err)
	assert.ElementsMatch(t, []string{"first_name", "last_name", "email"}, fieldsOf(violations))
}

func TestCreateCustomer_AsignaDuenoYDevuelveVista(t *testing.T) {
	f := newCustomerFixture(nil, nil)
	in := dto.CreateCustomerRequest{FirstName: "Carlos", LastName: "Ruiz", Email: "carlos@example.com"}

	out, err := f.uc.Create(context.Background(), "u1", in)
	require.NoError(t, err)
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, "u1", out.UserID)
	assert.True(t, out.TotalAmount.IsZero(), "un cliente nuevo no tiene nada facturado")
	assert.Empty(t, out.Invoices)
}

func TestListCustomers_FiltraYOrdena(t *testing.T) {
	f := newCustomerFixture(
		[]*entity.Customer{
			customerOf("u1", "c1", "Carlos", "Ruiz"),
			customerOf("u1", "c2", "Carla", "Santos"),
			customerOf("u1", "c3", "Pedro", "Ruiz"),
			customerOf("u2", "c4", "Carlota", "Ajena"),
		},
		nil,
	)
	ctx := context.Background()

	// first_name es coincidencia parcial y nunca cruza usuarios.
	out, err := f.uc.List(ctx, "u1", repository.CustomerFilter{FirstName: "carl"})
	require.NoError(t, err)
	require.Len(t, out, 2)

	// last_name es coincidencia exacta.
	out, err = f.uc.List(ctx, "u1", repository.CustomerFilter{LastName: "Ruiz"})
	require.NoError(t, err)
	assert.Len(t, out, 2)

	out, err = f.uc.List(ctx, "u1", repository.CustomerFilter{LastName: "Rui"})
	require.NoError(t, err)
	assert.Empty(t, out, "un prefijo del apellido no debe coincidir")
}

func TestDeleteCustomer_EliminaTambienSusFacturas(t *testing.T) {
	f := newCustomerFixture(
		[]*entity.Customer{
			customerOf("u1", "c1", "Carlos", "Ruiz"),
			customerOf("u1", "c2", "Carla", "Santos"),
		},
		[]*entity.Invoice{
			invoiceOf("f1", "c1", entity.InvoiceStatusSent, "100"),
			invoiceOf("f2", "c1", entity.InvoiceStatusPaid, "50"),
			invoiceOf("f3", "c2", entity.InvoiceStatusSent, "75"),
		},
	)
	ctx := context.Background()

	require.NoError(t, f.uc.Delete(ctx, "u1", "c1"))

	gone, err := f.customerRepo.GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.Nil(t, gone, "el cliente debe haber desaparecido")

	orphans, err := f.invoiceRepo.ListByCustomer(ctx, "c1")
	require.NoError(t, err)
	assert.Empty(t, orphans, "no deben quedar facturas huérfanas")

	kept, err := f.invoiceRepo.ListByCustomer(ctx, "c2")
	require.NoError(t, err)
	assert.Len(t, kept, 1, "las facturas de otros clientes no deben tocarse")
}

func TestDeleteCustomer_DeOtroUsuario(t *testing.T) {
	f := newCustomerFixture([]*entity.Customer{customerOf("u1", "c1", "Carlos", "Ruiz")}, nil)
	err := f.uc.Delete(context.Background(), "u2", "c1")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	still, repoErr := f.customerRepo.GetByID(context.Background(), "c1")
	require.NoError(t, repoErr)
	assert.NotNil(t, still, "el cliente ajeno no debe borrarse")
}

func TestPatchCustomer_SoloAplicaLosCamposPresentes(t *testing.T) {
	f := newCustomerFixture([]*entity.Customer{customerOf("u1", "c1", "Carlos", "Ruiz")}, nil)
	empresa := "Acme SA"

	out, err := f.uc.Patch(context.Background(), "u1", "c1", dto.PatchCustomerRequest{Company: &empresa})
	require.NoError(t, err)
	assert.Equal(t, "Acme SA", out.Company)
	assert.Equal(t, "Carlos", out.FirstName, "los campos no incluidos en el patch no deben cambiar")
}

func TestPatchCustomer_RevalidaElResultado(t *testing.T) {
	f := newCustomerFixture([]*entity.Customer{customerOf("u1", "c1", "Carlos", "Ruiz")}, nil)
	malo := "X"

	_, err := f.uc.Patch(context.Background(), "u1", "c1", dto.PatchCustomerRequest{FirstName: &malo})
	violations := requireViolations(t, err)
	assert.Equal(t, []string{"first_name"}, fieldsOf(violations))
}

func TestListInvoices_SubRecurso(t *testing.T) {
	f := newCustomerFixture(
		[]*entity.Customer{customerOf("u1", "c1", "Carlos", "Ruiz")},
		[]*entity.Invoice{
			invoiceOf("f1", "c1", entity.InvoiceStatusSent, "100"),
			invoiceOf("f2", "c1", entity.InvoiceStatusPaid, "50"),
		},
	)

	out, err := f.uc.ListInvoices(context.Background(), "u1", "c1")
	require.NoError(t, err)
	assert.Len(t, out, 2)
}

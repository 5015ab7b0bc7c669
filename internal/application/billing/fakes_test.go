package billing_test

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/facturas-api/internal/domain"
	"github.com/tu-usuario/facturas-api/internal/domain/entity"
	"github.com/tu-usuario/facturas-api/internal/domain/repository"
	"github.com/tu-usuario/facturas-api/pkg/validate"
)

// requireViolations exige que err sea una lista de violaciones de validación.
func requireViolations(t *testing.T, err error) validate.Violations {
	t.Helper()
	var violations validate.Violations
	require.ErrorAs(t, err, &violations, "el error debe ser de validación")
	return violations
}

func fieldsOf(violations validate.Violations) []string {
	fields := make([]string, 0, len(violations))
	for _, v := range violations {
		fields = append(fields, v.Field)
	}
	return fields
}

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios en memoria para los tests de casos de uso
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*entity.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.users[id], nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

type fakeCustomerRepo struct {
	mu        sync.Mutex
	customers map[string]*entity.Customer
}

func newFakeCustomerRepo(customers ...*entity.Customer) *fakeCustomerRepo {
	r := &fakeCustomerRepo{customers: make(map[string]*entity.Customer)}
	for _, c := range customers {
		r.customers[c.ID] = c
	}
	return r
}

func (r *fakeCustomerRepo) Create(_ context.Context, customer *entity.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.customers[customer.ID] = customer
	return nil
}

func (r *fakeCustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.customers[id], nil
}

func (r *fakeCustomerRepo) ListByUser(_ context.Context, userID string, filter repository.CustomerFilter) ([]*entity.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []*entity.Customer
	for _, c := range r.customers {
		if c.UserID != userID {
			continue
		}
		if filter.FirstName != "" && !strings.Contains(strings.ToLower(c.FirstName), strings.ToLower(filter.FirstName)) {
			continue
		}
		if filter.LastName != "" && c.LastName != filter.LastName {
			continue
		}
		if filter.Company != "" && c.Company != filter.Company {
			continue
		}
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].LastName < list[j].LastName })
	if filter.Offset >= len(list) {
		return nil, nil
	}
	list = list[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(list) {
		list = list[:filter.Limit]
	}
	return list, nil
}

func (r *fakeCustomerRepo) Update(_ context.Context, customer *entity.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.customers[customer.ID] = customer
	return nil
}

func (r *fakeCustomerRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.customers, id)
	return nil
}

type fakeInvoiceRepo struct {
	mu       sync.Mutex
	invoices map[string]*entity.Invoice
	// conflictsLeft simula conflictos de concurrencia en IncrementChrono: cada
	// llamada consume uno y devuelve domain.ErrConflict sin aplicar nada.
	conflictsLeft int
}

func newFakeInvoiceRepo(invoices ...*entity.Invoice) *fakeInvoiceRepo {
	r := &fakeInvoiceRepo{invoices: make(map[string]*entity.Invoice)}
	for _, inv := range invoices {
		r.invoices[inv.ID] = inv
	}
	return r
}

func (r *fakeInvoiceRepo) Create(_ context.Context, invoice *entity.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.invoices[invoice.ID] = invoice
	return nil
}

func (r *fakeInvoiceRepo) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.invoices[id]
	if !ok {
		return nil, nil
	}
	copied := *inv
	return &copied, nil
}

func (r *fakeInvoiceRepo) ListByUser(_ context.Context, _ string, filter repository.InvoiceFilter) ([]*entity.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []*entity.Invoice
	for _, inv := range r.invoices {
		list = append(list, inv)
	}
	asc := strings.EqualFold(filter.OrderDir, "asc")
	sort.Slice(list, func(i, j int) bool {
		var less bool
		if filter.OrderBy == "amount" {
			less = list[i].Amount.LessThan(list[j].Amount)
		} else {
			less = list[i].SentAt.Before(list[j].SentAt)
		}
		if asc {
			return less
		}
		return !less
	})
	if filter.Limit > 0 && filter.Limit < len(list) {
		list = list[:filter.Limit]
	}
	return list, nil
}

func (r *fakeInvoiceRepo) ListByCustomer(_ context.Context, customerID string) ([]*entity.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []*entity.Invoice
	for _, inv := range r.invoices {
		if inv.CustomerID == customerID {
			list = append(list, inv)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].SentAt.After(list[j].SentAt) })
	return list, nil
}

func (r *fakeInvoiceRepo) Update(_ context.Context, invoice *entity.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.invoices[invoice.ID] = invoice
	return nil
}

func (r *fakeInvoiceRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.invoices, id)
	return nil
}

func (r *fakeInvoiceRepo) DeleteByCustomer(_ context.Context, customerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, inv := range r.invoices {
		if inv.CustomerID == customerID {
			delete(r.invoices, id)
		}
	}
	return nil
}

func (r *fakeInvoiceRepo) IncrementChrono(_ context.Context, id string) (*entity.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.conflictsLeft > 0 {
		r.conflictsLeft--
		return nil, fmt.Errorf("%w: increment chrono: simulated", domain.ErrConflict)
	}
	inv, ok := r.invoices[id]
	if !ok {
		return nil, nil
	}
	inv.Chrono++
	inv.UpdatedAt = time.Now()
	copied := *inv
	return &copied, nil
}

// fakeTxRunner ejecuta el callback directamente sobre los repos en memoria;
// no hay transacción real que abrir.
type fakeTxRunner struct {
	customerRepo repository.CustomerRepository
	invoiceRepo  repository.InvoiceRepository
}

func (tx *fakeTxRunner) Run(ctx context.Context, fn func(
	customerRepo repository.CustomerRepository,
	invoiceRepo repository.InvoiceRepository,
) error) error {
	return fn(tx.customerRepo, tx.invoiceRepo)
}

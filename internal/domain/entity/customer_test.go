package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/facturas-api/internal/domain/entity"
)

func TestAddInvoice_FijaLaReferenciaInversa(t *testing.T) {
	c := &entity.Customer{ID: "c1"}
	inv := &entity.Invoice{ID: "f1"}

	c.AddInvoice(inv)

	assert.Len(t, c.Invoices, 1)
	assert.Same(t, c, inv.Customer, "la factura debe apuntar de vuelta al cliente")
	assert.Equal(t, "c1", inv.CustomerID)
}

func TestAddInvoice_EsIdempotente(t *testing.T) {
	c := &entity.Customer{ID: "c1"}
	inv := &entity.Invoice{ID: "f1"}

	c.AddInvoice(inv)
	c.AddInvoice(inv)

	assert.Len(t, c.Invoices, 1, "añadir dos veces la misma factura no debe duplicarla")
}

func TestRemoveInvoice_LimpiaLaReferenciaInversa(t *testing.T) {
	c := &entity.Customer{ID: "c1"}
	inv := &entity.Invoice{ID: "f1"}
	c.AddInvoice(inv)

	c.RemoveInvoice(inv)

	assert.Empty(t, c.Invoices)
	assert.Nil(t, inv.Customer, "al quitarla la factura deja de apuntar al cliente")
	assert.Empty(t, inv.CustomerID)
}

func TestRemoveInvoice_NoTocaUnaFacturaReasignada(t *testing.T) {
	c1 := &entity.Customer{ID: "c1"}
	c2 := &entity.Customer{ID: "c2"}
	inv := &entity.Invoice{ID: "f1"}
	c1.AddInvoice(inv)

	// La factura cambia de cliente antes de que c1 la quite de su colección.
	inv.Customer = c2
	inv.CustomerID = c2.ID
	c1.RemoveInvoice(inv)

	assert.Empty(t, c1.Invoices)
	assert.Same(t, c2, inv.Customer, "la referencia al nuevo cliente debe sobrevivir")
	assert.Equal(t, "c2", inv.CustomerID)
}

func TestOwner_DerivaElUsuarioDelCliente(t *testing.T) {
	u := &entity.User{ID: "u1"}
	c := &entity.Customer{ID: "c1", UserID: "u1", User: u}
	inv := &entity.Invoice{ID: "f1"}
	c.AddInvoice(inv)

	assert.Same(t, u, inv.Owner(), "el dueño de la factura es siempre el dueño de su cliente")
}

func TestOwner_NilSiElGrafoNoEstaCargado(t *testing.T) {
	inv := &entity.Invoice{ID: "f1"}
	assert.Nil(t, inv.Owner())
}

func TestSettled(t *testing.T) {
	assert.False(t, (&entity.Invoice{Status: entity.InvoiceStatusSent}).Settled())
	assert.True(t, (&entity.Invoice{Status: entity.InvoiceStatusPaid}).Settled())
	assert.True(t, (&entity.Invoice{Status: entity.InvoiceStatusCancelled}).Settled())
}

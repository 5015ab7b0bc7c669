package entity

import "time"

// Customer representa un cliente facturable. Pertenece siempre a un User
// (UserID no nulo) y mantiene la colección de sus facturas en memoria cuando
// se carga el grafo completo.
type Customer struct {
	ID        string
	UserID    string
	FirstName string
	LastName  string
	Email     string
	Company   string // opcional
	Invoices  []*Invoice
	User      *User // cargado bajo demanda
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName devuelve "FirstName LastName" para vistas y PDF.
func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

// AddInvoice añade la factura a la colección y fija la referencia inversa.
// Idempotente: si la factura ya está en la colección no hace nada.
func (c *Customer) AddInvoice(inv *Invoice) {
	for _, existing := range c.Invoices {
		if existing == inv {
			return
		}
	}
	c.Invoices = append(c.Invoices, inv)
	inv.Customer = c
	inv.CustomerID = c.ID
}

// RemoveInvoice quita la factura de la colección y limpia la referencia
// inversa solo si todavía apunta a este cliente (la factura pudo haber sido
// reasignada entre tanto).
func (c *Customer) RemoveInvoice(inv *Invoice) {
	for i, existing := range c.Invoices {
		if existing != inv {
			continue
		}
		c.Invoices = append(c.Invoices[:i], c.Invoices[i+1:]...)
		if inv.Customer == c {
			inv.Customer = nil
			inv.CustomerID = ""
		}
		return
	}
}

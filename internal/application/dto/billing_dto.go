package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ── Customers ─────────────────────────────────────────────────────────────────

// CreateCustomerRequest body para POST /api/customers. También se usa en PUT
// (reemplazo completo de los campos mutables).
type CreateCustomerRequest struct {
	FirstName string `json:"first_name" validate:"required,min=2,max=255,alphachar"`
	LastName  string `json:"last_name" validate:"required,min=2,max=255,alphachar"`
	Email     string `json:"email" validate:"required,email"`
	Company   string `json:"company,omitempty" validate:"omitempty,max=255"`
}

// PatchCustomerRequest body para PATCH /api/customers/:id. Solo se aplican
// los campos presentes; el resultado se revalida completo.
type PatchCustomerRequest struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Email     *string `json:"email,omitempty"`
	Company   *string `json:"company,omitempty"`
}

// CustomerResponse vista de cliente: campos propios + agregados derivados +
// facturas embebidas (sin referencias inversas).
type CustomerResponse struct {
	ID           string            `json:"id"`
	UserID       string            `json:"user_id"`
	FirstName    string            `json:"first_name"`
	LastName     string            `json:"last_name"`
	Email        string            `json:"email"`
	Company      string            `json:"company,omitempty"`
	TotalAmount  decimal.Decimal   `json:"total_amount"`
	UnpaidAmount decimal.Decimal   `json:"unpaid_amount"`
	Invoices     []InvoiceEmbedded `json:"invoices"`
}

// InvoiceEmbedded factura dentro de la vista de cliente o de usuario.
type InvoiceEmbedded struct {
	ID     string          `json:"id"`
	Amount decimal.Decimal `json:"amount"`
	SentAt time.Time       `json:"sent_at"`
	Status string          `json:"status"`
	Chrono int             `json:"chrono"`
}

// ── Invoices ──────────────────────────────────────────────────────────────────

// CreateInvoiceRequest body para POST /api/invoices y PUT /api/invoices/:id.
// Amount y SentAt se validan imperativamente (decimal y fecha).
type CreateInvoiceRequest struct {
	CustomerID string          `json:"customer_id" validate:"required"`
	Amount     decimal.Decimal `json:"amount"`
	SentAt     string          `json:"sent_at" validate:"required"`
	Status     string          `json:"status" validate:"required,oneof=SENT PAID CANCELLED"`
	Chrono     int             `json:"chrono" validate:"required,gt=0"`
}

// PatchInvoiceRequest body para PATCH /api/invoices/:id.
type PatchInvoiceRequest struct {
	CustomerID *string          `json:"customer_id,omitempty"`
	Amount     *decimal.Decimal `json:"amount,omitempty"`
	SentAt     *string          `json:"sent_at,omitempty"`
	Status     *string          `json:"status,omitempty"`
	Chrono     *int             `json:"chrono,omitempty"`
}

// InvoiceResponse vista de factura: campos propios + cliente embebido + el
// usuario dueño derivado del cliente (nunca almacenado aparte).
type InvoiceResponse struct {
	ID       string           `json:"id"`
	Amount   decimal.Decimal  `json:"amount"`
	SentAt   time.Time        `json:"sent_at"`
	Status   string           `json:"status"`
	Chrono   int              `json:"chrono"`
	Customer CustomerEmbedded `json:"customer"`
	User     UserEmbedded     `json:"user"`
}

// CustomerEmbedded cliente dentro de la vista de factura.
type CustomerEmbedded struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Company   string `json:"company,omitempty"`
}

// ── Analítica ─────────────────────────────────────────────────────────────────

// StatusTotalDTO total facturado por estado.
type StatusTotalDTO struct {
	Status string          `json:"status"`
	Count  int64           `json:"count"`
	Total  decimal.Decimal `json:"total"`
}

// SummaryResponse resumen de facturación del usuario.
type SummaryResponse struct {
	ByStatus    []StatusTotalDTO `json:"by_status"`
	UnpaidTotal decimal.Decimal  `json:"unpaid_total"`
}

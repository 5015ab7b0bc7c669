// Package pdf implementa la representación gráfica de una factura.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Emisor (usuario)    │  N° Factura + Fecha de envío │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + empresa + email                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  MONTO + ESTADO                                             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/tu-usuario/facturas-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoPDFGenerator implementa billing.InvoicePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateInvoicePDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(
	_ context.Context,
	invoice *entity.Invoice,
	customer *entity.Customer,
	user *entity.User,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(fmt.Sprintf("Factura N° %06d", invoice.Chrono), true).
		WithAuthor(user.FullName(), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(invoice, user))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(customer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(amountRow(invoice))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: emisor (izq) y número de factura + fecha de envío (der).
func headerRow(invoice *entity.Invoice, user *entity.User) core.Row {
	numero := fmt.Sprintf("N° %06d", invoice.Chrono)
	fecha := invoice.SentAt.Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(user.FullName(), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(user.Email, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("FACTURA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(numero, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Enviada: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// customerRow: datos del cliente facturado.
func customerRow(customer *entity.Customer) core.Row {
	nombre := customer.FirstName + " " + customer.LastName
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   |   %s   |   %s",
				nombre,
				nonEmpty(customer.Company, "—"),
				customer.Email,
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// amountRow: monto total y estado de la factura.
func amountRow(invoice *entity.Invoice) core.Row {
	return row.New(16).Add(
		col.New(6).Add(
			text.New("ESTADO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(statusLabel(invoice.Status), props.Text{
				Size: 10, Top: 7,
			}),
		),
		col.New(6).Add(
			text.New("TOTAL", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("$ "+invoice.Amount.Round(2).StringFixed(2), props.Text{
				Style: fontstyle.Bold, Size: 13, Align: align.Right, Top: 6,
			}),
		),
	)
}

func statusLabel(status string) string {
	switch status {
	case entity.InvoiceStatusSent:
		return "Enviada"
	case entity.InvoiceStatusPaid:
		return "Pagada"
	case entity.InvoiceStatusCancelled:
		return "Anulada"
	default:
		return status
	}
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

package billing

import (
	"context"
	"fmt"

	"github.com/tu-usuario/facturas-api/internal/domain"
	"github.com/tu-usuario/facturas-api/internal/domain/repository"
)

// PDFUseCase genera la representación PDF de una factura del usuario.
type PDFUseCase struct {
	invoiceRepo  repository.InvoiceRepository
	customerRepo repository.CustomerRepository
	userRepo     repository.UserRepository
	generator    InvoicePDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(
	invoiceRepo repository.InvoiceRepository,
	customerRepo repository.CustomerRepository,
	userRepo repository.UserRepository,
	generator InvoicePDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		userRepo:     userRepo,
		generator:    generator,
	}
}

// Generate produce el PDF de la factura y el nombre de archivo sugerido,
// numerado con el chrono.
func (uc *PDFUseCase) Generate(ctx context.Context, userID, invoiceID string) ([]byte, string, error) {
	invoice, err := uc.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, "", err
	}
	if invoice == nil {
		return nil, "", domain.ErrNotFound
	}
	customer, err := uc.customerRepo.GetByID(ctx, invoice.CustomerID)
	if err != nil {
		return nil, "", err
	}
	if customer == nil {
		return nil, "", domain.ErrNotFound
	}
	if customer.UserID != userID {
		return nil, "", domain.ErrForbidden
	}
	owner, err := uc.userRepo.GetByID(ctx, customer.UserID)
	if err != nil {
		return nil, "", err
	}
	if owner == nil {
		return nil, "", domain.ErrUserNotFound
	}

	pdf, err := uc.generator.GenerateInvoicePDF(ctx, invoice, customer, owner)
	if err != nil {
		return nil, "", fmt.Errorf("generar pdf de factura: %w", err)
	}
	filename := fmt.Sprintf("factura_%06d.pdf", invoice.Chrono)
	return pdf, filename, nil
}

package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/facturas-api/internal/application/billing"
	"github.com/tu-usuario/facturas-api/internal/application/dto"
	"github.com/tu-usuario/facturas-api/internal/domain/repository"
)

// InvoiceHandler maneja las peticiones HTTP de facturas (protegido).
type InvoiceHandler struct {
	uc    *billing.InvoiceUseCase
	pdfUC *billing.PDFUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *billing.InvoiceUseCase, pdfUC *billing.PDFUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, pdfUC: pdfUC}
}

// Create POST /api/invoices
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	invoice, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(invoice)
}

// List GET /api/invoices?order_by=&order_dir=&limit=20&offset=0
//
// order_by solo admite amount y sent_at; por defecto sent_at descendente.
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", strconv.Itoa(dto.DefaultPageSize)))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	filter := repository.InvoiceFilter{
		OrderBy:  c.Query("order_by"),
		OrderDir: c.Query("order_dir"),
		Limit:    limit,
		Offset:   offset,
	}
	list, err := h.uc.List(c.Context(), GetUserID(c), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// GetByID GET /api/invoices/:id
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	invoice, err := h.uc.Get(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(invoice)
}

// Update PUT /api/invoices/:id
func (h *InvoiceHandler) Update(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	invoice, err := h.uc.Update(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(invoice)
}

// Patch PATCH /api/invoices/:id
func (h *InvoiceHandler) Patch(c *fiber.Ctx) error {
	var in dto.PatchInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	invoice, err := h.uc.Patch(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(invoice)
}

// Delete DELETE /api/invoices/:id
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Increment POST /api/invoices/:id/increment
//
// Incrementa el chrono en 1 de forma atómica y devuelve la factura
// actualizada. 409 si los reintentos ante conflictos se agotan.
func (h *InvoiceHandler) Increment(c *fiber.Ctx) error {
	invoice, err := h.uc.Increment(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(invoice)
}

// PDF GET /api/invoices/:id/pdf
func (h *InvoiceHandler) PDF(c *fiber.Ctx) error {
	pdf, filename, err := h.pdfUC.Generate(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}

package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/facturas-api/internal/application/billing"
	"github.com/tu-usuario/facturas-api/internal/application/dto"
	"github.com/tu-usuario/facturas-api/internal/domain/repository"
)

// CustomerHandler maneja las peticiones HTTP de clientes (protegido).
type CustomerHandler struct {
	uc *billing.CustomerUseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *billing.CustomerUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// Create POST /api/customers
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	customer, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(customer)
}

// List GET /api/customers?first_name=&last_name=&company=&order_by=&order_dir=&limit=20&offset=0
//
// first_name filtra por coincidencia parcial; last_name y company por
// igualdad exacta. order_by admite cualquier columna del cliente.
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", strconv.Itoa(dto.DefaultPageSize)))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	filter := repository.CustomerFilter{
		FirstName: c.Query("first_name"),
		LastName:  c.Query("last_name"),
		Company:   c.Query("company"),
		OrderBy:   c.Query("order_by"),
		OrderDir:  c.Query("order_dir"),
		Limit:     limit,
		Offset:    offset,
	}
	list, err := h.uc.List(c.Context(), GetUserID(c), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// GetByID GET /api/customers/:id
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	customer, err := h.uc.Get(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(customer)
}

// Update PUT /api/customers/:id
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	var in dto.CreateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	customer, err := h.uc.Update(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(customer)
}

// Patch PATCH /api/customers/:id
func (h *CustomerHandler) Patch(c *fiber.Ctx) error {
	var in dto.PatchCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	customer, err := h.uc.Patch(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(customer)
}

// Delete DELETE /api/customers/:id
//
// Elimina también todas las facturas del cliente, en la misma transacción.
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListInvoices GET /api/customers/:id/invoices
func (h *CustomerHandler) ListInvoices(c *fiber.Ctx) error {
	invoices, err := h.uc.ListInvoices(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(invoices)
}

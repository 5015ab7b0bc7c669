package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/facturas-api/internal/application/users"
)

// UserHandler expone el perfil del usuario autenticado.
type UserHandler struct {
	uc *users.ProfileUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *users.ProfileUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// Me GET /api/users/me
//
// Vista completa del usuario: sus clientes anidados, cada uno con sus
// facturas y agregados.
func (h *UserHandler) Me(c *fiber.Ctx) error {
	view, err := h.uc.Me(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(view)
}

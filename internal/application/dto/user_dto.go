package dto

import "time"

// RegisterRequest body para POST /api/auth/register.
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required,min=2,max=255,alphachar"`
	LastName  string `json:"last_name" validate:"required,min=2,max=255,alphachar"`
}

// LoginRequest body para POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse usuario en respuestas (nunca incluye el hash).
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginResponse token + usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserViewResponse vista completa de usuario: sus clientes anidados, cada
// uno con sus facturas y agregados.
type UserViewResponse struct {
	ID        string             `json:"id"`
	Email     string             `json:"email"`
	FirstName string             `json:"first_name"`
	LastName  string             `json:"last_name"`
	Customers []CustomerResponse `json:"customers"`
}

// UserEmbedded usuario dentro de la vista de factura.
type UserEmbedded struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

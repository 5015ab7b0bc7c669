package entity

import "time"

// User representa al dueño de una cartera de clientes (principal de la API).
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	FirstName    string
	LastName     string
	Customers    []*Customer // cargado bajo demanda para la vista de usuario
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName devuelve "FirstName LastName" para vistas y PDF.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

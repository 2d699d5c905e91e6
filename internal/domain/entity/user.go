package entity

import "time"

// User representa un usuario del sistema. Todos los usuarios autenticados
// tienen los mismos permisos; el actor solo se usa para atribución en auditoría.
type User struct {
	ID           string
	Email        string
	PasswordHash string // hash bcrypt, nunca plano en dominio después de persistir
	Name         string
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

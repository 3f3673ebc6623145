package entity

import "time"

// Roles válidos para User.
const (
	RoleSuperadmin = "superadmin"
	RoleAdmin      = "admin"
	RoleManager    = "manager"
)

// ValidRole indica si el rol es uno de los soportados.
func ValidRole(role string) bool {
	switch role {
	case RoleSuperadmin, RoleAdmin, RoleManager:
		return true
	}
	return false
}

// User representa un usuario del back-office.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	PhoneNumber  string
	Role         string // superadmin, admin, manager
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

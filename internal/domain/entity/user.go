package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/internal/domain"
)

// Role es el rol de un usuario. Conjunto cerrado: user | admin.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole valida un rol leído de almacenamiento o de un token.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	}
	return "", fmt.Errorf("%w: %q", domain.ErrInvalidRole, s)
}

// IsAdmin indica si el rol tiene privilegios de administración.
func (r Role) IsAdmin() bool { return r == RoleAdmin }

// User representa una cuenta registrada. Nunca se elimina.
type User struct {
	ID           string
	Name         string
	Email        string // único, en minúsculas
	PasswordHash string // bcrypt, nunca texto plano
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NormalizeEmail aplica la forma canónica usada para unicidad y búsqueda.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

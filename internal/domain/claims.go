package domain

import "github.com/golang-jwt/jwt/v5"

// Papéis aceitos no claim role
const (
	RoleAdmin  = "admin"
	RoleViewer = "viewer"
)

// Claims é o conteúdo do token de acesso. O subject fica em RegisteredClaims.Subject.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func (c *Claims) IsAdmin() bool {
	return c != nil && c.Role == RoleAdmin
}

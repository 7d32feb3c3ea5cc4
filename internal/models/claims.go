package models

import "github.com/golang-jwt/jwt/v5"

type UserClaims struct {
	jwt.RegisteredClaims
	UserID       uint   `json:"user_id"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	TokenVersion int    `json:"token_version"`
}

// IsSuperAdmin is the single role-resolution check used everywhere a
// platform-wide privilege is required. The role claim is authoritative;
// identity fields such as the email are never consulted.
func (c *UserClaims) IsSuperAdmin() bool {
	return c.Role == RoleSuperAdmin
}

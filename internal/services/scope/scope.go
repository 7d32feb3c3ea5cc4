// Package scope implements the access scoping layer. Every query and
// mutation path that touches merchant-owned rows goes through a Scope
// derived from the caller's claims; no handler or repository re-derives
// visibility on its own.
package scope

import (
	"errors"

	"linkpay/internal/models"

	"gorm.io/gorm"
)

// ErrForbidden is returned when an actor attempts to mutate or read a row
// outside its scope. Mutations surface it directly; list reads instead
// return the scoped (possibly empty) set.
var ErrForbidden = errors.New("forbidden")

// Scope describes which owner ids the actor may see and mutate.
type Scope struct {
	UserID uint
	All    bool
}

// For derives the scope from authenticated claims. A super-admin is scoped
// platform-wide; every other actor is scoped to rows it owns.
func For(claims *models.UserClaims) Scope {
	if claims == nil {
		return Scope{}
	}
	if claims.IsSuperAdmin() {
		return Scope{UserID: claims.UserID, All: true}
	}
	return Scope{UserID: claims.UserID}
}

// Apply narrows a query to the scope.
func (s Scope) Apply(db *gorm.DB) *gorm.DB {
	if s.All {
		return db
	}
	return db.Where("owner_id = ?", s.UserID)
}

// CanAccess reports whether the scope covers a row owned by ownerID.
func (s Scope) CanAccess(ownerID uint) bool {
	return s.All || (s.UserID != 0 && s.UserID == ownerID)
}

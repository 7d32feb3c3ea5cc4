package models

import (
	"gorm.io/gorm"
)

// User roles. Authorization decisions are made on the role column only.
const (
	RoleRegisteredUser = "registered_user"
	RoleSubscriber     = "subscriber"
	RoleSuperAdmin     = "super_admin"
)

type User struct {
	gorm.Model
	Email        string `gorm:"uniqueIndex;not null"` // Unique index on Email
	Password     string `gorm:"not null"`
	Name         string `gorm:"not null"`
	Role         string `gorm:"default:'registered_user'"`
	Status       string `gorm:"default:'active'"`
	TokenVersion int    `gorm:"default:1"`
}

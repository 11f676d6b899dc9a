package models

import "gorm.io/gorm"

// User represents a registered user of the catalog API.
type User struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username   string `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Password   string `json:"-" gorm:"type:varchar(255)" validate:"required,min=6"` // bcrypt hash, never serialized
	IsActive   bool   `json:"is_active" gorm:"default:true"`
	gorm.Model `json:"-"` // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

package models

import "gorm.io/gorm"

// Product represents a product in the catalog. Every product belongs to
// exactly one category.
type Product struct {
	ID         string   `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name       string   `json:"name" validate:"required,min=2,max=100"`
	Price      float64  `json:"price" validate:"gte=0"`
	CategoryID string   `json:"category_id" gorm:"type:varchar(36);index" validate:"required"`
	Category   Category `json:"category" gorm:"foreignKey:CategoryID" validate:"-"`
	gorm.Model `json:"-"` // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

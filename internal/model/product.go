package model

import "github.com/google/uuid"

type Product struct {
	BaseModel
	SKU         string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"sku" validate:"required"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	CategoryID  uuid.UUID `gorm:"type:uuid;not null;index" json:"categoryId" validate:"uuid_required"`
	Category    *Category `json:"category,omitempty" validate:"-"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Quantity    int       `gorm:"not null;default:0" json:"quantity" validate:"gte=0"`
	Unit        string    `gorm:"type:varchar(20);not null" json:"unit" validate:"required"`
	MinStock    int       `gorm:"not null;default:0" json:"minStock" validate:"gte=0"`

	// Relations
	Transactions []Transaction `json:"transactions,omitempty" validate:"-"`
}

func (Product) TableName() string {
	return "products"
}

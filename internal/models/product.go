package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product is derived from a (Brand, Variant, Size) triple. The catalog
// generator does not enforce uniqueness of the triple; see catalog.Generator.
type Product struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"size:200;not null" json:"name"`
	BrandID   string    `gorm:"size:36;not null;index" json:"brand_id"`
	VariantID string    `gorm:"size:36;not null;index" json:"variant_id"`
	SizeID    string    `gorm:"size:36;not null;index" json:"size_id"`
	HSNCode   string    `gorm:"size:20;default:'3917'" json:"hsn_code"`
	Unit      string    `gorm:"size:20;default:'Nos'" json:"unit"`
	Price     float64   `gorm:"default:0" json:"price"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Brand     *Brand     `gorm:"foreignKey:BrandID" json:"brand,omitempty"`
	Variant   *Variant   `gorm:"foreignKey:VariantID" json:"variant,omitempty"`
	Size      *Size      `gorm:"foreignKey:SizeID" json:"size,omitempty"`
	Inventory *Inventory `gorm:"foreignKey:ProductID" json:"inventory,omitempty"`
}

func (p *Product) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// Inventory is one-to-one with Product and is created alongside it.
type Inventory struct {
	ID           string `gorm:"primaryKey;size:36" json:"id"`
	ProductID    string `gorm:"size:36;uniqueIndex;not null" json:"product_id"`
	Quantity     int    `gorm:"default:0" json:"quantity"`
	ReorderLevel int    `gorm:"default:10" json:"reorder_level"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (i *Inventory) BeforeCreate(*gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

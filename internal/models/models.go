package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// All entities carry uuid string primary keys assigned on create.

type User struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Username     string    `gorm:"size:80;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"size:120;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:256;not null" json:"-"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// Brand, Variant, and Size are the three axes of the product catalog.
// Every (brand, variant, size) combination yields one Product.

type Brand struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Name        string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Code        string    `gorm:"size:10;uniqueIndex;not null" json:"code"`
	Description string    `gorm:"size:255" json:"description"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`

	Products []Product `gorm:"foreignKey:BrandID" json:"-"`
}

func (b *Brand) BeforeCreate(*gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

type Variant struct {
	ID       string  `gorm:"primaryKey;size:36" json:"id"`
	Name     string  `gorm:"size:50;uniqueIndex;not null" json:"name"`
	WeightKG float64 `gorm:"not null" json:"weight_kg"`
}

func (v *Variant) BeforeCreate(*gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}

type Size struct {
	ID         string  `gorm:"primaryKey;size:36" json:"id"`
	SizeInches float64 `gorm:"uniqueIndex;not null" json:"size_inches"`
}

func (s *Size) BeforeCreate(*gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

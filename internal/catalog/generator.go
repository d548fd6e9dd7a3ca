// Package catalog builds the product catalog as the cross-product of
// brands, variants, and sizes. One product is created per combination,
// each with a zero-quantity inventory row.
package catalog

import (
	"fmt"

	"github.com/arunvijay5372/KVM-Invoicing-System/internal/models"
	"gorm.io/gorm"
)

const defaultReorderLevel = 10

// Generator persists generated products through the supplied unit of work.
//
// It intentionally does not enforce uniqueness of the (brand, variant,
// size) triple: running it twice over the same inputs creates duplicates,
// matching the historical behavior. SkipExisting opts into checking for an
// existing product per triple before creating one.
type Generator struct {
	DB           *gorm.DB
	SkipExisting bool
}

func New(db *gorm.DB) *Generator { return &Generator{DB: db} }

// DisplayName forms the generated product name, e.g. `Finolex 4kg 6" Pipe`.
func DisplayName(brand models.Brand, variant models.Variant, size models.Size) string {
	return fmt.Sprintf("%s %s %d\" Pipe", brand.Name, variant.Name, int(size.SizeInches))
}

// Generate creates one product (plus inventory) per (brand, variant, size)
// combination, in a single transaction. Loop order is brands, then
// variants, then sizes; insertion order is deterministic but carries no
// meaning.
func (g *Generator) Generate(brands []models.Brand, variants []models.Variant, sizes []models.Size) ([]models.Product, error) {
	var created []models.Product
	err := g.DB.Transaction(func(tx *gorm.DB) error {
		for _, b := range brands {
			for _, v := range variants {
				for _, s := range sizes {
					p, err := g.createOne(tx, b, v, s)
					if err != nil {
						return err
					}
					if p != nil {
						created = append(created, *p)
					}
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// GenerateForBrand creates products for a single brand across all given
// variants and sizes. Called when a new brand is added; it performs no
// duplicate-triple check unless SkipExisting is set.
func (g *Generator) GenerateForBrand(brand models.Brand, variants []models.Variant, sizes []models.Size) ([]models.Product, error) {
	return g.Generate([]models.Brand{brand}, variants, sizes)
}

func (g *Generator) createOne(tx *gorm.DB, b models.Brand, v models.Variant, s models.Size) (*models.Product, error) {
	if g.SkipExisting {
		var count int64
		if err := tx.Model(&models.Product{}).
			Where("brand_id = ? AND variant_id = ? AND size_id = ?", b.ID, v.ID, s.ID).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, nil
		}
	}
	p := models.Product{
		Name:      DisplayName(b, v, s),
		BrandID:   b.ID,
		VariantID: v.ID,
		SizeID:    s.ID,
		HSNCode:   "3917",
		Unit:      "Nos",
		IsActive:  true,
	}
	if err := tx.Create(&p).Error; err != nil {
		return nil, err
	}
	inv := models.Inventory{ProductID: p.ID, Quantity: 0, ReorderLevel: defaultReorderLevel}
	if err := tx.Create(&inv).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

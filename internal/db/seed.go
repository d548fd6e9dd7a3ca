package db

import (
	"log"

	"github.com/arunvijay5372/KVM-Invoicing-System/internal/catalog"
	"github.com/arunvijay5372/KVM-Invoicing-System/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed inserts the default admin user, brands, variants, and sizes, then
// generates the full product catalog if no products exist yet. Every step
// is guarded by an existence check, so running it on each start is safe.
func Seed(conn *gorm.DB, gen *catalog.Generator) error {
	if err := seedAdminUser(conn); err != nil {
		return err
	}

	var brandCount int64
	if err := conn.Model(&models.Brand{}).Count(&brandCount).Error; err != nil {
		return err
	}
	if brandCount == 0 {
		brands := []models.Brand{
			{Name: "Finolex", Code: "FIN", Description: "Finolex Pipes", IsActive: true},
			{Name: "Star", Code: "STR", Description: "Star Pipes", IsActive: true},
			{Name: "Trubore", Code: "TRU", Description: "Trubore Pipes", IsActive: true},
			{Name: "K-Star", Code: "KST", Description: "K-Star Pipes", IsActive: true},
		}
		if err := conn.Create(&brands).Error; err != nil {
			return err
		}
		log.Println("[seed] added default brands")
	}

	var variantCount int64
	if err := conn.Model(&models.Variant{}).Count(&variantCount).Error; err != nil {
		return err
	}
	if variantCount == 0 {
		variants := []models.Variant{
			{Name: "4kg", WeightKG: 4.0},
			{Name: "6kg", WeightKG: 6.0},
		}
		if err := conn.Create(&variants).Error; err != nil {
			return err
		}
		log.Println("[seed] added default variants")
	}

	var sizeCount int64
	if err := conn.Model(&models.Size{}).Count(&sizeCount).Error; err != nil {
		return err
	}
	if sizeCount == 0 {
		var sizes []models.Size
		for inches := 4; inches <= 12; inches++ {
			sizes = append(sizes, models.Size{SizeInches: float64(inches)})
		}
		if err := conn.Create(&sizes).Error; err != nil {
			return err
		}
		log.Println("[seed] added default sizes (4\" to 12\")")
	}

	// Generate the catalog only on first run: the generator itself is not
	// idempotent, so the guard lives here.
	var productCount int64
	if err := conn.Model(&models.Product{}).Count(&productCount).Error; err != nil {
		return err
	}
	if productCount == 0 {
		var brands []models.Brand
		var variants []models.Variant
		var sizes []models.Size
		if err := conn.Find(&brands).Error; err != nil {
			return err
		}
		if err := conn.Find(&variants).Error; err != nil {
			return err
		}
		if err := conn.Find(&sizes).Error; err != nil {
			return err
		}
		created, err := gen.Generate(brands, variants, sizes)
		if err != nil {
			return err
		}
		log.Printf("[seed] generated %d catalog products", len(created))
	}
	return nil
}

func seedAdminUser(conn *gorm.DB) error {
	var count int64
	if err := conn.Model(&models.User{}).Where("username = ?", "admin").Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := models.User{
		Username:     "admin",
		Email:        "admin@kvmenterprises.com",
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := conn.Create(&admin).Error; err != nil {
		return err
	}
	log.Println("[seed] admin user created (username: admin) - change the default password after first login")
	return nil
}

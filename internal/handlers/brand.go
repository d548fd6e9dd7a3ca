package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/arunvijay5372/KVM-Invoicing-System/internal/catalog"
	"github.com/arunvijay5372/KVM-Invoicing-System/internal/httpx"
	"github.com/arunvijay5372/KVM-Invoicing-System/internal/models"
	"github.com/arunvijay5372/KVM-Invoicing-System/internal/validation"
	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
)

// BrandHandler manages the brand axis of the catalog. Creating a brand
// auto-generates products for every existing variant/size combination.
type BrandHandler struct {
	DB  *gorm.DB
	Gen *catalog.Generator
}

func NewBrandHandler(db *gorm.DB, gen *catalog.Generator) *BrandHandler {
	return &BrandHandler{DB: db, Gen: gen}
}

func (h *BrandHandler) Routes(r chi.Router) {
	r.Get("/brands", h.List)
	r.Post("/brands", h.Create)
	r.Get("/brands/{id}", h.Get)
	r.Put("/brands/{id}", h.Update)
	r.Delete("/brands/{id}", h.Delete)
}

func (h *BrandHandler) List(w http.ResponseWriter, r *http.Request) {
	var brands []models.Brand
	if err := h.DB.Find(&brands).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_brands", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, brands)
}

func (h *BrandHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name        string `json:"name"`
		Code        string `json:"code"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("name", input.Name, v)
	validation.Required("code", input.Code, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}

	brand := models.Brand{
		Name:        strings.TrimSpace(input.Name),
		Code:        strings.ToUpper(strings.TrimSpace(input.Code)),
		Description: input.Description,
		IsActive:    true,
	}
	if err := h.DB.Create(&brand).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			httpx.JSONError(w, http.StatusConflict, "brand_already_exists", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_brand", nil)
		return
	}

	// Auto-create products for the new brand across all variants and sizes.
	var variants []models.Variant
	var sizes []models.Size
	if err := h.DB.Find(&variants).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "catalog_generation_failed", nil)
		return
	}
	if err := h.DB.Find(&sizes).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "catalog_generation_failed", nil)
		return
	}
	if _, err := h.Gen.GenerateForBrand(brand, variants, sizes); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "catalog_generation_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, brand)
}

func (h *BrandHandler) Get(w http.ResponseWriter, r *http.Request) {
	var brand models.Brand
	if err := h.DB.First(&brand, "id = ?", chi.URLParam(r, "id")).Error; err != nil {
		httpx.JSONError(w, http.StatusNotFound, "brand_not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, brand)
}

func (h *BrandHandler) Update(w http.ResponseWriter, r *http.Request) {
	var brand models.Brand
	if err := h.DB.First(&brand, "id = ?", chi.URLParam(r, "id")).Error; err != nil {
		httpx.JSONError(w, http.StatusNotFound, "brand_not_found", nil)
		return
	}
	var input struct {
		Name        *string `json:"name"`
		Code        *string `json:"code"`
		Description *string `json:"description"`
		IsActive    *bool   `json:"is_active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if input.Name != nil && *input.Name != "" {
		brand.Name = *input.Name
	}
	if input.Code != nil && *input.Code != "" {
		brand.Code = strings.ToUpper(*input.Code)
	}
	if input.Description != nil {
		brand.Description = *input.Description
	}
	if input.IsActive != nil {
		brand.IsActive = *input.IsActive
	}
	if err := h.DB.Save(&brand).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			httpx.JSONError(w, http.StatusConflict, "brand_already_exists", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_brand", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, brand)
}

// Delete removes a brand and cascades to its products and their inventory
// rows in a single transaction.
func (h *BrandHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var brand models.Brand
	if err := h.DB.First(&brand, "id = ?", chi.URLParam(r, "id")).Error; err != nil {
		httpx.JSONError(w, http.StatusNotFound, "brand_not_found", nil)
		return
	}
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id IN (?)",
			tx.Model(&models.Product{}).Select("id").Where("brand_id = ?", brand.ID),
		).Delete(&models.Inventory{}).Error; err != nil {
			return err
		}
		if err := tx.Where("brand_id = ?", brand.ID).Delete(&models.Product{}).Error; err != nil {
			return err
		}
		return tx.Delete(&brand).Error
	})
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_delete_brand", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "Brand deleted"})
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/arunvijay5372/KVM-Invoicing-System/internal/httpx"
	"github.com/arunvijay5372/KVM-Invoicing-System/internal/models"
	"github.com/arunvijay5372/KVM-Invoicing-System/internal/validation"
	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
)

type ProductHandler struct {
	DB *gorm.DB
}

func NewProductHandler(db *gorm.DB) *ProductHandler { return &ProductHandler{DB: db} }

func (h *ProductHandler) Routes(r chi.Router) {
	r.Get("/products", h.List)
	r.Post("/products", h.Create)
	r.Get("/products/{id}", h.Get)
	r.Put("/products/{id}", h.Update)
}

// List returns active products with their axes and inventory resolved.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	var products []models.Product
	if err := h.DB.Where("is_active = ?", true).
		Preload("Brand").Preload("Variant").Preload("Size").Preload("Inventory").
		Find(&products).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_products", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, products)
}

// Create adds a single product manually, outside the generator, together
// with its zero-quantity inventory row.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name      string  `json:"name"`
		BrandID   string  `json:"brand_id"`
		VariantID string  `json:"variant_id"`
		SizeID    string  `json:"size_id"`
		HSNCode   string  `json:"hsn_code"`
		Unit      string  `json:"unit"`
		Price     float64 `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("name", input.Name, v)
	validation.Required("brand_id", input.BrandID, v)
	validation.Required("variant_id", input.VariantID, v)
	validation.Required("size_id", input.SizeID, v)
	validation.NonNegativeFloat("price", input.Price, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	if input.HSNCode == "" {
		input.HSNCode = "3917"
	}
	if input.Unit == "" {
		input.Unit = "Nos"
	}

	product := models.Product{
		Name:      strings.TrimSpace(input.Name),
		BrandID:   input.BrandID,
		VariantID: input.VariantID,
		SizeID:    input.SizeID,
		HSNCode:   input.HSNCode,
		Unit:      input.Unit,
		Price:     input.Price,
		IsActive:  true,
	}
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&product).Error; err != nil {
			return err
		}
		return tx.Create(&models.Inventory{ProductID: product.ID, Quantity: 0, ReorderLevel: 10}).Error
	})
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_product", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, product)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	var product models.Product
	err := h.DB.Preload("Brand").Preload("Variant").Preload("Size").Preload("Inventory").
		First(&product, "id = ?", chi.URLParam(r, "id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "product_not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_product", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var product models.Product
	if err := h.DB.First(&product, "id = ?", chi.URLParam(r, "id")).Error; err != nil {
		httpx.JSONError(w, http.StatusNotFound, "product_not_found", nil)
		return
	}
	var input struct {
		Name     *string  `json:"name"`
		HSNCode  *string  `json:"hsn_code"`
		Unit     *string  `json:"unit"`
		Price    *float64 `json:"price"`
		IsActive *bool    `json:"is_active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if input.Name != nil && *input.Name != "" {
		product.Name = *input.Name
	}
	if input.HSNCode != nil {
		product.HSNCode = *input.HSNCode
	}
	if input.Unit != nil {
		product.Unit = *input.Unit
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	if err := h.DB.Save(&product).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_product", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, product)
}

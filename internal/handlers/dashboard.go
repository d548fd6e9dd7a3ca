package handlers

import (
	"math"
	"net/http"
	"time"

	"github.com/arunvijay5372/KVM-Invoicing-System/internal/httpx"
	"github.com/arunvijay5372/KVM-Invoicing-System/internal/models"
	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
)

type DashboardHandler struct {
	DB *gorm.DB
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler { return &DashboardHandler{DB: db} }

func (h *DashboardHandler) Routes(r chi.Router) {
	r.Get("/dashboard", h.Summary)
}

func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	var totalProducts, activeBrands, lowStock, todayInvoices int64
	h.DB.Model(&models.Product{}).Where("is_active = ?", true).Count(&totalProducts)
	h.DB.Model(&models.Brand{}).Where("is_active = ?", true).Count(&activeBrands)
	h.DB.Model(&models.Inventory{}).Where("quantity <= reorder_level").Count(&lowStock)

	today := time.Now().UTC().Truncate(24 * time.Hour)
	h.DB.Model(&models.Invoice{}).
		Where("invoice_date >= ? AND invoice_date < ?", today, today.Add(24*time.Hour)).
		Count(&todayInvoices)

	var totalValue float64
	h.DB.Model(&models.Inventory{}).
		Joins("JOIN products ON products.id = inventories.product_id").
		Select("COALESCE(SUM(inventories.quantity * products.price), 0)").
		Scan(&totalValue)

	var recent []models.Invoice
	if err := h.DB.Preload("Customer").Preload("Items").
		Order("created_at desc").Limit(5).Find(&recent).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_dashboard", nil)
		return
	}

	httpx.JSON(w, http.StatusOK, map[string]any{
		"total_products":        totalProducts,
		"active_brands":         activeBrands,
		"total_inventory_value": math.Round(totalValue*100) / 100,
		"low_stock_count":       lowStock,
		"today_invoices":        todayInvoices,
		"recent_invoices":       recent,
	})
}

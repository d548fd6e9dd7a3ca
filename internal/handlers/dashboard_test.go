package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/arunvijay5372/KVM-Invoicing-System/internal/models"
	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
)

func dashboardRouter(db *gorm.DB) chi.Router {
	r := chi.NewRouter()
	NewDashboardHandler(db).Routes(r)
	return r
}

func TestDashboardSummary(t *testing.T) {
	db := setupHandlerTestDB(t)
	r := dashboardRouter(db)

	p1 := seedProductWithInventory(t, db, "alpha", 2) // below reorder level 10
	p2 := seedProductWithInventory(t, db, "beta", 50)
	if err := db.Model(&models.Product{}).Where("id = ?", p1.ID).Update("price", 100).Error; err != nil {
		t.Fatalf("price: %v", err)
	}
	if err := db.Model(&models.Product{}).Where("id = ?", p2.ID).Update("price", 20).Error; err != nil {
		t.Fatalf("price: %v", err)
	}

	customer := models.Customer{Name: "Sri Murugan Traders"}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("customer: %v", err)
	}
	invoices := []models.Invoice{
		{InvoiceNumber: "KVM-20260830-0001", CustomerID: customer.ID, InvoiceDate: time.Now().UTC(), Status: models.StatusDraft},
		{InvoiceNumber: "KVM-20260829-0002", CustomerID: customer.ID, InvoiceDate: time.Now().UTC().Add(-48 * time.Hour), Status: models.StatusPaid},
	}
	for i := range invoices {
		if err := db.Create(&invoices[i]).Error; err != nil {
			t.Fatalf("invoice: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}

	var summary struct {
		TotalProducts       int64            `json:"total_products"`
		ActiveBrands        int64            `json:"active_brands"`
		TotalInventoryValue float64          `json:"total_inventory_value"`
		LowStockCount       int64            `json:"low_stock_count"`
		TodayInvoices       int64            `json:"today_invoices"`
		RecentInvoices      []models.Invoice `json:"recent_invoices"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if summary.TotalProducts != 2 || summary.ActiveBrands != 2 {
		t.Fatalf("counts wrong: products=%d brands=%d", summary.TotalProducts, summary.ActiveBrands)
	}
	// 2*100 + 50*20
	if summary.TotalInventoryValue != 1200 {
		t.Fatalf("inventory value = %v, want 1200", summary.TotalInventoryValue)
	}
	if summary.LowStockCount != 1 {
		t.Fatalf("low stock = %d, want 1", summary.LowStockCount)
	}
	if summary.TodayInvoices != 1 {
		t.Fatalf("today invoices = %d, want 1", summary.TodayInvoices)
	}
	if len(summary.RecentInvoices) != 2 {
		t.Fatalf("recent invoices = %d, want 2", len(summary.RecentInvoices))
	}
}

func TestDashboardEmptyDatabase(t *testing.T) {
	db := setupHandlerTestDB(t)
	r := dashboardRouter(db)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	var summary map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if summary["total_inventory_value"].(float64) != 0 {
		t.Fatalf("expected zero inventory value, got %v", summary["total_inventory_value"])
	}
}

package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/arunvijay5372/KVM-Invoicing-System/internal/models"
	"github.com/arunvijay5372/KVM-Invoicing-System/internal/services"
	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
)

func invoiceRouter(db *gorm.DB) chi.Router {
	r := chi.NewRouter()
	NewInvoiceHandler(db, services.NewInvoiceService(db)).Routes(r)
	return r
}

func seedInvoiceFixtures(t *testing.T, db *gorm.DB) (models.Customer, models.Product) {
	t.Helper()
	customer := models.Customer{Name: "Sri Murugan Traders", GSTIN: "33AAAAA0000A1Z5", City: "Chennai", State: "Tamil Nadu"}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("customer: %v", err)
	}
	product := seedProductWithInventory(t, db, "finolex", 100)
	return customer, product
}

func TestInvoiceCreateAndGet(t *testing.T) {
	db := setupHandlerTestDB(t)
	customer, product := seedInvoiceFixtures(t, db)
	r := invoiceRouter(db)

	body := `{"customer_id":"` + customer.ID + `","items":[{"product_id":"` + product.ID + `","quantity":3,"unit_price":100,"discount_percent":10}],"notes":"first order"}`
	req := httptest.NewRequest(http.MethodPost, "/invoices", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}
	var created models.Invoice
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.GrandTotal != 318.60 {
		t.Fatalf("grand total = %v, want 318.60", created.GrandTotal)
	}
	if len(created.Items) != 1 || created.Customer == nil {
		t.Fatalf("expected resolved items and customer: %+v", created)
	}
	if !strings.HasPrefix(created.InvoiceNumber, "KVM-") {
		t.Fatalf("unexpected invoice number %s", created.InvoiceNumber)
	}

	req = httptest.NewRequest(http.MethodGet, "/invoices/"+created.ID, nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("get: %d", w.Code)
	}
}

func TestInvoiceCreateRequiresCustomerAndItems(t *testing.T) {
	db := setupHandlerTestDB(t)
	r := invoiceRouter(db)

	for _, body := range []string{
		`{"items":[{"quantity":1,"unit_price":10}]}`,
		`{"customer_id":"someone","items":[]}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/invoices", strings.NewReader(body))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %s, got %d", body, w.Code)
		}
	}
}

func TestInvoiceCreateRejectsOutOfRangeDiscount(t *testing.T) {
	db := setupHandlerTestDB(t)
	customer, product := seedInvoiceFixtures(t, db)
	r := invoiceRouter(db)

	for _, discount := range []string{"150", "-5"} {
		body := `{"customer_id":"` + customer.ID + `","items":[{"product_id":"` + product.ID + `","quantity":1,"unit_price":100,"discount_percent":` + discount + `}]}`
		req := httptest.NewRequest(http.MethodPost, "/invoices", strings.NewReader(body))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for discount %s, got %d body=%s", discount, w.Code, w.Body.String())
		}
		if !strings.Contains(w.Body.String(), "discount_percent") {
			t.Fatalf("violation field missing: %s", w.Body.String())
		}
	}
	var count int64
	db.Model(&models.Invoice{}).Count(&count)
	if count != 0 {
		t.Fatalf("invalid request persisted %d invoices", count)
	}
}

func TestInvoiceUpdateStatusAndNotes(t *testing.T) {
	db := setupHandlerTestDB(t)
	customer, product := seedInvoiceFixtures(t, db)
	r := invoiceRouter(db)

	body := `{"customer_id":"` + customer.ID + `","items":[{"product_id":"` + product.ID + `","quantity":1,"unit_price":50}]}`
	req := httptest.NewRequest(http.MethodPost, "/invoices", strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: %d body=%s", w.Code, w.Body.String())
	}
	var created models.Invoice
	_ = json.Unmarshal(w.Body.Bytes(), &created)

	req = httptest.NewRequest(http.MethodPut, "/invoices/"+created.ID, strings.NewReader(`{"status":"paid","notes":"settled in cash"}`))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("update: %d body=%s", w.Code, w.Body.String())
	}
	var stored models.Invoice
	if err := db.First(&stored, "id = ?", created.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.Status != models.StatusPaid || stored.Notes != "settled in cash" {
		t.Fatalf("update not applied: %s %q", stored.Status, stored.Notes)
	}
	// Totals are untouched by the update.
	if stored.GrandTotal != created.GrandTotal {
		t.Fatalf("totals changed on update: %v -> %v", created.GrandTotal, stored.GrandTotal)
	}
}

func TestInvoicePDFEndpoint(t *testing.T) {
	db := setupHandlerTestDB(t)
	customer, product := seedInvoiceFixtures(t, db)
	r := invoiceRouter(db)

	body := `{"customer_id":"` + customer.ID + `","items":[{"product_id":"` + product.ID + `","quantity":2,"unit_price":250,"discount_percent":5}],"notes":"deliver by friday"}`
	req := httptest.NewRequest(http.MethodPost, "/invoices", strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: %d body=%s", w.Code, w.Body.String())
	}
	var created models.Invoice
	_ = json.Unmarshal(w.Body.Bytes(), &created)

	req = httptest.NewRequest(http.MethodGet, "/invoices/"+created.ID+"/pdf", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("pdf: %d body=%s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "application/pdf") {
		t.Fatalf("content-type = %s", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, created.InvoiceNumber+".pdf") {
		t.Fatalf("content-disposition = %s", cd)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")) {
		t.Fatalf("response is not a PDF (starts with %q)", w.Body.Bytes()[:4])
	}
}

func TestInvoicePDFNotFound(t *testing.T) {
	db := setupHandlerTestDB(t)
	r := invoiceRouter(db)

	req := httptest.NewRequest(http.MethodGet, "/invoices/no-such-id/pdf", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", w.Code)
	}
}

package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/arunvijay5372/KVM-Invoicing-System/internal/httpx"
	"github.com/arunvijay5372/KVM-Invoicing-System/internal/models"
	"github.com/arunvijay5372/KVM-Invoicing-System/internal/pdf"
	"github.com/arunvijay5372/KVM-Invoicing-System/internal/services"
	"github.com/arunvijay5372/KVM-Invoicing-System/internal/validation"
	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
)

type InvoiceHandler struct {
	DB  *gorm.DB
	Svc *services.InvoiceService
}

func NewInvoiceHandler(db *gorm.DB, svc *services.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{DB: db, Svc: svc}
}

func (h *InvoiceHandler) Routes(r chi.Router) {
	r.Get("/invoices", h.List)
	r.Post("/invoices", h.Create)
	r.Get("/invoices/{id}", h.Get)
	r.Put("/invoices/{id}", h.Update)
	r.Get("/invoices/{id}/pdf", h.PDF)
}

func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	var invoices []models.Invoice
	if err := h.DB.Preload("Customer").Preload("Items").
		Order("created_at desc").Find(&invoices).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_invoices", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, invoices)
}

func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input struct {
		CustomerID string                 `json:"customer_id"`
		Items      []services.LineRequest `json:"items"`
		Notes      string                 `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	for i, item := range input.Items {
		validation.RangeFloat(fmt.Sprintf("items[%d].discount_percent", i), item.DiscountPercent, 0, 100, v)
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	inv, err := h.Svc.Create(input.CustomerID, input.Items, input.Notes)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCustomerRequired), errors.Is(err, services.ErrItemsRequired):
			httpx.JSONError(w, http.StatusBadRequest, "customer_and_items_required", nil)
		case errors.Is(err, gorm.ErrDuplicatedKey):
			// Lost the invoice-number race against a concurrent creation.
			httpx.JSONError(w, http.StatusConflict, "duplicate_invoice_number", nil)
		default:
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_invoice", nil)
		}
		return
	}
	var full models.Invoice
	if err := h.DB.Preload("Customer").Preload("Items").First(&full, "id = ?", inv.ID).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_invoice", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, full)
}

func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	var inv models.Invoice
	err := h.DB.Preload("Customer").Preload("Items").
		First(&inv, "id = ?", chi.URLParam(r, "id")).Error
	if err != nil {
		httpx.JSONError(w, http.StatusNotFound, "invoice_not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}

// Update changes status and/or notes. Line items are immutable once the
// invoice exists; there is deliberately no item-edit operation.
func (h *InvoiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	var inv models.Invoice
	if err := h.DB.First(&inv, "id = ?", chi.URLParam(r, "id")).Error; err != nil {
		httpx.JSONError(w, http.StatusNotFound, "invoice_not_found", nil)
		return
	}
	var input struct {
		Status *string `json:"status"`
		Notes  *string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if err := h.Svc.UpdateMutable(&inv, input.Status, input.Notes); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_invoice", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}

// PDF renders the invoice document and serves it as an attachment named
// after the invoice number.
func (h *InvoiceHandler) PDF(w http.ResponseWriter, r *http.Request) {
	var inv models.Invoice
	err := h.DB.Preload("Customer").Preload("Items").
		First(&inv, "id = ?", chi.URLParam(r, "id")).Error
	if err != nil {
		httpx.JSONError(w, http.StatusNotFound, "invoice_not_found", nil)
		return
	}
	doc, err := pdf.RenderInvoice(&inv)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "pdf_generation_failed", nil)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", inv.InvoiceNumber))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc); err != nil {
		_ = err
	}
}

package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/arunvijay5372/KVM-Invoicing-System/internal/httpx"
	"github.com/arunvijay5372/KVM-Invoicing-System/internal/models"
	"github.com/arunvijay5372/KVM-Invoicing-System/internal/validation"
	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
)

type CustomerHandler struct {
	DB *gorm.DB
}

func NewCustomerHandler(db *gorm.DB) *CustomerHandler { return &CustomerHandler{DB: db} }

func (h *CustomerHandler) Routes(r chi.Router) {
	r.Get("/customers", h.List)
	r.Post("/customers", h.Create)
	r.Put("/customers/{id}", h.Update)
	r.Delete("/customers/{id}", h.Delete)
}

func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	var customers []models.Customer
	if err := h.DB.Order("name").Find(&customers).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_customers", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, customers)
}

func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name    string `json:"name"`
		GSTIN   string `json:"gstin"`
		Phone   string `json:"phone"`
		Email   string `json:"email"`
		Address string `json:"address"`
		City    string `json:"city"`
		State   string `json:"state"`
		Pincode string `json:"pincode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("name", input.Name, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	customer := models.Customer{
		Name:    strings.TrimSpace(input.Name),
		GSTIN:   input.GSTIN,
		Phone:   input.Phone,
		Email:   input.Email,
		Address: input.Address,
		City:    input.City,
		State:   input.State,
		Pincode: input.Pincode,
	}
	if err := h.DB.Create(&customer).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_customer", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, customer)
}

func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	var customer models.Customer
	if err := h.DB.First(&customer, "id = ?", chi.URLParam(r, "id")).Error; err != nil {
		httpx.JSONError(w, http.StatusNotFound, "customer_not_found", nil)
		return
	}
	var input struct {
		Name    *string `json:"name"`
		GSTIN   *string `json:"gstin"`
		Phone   *string `json:"phone"`
		Email   *string `json:"email"`
		Address *string `json:"address"`
		City    *string `json:"city"`
		State   *string `json:"state"`
		Pincode *string `json:"pincode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if input.Name != nil && *input.Name != "" {
		customer.Name = *input.Name
	}
	if input.GSTIN != nil {
		customer.GSTIN = *input.GSTIN
	}
	if input.Phone != nil {
		customer.Phone = *input.Phone
	}
	if input.Email != nil {
		customer.Email = *input.Email
	}
	if input.Address != nil {
		customer.Address = *input.Address
	}
	if input.City != nil {
		customer.City = *input.City
	}
	if input.State != nil {
		customer.State = *input.State
	}
	if input.Pincode != nil {
		customer.Pincode = *input.Pincode
	}
	if err := h.DB.Save(&customer).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_customer", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, customer)
}

func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var customer models.Customer
	if err := h.DB.First(&customer, "id = ?", chi.URLParam(r, "id")).Error; err != nil {
		httpx.JSONError(w, http.StatusNotFound, "customer_not_found", nil)
		return
	}
	if err := h.DB.Delete(&customer).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_delete_customer", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "Customer deleted"})
}

package handlers

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/arunvijay5372/KVM-Invoicing-System/internal/httpx"
	"github.com/arunvijay5372/KVM-Invoicing-System/internal/models"
	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
)

type InventoryHandler struct {
	DB *gorm.DB
}

func NewInventoryHandler(db *gorm.DB) *InventoryHandler { return &InventoryHandler{DB: db} }

func (h *InventoryHandler) Routes(r chi.Router) {
	r.Get("/inventory", h.List)
	r.Post("/inventory/upload", h.Upload)
	r.Get("/inventory/{productID}", h.Get)
	r.Put("/inventory/{productID}", h.Update)
}

func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	var items []models.Inventory
	if err := h.DB.Joins("Product").Find(&items).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_inventory", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, items)
}

func (h *InventoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	var inv models.Inventory
	if err := h.DB.Where("product_id = ?", chi.URLParam(r, "productID")).First(&inv).Error; err != nil {
		httpx.JSONError(w, http.StatusNotFound, "inventory_not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}

// Update upserts the inventory row for a product.
func (h *InventoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")
	var inv models.Inventory
	err := h.DB.Where("product_id = ?", productID).First(&inv).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_inventory", nil)
			return
		}
		inv = models.Inventory{ProductID: productID, Quantity: 0, ReorderLevel: 10}
		if err := h.DB.Create(&inv).Error; err != nil {
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_inventory", nil)
			return
		}
	}
	var input struct {
		Quantity     *int `json:"quantity"`
		ReorderLevel *int `json:"reorder_level"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if input.Quantity != nil {
		inv.Quantity = *input.Quantity
	}
	if input.ReorderLevel != nil {
		inv.ReorderLevel = *input.ReorderLevel
	}
	if err := h.DB.Save(&inv).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_inventory", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}

var errMalformedQuantity = errors.New("malformed quantity")

// Upload applies a CSV bulk quantity update. Recognized columns:
// product_id and quantity. Rows with a blank product_id are skipped and
// unmatched product ids are silently ignored; a malformed quantity aborts
// the whole batch and rolls back every row already applied.
func (h *InventoryHandler) Upload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "no_file_uploaded", nil)
		return
	}
	defer file.Close()
	if !strings.HasSuffix(strings.ToLower(header.Filename), ".csv") {
		httpx.JSONError(w, http.StatusBadRequest, "only_csv_accepted", nil)
		return
	}

	updated, err := h.applyCSV(file)
	if err != nil {
		if errors.Is(err, errMalformedQuantity) {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_quantity", nil)
			return
		}
		httpx.JSONError(w, http.StatusBadRequest, "invalid_csv", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": fmt.Sprintf("%d items updated", updated)})
}

func (h *InventoryHandler) applyCSV(file io.Reader) (int, error) {
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	head, err := reader.Read()
	if err != nil {
		return 0, err
	}
	pidCol, qtyCol := -1, -1
	for i, name := range head {
		switch strings.TrimSpace(strings.ToLower(name)) {
		case "product_id":
			pidCol = i
		case "quantity":
			qtyCol = i
		}
	}

	updated := 0
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		for {
			row, err := reader.Read()
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return err
			}
			pid := cell(row, pidCol)
			if pid == "" {
				continue
			}
			qtyRaw := cell(row, qtyCol)
			if qtyRaw == "" {
				qtyRaw = "0"
			}
			qty, err := strconv.Atoi(qtyRaw)
			if err != nil {
				return errMalformedQuantity
			}
			var inv models.Inventory
			if err := tx.Where("product_id = ?", pid).First(&inv).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue
				}
				return err
			}
			if err := tx.Model(&inv).Update("quantity", qty).Error; err != nil {
				return err
			}
			updated++
		}
	})
	if err != nil {
		return 0, err
	}
	return updated, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// Package services holds the invoice numbering and totals engine.
package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/arunvijay5372/KVM-Invoicing-System/internal/models"
	"gorm.io/gorm"
)

// Fixed GST split: two equal 9% components (CGST + SGST) on the taxable
// amount, 18% effective. Not configurable per product or customer.
const gstComponentRate = 0.09

const defaultHSNCode = "3917"

var (
	ErrCustomerRequired = errors.New("customer is required")
	ErrItemsRequired    = errors.New("at least one item is required")
)

// LineRequest describes one requested invoice line. ProductName and
// HSNCode are fallbacks used only when ProductID does not resolve.
// Quantity defaults to 1 when omitted; an explicit zero stays zero and
// yields a zero-amount line.
type LineRequest struct {
	ProductID       string  `json:"product_id"`
	ProductName     string  `json:"product_name"`
	HSNCode         string  `json:"hsn_code"`
	Quantity        *int    `json:"quantity"`
	UnitPrice       float64 `json:"unit_price"`
	DiscountPercent float64 `json:"discount_percent"`
}

// InvoiceService creates invoices: it assigns the invoice number and
// computes per-line tax amounts and aggregate totals. Status and notes may
// change after creation; line items are immutable.
type InvoiceService struct {
	DB *gorm.DB
}

func NewInvoiceService(db *gorm.DB) *InvoiceService { return &InvoiceService{DB: db} }

// NextNumber forms the invoice number for the (count+1)th invoice:
// "KVM-" + UTC date + "-" + zero-padded cumulative sequence. The sequence
// is cumulative across all time, not per-day, despite embedding the date.
func NextNumber(count int64, now time.Time) string {
	return fmt.Sprintf("KVM-%s-%04d", now.UTC().Format("20060102"), count+1)
}

// Create validates the request, assigns the next invoice number, computes
// all line amounts and invoice totals, and persists the invoice with its
// items in one transaction.
//
// The number is derived from the current invoice count inside the
// transaction. Two concurrent creations can still compute the same number;
// the unique index on invoice_number makes the loser fail with
// gorm.ErrDuplicatedKey, which callers surface as a conflict.
func (s *InvoiceService) Create(customerID string, items []LineRequest, notes string) (*models.Invoice, error) {
	if customerID == "" {
		return nil, ErrCustomerRequired
	}
	if len(items) == 0 {
		return nil, ErrItemsRequired
	}

	now := time.Now().UTC()
	var inv models.Invoice
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Invoice{}).Count(&count).Error; err != nil {
			return err
		}
		inv = models.Invoice{
			InvoiceNumber: NextNumber(count, now),
			CustomerID:    customerID,
			InvoiceDate:   now,
			Status:        models.StatusDraft,
			Notes:         notes,
		}
		if err := tx.Create(&inv).Error; err != nil {
			return err
		}

		var subtotal, cgstTotal, sgstTotal float64
		for _, req := range items {
			item := computeLine(tx, inv.ID, req)
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			// Accumulate the line-rounded values; rounding happens per line
			// first, then the rounded values are summed.
			subtotal += item.TaxableAmount
			cgstTotal += item.CGSTAmount
			sgstTotal += item.SGSTAmount
		}

		inv.Subtotal = round2(subtotal)
		inv.CGSTTotal = round2(cgstTotal)
		inv.SGSTTotal = round2(sgstTotal)
		inv.GrandTotal = round2(subtotal + cgstTotal + sgstTotal)
		return tx.Model(&inv).Updates(map[string]any{
			"subtotal":    inv.Subtotal,
			"cgst_total":  inv.CGSTTotal,
			"sgst_total":  inv.SGSTTotal,
			"grand_total": inv.GrandTotal,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// computeLine builds one line snapshot. Product name and HSN code come
// from the referenced product when it resolves; otherwise the
// caller-supplied values are used verbatim (a dangling product reference
// is tolerated, not an error).
func computeLine(tx *gorm.DB, invoiceID string, req LineRequest) models.InvoiceItem {
	qty := 1
	if req.Quantity != nil {
		qty = *req.Quantity
	}
	lineSubtotal := float64(qty) * req.UnitPrice
	discount := lineSubtotal * req.DiscountPercent / 100
	taxable := lineSubtotal - discount
	cgst := round2(taxable * gstComponentRate)
	sgst := round2(taxable * gstComponentRate)
	total := round2(taxable + cgst + sgst)

	name := req.ProductName
	hsn := req.HSNCode
	if hsn == "" {
		hsn = defaultHSNCode
	}
	if req.ProductID != "" {
		var product models.Product
		if err := tx.First(&product, "id = ?", req.ProductID).Error; err == nil {
			name = product.Name
			hsn = product.HSNCode
		}
	}

	return models.InvoiceItem{
		InvoiceID:       invoiceID,
		ProductID:       req.ProductID,
		ProductName:     name,
		HSNCode:         hsn,
		Quantity:        qty,
		UnitPrice:       req.UnitPrice,
		DiscountPercent: req.DiscountPercent,
		TaxableAmount:   round2(taxable),
		CGSTAmount:      cgst,
		SGSTAmount:      sgst,
		Total:           total,
	}
}

// UpdateMutable applies the only post-creation edits an invoice allows.
func (s *InvoiceService) UpdateMutable(inv *models.Invoice, status, notes *string) error {
	updates := map[string]any{}
	if status != nil {
		updates["status"] = *status
	}
	if notes != nil {
		updates["notes"] = *notes
	}
	if len(updates) == 0 {
		return nil
	}
	return s.DB.Model(inv).Updates(updates).Error
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Invoice statuses are free-form; the usual lifecycle is
// draft -> sent -> paid, or draft -> cancelled.
const (
	StatusDraft     = "draft"
	StatusSent      = "sent"
	StatusPaid      = "paid"
	StatusCancelled = "cancelled"
)

type Invoice struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	InvoiceNumber string    `gorm:"size:50;uniqueIndex;not null" json:"invoice_number"`
	CustomerID    string    `gorm:"size:36;not null;index" json:"customer_id"`
	InvoiceDate   time.Time `json:"invoice_date"`
	Subtotal      float64   `gorm:"default:0" json:"subtotal"`
	CGSTTotal     float64   `gorm:"default:0" json:"cgst_total"`
	SGSTTotal     float64   `gorm:"default:0" json:"sgst_total"`
	GrandTotal    float64   `gorm:"default:0" json:"grand_total"`
	Status        string    `gorm:"size:20;default:'draft'" json:"status"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`

	Customer *Customer     `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items    []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items"`
}

func (i *Invoice) BeforeCreate(*gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// InvoiceItem is a line snapshot. ProductName and HSNCode are copied from
// the product at invoice-creation time so later product edits do not alter
// historical invoices. Items are immutable once created.
type InvoiceItem struct {
	ID              string  `gorm:"primaryKey;size:36" json:"id"`
	InvoiceID       string  `gorm:"size:36;not null;index" json:"invoice_id"`
	ProductID       string  `gorm:"size:36" json:"product_id"`
	ProductName     string  `gorm:"size:200" json:"product_name"`
	HSNCode         string  `gorm:"size:20;default:'3917'" json:"hsn_code"`
	Quantity        int     `gorm:"default:1" json:"quantity"`
	UnitPrice       float64 `gorm:"default:0" json:"unit_price"`
	DiscountPercent float64 `gorm:"default:0" json:"discount_percent"`
	TaxableAmount   float64 `gorm:"default:0" json:"taxable_amount"`
	CGSTAmount      float64 `gorm:"default:0" json:"cgst_amount"`
	SGSTAmount      float64 `gorm:"default:0" json:"sgst_amount"`
	Total           float64 `gorm:"default:0" json:"total"`
}

func (it *InvoiceItem) BeforeCreate(*gorm.DB) error {
	if it.ID == "" {
		it.ID = uuid.NewString()
	}
	return nil
}

// Package pdf renders finalized invoices as fixed-layout A4 documents.
// It only formats data already computed by the invoice engine; totals are
// never re-derived here.
package pdf

import (
	"strconv"
	"strings"

	"github.com/arunvijay5372/KVM-Invoicing-System/internal/models"
	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Issuer identity block. Fixed, matching the printed letterhead.
const (
	companyName    = "KVM ENTERPRISES"
	companyAddress = "#6, Karumai Amman Kovil Street, Vadapalani, Chennai, Tamil Nadu 600026"
	companyPhone   = "9884243950"
	companyGSTIN   = "33EFMPS7293G1ZT"
)

var terms = []string{
	"1. Goods once sold will not be taken back.",
	"2. Payment due within 30 days of invoice date.",
	"3. Subject to Chennai jurisdiction.",
}

var headerBg = props.Color{Red: 44, Green: 62, Blue: 80}
var white = props.Color{Red: 255, Green: 255, Blue: 255}

// amounts use English thousands grouping, core fonts cannot encode the
// rupee sign so "Rs." stands in for it
var printer = message.NewPrinter(language.English)

func amount(v float64) string { return printer.Sprintf("%.2f", v) }

// RenderInvoice serializes an invoice (with customer and items preloaded)
// into PDF bytes.
func RenderInvoice(inv *models.Invoice) ([]byte, error) {
	m := newDocument()

	addHeader(m)
	addInvoiceInfo(m, inv)
	addItemsTable(m, inv)
	addTotals(m, inv)
	if inv.Notes != "" {
		m.AddRow(6, text.NewCol(12, "Notes: "+inv.Notes, props.Text{Size: 9}))
	}
	addTerms(m)
	addSignature(m)

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}

func newDocument() core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		Build()
	return maroto.New(cfg)
}

func addHeader(m core.Maroto) {
	m.AddRow(8, text.NewCol(12, companyName, props.Text{Size: 16, Style: fontstyle.Bold, Align: align.Center}))
	m.AddRow(5, text.NewCol(12, companyAddress, props.Text{Size: 9, Align: align.Center}))
	m.AddRow(5, text.NewCol(12, "Phone: "+companyPhone+"  |  GSTIN: "+companyGSTIN, props.Text{Size: 9, Align: align.Center}))
	m.AddRow(10, text.NewCol(12, "TAX INVOICE", props.Text{Size: 13, Style: fontstyle.Bold, Align: align.Center, Top: 3}))
}

func addInvoiceInfo(m core.Maroto, inv *models.Invoice) {
	m.AddRow(5,
		text.NewCol(7, "Invoice #: "+inv.InvoiceNumber, props.Text{Size: 9, Style: fontstyle.Bold}),
		text.NewCol(5, "Date: "+inv.InvoiceDate.Format("02-01-2006"), props.Text{Size: 9, Align: align.Right}),
	)
	billTo := ""
	if inv.Customer != nil {
		billTo = inv.Customer.Name
	}
	m.AddRow(5,
		text.NewCol(7, "Bill To: "+billTo, props.Text{Size: 9, Style: fontstyle.Bold}),
		text.NewCol(5, "Status: "+strings.ToUpper(inv.Status), props.Text{Size: 9, Align: align.Right}),
	)
	if c := inv.Customer; c != nil {
		var parts []string
		for _, p := range []string{c.Address, c.City, c.State, c.Pincode} {
			if p != "" {
				parts = append(parts, p)
			}
		}
		if len(parts) > 0 {
			m.AddRow(5, text.NewCol(12, strings.Join(parts, ", "), props.Text{Size: 9}))
		}
		if c.GSTIN != "" {
			m.AddRow(5, text.NewCol(12, "GSTIN: "+c.GSTIN, props.Text{Size: 9}))
		}
		if c.Phone != "" {
			m.AddRow(5, text.NewCol(12, "Phone: "+c.Phone, props.Text{Size: 9}))
		}
	}
	m.AddRow(4, col.New(12))
}

func addItemsTable(m core.Maroto, inv *models.Invoice) {
	head := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right, Color: &white}
	m.AddRows(row.New(6).Add(
		text.NewCol(1, "#", props.Text{Size: 8, Style: fontstyle.Bold, Color: &white}),
		text.NewCol(2, "Product", props.Text{Size: 8, Style: fontstyle.Bold, Color: &white}),
		text.NewCol(1, "HSN", head),
		text.NewCol(1, "Qty", head),
		text.NewCol(1, "Rate", head),
		text.NewCol(1, "Disc %", head),
		text.NewCol(1, "Taxable", head),
		text.NewCol(1, "CGST", head),
		text.NewCol(1, "SGST", head),
		text.NewCol(2, "Total (Rs.)", head),
	).WithStyle(&props.Cell{BackgroundColor: &headerBg}))

	cell := props.Text{Size: 8, Align: align.Right}
	for idx, item := range inv.Items {
		m.AddRows(row.New(5).Add(
			text.NewCol(1, strconv.Itoa(idx+1), props.Text{Size: 8}),
			text.NewCol(2, item.ProductName, props.Text{Size: 8}),
			text.NewCol(1, item.HSNCode, cell),
			text.NewCol(1, strconv.Itoa(item.Quantity), cell),
			text.NewCol(1, amount(item.UnitPrice), cell),
			text.NewCol(1, printer.Sprintf("%.1f", item.DiscountPercent), cell),
			text.NewCol(1, amount(item.TaxableAmount), cell),
			text.NewCol(1, amount(item.CGSTAmount), cell),
			text.NewCol(1, amount(item.SGSTAmount), cell),
			text.NewCol(2, amount(item.Total), cell),
		))
	}
	m.AddRow(4, col.New(12))
}

func addTotals(m core.Maroto, inv *models.Invoice) {
	label := props.Text{Size: 9, Align: align.Right}
	value := props.Text{Size: 9, Align: align.Right}
	m.AddRow(5, col.New(7), text.NewCol(3, "Subtotal:", label), text.NewCol(2, "Rs. "+amount(inv.Subtotal), value))
	m.AddRow(5, col.New(7), text.NewCol(3, "CGST (9%):", label), text.NewCol(2, "Rs. "+amount(inv.CGSTTotal), value))
	m.AddRow(5, col.New(7), text.NewCol(3, "SGST (9%):", label), text.NewCol(2, "Rs. "+amount(inv.SGSTTotal), value))
	m.AddRows(line.NewRow(2))
	bold := props.Text{Size: 9, Align: align.Right, Style: fontstyle.Bold}
	m.AddRow(6, col.New(7), text.NewCol(3, "Grand Total:", bold), text.NewCol(2, "Rs. "+amount(inv.GrandTotal), bold))
	m.AddRow(6, col.New(12))
}

func addTerms(m core.Maroto) {
	m.AddRow(5, text.NewCol(12, "Terms & Conditions:", props.Text{Size: 9, Style: fontstyle.Bold}))
	for _, t := range terms {
		m.AddRow(4, text.NewCol(12, t, props.Text{Size: 8}))
	}
	m.AddRow(8, col.New(12))
}

func addSignature(m core.Maroto) {
	m.AddRow(5, col.New(7), text.NewCol(5, "For "+companyName, props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}))
	m.AddRow(12, col.New(12))
	m.AddRow(5, col.New(7), text.NewCol(5, "Authorized Signatory", props.Text{Size: 9, Align: align.Right}))
}

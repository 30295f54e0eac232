package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"thescent/internal/models"
)

// Generator renders order invoices. Kept as an interface so handlers can be
// tested with a stub.
type Generator interface {
	GenerateInvoice(data InvoiceData) ([]byte, error)
}

type InvoiceData struct {
	Order    *models.Order
	Items    []*models.OrderItem
	Customer string
	IssuedAt time.Time
}

type InvoiceGenerator struct{}

func NewInvoiceGenerator() *InvoiceGenerator {
	return &InvoiceGenerator{}
}

func (g *InvoiceGenerator) GenerateInvoice(data InvoiceData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Invoice %s", data.Order.OrderNumber), false)
	pdf.SetAuthor("The Scent", false)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "INVOICE", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	sub := fmt.Sprintf("%s  /  %s", data.Order.OrderNumber, data.IssuedAt.Format("02.01.2006"))
	pdf.CellFormat(0, 7, sub, "", 1, "C", false, 0, "")
	g.hr(pdf)
	pdf.Ln(3)

	g.sectionTitle(pdf, "Billing")
	g.kvLine(pdf, "Customer", data.Customer)
	g.kvLine(pdf, "Order status", data.Order.Status)
	g.kvLine(pdf, "Payment status", data.Order.PaymentStatus)
	pdf.Ln(2)
	g.hr(pdf)

	g.sectionTitle(pdf, "Items")
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(95, 7, "Product", "B", 0, "L", false, 0, "")
	pdf.CellFormat(20, 7, "Qty", "B", 0, "R", false, 0, "")
	pdf.CellFormat(55, 7, "Unit price, $", "B", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	for _, item := range data.Items {
		name := fmt.Sprintf("Product #%d", item.ProductID)
		if item.Product != nil {
			name = item.Product.Name
		}
		pdf.CellFormat(95, 7, name, "", 0, "L", false, 0, "")
		pdf.CellFormat(20, 7, fmt.Sprintf("%d", item.Quantity), "", 0, "R", false, 0, "")
		pdf.CellFormat(55, 7, item.Price, "", 1, "R", false, 0, "")
	}
	pdf.Ln(2)
	g.hr(pdf)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 9, fmt.Sprintf("Total due: $%s", data.Order.Total), "", 1, "R", false, 0, "")

	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 10,
			fmt.Sprintf("Page %d/{nb}", pdf.PageNo()),
			"", 0, "C", false, 0, "",
		)
	})

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *InvoiceGenerator) sectionTitle(pdf *gofpdf.Fpdf, s string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 7, s, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
}

func (g *InvoiceGenerator) kvLine(pdf *gofpdf.Fpdf, key, val string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(45, 6, key+":", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, val, "", 1, "L", false, 0, "")
}

func (g *InvoiceGenerator) hr(pdf *gofpdf.Fpdf) {
	y := pdf.GetY() + 1.5
	pdf.SetLineWidth(0.2)
	pdf.Line(20, y, 190, y)
	pdf.SetY(y + 2)
}

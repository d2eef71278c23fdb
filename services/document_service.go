package services

import (
	"bytes"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jung-kurt/gofpdf"
	"github.com/tealeg/xlsx"

	"github.com/Badalsingh25/CraftConnect/models"
	"github.com/Badalsingh25/CraftConnect/utils"
)

// DocumentService renders order invoices and sales exports
type DocumentService struct{}

func NewDocumentService() *DocumentService {
	return &DocumentService{}
}

// Invoice renders a one page A4 PDF invoice for order
func (s *DocumentService) Invoice(order models.Order) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// Store info
	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(100, 10, utils.AppName)
	pdf.SetFont("Arial", "", 12)
	pdf.Ln(8)
	pdf.Cell(100, 8, "Handmade goods from artisans across India")
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(100, 10, "INVOICE")
	pdf.Ln(12)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(90, 8, "Order ID: "+shortID(order.ID))
	pdf.Cell(90, 8, "Order Date: "+order.CreatedAt.Format("2006-01-02 15:04:05"))
	pdf.Ln(8)
	pdf.Cell(90, 8, "Status: "+order.Status)
	pdf.Cell(90, 8, "Payment: "+paymentState(order))
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(100, 8, "Billed To:")
	pdf.Ln(7)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(100, 8, tr(orDefault(order.CustomerName, "Customer")))
	pdf.Ln(6)
	if order.CustomerEmail != "" {
		pdf.Cell(100, 8, order.CustomerEmail)
		pdf.Ln(6)
	}
	pdf.Ln(4)

	// Items table
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(80, 8, "Product", "1", 0, "C", false, 0, "")
	pdf.CellFormat(20, 8, "Qty", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 8, "Price", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 8, "Total", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(80, 8, tr(productName(order, "Item")), "1", 0, "L", false, 0, "")
	pdf.CellFormat(20, 8, fmt.Sprintf("%d", order.Quantity), "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 8, fmt.Sprintf("%.2f", order.UnitPrice), "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 8, fmt.Sprintf("%.2f", order.Gross), "1", 0, "R", false, 0, "")
	pdf.Ln(-1)

	// Summary
	pdf.Ln(4)
	summary := [][2]string{
		{"Subtotal:", fmt.Sprintf("%.2f", order.Gross)},
		{"Discount:", fmt.Sprintf("%.2f", order.Discount)},
	}
	if order.CouponCode != nil {
		summary = append(summary, [2]string{"Coupon:", *order.CouponCode})
	}
	for _, line := range summary {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(130, 8, line[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 12)
		pdf.CellFormat(30, 8, line[1], "", 1, "R", false, 0, "")
	}
	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(130, 10, "Grand Total ("+utils.Currency+"):", "", 0, "L", false, 0, "")
	pdf.CellFormat(30, 10, fmt.Sprintf("%.2f", order.Amount), "", 1, "R", false, 0, "")

	pdf.Ln(10)
	pdf.SetFont("Arial", "I", 12)
	pdf.Cell(0, 10, "Thank you for shopping with "+utils.AppName+"!")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrapf(err, "render invoice for order %s", order.ID)
	}
	return buf.Bytes(), nil
}

var exportHeaders = []string{"Order ID", "Date", "Product", "Customer", "Email", "Quantity", "Gross", "Discount", "Amount", "Coupon", "Status", "Payment ID", "Verified"}

// ExportOrders renders orders as an xlsx workbook with a totals row
func (s *DocumentService) ExportOrders(orders []models.Order) ([]byte, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Orders")
	if err != nil {
		return nil, errors.Wrap(err, "add sheet")
	}

	bold := xlsx.NewStyle()
	font := xlsx.DefaultFont()
	font.Bold = true
	bold.Font = *font

	headerRow := sheet.AddRow()
	for _, h := range exportHeaders {
		cell := headerRow.AddCell()
		cell.SetString(h)
		cell.SetStyle(bold)
	}

	var gross, discount, amount float64
	var quantity int
	for _, o := range orders {
		row := sheet.AddRow()
		row.AddCell().SetString(o.ID)
		row.AddCell().SetString(o.CreatedAt.Format("2006-01-02 15:04"))
		row.AddCell().SetString(productName(o, ""))
		row.AddCell().SetString(o.CustomerName)
		row.AddCell().SetString(o.CustomerEmail)
		row.AddCell().SetInt(o.Quantity)
		row.AddCell().SetFloat(o.Gross)
		row.AddCell().SetFloat(o.Discount)
		row.AddCell().SetFloat(o.Amount)
		coupon := ""
		if o.CouponCode != nil {
			coupon = *o.CouponCode
		}
		row.AddCell().SetString(coupon)
		row.AddCell().SetString(o.Status)
		row.AddCell().SetString(o.PaymentID)
		row.AddCell().SetBool(o.PaymentVerified)

		quantity += o.Quantity
		gross += o.Gross
		discount += o.Discount
		amount += o.Amount
	}

	totals := sheet.AddRow()
	label := totals.AddCell()
	label.SetString("Total")
	label.SetStyle(bold)
	for i := 0; i < 4; i++ {
		totals.AddCell()
	}
	totals.AddCell().SetInt(quantity)
	totals.AddCell().SetFloat(gross)
	totals.AddCell().SetFloat(discount)
	totals.AddCell().SetFloat(amount)

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, errors.Wrap(err, "write workbook")
	}
	return buf.Bytes(), nil
}

func paymentState(o models.Order) string {
	switch {
	case o.PaymentID == "":
		return "Not linked"
	case o.PaymentVerified:
		return "Verified (" + o.PaymentID + ")"
	default:
		return "Pending (" + o.PaymentID + ")"
	}
}

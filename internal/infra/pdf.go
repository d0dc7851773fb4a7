package infra

// pdf.go — Receipt generation using go-pdf/fpdf.
// Produces an A7-size thermal-style receipt for a recorded sale:
//   - Store header
//   - Sale number and timestamp
//   - Product line (name, quantity, unit price)
//   - Bold total
//   - Optional customer name
//
// The output file is saved to storagePath/receipt_{id}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Vaibhav-12521/Invento/internal/model"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// GenerateReceiptPDF writes a PDF receipt for a completed sale and returns the
// absolute path to the generated file. storagePath is created if needed.
func GenerateReceiptPDF(sale *model.Sale, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("receipt_%d.pdf", sale.ID)
	filePath := filepath.Join(storagePath, fileName)

	// A7 ≈ 74mm × 105mm — close to thermal receipt paper
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: 105},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, "Invento", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Sales Receipt", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Sale #%d", sale.ID), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, sale.SaleDate.Format("02/01/2006  15:04"), "", 1, "L", false, 0, "")
	if sale.CustomerName != nil && *sale.CustomerName != "" {
		pdf.CellFormat(contentW, 4, "Customer: "+*sale.CustomerName, "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)

	productName := fmt.Sprintf("Product #%d", sale.ProductID)
	if sale.Product != nil {
		productName = sale.Product.Name
	}
	unitPrice := decimal.Zero
	if sale.Quantity > 0 {
		unitPrice = sale.TotalAmount.Div(decimal.NewFromInt(int64(sale.Quantity)))
	}

	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW*0.55, 4, productName, "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.15, 4, fmt.Sprintf("x%d", sale.Quantity), "", 0, "R", false, 0, "")
	pdf.CellFormat(contentW*0.30, 4, unitPrice.StringFixed(2), "", 1, "R", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW*0.5, 6, "TOTAL", "T", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.5, 6, sale.TotalAmount.StringFixed(2), "T", 1, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write %s: %w", filePath, err)
	}
	return filePath, nil
}

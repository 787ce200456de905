package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/gestimo/rentd/internal/model"
)

// Generator renders rent receipts (quittances de loyer). French accents come
// through the cp1252 translator of the built-in Helvetica font.
type Generator struct {
	fontName string
}

func NewGenerator() (*Generator, error) {
	return &Generator{fontName: "Helvetica"}, nil
}

func (g *Generator) Generate(doc model.ReceiptDocument) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont(g.fontName, "B", 16)
	pdf.CellFormat(0, 10, tr("Quittance de loyer"), "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Période du %s au %s", formatDate(doc.PeriodStart), formatDate(doc.PeriodEnd))), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont(g.fontName, "B", 11)
	pdf.CellFormat(0, 6, tr("Bailleur"), "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 10)
	for _, line := range []string{
		doc.Organization.Name,
		fmt.Sprintf("SIREN : %s", safeValue(doc.Organization.SIREN)),
		fmt.Sprintf("Adresse : %s, %s", safeValue(doc.Organization.Address), safeValue(doc.Organization.City)),
	} {
		pdf.MultiCell(0, 5, tr(line), "", "L", false)
	}
	pdf.Ln(2)

	pdf.SetFont(g.fontName, "B", 11)
	pdf.CellFormat(0, 6, tr("Locataire"), "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 10)
	for _, line := range []string{
		doc.Tenant.FullName(),
		fmt.Sprintf("Logement : %s, %s %s", doc.Property.Name, safeValue(doc.Property.Address), safeValue(doc.Property.City)),
	} {
		pdf.MultiCell(0, 5, tr(line), "", "L", false)
	}
	pdf.Ln(6)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, tr("Détail du règlement"), "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 10)

	headers := []string{"Désignation", "Montant"}
	colWidths := []float64{120, 50}
	drawTableRow(pdf, g.fontName, tr, headers, colWidths, true)
	drawTableRow(pdf, g.fontName, tr, []string{"Loyer", formatAmount(doc.Contract.RentAmount)}, colWidths, false)
	drawTableRow(pdf, g.fontName, tr, []string{"Provisions sur charges", formatAmount(doc.Contract.Charges)}, colWidths, false)
	drawTableRow(pdf, g.fontName, tr, []string{"Total", formatAmount(doc.Contract.RentAmount + doc.Contract.Charges)}, colWidths, true)

	pdf.Ln(8)
	pdf.SetFont(g.fontName, "", 10)
	pdf.MultiCell(0, 5, tr(fmt.Sprintf(
		"Je soussigné(e) %s, bailleur, déclare avoir reçu de %s la somme de %s EUR au titre du loyer et des charges pour la période indiquée, et lui en donne quittance sous réserve de tous mes droits.",
		doc.Organization.Name, doc.Tenant.FullName(), formatAmount(doc.Contract.RentAmount+doc.Contract.Charges),
	)), "", "L", false)

	pdf.Ln(10)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Fait le %s", formatDate(time.Now()))), "", 1, "L", false, 0, "")
	pdf.Ln(8)
	pdf.CellFormat(0, 6, tr("Signature du bailleur :"), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawTableRow(pdf *gofpdf.Fpdf, fontName string, tr func(string) string, cols []string, widths []float64, header bool) {
	style := ""
	fill := false
	if header {
		style = "B"
		fill = true
		pdf.SetFillColor(235, 235, 235)
	}
	pdf.SetFont(fontName, style, 10)
	for i, col := range cols {
		align := "L"
		if i == len(cols)-1 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 7, tr(col), "1", 0, align, fill, 0, "")
	}
	pdf.Ln(-1)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02/01/2006")
}

func formatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func safeValue(v string) string {
	if v == "" {
		return "-"
	}
	return v
}

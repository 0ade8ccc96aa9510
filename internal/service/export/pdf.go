package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/mamadbah2/ranch/internal/domain/models"
)

func exportPDF(r *models.ProfitabilityResult, locale models.LocaleConfig, m Money) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Livestock profitability analysis", true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Livestock profitability analysis", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Country %s, %d days, tax basis %s at %.0f%%",
		locale.Country, r.TotalDays, r.TaxBreakdown.Basis, r.TaxBreakdown.Rate*100)), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	section := ""
	for _, line := range summaryLines(r, m) {
		if line.section != section {
			section = line.section
			pdf.Ln(2)
			pdf.SetFont("Helvetica", "B", 11)
			pdf.CellFormat(0, 7, tr(titleCase(section)), "B", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 10)
		}
		pdf.CellFormat(90, 6, tr(line.label), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, tr(line.text), "", 1, "R", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 7, "Scenarios", "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, s := range r.Scenarios.All() {
		label := fmt.Sprintf("%s (p=%.2f)", titleCase(s.Name), s.Probability)
		pdf.CellFormat(90, 6, tr(label), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, tr(m.Amount(s.NetProfit)), "", 1, "R", false, 0, "")
	}

	if len(r.Undefined) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "I", 9)
		for _, u := range r.Undefined {
			pdf.MultiCell(0, 5, tr(fmt.Sprintf("%s not computed: %s", u.Metric, u.Reason)), "", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}

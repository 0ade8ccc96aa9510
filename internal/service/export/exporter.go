package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/mamadbah2/ranch/internal/domain/models"
)

// Exporter renders results into downloadable documents.
type Exporter struct {
	logger *zap.Logger
}

// NewExporter builds an Exporter.
func NewExporter(logger *zap.Logger) *Exporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{logger: logger}
}

// Export encodes result in format, formatting money for locale.
func (e *Exporter) Export(result *models.ProfitabilityResult, format Format, locale models.LocaleConfig) ([]byte, error) {
	if result == nil {
		return nil, errors.New("nothing to export")
	}

	var (
		out []byte
		err error
	)
	switch format {
	case FormatJSON:
		out, err = json.MarshalIndent(result, "", "  ")
	case FormatCSV:
		out, err = exportCSV(result, NewMoney(locale))
	case FormatExcel:
		out, err = exportExcel(result, NewMoney(locale))
	case FormatPDF:
		out, err = exportPDF(result, locale, NewMoney(locale))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("export %s: %w", format, err)
	}

	e.logger.Debug("result exported", zap.String("format", string(format)), zap.Int("bytes", len(out)))
	return out, nil
}

// summaryLine is one labelled figure of the report.
type summaryLine struct {
	section string
	label   string
	text    string
	value   models.Metric
}

func summaryLines(r *models.ProfitabilityResult, m Money) []summaryLine {
	amount := func(section, label string, v float64) summaryLine {
		return summaryLine{section, label, m.Amount(v), models.Defined(v)}
	}
	pct := func(section, label string, v models.Metric) summaryLine {
		return summaryLine{section, label, m.Percent(v), v}
	}
	unit := func(section, label string, v models.Metric) summaryLine {
		return summaryLine{section, label, m.Metric(v, m.UnitPrice), v}
	}
	plain := func(section, label string, v models.Metric, suffix string) summaryLine {
		return summaryLine{section, label, m.Metric(v, func(x float64) string { return m.Number(x) + suffix }), v}
	}

	return []summaryLine{
		plain("herd", "Period (days)", models.Defined(float64(r.TotalDays)), ""),
		plain("herd", "Initial inventory", models.Defined(r.InitialInventory), " head"),
		plain("herd", "Final inventory", models.Defined(r.FinalInventory), " head"),
		plain("herd", "Sales volume", models.Defined(r.SalesVolume), " kg"),

		amount("revenue", "Gross revenue", r.GrossRevenue),
		unit("revenue", "Revenue per head", r.RevenuePerHead),

		amount("costs", "Purchase", r.PurchaseCosts),
		amount("costs", "Feed", r.FeedCosts),
		amount("costs", "Operational", r.OperationalCosts),
		amount("costs", "Financing", r.FinancingCosts),
		amount("costs", "Taxes", r.Taxes),
		amount("costs", "Total costs", r.TotalCosts),

		amount("profit", "Gross profit", r.GrossProfit),
		amount("profit", "Operating profit", r.OperatingProfit),
		amount("profit", "Net profit", r.NetProfit),
		amount("profit", "EBITDA", r.EBITDA),
		pct("profit", "Net margin", r.NetMargin),

		pct("financial", "ROI", r.ROI),
		pct("financial", "IRR (annualised)", r.IRR),
		pct("financial", "IRR (cash flow)", r.CashFlowIRR),
		amount("financial", "NPV", r.NPV),
		amount("financial", "NPV (cash flow)", r.CashFlowNPV),
		plain("financial", "Payback period", r.PaybackPeriod, " days"),

		unit("efficiency", "Cost per kg", r.CostPerKg),
		unit("efficiency", "Profit per kg", r.ProfitPerKg),

		plain("risk", "Break-even volume", r.BreakEvenPoint, " kg"),
		pct("risk", "Safety margin", r.SafetyMargin),
		pct("risk", "Price risk", r.PriceRisk),
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func metricCell(m models.Metric) string {
	if !m.Defined {
		return ""
	}
	return formatFloat(m.Value)
}

func exportCSV(r *models.ProfitabilityResult, m Money) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	records := [][]string{{"section", "metric", "value", "formatted"}}
	for _, line := range summaryLines(r, m) {
		records = append(records, []string{line.section, line.label, metricCell(line.value), line.text})
	}
	for _, p := range r.MonthlyProjections {
		records = append(records, []string{
			"projection",
			fmt.Sprintf("Month %d cumulative profit", p.Month),
			formatFloat(p.CumulativeProfit),
			m.Amount(p.CumulativeProfit),
		})
	}
	for _, s := range r.Scenarios.All() {
		records = append(records, []string{"scenario", s.Name + " net profit", formatFloat(s.NetProfit), m.Amount(s.NetProfit)})
	}
	for _, u := range r.Undefined {
		records = append(records, []string{"undefined", u.Metric, "", u.Reason})
	}

	if err := w.WriteAll(records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

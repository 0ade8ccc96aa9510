// Package export renders a profitability result as JSON, CSV, Excel or PDF.
package export

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/mamadbah2/ranch/internal/domain/models"
)

// ErrUnsupportedFormat is returned for an unknown export format.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Format names an export encoding.
type Format string

const (
	FormatJSON  Format = "json"
	FormatCSV   Format = "csv"
	FormatExcel Format = "excel"
	FormatPDF   Format = "pdf"
)

// ParseFormat maps a query value to a Format. "xlsx" is accepted for Excel.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "excel", "xlsx":
		return FormatExcel, nil
	case "pdf":
		return FormatPDF, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// ContentType is the MIME type of the encoded document.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatExcel:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		return "application/pdf"
	default:
		return "application/json"
	}
}

// Extension is the file extension used in download names.
func (f Format) Extension() string {
	if f == FormatExcel {
		return "xlsx"
	}
	return string(f)
}

// Money formats amounts for one locale: whole currency units for totals,
// two decimals for unit prices, one decimal for percentages.
type Money struct {
	printer  *message.Printer
	currency string
}

// NewMoney builds a formatter for locale.
func NewMoney(locale models.LocaleConfig) Money {
	locale = locale.WithDefaults()
	tag := language.Make(locale.Language)
	if tag == language.Und {
		tag = language.Spanish
	}
	return Money{printer: message.NewPrinter(tag), currency: locale.Currency}
}

// Amount renders v rounded to whole units, e.g. "COP 154.350".
func (m Money) Amount(v float64) string {
	return m.printer.Sprintf("%s %d", m.currency, decimal.NewFromFloat(v).Round(0).IntPart())
}

// UnitPrice renders v with two decimals.
func (m Money) UnitPrice(v float64) string {
	return m.printer.Sprintf("%s %.2f", m.currency, decimal.NewFromFloat(v).Round(2).InexactFloat64())
}

// Number renders v rounded to whole units without a currency.
func (m Money) Number(v float64) string {
	return m.printer.Sprintf("%d", decimal.NewFromFloat(v).Round(0).IntPart())
}

// Percent renders a percentage metric, or "n/a" when undefined.
func (m Money) Percent(metric models.Metric) string {
	if !metric.Defined {
		return notAvailable
	}
	return m.printer.Sprintf("%.1f%%", decimal.NewFromFloat(metric.Value).Round(1).InexactFloat64())
}

// Metric renders an undefined-aware metric with render.
func (m Money) Metric(metric models.Metric, render func(float64) string) string {
	if !metric.Defined {
		return notAvailable
	}
	return render(metric.Value)
}

const notAvailable = "n/a"

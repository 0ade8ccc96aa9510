package profitability

import "github.com/mamadbah2/ranch/internal/domain/models"

const (
	placeholderTaxRate     = 0.15
	fallbackCountryTaxRate = 0.15

	incomeTaxShare = 0.6
	vatShare       = 0.3
	localTaxShare  = 0.1
)

var countryTaxRates = map[models.CountryCode]float64{
	models.CountryColombia: 0.19,
	models.CountryMexico:   0.16,
	models.CountrySpain:    0.21,
	models.CountryBrazil:   0.15,
}

// CountryTaxRate resolves the tax rate for a locale: the explicit override
// when present, otherwise the country table.
func CountryTaxRate(locale models.LocaleConfig) float64 {
	if locale.TaxRate != nil {
		return *locale.TaxRate
	}
	if rate, ok := countryTaxRates[locale.Country]; ok {
		return rate
	}
	return fallbackCountryTaxRate
}

// taxRule decides how much tax an analysis carries.
type taxRule struct {
	basis models.TaxBasis
	rate  float64
}

var placeholderTax = taxRule{basis: models.TaxBasisCostSubtotal, rate: placeholderTaxRate}

func countryTax(locale models.LocaleConfig) taxRule {
	return taxRule{basis: models.TaxBasisGrossRevenue, rate: CountryTaxRate(locale)}
}

func (t taxRule) amount(subtotal, grossRevenue float64) float64 {
	if t.basis == models.TaxBasisGrossRevenue {
		return grossRevenue * t.rate
	}
	return subtotal * t.rate
}

func (t taxRule) breakdown(total float64) models.TaxBreakdown {
	return models.TaxBreakdown{
		Basis:      t.basis,
		Rate:       t.rate,
		IncomeTax:  total * incomeTaxShare,
		VAT:        total * vatShare,
		LocalTaxes: total * localTaxShare,
		Total:      total,
	}
}

// CountryAdjuster replaces the calculator's placeholder tax with the
// country rate on gross revenue. Every figure that depends on taxes is
// derived again so the result stays internally consistent.
type CountryAdjuster struct {
	calc *Calculator
}

// NewCountryAdjuster wires an adjuster over calc.
func NewCountryAdjuster(calc *Calculator) *CountryAdjuster {
	return &CountryAdjuster{calc: calc}
}

// Adjust returns base when it already carries the country tax, otherwise a
// freshly derived result.
func (a *CountryAdjuster) Adjust(data models.LivestockData, base *models.ProfitabilityResult, locale models.LocaleConfig) (*models.ProfitabilityResult, error) {
	rule := countryTax(locale)
	if base != nil && base.TaxBreakdown.Basis == rule.basis && base.TaxBreakdown.Rate == rule.rate {
		return base, nil
	}
	return a.calc.calculate(data, rule, true)
}

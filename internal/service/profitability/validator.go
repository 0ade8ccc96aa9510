package profitability

import (
	"fmt"
	"strings"

	"github.com/mamadbah2/ranch/internal/domain/models"
)

const (
	maxInventory     = 100000
	maxPeriodDays    = 1825
	typicalMaxWeight = 1000
)

const (
	codeRequired       = "REQUIRED_FIELD"
	codeInvalidPeriod  = "INVALID_PERIOD"
	codePeriodLong     = "PERIOD_TOO_LONG"
	codePeriodShort    = "PERIOD_TOO_SHORT"
	codeOutOfRange     = "OUT_OF_RANGE"
	codeInvalidWeight  = "INVALID_WEIGHT"
	codeInvalidEnum    = "INVALID_ENUM"
	codePriceUnit      = "INVALID_PRICE_UNIT"
	codeCountryRule    = "COUNTRY_RULE"
	codeCountry        = "UNSUPPORTED_COUNTRY"
	codeTaxRate        = "INVALID_TAX_RATE"
	codeHeavyAnimals   = "WEIGHT_ABOVE_TYPICAL"
	codeNegativeSpread = "SALE_BELOW_PURCHASE"
)

var mexicoPriceUnits = []string{"MXN/kg", "USD/kg"}

// Validator checks raw livestock input against field and cross-field rules.
// It holds no state and never reads anything outside its arguments.
type Validator struct{}

// NewValidator returns a Validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate runs every rule and collects all findings. The result is valid
// when no finding has error severity.
func (v *Validator) Validate(data models.LivestockData, locale models.LocaleConfig) models.ValidationResult {
	c := &collector{issues: []models.ValidationIssue{}}

	if strings.TrimSpace(data.FarmID) == "" {
		c.fail(codeRequired, "farmId", "farm id is required")
	}

	v.checkDates(c, data)
	v.checkHerd(c, data)
	v.checkPrices(c, data)
	v.checkCosts(c, data)
	v.checkRates(c, data)
	v.checkCategories(c, data)
	v.checkLocale(c, data, locale)

	return models.ValidationResult{
		Valid:  !c.blocking,
		Errors: c.issues,
	}
}

func (v *Validator) checkDates(c *collector, data models.LivestockData) {
	if data.AnalysisDate.IsZero() {
		c.fail(codeRequired, "analysisDate", "analysis date is required")
	}
	if data.PeriodStartDate.IsZero() {
		c.fail(codeRequired, "periodStartDate", "period start date is required")
	}
	if data.PeriodEndDate.IsZero() {
		c.fail(codeRequired, "periodEndDate", "period end date is required")
	}
	if data.PeriodStartDate.IsZero() || data.PeriodEndDate.IsZero() {
		return
	}

	if !data.PeriodStartDate.Before(data.PeriodEndDate) {
		c.fail(codeInvalidPeriod, "periodEndDate", "period end date must be after start date")
		return
	}

	days := data.PeriodEndDate.Sub(data.PeriodStartDate).Hours() / 24
	switch {
	case days > maxPeriodDays:
		c.fail(codePeriodLong, "periodEndDate", "analysis period cannot exceed 5 years")
	case data.PeriodDays() < 1:
		c.fail(codePeriodShort, "periodEndDate", "analysis period must span at least one full day")
	}
}

func (v *Validator) checkHerd(c *collector, data models.LivestockData) {
	if !(data.InitialInventory >= 1 && data.InitialInventory <= maxInventory) {
		c.fail(codeOutOfRange, "initialInventory", fmt.Sprintf("initial inventory must be between 1 and %d animals", maxInventory))
	}

	if !(data.AverageWeight > 0) {
		c.fail(codeOutOfRange, "averageWeight", "average weight must be greater than 0")
	} else if data.AverageWeight > typicalMaxWeight {
		c.warn(codeHeavyAnimals, "averageWeight", fmt.Sprintf("average weight above %d kg is unusual", typicalMaxWeight))
	}

	if !(data.ExpectedFinalWeight > 0) {
		c.fail(codeOutOfRange, "expectedFinalWeight", "expected final weight must be greater than 0")
	} else if data.AverageWeight > 0 && data.ExpectedFinalWeight < data.AverageWeight {
		c.fail(codeInvalidWeight, "expectedFinalWeight", "expected final weight must be greater than or equal to average weight")
	}
}

func (v *Validator) checkPrices(c *collector, data models.LivestockData) {
	if !(data.PurchasePrice >= 0) {
		c.fail(codeOutOfRange, "purchasePrice", "purchase price must be non-negative")
	}
	if !(data.SalePrice > 0) {
		c.fail(codeOutOfRange, "salePrice", "sale price must be greater than 0")
	} else if data.SalePrice < data.PurchasePrice {
		c.warn(codeNegativeSpread, "salePrice", "sale price is below purchase price")
	}

	if data.PriceUnit == "" {
		return
	}
	currency, unit := data.PriceUnitParts()
	if currency == "" || !knownWeightUnit(unit) {
		c.fail(codePriceUnit, "priceUnit", fmt.Sprintf("price unit %q must look like CUR/kg or CUR/arroba", data.PriceUnit))
	}
}

func (v *Validator) checkCosts(c *collector, data models.LivestockData) {
	costs := []fieldValue{
		{"feedCostPerDay", data.FeedCostPerDay},
		{"supplementCost", data.SupplementCost},
		{"laborCostPerMonth", data.LaborCostPerMonth},
		{"veterinaryCostPerHead", data.VeterinaryCostPerHead},
		{"infrastructureCost", data.InfrastructureCost},
		{"transportCost", data.TransportCost},
		{"initialInvestment", data.InitialInvestment},
	}
	for _, cost := range costs {
		if !(cost.value >= 0) {
			c.fail(codeOutOfRange, cost.field, fmt.Sprintf("%s must be non-negative", cost.field))
		}
	}
}

func (v *Validator) checkRates(c *collector, data models.LivestockData) {
	rates := []fieldValue{
		{"mortalityRate", data.MortalityRate},
		{"morbidityRate", data.MorbidityRate},
		{"financingRate", data.FinancingRate},
	}
	if data.PriceVolatility != nil {
		rates = append(rates, fieldValue{"priceVolatility", *data.PriceVolatility})
	}
	for _, rate := range rates {
		if !(rate.value >= 0 && rate.value <= 100) {
			c.fail(codeOutOfRange, rate.field, fmt.Sprintf("%s must be between 0 and 100", rate.field))
		}
	}
}

func (v *Validator) checkCategories(c *collector, data models.LivestockData) {
	if data.Breed == "" {
		c.fail(codeRequired, "breed", "breed is required")
	} else if !data.Breed.Valid() {
		c.fail(codeInvalidEnum, "breed", fmt.Sprintf("invalid breed %q", data.Breed))
	}

	if data.ProductionSystem == "" {
		c.fail(codeRequired, "productionSystem", "production system is required")
	} else if !data.ProductionSystem.Valid() {
		c.fail(codeInvalidEnum, "productionSystem", fmt.Sprintf("invalid production system %q", data.ProductionSystem))
	}

	var invalid []string
	for _, cert := range data.Certifications {
		if !cert.Valid() {
			invalid = append(invalid, string(cert))
		}
	}
	if len(invalid) > 0 {
		c.fail(codeInvalidEnum, "certifications", "invalid certifications: "+strings.Join(invalid, ", "))
	}
}

func (v *Validator) checkLocale(c *collector, data models.LivestockData, locale models.LocaleConfig) {
	if !locale.Country.Supported() {
		c.fail(codeCountry, "country", fmt.Sprintf("country %q is not supported", locale.Country))
	}

	if locale.TaxRate != nil && !(*locale.TaxRate >= 0 && *locale.TaxRate <= 1) {
		c.fail(codeTaxRate, "taxRate", "tax rate override must be a fraction between 0 and 1")
	}

	if locale.Country == models.CountryMexico && data.PriceUnit != "" && !contains(mexicoPriceUnits, data.PriceUnit) {
		c.fail(codeCountryRule, "priceUnit", "for Mexico, price unit must be MXN/kg or USD/kg")
	}
}

func knownWeightUnit(unit string) bool {
	switch unit {
	case unitKilogram, unitArroba:
		return true
	}
	return false
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

type fieldValue struct {
	field string
	value float64
}

type collector struct {
	issues   []models.ValidationIssue
	blocking bool
}

func (c *collector) fail(code, field, message string) {
	c.blocking = true
	c.add(code, field, message, models.SeverityError)
}

func (c *collector) warn(code, field, message string) {
	c.add(code, field, message, models.SeverityWarning)
}

func (c *collector) add(code, field, message string, severity models.Severity) {
	c.issues = append(c.issues, models.ValidationIssue{
		Code:     code,
		Message:  message,
		Field:    field,
		Severity: severity,
	})
}

package profitability

import (
	"fmt"
	"strings"

	"github.com/mamadbah2/ranch/internal/domain/models"
)

const (
	unitKilogram = "kg"
	unitArroba   = "arroba"
	kgPerArroba  = 15.0
)

// Localizer normalises an input to the units the calculator works in.
// Prices quoted per arroba are converted to per kilogram; everything else
// passes through unchanged.
type Localizer struct{}

// Localize returns a normalised copy of data. The input is never modified.
func (Localizer) Localize(data models.LivestockData, locale models.LocaleConfig) (models.LivestockData, error) {
	out := data
	out.Certifications = append([]models.Certification(nil), data.Certifications...)
	if data.PriceVolatility != nil {
		vol := *data.PriceVolatility
		out.PriceVolatility = &vol
	}

	currency, unit := data.PriceUnitParts()
	switch unit {
	case "", unitKilogram:
	case unitArroba:
		out.PurchasePrice = data.PurchasePrice / kgPerArroba
		out.SalePrice = data.SalePrice / kgPerArroba
		out.PriceUnit = currency + "/" + unitKilogram
	default:
		return models.LivestockData{}, fmt.Errorf("%w: unsupported price unit %q for %s", ErrInvalidDomain, data.PriceUnit, locale.Country)
	}

	return out, nil
}

// PricingLocale returns locale with its currency taken from the price unit
// when the unit names one, so "USD/kg" in Mexico is reported in USD.
func (Localizer) PricingLocale(data models.LivestockData, locale models.LocaleConfig) models.LocaleConfig {
	if currency, _ := data.PriceUnitParts(); currency != "" {
		locale.Currency = strings.ToUpper(currency)
	}
	return locale.WithDefaults()
}

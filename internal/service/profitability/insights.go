package profitability

import "github.com/mamadbah2/ranch/internal/domain/models"

// Enricher adds commentary to a finished result. Implementations must not
// change any numeric field.
type Enricher interface {
	Enrich(result *models.ProfitabilityResult, locale models.LocaleConfig) (*models.ProfitabilityResult, error)
}

// NoopEnricher returns the result untouched.
type NoopEnricher struct{}

// Enrich implements Enricher.
func (NoopEnricher) Enrich(result *models.ProfitabilityResult, _ models.LocaleConfig) (*models.ProfitabilityResult, error) {
	return result, nil
}

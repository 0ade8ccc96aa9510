package profitability

import (
	"fmt"

	"github.com/mamadbah2/ranch/internal/domain/models"
)

// EngineVersion identifies the calculation rules a result was produced with.
const EngineVersion = "2.1.0"

// Options configures an Engine.
type Options struct {
	DiscountRate float64
	ScenarioMode ScenarioMode
	// StrictMetrics turns any undefined metric into an error.
	StrictMetrics bool
	Enricher      Enricher
}

// Engine runs the full analysis pipeline:
// validate, localise, calculate, apply country tax, enrich.
// It keeps no state between calls and may be shared across goroutines.
type Engine struct {
	validator  *Validator
	localizer  Localizer
	calculator *Calculator
	adjuster   *CountryAdjuster
	enricher   Enricher
	strict     bool
}

// NewEngine wires an Engine.
func NewEngine(opts Options) *Engine {
	calc := NewCalculator(CalculatorOptions{
		DiscountRate: opts.DiscountRate,
		ScenarioMode: opts.ScenarioMode,
	})

	enricher := opts.Enricher
	if enricher == nil {
		enricher = NoopEnricher{}
	}

	return &Engine{
		validator:  NewValidator(),
		calculator: calc,
		adjuster:   NewCountryAdjuster(calc),
		enricher:   enricher,
		strict:     opts.StrictMetrics,
	}
}

// ResolveLocale completes locale for data: country defaults, with the
// currency of the price unit taking precedence.
func (e *Engine) ResolveLocale(data models.LivestockData, locale models.LocaleConfig) models.LocaleConfig {
	return e.localizer.PricingLocale(data, locale)
}

// Validate checks data without computing anything.
func (e *Engine) Validate(data models.LivestockData, locale models.LocaleConfig) models.ValidationResult {
	return e.validator.Validate(data, locale.WithDefaults())
}

// Calculate runs only the calculator on already validated data and returns
// the base case with the placeholder tax.
func (e *Engine) Calculate(data models.LivestockData, locale models.LocaleConfig) (*models.ProfitabilityResult, error) {
	return e.calculator.Calculate(data, locale.WithDefaults())
}

// Analyze runs the complete pipeline. A failed validation returns a
// *ValidationFailedError and nothing is computed.
func (e *Engine) Analyze(data models.LivestockData, locale models.LocaleConfig) (*models.ProfitabilityResult, error) {
	locale = locale.WithDefaults()

	validation := e.validator.Validate(data, locale)
	if !validation.Valid {
		return nil, &ValidationFailedError{Result: validation}
	}

	localized, err := e.localizer.Localize(data, locale)
	if err != nil {
		return nil, fmt.Errorf("localize input: %w", err)
	}

	base, err := e.calculator.Calculate(localized, locale)
	if err != nil {
		return nil, fmt.Errorf("calculate: %w", err)
	}

	adjusted, err := e.adjuster.Adjust(localized, base, locale)
	if err != nil {
		return nil, fmt.Errorf("apply country adjustments: %w", err)
	}

	enriched, err := e.enricher.Enrich(adjusted, locale)
	if err != nil {
		return nil, fmt.Errorf("enrich result: %w", err)
	}

	if e.strict && len(enriched.Undefined) > 0 {
		first := enriched.Undefined[0]
		return nil, &DomainError{Metric: first.Metric, Reason: first.Reason, Err: ErrUndefinedMetric}
	}

	return enriched, nil
}

package models

// CountryCode identifies a supported country.
type CountryCode string

const (
	CountryColombia CountryCode = "CO"
	CountryMexico   CountryCode = "MX"
	CountrySpain    CountryCode = "ES"
	CountryBrazil   CountryCode = "BR"
)

// Supported reports whether the engine has locale rules for c.
func (c CountryCode) Supported() bool {
	switch c {
	case CountryColombia, CountryMexico, CountrySpain, CountryBrazil:
		return true
	}
	return false
}

// UnitSystem is the measurement convention of a locale.
type UnitSystem string

const (
	UnitsMetric   UnitSystem = "metric"
	UnitsImperial UnitSystem = "imperial"
	UnitsMixed    UnitSystem = "mixed"
)

// LocaleConfig carries every country-dependent parameter of an analysis.
// Anything fetched from outside (live tax tables, exchange rates) must be
// resolved into this value before the calculator runs.
type LocaleConfig struct {
	Country  CountryCode `json:"country" bson:"country"`
	Language string      `json:"language,omitempty" bson:"language,omitempty"`
	Currency string      `json:"currency,omitempty" bson:"currency,omitempty"`
	Units    UnitSystem  `json:"units,omitempty" bson:"units,omitempty"`
	// TaxRate overrides the country table when set, as a fraction (0.19 = 19%).
	TaxRate *float64 `json:"taxRate,omitempty" bson:"tax_rate,omitempty"`
}

var localeDefaults = map[CountryCode]LocaleConfig{
	CountryColombia: {Country: CountryColombia, Language: "es-CO", Currency: "COP", Units: UnitsMetric},
	CountryMexico:   {Country: CountryMexico, Language: "es-MX", Currency: "MXN", Units: UnitsMetric},
	CountrySpain:    {Country: CountrySpain, Language: "es-ES", Currency: "EUR", Units: UnitsMetric},
	CountryBrazil:   {Country: CountryBrazil, Language: "pt-BR", Currency: "BRL", Units: UnitsMetric},
}

// DefaultLocale returns the stock configuration for a country. Unknown
// countries get only the code set.
func DefaultLocale(country CountryCode) LocaleConfig {
	if cfg, ok := localeDefaults[country]; ok {
		return cfg
	}
	return LocaleConfig{Country: country, Units: UnitsMetric}
}

// WithDefaults fills empty fields from the country defaults.
func (l LocaleConfig) WithDefaults() LocaleConfig {
	def := DefaultLocale(l.Country)
	if l.Language == "" {
		l.Language = def.Language
	}
	if l.Currency == "" {
		l.Currency = def.Currency
	}
	if l.Units == "" {
		l.Units = def.Units
	}
	return l
}

package models

import (
	"strings"
	"time"
)

// Breed enumerates the cattle breeds the engine recognises.
type Breed string

const (
	BreedAngus          Breed = "Angus"
	BreedHereford       Breed = "Hereford"
	BreedCharolais      Breed = "Charolais"
	BreedSimmental      Breed = "Simmental"
	BreedLimousin       Breed = "Limousin"
	BreedBrahman        Breed = "Brahman"
	BreedBrangus        Breed = "Brangus"
	BreedBeefmaster     Breed = "Beefmaster"
	BreedGelbvieh       Breed = "Gelbvieh"
	BreedRedAngus       Breed = "Red Angus"
	BreedHolstein       Breed = "Holstein"
	BreedJersey         Breed = "Jersey"
	BreedGuernsey       Breed = "Guernsey"
	BreedBrownSwiss     Breed = "Brown Swiss"
	BreedAyrshire       Breed = "Ayrshire"
	BreedCriollo        Breed = "Criollo"
	BreedCebu           Breed = "Cebu"
	BreedSantaGertrudis Breed = "Santa Gertrudis"
)

// Breeds lists every recognised breed in display order.
var Breeds = []Breed{
	BreedAngus, BreedHereford, BreedCharolais, BreedSimmental, BreedLimousin,
	BreedBrahman, BreedBrangus, BreedBeefmaster, BreedGelbvieh, BreedRedAngus,
	BreedHolstein, BreedJersey, BreedGuernsey, BreedBrownSwiss, BreedAyrshire,
	BreedCriollo, BreedCebu, BreedSantaGertrudis,
}

// Valid reports whether b is a recognised breed.
func (b Breed) Valid() bool {
	for _, known := range Breeds {
		if b == known {
			return true
		}
	}
	return false
}

// ProductionSystem describes how the herd is raised.
type ProductionSystem string

const (
	SystemIntensive     ProductionSystem = "intensive"
	SystemSemiIntensive ProductionSystem = "semi-intensive"
	SystemExtensive     ProductionSystem = "extensive"
	SystemFeedlot       ProductionSystem = "feedlot"
	SystemPastureBased  ProductionSystem = "pasture-based"
	SystemMixed         ProductionSystem = "mixed"
)

// ProductionSystems lists every recognised production system.
var ProductionSystems = []ProductionSystem{
	SystemIntensive, SystemSemiIntensive, SystemExtensive,
	SystemFeedlot, SystemPastureBased, SystemMixed,
}

// Valid reports whether p is a recognised production system.
func (p ProductionSystem) Valid() bool {
	for _, known := range ProductionSystems {
		if p == known {
			return true
		}
	}
	return false
}

// Certification is a quality or sustainability tag held by the farm.
type Certification string

const (
	CertOrganic       Certification = "Organic"
	CertGrassFed      Certification = "Grass-fed"
	CertNonGMO        Certification = "Non-GMO"
	CertAnimalWelfare Certification = "Animal Welfare"
	CertSustainable   Certification = "Sustainable"
	CertCarbonNeutral Certification = "Carbon Neutral"
	CertFairTrade     Certification = "Fair Trade"
)

// Certifications lists every recognised certification tag.
var Certifications = []Certification{
	CertOrganic, CertGrassFed, CertNonGMO, CertAnimalWelfare,
	CertSustainable, CertCarbonNeutral, CertFairTrade,
}

// Valid reports whether c is a recognised certification.
func (c Certification) Valid() bool {
	for _, known := range Certifications {
		if c == known {
			return true
		}
	}
	return false
}

// LivestockData is the caller-supplied description of a herd and its economics
// over one analysis period. Prices are per kilogram unless PriceUnit says
// otherwise; rates are percentages in [0,100].
type LivestockData struct {
	FarmID          string    `json:"farmId" bson:"farm_id"`
	AnalysisDate    time.Time `json:"analysisDate" bson:"analysis_date"`
	PeriodStartDate time.Time `json:"periodStartDate" bson:"period_start_date"`
	PeriodEndDate   time.Time `json:"periodEndDate" bson:"period_end_date"`

	InitialInventory    float64 `json:"initialInventory" bson:"initial_inventory"`
	AverageWeight       float64 `json:"averageWeight" bson:"average_weight"`
	ExpectedFinalWeight float64 `json:"expectedFinalWeight" bson:"expected_final_weight"`

	PurchasePrice float64 `json:"purchasePrice" bson:"purchase_price"`
	SalePrice     float64 `json:"salePrice" bson:"sale_price"`
	PriceUnit     string  `json:"priceUnit,omitempty" bson:"price_unit,omitempty"`

	FeedCostPerDay float64 `json:"feedCostPerDay" bson:"feed_cost_per_day"`
	FeedType       string  `json:"feedType,omitempty" bson:"feed_type,omitempty"`
	SupplementCost float64 `json:"supplementCost,omitempty" bson:"supplement_cost,omitempty"`

	LaborCostPerMonth     float64 `json:"laborCostPerMonth" bson:"labor_cost_per_month"`
	VeterinaryCostPerHead float64 `json:"veterinaryCostPerHead" bson:"veterinary_cost_per_head"`
	InfrastructureCost    float64 `json:"infrastructureCost" bson:"infrastructure_cost"`
	TransportCost         float64 `json:"transportCost" bson:"transport_cost"`

	InitialInvestment float64 `json:"initialInvestment,omitempty" bson:"initial_investment,omitempty"`
	FinancingRate     float64 `json:"financingRate,omitempty" bson:"financing_rate,omitempty"`

	MortalityRate   float64  `json:"mortalityRate" bson:"mortality_rate"`
	MorbidityRate   float64  `json:"morbidityRate,omitempty" bson:"morbidity_rate,omitempty"`
	PriceVolatility *float64 `json:"priceVolatility,omitempty" bson:"price_volatility,omitempty"`

	Breed            Breed            `json:"breed,omitempty" bson:"breed,omitempty"`
	ProductionSystem ProductionSystem `json:"productionSystem,omitempty" bson:"production_system,omitempty"`
	Certifications   []Certification  `json:"certifications,omitempty" bson:"certifications,omitempty"`
}

// PeriodDays returns the number of whole days between the period bounds.
func (d LivestockData) PeriodDays() int {
	return int(d.PeriodEndDate.Sub(d.PeriodStartDate) / (24 * time.Hour))
}

// PriceUnitParts splits a unit such as "MXN/kg" into currency and weight unit.
// An empty unit yields empty parts.
func (d LivestockData) PriceUnitParts() (currency, weight string) {
	if d.PriceUnit == "" {
		return "", ""
	}
	currency, weight, found := strings.Cut(d.PriceUnit, "/")
	if !found {
		return strings.TrimSpace(d.PriceUnit), ""
	}
	return strings.TrimSpace(currency), strings.ToLower(strings.TrimSpace(weight))
}

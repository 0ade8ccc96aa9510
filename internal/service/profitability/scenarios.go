package profitability

import (
	"math"

	"github.com/mamadbah2/ranch/internal/domain/models"
)

type scenarioCase struct {
	name                string
	probability         float64
	outcomeFactor       float64
	priceVariation      float64
	costVariation       float64
	mortalityMultiplier float64
	breakEvenDays       int
}

var (
	pessimisticCase = scenarioCase{
		name:                "pessimistic",
		probability:         0.25,
		outcomeFactor:       0.7,
		priceVariation:      -15,
		costVariation:       10,
		mortalityMultiplier: 1.5,
		breakEvenDays:       180,
	}
	realisticCase = scenarioCase{
		name:                "realistic",
		probability:         0.5,
		outcomeFactor:       1,
		mortalityMultiplier: 1,
		breakEvenDays:       120,
	}
	optimisticCase = scenarioCase{
		name:                "optimistic",
		probability:         0.25,
		outcomeFactor:       1.3,
		priceVariation:      15,
		costVariation:       -10,
		mortalityMultiplier: 0.5,
		breakEvenDays:       90,
	}
)

func (c *Calculator) scenarios(data models.LivestockData, tax taxRule, base *models.ProfitabilityResult) (models.ScenarioSet, error) {
	set := models.ScenarioSet{Mode: string(c.scenarioMode)}
	slots := []*models.Scenario{&set.Pessimistic, &set.Realistic, &set.Optimistic}

	for i, sc := range []scenarioCase{pessimisticCase, realisticCase, optimisticCase} {
		var (
			scenario models.Scenario
			err      error
		)
		if c.scenarioMode == ScenarioRecompute {
			scenario, err = c.recomputedScenario(data, tax, sc)
			if err != nil {
				return models.ScenarioSet{}, err
			}
		} else {
			scenario = scaledScenario(data, base, sc)
		}
		*slots[i] = scenario
		set.ExpectedNetProfit += sc.probability * scenario.NetProfit
	}

	return set, nil
}

func scenarioShell(data models.LivestockData, sc scenarioCase) models.Scenario {
	return models.Scenario{
		Name:          sc.name,
		Probability:   sc.probability,
		BreakEvenDays: sc.breakEvenDays,
		Assumptions: models.ScenarioAssumptions{
			PriceVariation:      sc.priceVariation,
			CostVariation:       sc.costVariation,
			MortalityMultiplier: sc.mortalityMultiplier,
			MortalityRate:       scenarioMortality(data.MortalityRate, sc.mortalityMultiplier),
		},
	}
}

// scaledScenario applies the outcome factor to the base case directly.
func scaledScenario(data models.LivestockData, base *models.ProfitabilityResult, sc scenarioCase) models.Scenario {
	s := scenarioShell(data, sc)
	s.NetProfit = base.NetProfit * sc.outcomeFactor
	s.ROI = base.ROI.Scale(sc.outcomeFactor)
	return s
}

// recomputedScenario runs the calculation again with the scenario's price,
// cost and mortality assumptions applied to the input.
func (c *Calculator) recomputedScenario(data models.LivestockData, tax taxRule, sc scenarioCase) (models.Scenario, error) {
	priceFactor := 1 + sc.priceVariation/100
	costFactor := 1 + sc.costVariation/100

	perturbed := data
	perturbed.SalePrice = data.SalePrice * priceFactor
	perturbed.PurchasePrice = data.PurchasePrice * costFactor
	perturbed.FeedCostPerDay = data.FeedCostPerDay * costFactor
	perturbed.SupplementCost = data.SupplementCost * costFactor
	perturbed.LaborCostPerMonth = data.LaborCostPerMonth * costFactor
	perturbed.VeterinaryCostPerHead = data.VeterinaryCostPerHead * costFactor
	perturbed.InfrastructureCost = data.InfrastructureCost * costFactor
	perturbed.TransportCost = data.TransportCost * costFactor
	perturbed.MortalityRate = scenarioMortality(data.MortalityRate, sc.mortalityMultiplier)

	res, err := c.calculate(perturbed, tax, false)
	if err != nil {
		return models.Scenario{}, err
	}

	s := scenarioShell(data, sc)
	s.NetProfit = res.NetProfit
	s.ROI = res.ROI
	return s, nil
}

func scenarioMortality(rate, multiplier float64) float64 {
	return math.Min(100, rate*multiplier)
}

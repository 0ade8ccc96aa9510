package profitability

import (
	"math"
	"testing"
	"time"

	"github.com/mamadbah2/ranch/internal/domain/models"
)

var periodStart = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// feedlotHerd is 100 head bought at 200 kg and sold at 450 kg after 180 days.
func feedlotHerd() models.LivestockData {
	return models.LivestockData{
		FarmID:              "farm-1",
		AnalysisDate:        periodStart,
		PeriodStartDate:     periodStart,
		PeriodEndDate:       periodStart.AddDate(0, 0, 180),
		InitialInventory:    100,
		AverageWeight:       200,
		ExpectedFinalWeight: 450,
		PurchasePrice:       2,
		SalePrice:           3.5,
		FeedCostPerDay:      1.2,
		MortalityRate:       2,
		InitialInvestment:   50000,
		Breed:               models.BreedAngus,
		ProductionSystem:    models.SystemFeedlot,
	}
}

func colombia() models.LocaleConfig {
	return models.DefaultLocale(models.CountryColombia)
}

func assertClose(t *testing.T, name string, got, want float64) {
	t.Helper()
	tol := 1e-9 * math.Max(1, math.Abs(want))
	if math.Abs(got-want) > tol {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func mustCalculate(t *testing.T, data models.LivestockData) *models.ProfitabilityResult {
	t.Helper()
	res, err := NewCalculator(CalculatorOptions{}).Calculate(data, colombia())
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	return res
}

func undefinedReason(res *models.ProfitabilityResult, metric string) (string, bool) {
	for _, u := range res.Undefined {
		if u.Metric == metric {
			return u.Reason, true
		}
	}
	return "", false
}

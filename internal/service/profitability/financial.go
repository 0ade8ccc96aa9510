package profitability

import (
	"math"

	"github.com/mamadbah2/ranch/internal/domain/models"
)

const (
	irrLowerBound = -0.99
	irrUpperBound = 10.0
	irrTolerance  = 1e-12
	irrMaxSteps   = 200
	monthsPerYear = 12
)

// financialMetrics fills ROI, the closed-form IRR and NPV approximations,
// payback and asset turnover.
//
// IRR here is the annualised simple return and NPV a single discount of the
// period's net profit. cashFlowIRR and cashFlowNPV give the exact figures.
func (c *Calculator) financialMetrics(g *guard, r *models.ProfitabilityResult, data models.LivestockData, days float64) {
	investment := data.InitialInvestment

	r.ROI = g.percent("roi", r.NetProfit, investment, reasonNoInvestment)
	if investment == 0 {
		g.mark("irr", reasonNoInvestment)
	} else {
		r.IRR = models.Defined((r.NetProfit / investment) * (daysPerYear / days) * 100)
	}

	years := days / daysPerYear
	r.NPV = r.NetProfit / math.Pow(1+c.discountRate, years)

	switch {
	case investment == 0:
		r.PaybackPeriod = models.Defined(0)
	case r.NetProfit <= 0:
		g.mark("paybackPeriod", reasonNoRecovery)
	default:
		dailyProfit := r.NetProfit / days
		r.PaybackPeriod = models.Defined(math.Ceil(investment / dailyProfit))
	}

	r.AssetTurnover = g.ratio("assetTurnover", r.GrossRevenue, investment, reasonNoInvestment)
}

// cashFlowSeries prepends the investment outlay to the per-period net flows.
func cashFlowSeries(investment float64, flows []models.CashFlowProjection) []float64 {
	series := make([]float64, 0, len(flows)+1)
	series = append(series, -investment)
	for _, f := range flows {
		series = append(series, f.NetFlow)
	}
	return series
}

func presentValue(series []float64, rate float64) float64 {
	var pv float64
	for t, v := range series {
		pv += v / math.Pow(1+rate, float64(t))
	}
	return pv
}

// cashFlowIRR solves for the monthly rate that zeroes the series' present
// value by bisection and reports it annualised, as a percentage.
func cashFlowIRR(g *guard, investment float64, flows []models.CashFlowProjection) models.Metric {
	if investment == 0 {
		g.mark("cashFlowIrr", reasonNoInvestment)
		return models.Undefined
	}
	series := cashFlowSeries(investment, flows)

	lo, hi := irrLowerBound, irrUpperBound
	pvLo, pvHi := presentValue(series, lo), presentValue(series, hi)
	if math.IsNaN(pvLo) || math.IsNaN(pvHi) || (pvLo > 0) == (pvHi > 0) {
		g.mark("cashFlowIrr", "cash flows have no sign change in the search range")
		return models.Undefined
	}

	for i := 0; i < irrMaxSteps && hi-lo > irrTolerance; i++ {
		mid := (lo + hi) / 2
		pvMid := presentValue(series, mid)
		if (pvMid > 0) == (pvLo > 0) {
			lo, pvLo = mid, pvMid
		} else {
			hi = mid
		}
	}

	monthly := (lo + hi) / 2
	return models.Defined((math.Pow(1+monthly, monthsPerYear) - 1) * 100)
}

// cashFlowNPV discounts each monthly flow at the monthly equivalent of the
// annual discount rate.
func cashFlowNPV(investment float64, flows []models.CashFlowProjection, annualRate float64) float64 {
	monthly := math.Pow(1+annualRate, 1.0/monthsPerYear) - 1
	return presentValue(cashFlowSeries(investment, flows), monthly)
}

package profitability

import (
	"math"

	"github.com/mamadbah2/ranch/internal/domain/models"
)

const (
	daysPerMonth = 30
	daysPerYear  = 365

	depreciationRate       = 0.10
	defaultDiscountRate    = 0.12
	defaultPriceVolatility = 15.0
	// Feed price per kg is taken as a tenth of the daily feed cost per head.
	feedPriceDivisor = 10
)

const (
	reasonNoSurvivors  = "final inventory is zero"
	reasonNoRevenue    = "gross revenue is zero"
	reasonNoSales      = "sales volume is zero"
	reasonNoInvestment = "no initial investment"
	reasonNoCosts      = "total costs are zero"
	reasonNoSubtotal   = "pre-tax cost subtotal is zero"
	reasonNoGain       = "no weight gain"
	reasonNoFeedPrice  = "feed cost per day is zero"
	reasonNoProfit     = "net profit is zero"
	reasonNoRecovery   = "net profit does not recover the investment"
	reasonPriceAtCost  = "sale price equals variable cost per unit"
	reasonPriceBelow   = "sale price is below variable cost per unit"
	reasonNoBreakEven  = "break-even point is undefined"
	reasonNoHerdWeight = "initial herd weight is zero"
)

// ScenarioMode selects how the three risk scenarios are produced.
type ScenarioMode string

const (
	// ScenarioScaled multiplies the base-case outputs by fixed factors.
	ScenarioScaled ScenarioMode = "scaled"
	// ScenarioRecompute re-runs the whole calculation on perturbed inputs.
	ScenarioRecompute ScenarioMode = "recompute"
)

// CalculatorOptions tunes the calculator. Zero values select defaults.
type CalculatorOptions struct {
	DiscountRate float64
	ScenarioMode ScenarioMode
}

// Calculator turns validated, localised input into a ProfitabilityResult.
// It is a pure function of its input and safe for concurrent use.
type Calculator struct {
	discountRate float64
	scenarioMode ScenarioMode
}

// NewCalculator builds a Calculator.
func NewCalculator(opts CalculatorOptions) *Calculator {
	c := &Calculator{
		discountRate: opts.DiscountRate,
		scenarioMode: opts.ScenarioMode,
	}
	if c.discountRate <= 0 {
		c.discountRate = defaultDiscountRate
	}
	if c.scenarioMode != ScenarioRecompute {
		c.scenarioMode = ScenarioScaled
	}
	return c
}

// Calculate computes the base case with the flat placeholder tax on the
// pre-tax cost subtotal. Country taxes are applied by CountryAdjuster.
func (c *Calculator) Calculate(data models.LivestockData, _ models.LocaleConfig) (*models.ProfitabilityResult, error) {
	return c.calculate(data, placeholderTax, true)
}

func (c *Calculator) calculate(data models.LivestockData, tax taxRule, withScenarios bool) (*models.ProfitabilityResult, error) {
	totalDays := data.PeriodDays()
	if totalDays < 1 {
		return nil, &DomainError{Metric: "totalDays", Reason: "analysis period is shorter than one day", Err: ErrInvalidDomain}
	}
	days := float64(totalDays)
	g := &guard{}

	// Attrition and growth
	mortalityLoss := data.InitialInventory * (data.MortalityRate / 100)
	finalInventory := data.InitialInventory - mortalityLoss
	totalWeightGain := (data.ExpectedFinalWeight - data.AverageWeight) * finalInventory

	// Revenue
	salesVolume := finalInventory * data.ExpectedFinalWeight
	grossRevenue := salesVolume * data.SalePrice

	// Costs
	purchaseCosts := data.InitialInventory * data.AverageWeight * data.PurchasePrice
	feedCosts := (data.FeedCostPerDay + data.SupplementCost) * data.InitialInventory * days
	laborCosts := data.LaborCostPerMonth * (days / daysPerMonth)
	veterinaryCosts := data.VeterinaryCostPerHead * data.InitialInventory
	operationalCosts := laborCosts + veterinaryCosts + data.TransportCost + data.InfrastructureCost
	financingCosts := 0.0
	if data.FinancingRate > 0 {
		financingCosts = purchaseCosts * (data.FinancingRate / 100) * (days / daysPerYear)
	}
	subtotal := purchaseCosts + feedCosts + operationalCosts + financingCosts
	taxes := tax.amount(subtotal, grossRevenue)
	depreciation := data.InfrastructureCost * depreciationRate
	totalCosts := purchaseCosts + feedCosts + operationalCosts + financingCosts + taxes

	// Profitability
	grossProfit := grossRevenue - purchaseCosts - feedCosts
	operatingProfit := grossProfit - operationalCosts
	netProfit := operatingProfit - financingCosts - taxes
	ebitda := operatingProfit + depreciation

	r := &models.ProfitabilityResult{
		TotalDays:        totalDays,
		InitialInventory: data.InitialInventory,
		MortalityLoss:    mortalityLoss,
		FinalInventory:   finalInventory,
		TotalWeightGain:  totalWeightGain,

		GrossRevenue:        grossRevenue,
		SalesVolume:         salesVolume,
		AverageSellingPrice: data.SalePrice,
		RevenuePerHead:      g.ratio("revenuePerHead", grossRevenue, finalInventory, reasonNoSurvivors),
		Revenue:             models.RevenueBreakdown{Livestock: grossRevenue},

		PurchaseCosts:    purchaseCosts,
		FeedCosts:        feedCosts,
		LaborCosts:       laborCosts,
		VeterinaryCosts:  veterinaryCosts,
		OperationalCosts: operationalCosts,
		FinancingCosts:   financingCosts,
		Taxes:            taxes,
		Depreciation:     depreciation,
		TotalCosts:       totalCosts,
		CostPerHead:      g.ratio("costPerHead", totalCosts, finalInventory, reasonNoSurvivors),

		GrossProfit:     grossProfit,
		OperatingProfit: operatingProfit,
		NetProfit:       netProfit,
		EBITDA:          ebitda,
		ProfitPerHead:   g.ratio("profitPerHead", netProfit, finalInventory, reasonNoSurvivors),

		GrossMargin:     g.percent("grossMargin", grossProfit, grossRevenue, reasonNoRevenue),
		OperatingMargin: g.percent("operatingMargin", operatingProfit, grossRevenue, reasonNoRevenue),
		NetMargin:       g.percent("netMargin", netProfit, grossRevenue, reasonNoRevenue),

		FeedCostRatio:         g.percent("feedCostRatio", feedCosts, totalCosts, reasonNoCosts),
		LaborCostRatio:        g.percent("laborCostRatio", laborCosts, totalCosts, reasonNoCosts),
		OperatingExpenseRatio: g.percent("operatingExpenseRatio", operationalCosts, totalCosts, reasonNoCosts),

		CostPerKg:       g.ratio("costPerKg", totalCosts, salesVolume, reasonNoSales),
		ProfitPerKg:     g.ratio("profitPerKg", netProfit, salesVolume, reasonNoSales),
		DailyWeightGain: g.ratio("dailyWeightGain", totalWeightGain, finalInventory*days, reasonNoSurvivors),
		ProductionCycle: totalDays,

		TaxBreakdown: tax.breakdown(taxes),
		ComplianceStatus: models.ComplianceStatus{
			IsCompliant:    true,
			Requirements:   []string{},
			Certifications: append([]models.Certification{}, data.Certifications...),
		},
	}

	r.CostBreakdown = costBreakdown(g, models.CostBreakdown{
		Purchase:       purchaseCosts,
		Feed:           feedCosts,
		Labor:          laborCosts,
		Veterinary:     veterinaryCosts,
		Infrastructure: data.InfrastructureCost,
		Transport:      data.TransportCost,
		Financing:      financingCosts,
		Subtotal:       subtotal,
	})

	c.financialMetrics(g, r, data, days)
	r.FeedConversion = feedConversion(g, data, feedCosts, totalWeightGain)
	riskMetrics(g, r, data)

	r.MonthlyProjections = monthlyProjections(data, r)
	r.CashFlowProjections = cashFlowProjections(data.InitialInvestment, r)
	r.CashFlowIRR = cashFlowIRR(g, data.InitialInvestment, r.CashFlowProjections)
	r.CashFlowNPV = cashFlowNPV(data.InitialInvestment, r.CashFlowProjections, c.discountRate)

	if withScenarios {
		scenarios, err := c.scenarios(data, tax, r)
		if err != nil {
			return nil, err
		}
		r.Scenarios = scenarios
	}

	r.Undefined = g.undefined
	return r, nil
}

func costBreakdown(g *guard, b models.CostBreakdown) models.CostBreakdown {
	share := func(name string, v float64) models.Metric {
		return g.percent("costBreakdown.percentages."+name, v, b.Subtotal, reasonNoSubtotal)
	}
	b.Percentages = models.CostPercentage{
		Purchase:       share("purchase", b.Purchase),
		Feed:           share("feed", b.Feed),
		Labor:          share("labor", b.Labor),
		Veterinary:     share("veterinary", b.Veterinary),
		Infrastructure: share("infrastructure", b.Infrastructure),
		Transport:      share("transport", b.Transport),
		Financing:      share("financing", b.Financing),
		Other:          share("other", b.Other),
	}
	return b
}

// feedConversion estimates feed mass from spend, so it is a heuristic and
// not a measured intake.
func feedConversion(g *guard, data models.LivestockData, feedCosts, totalWeightGain float64) models.Metric {
	if data.FeedCostPerDay == 0 {
		g.mark("feedConversion", reasonNoFeedPrice)
		return models.Undefined
	}
	feedConsumed := feedCosts / (data.FeedCostPerDay / feedPriceDivisor)
	return g.ratio("feedConversion", feedConsumed, totalWeightGain, reasonNoGain)
}

func riskMetrics(g *guard, r *models.ProfitabilityResult, data models.LivestockData) {
	herdWeight := data.InitialInventory * data.AverageWeight
	switch {
	case r.SalesVolume == 0:
		g.mark("breakEvenPoint", reasonNoSales)
	case herdWeight == 0:
		g.mark("breakEvenPoint", reasonNoHerdWeight)
	default:
		fixedCosts := r.OperationalCosts + r.FinancingCosts
		variableCostPerUnit := (r.PurchaseCosts + r.FeedCosts) / herdWeight
		unitMargin := data.SalePrice - variableCostPerUnit
		switch {
		case unitMargin == 0:
			g.mark("breakEvenPoint", reasonPriceAtCost)
		case unitMargin < 0:
			g.mark("breakEvenPoint", reasonPriceBelow)
		default:
			r.BreakEvenPoint = models.Defined(fixedCosts / unitMargin)
		}
	}

	switch {
	case r.SalesVolume == 0:
		g.mark("safetyMargin", reasonNoSales)
	case !r.BreakEvenPoint.Defined:
		g.mark("safetyMargin", reasonNoBreakEven)
	default:
		r.SafetyMargin = models.Defined((r.SalesVolume - r.BreakEvenPoint.Value) / r.SalesVolume * 100)
	}

	volatility := defaultPriceVolatility
	if data.PriceVolatility != nil {
		volatility = *data.PriceVolatility
	}
	downsideRevenue := r.SalesVolume * (data.SalePrice * (1 - volatility/100))
	revenueLoss := r.GrossRevenue - downsideRevenue
	r.PriceRisk = g.percent("priceRisk", revenueLoss, math.Abs(r.NetProfit), reasonNoProfit)
}

// guard records every metric that could not be computed.
type guard struct {
	undefined []models.UndefinedMetric
}

func (g *guard) mark(metric, reason string) {
	g.undefined = append(g.undefined, models.UndefinedMetric{Metric: metric, Reason: reason})
}

func (g *guard) ratio(metric string, num, den float64, reason string) models.Metric {
	if den == 0 {
		g.mark(metric, reason)
		return models.Undefined
	}
	m := models.Defined(num / den)
	if !m.Defined {
		g.mark(metric, "result is not a finite number")
	}
	return m
}

func (g *guard) percent(metric string, num, den float64, reason string) models.Metric {
	return g.ratio(metric, num, den, reason).Scale(100)
}

package models

// CostBreakdown splits the pre-tax cost subtotal into its components. The
// percentages are shares of Subtotal and sum to 100 whenever Subtotal > 0.
type CostBreakdown struct {
	Purchase       float64        `json:"purchase" bson:"purchase"`
	Feed           float64        `json:"feed" bson:"feed"`
	Labor          float64        `json:"labor" bson:"labor"`
	Veterinary     float64        `json:"veterinary" bson:"veterinary"`
	Infrastructure float64        `json:"infrastructure" bson:"infrastructure"`
	Transport      float64        `json:"transport" bson:"transport"`
	Financing      float64        `json:"financing" bson:"financing"`
	Other          float64        `json:"other" bson:"other"`
	Subtotal       float64        `json:"subtotal" bson:"subtotal"`
	Percentages    CostPercentage `json:"percentages" bson:"percentages"`
}

// CostPercentage holds each CostBreakdown component as a share of the subtotal.
type CostPercentage struct {
	Purchase       Metric `json:"purchase" bson:"purchase"`
	Feed           Metric `json:"feed" bson:"feed"`
	Labor          Metric `json:"labor" bson:"labor"`
	Veterinary     Metric `json:"veterinary" bson:"veterinary"`
	Infrastructure Metric `json:"infrastructure" bson:"infrastructure"`
	Transport      Metric `json:"transport" bson:"transport"`
	Financing      Metric `json:"financing" bson:"financing"`
	Other          Metric `json:"other" bson:"other"`
}

// RevenueBreakdown splits gross revenue by source. Only livestock sales are
// modelled today.
type RevenueBreakdown struct {
	Livestock  float64 `json:"livestock" bson:"livestock"`
	ByProducts float64 `json:"byProducts" bson:"by_products"`
	Subsidies  float64 `json:"subsidies" bson:"subsidies"`
	Other      float64 `json:"other" bson:"other"`
}

// MonthlyProjection is one 30-day slice of the analysis period.
type MonthlyProjection struct {
	Month            int     `json:"month" bson:"month"`
	Revenue          float64 `json:"revenue" bson:"revenue"`
	Costs            float64 `json:"costs" bson:"costs"`
	Profit           float64 `json:"profit" bson:"profit"`
	CumulativeProfit float64 `json:"cumulativeProfit" bson:"cumulative_profit"`
	Inventory        float64 `json:"inventory" bson:"inventory"`
	AverageWeight    float64 `json:"averageWeight" bson:"average_weight"`
}

// CashFlowProjection is one period of the cash-flow schedule. The cumulative
// flow starts from the negative initial investment.
type CashFlowProjection struct {
	Period         string  `json:"period" bson:"period"`
	Inflow         float64 `json:"inflow" bson:"inflow"`
	Outflow        float64 `json:"outflow" bson:"outflow"`
	NetFlow        float64 `json:"netFlow" bson:"net_flow"`
	CumulativeFlow float64 `json:"cumulativeFlow" bson:"cumulative_flow"`
}

// ScenarioAssumptions records how a scenario departs from the base case.
type ScenarioAssumptions struct {
	PriceVariation      float64 `json:"priceVariation" bson:"price_variation"`
	CostVariation       float64 `json:"costVariation" bson:"cost_variation"`
	MortalityMultiplier float64 `json:"mortalityMultiplier" bson:"mortality_multiplier"`
	MortalityRate       float64 `json:"mortalityRate" bson:"mortality_rate"`
}

// Scenario is one entry of the three-way risk analysis.
type Scenario struct {
	Name          string              `json:"name" bson:"name"`
	Probability   float64             `json:"probability" bson:"probability"`
	NetProfit     float64             `json:"netProfit" bson:"net_profit"`
	ROI           Metric              `json:"roi" bson:"roi"`
	BreakEvenDays int                 `json:"breakEvenDays" bson:"break_even_days"`
	Assumptions   ScenarioAssumptions `json:"assumptions" bson:"assumptions"`
}

// ScenarioSet groups the pessimistic, realistic and optimistic cases.
type ScenarioSet struct {
	Mode        string   `json:"mode" bson:"mode"`
	Pessimistic Scenario `json:"pessimistic" bson:"pessimistic"`
	Realistic   Scenario `json:"realistic" bson:"realistic"`
	Optimistic  Scenario `json:"optimistic" bson:"optimistic"`
	// ExpectedNetProfit is the probability-weighted net profit.
	ExpectedNetProfit float64 `json:"expectedNetProfit" bson:"expected_net_profit"`
}

// All returns the scenarios from worst to best.
func (s ScenarioSet) All() []Scenario {
	return []Scenario{s.Pessimistic, s.Realistic, s.Optimistic}
}

// TaxBasis names what a tax rate was applied to.
type TaxBasis string

const (
	// TaxBasisCostSubtotal is the flat placeholder over the pre-tax cost subtotal.
	TaxBasisCostSubtotal TaxBasis = "cost-subtotal"
	// TaxBasisGrossRevenue is the country rate over gross revenue.
	TaxBasisGrossRevenue TaxBasis = "gross-revenue"
)

// TaxBreakdown splits the tax charge into its nominal components.
type TaxBreakdown struct {
	Basis        TaxBasis `json:"basis" bson:"basis"`
	Rate         float64  `json:"rate" bson:"rate"`
	IncomeTax    float64  `json:"incomeTax" bson:"income_tax"`
	VAT          float64  `json:"vat" bson:"vat"`
	LocalTaxes   float64  `json:"localTaxes" bson:"local_taxes"`
	SpecialTaxes float64  `json:"specialTaxes" bson:"special_taxes"`
	Total        float64  `json:"total" bson:"total"`
}

// ComplianceStatus is a placeholder for regulatory checks.
type ComplianceStatus struct {
	IsCompliant    bool            `json:"isCompliant" bson:"is_compliant"`
	Requirements   []string        `json:"requirements" bson:"requirements"`
	Certifications []Certification `json:"certifications" bson:"certifications"`
}

// UndefinedMetric explains why a metric could not be computed.
type UndefinedMetric struct {
	Metric string `json:"metric" bson:"metric"`
	Reason string `json:"reason" bson:"reason"`
}

// ProfitabilityResult is the complete financial picture of one analysis.
// Ratios that would divide by zero are left undefined and listed in Undefined.
type ProfitabilityResult struct {
	// Herd
	TotalDays        int     `json:"totalDays" bson:"total_days"`
	InitialInventory float64 `json:"initialInventory" bson:"initial_inventory"`
	MortalityLoss    float64 `json:"mortalityLoss" bson:"mortality_loss"`
	FinalInventory   float64 `json:"finalInventory" bson:"final_inventory"`
	TotalWeightGain  float64 `json:"totalWeightGain" bson:"total_weight_gain"`

	// Revenue
	GrossRevenue        float64          `json:"grossRevenue" bson:"gross_revenue"`
	SalesVolume         float64          `json:"salesVolume" bson:"sales_volume"`
	AverageSellingPrice float64          `json:"averageSellingPrice" bson:"average_selling_price"`
	RevenuePerHead      Metric           `json:"revenuePerHead" bson:"revenue_per_head"`
	Revenue             RevenueBreakdown `json:"revenue" bson:"revenue"`

	// Costs
	PurchaseCosts    float64       `json:"purchaseCosts" bson:"purchase_costs"`
	FeedCosts        float64       `json:"feedCosts" bson:"feed_costs"`
	LaborCosts       float64       `json:"laborCosts" bson:"labor_costs"`
	VeterinaryCosts  float64       `json:"veterinaryCosts" bson:"veterinary_costs"`
	OperationalCosts float64       `json:"operationalCosts" bson:"operational_costs"`
	FinancingCosts   float64       `json:"financingCosts" bson:"financing_costs"`
	Taxes            float64       `json:"taxes" bson:"taxes"`
	Depreciation     float64       `json:"depreciation" bson:"depreciation"`
	TotalCosts       float64       `json:"totalCosts" bson:"total_costs"`
	CostPerHead      Metric        `json:"costPerHead" bson:"cost_per_head"`
	CostBreakdown    CostBreakdown `json:"costBreakdown" bson:"cost_breakdown"`

	// Profitability
	GrossProfit     float64 `json:"grossProfit" bson:"gross_profit"`
	OperatingProfit float64 `json:"operatingProfit" bson:"operating_profit"`
	NetProfit       float64 `json:"netProfit" bson:"net_profit"`
	EBITDA          float64 `json:"ebitda" bson:"ebitda"`
	ProfitPerHead   Metric  `json:"profitPerHead" bson:"profit_per_head"`

	// Margins, percentages of gross revenue
	GrossMargin     Metric `json:"grossMargin" bson:"gross_margin"`
	OperatingMargin Metric `json:"operatingMargin" bson:"operating_margin"`
	NetMargin       Metric `json:"netMargin" bson:"net_margin"`

	// Cost ratios, percentages of total costs
	FeedCostRatio         Metric `json:"feedCostRatio" bson:"feed_cost_ratio"`
	LaborCostRatio        Metric `json:"laborCostRatio" bson:"labor_cost_ratio"`
	OperatingExpenseRatio Metric `json:"operatingExpenseRatio" bson:"operating_expense_ratio"`

	// Financial metrics. IRR and NPV are the closed-form approximations;
	// CashFlowIRR and CashFlowNPV are solved over the monthly cash-flow series.
	ROI           Metric  `json:"roi" bson:"roi"`
	IRR           Metric  `json:"irr" bson:"irr"`
	NPV           float64 `json:"npv" bson:"npv"`
	CashFlowIRR   Metric  `json:"cashFlowIrr" bson:"cash_flow_irr"`
	CashFlowNPV   float64 `json:"cashFlowNpv" bson:"cash_flow_npv"`
	PaybackPeriod Metric  `json:"paybackPeriod" bson:"payback_period"`
	AssetTurnover Metric  `json:"assetTurnover" bson:"asset_turnover"`

	// Efficiency
	CostPerKg       Metric `json:"costPerKg" bson:"cost_per_kg"`
	ProfitPerKg     Metric `json:"profitPerKg" bson:"profit_per_kg"`
	FeedConversion  Metric `json:"feedConversion" bson:"feed_conversion"`
	DailyWeightGain Metric `json:"dailyWeightGain" bson:"daily_weight_gain"`
	ProductionCycle int    `json:"productionCycle" bson:"production_cycle"`

	// Risk
	BreakEvenPoint Metric `json:"breakEvenPoint" bson:"break_even_point"`
	SafetyMargin   Metric `json:"safetyMargin" bson:"safety_margin"`
	PriceRisk      Metric `json:"priceRisk" bson:"price_risk"`

	MonthlyProjections  []MonthlyProjection  `json:"monthlyProjections" bson:"monthly_projections"`
	CashFlowProjections []CashFlowProjection `json:"cashFlowProjections" bson:"cash_flow_projections"`
	Scenarios           ScenarioSet          `json:"scenarios" bson:"scenarios"`

	TaxBreakdown     TaxBreakdown     `json:"taxBreakdown" bson:"tax_breakdown"`
	ComplianceStatus ComplianceStatus `json:"complianceStatus" bson:"compliance_status"`

	Undefined []UndefinedMetric `json:"undefined,omitempty" bson:"undefined,omitempty"`
}

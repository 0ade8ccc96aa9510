package profitability

import (
	"fmt"

	"github.com/mamadbah2/ranch/internal/domain/models"
)

func projectionMonths(totalDays int) int {
	return (totalDays + daysPerMonth - 1) / daysPerMonth
}

// monthlyProjections spreads costs evenly over the period and books all
// revenue in the last month, when the herd is sold in one lot. Weight grows
// and inventory attrits linearly, so the last month matches the result.
func monthlyProjections(data models.LivestockData, r *models.ProfitabilityResult) []models.MonthlyProjection {
	months := projectionMonths(r.TotalDays)
	out := make([]models.MonthlyProjection, 0, months)

	weightStep := (data.ExpectedFinalWeight - data.AverageWeight) / float64(months)
	lossStep := r.MortalityLoss / float64(months)
	monthlyCosts := r.TotalCosts / float64(months)

	var cumulative float64
	for month := 1; month <= months; month++ {
		weight := data.AverageWeight + weightStep*float64(month)
		inventory := data.InitialInventory - lossStep*float64(month)
		var revenue float64
		if month == months {
			weight = data.ExpectedFinalWeight
			inventory = r.FinalInventory
			revenue = r.GrossRevenue
		}

		profit := revenue - monthlyCosts
		cumulative += profit
		out = append(out, models.MonthlyProjection{
			Month:            month,
			Revenue:          revenue,
			Costs:            monthlyCosts,
			Profit:           profit,
			CumulativeProfit: cumulative,
			Inventory:        inventory,
			AverageWeight:    weight,
		})
	}
	return out
}

// cashFlowProjections mirrors the monthly cost spread with the sale as the
// only inflow. The running balance starts at the negative investment.
func cashFlowProjections(investment float64, r *models.ProfitabilityResult) []models.CashFlowProjection {
	periods := projectionMonths(r.TotalDays)
	out := make([]models.CashFlowProjection, 0, periods)

	outflow := r.TotalCosts / float64(periods)
	cumulative := -investment
	for period := 1; period <= periods; period++ {
		var inflow float64
		if period == periods {
			inflow = r.GrossRevenue
		}
		net := inflow - outflow
		cumulative += net
		out = append(out, models.CashFlowProjection{
			Period:         fmt.Sprintf("Month %d", period),
			Inflow:         inflow,
			Outflow:        outflow,
			NetFlow:        net,
			CumulativeFlow: cumulative,
		})
	}
	return out
}

package export

import (
	"github.com/xuri/excelize/v2"

	"github.com/mamadbah2/ranch/internal/domain/models"
)

const (
	sheetSummary   = "Summary"
	sheetMonthly   = "Monthly"
	sheetCashFlow  = "Cash Flow"
	sheetScenarios = "Scenarios"
)

func exportExcel(r *models.ProfitabilityResult, m Money) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return nil, err
	}
	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	summary := [][]interface{}{{"Section", "Metric", "Value", "Formatted"}}
	for _, line := range summaryLines(r, m) {
		var value interface{}
		if line.value.Defined {
			value = line.value.Value
		}
		summary = append(summary, []interface{}{line.section, line.label, value, line.text})
	}

	monthly := [][]interface{}{{"Month", "Revenue", "Costs", "Profit", "Cumulative profit", "Inventory", "Average weight"}}
	for _, p := range r.MonthlyProjections {
		monthly = append(monthly, []interface{}{p.Month, p.Revenue, p.Costs, p.Profit, p.CumulativeProfit, p.Inventory, p.AverageWeight})
	}

	cashFlow := [][]interface{}{{"Period", "Inflow", "Outflow", "Net flow", "Cumulative flow"}}
	for _, c := range r.CashFlowProjections {
		cashFlow = append(cashFlow, []interface{}{c.Period, c.Inflow, c.Outflow, c.NetFlow, c.CumulativeFlow})
	}

	scenarios := [][]interface{}{{"Scenario", "Probability", "Net profit", "ROI %", "Price variation %", "Cost variation %", "Mortality %"}}
	for _, s := range r.Scenarios.All() {
		var roi interface{}
		if s.ROI.Defined {
			roi = s.ROI.Value
		}
		scenarios = append(scenarios, []interface{}{
			s.Name, s.Probability, s.NetProfit, roi,
			s.Assumptions.PriceVariation, s.Assumptions.CostVariation, s.Assumptions.MortalityRate,
		})
	}
	scenarios = append(scenarios, []interface{}{"expected", nil, r.Scenarios.ExpectedNetProfit})

	sheets := []struct {
		name string
		rows [][]interface{}
	}{
		{sheetSummary, summary},
		{sheetMonthly, monthly},
		{sheetCashFlow, cashFlow},
		{sheetScenarios, scenarios},
	}
	for _, sheet := range sheets {
		if err := writeSheet(f, sheet.name, sheet.rows, header); err != nil {
			return nil, err
		}
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, name string, rows [][]interface{}, headerStyle int) error {
	if idx, err := f.GetSheetIndex(name); err != nil {
		return err
	} else if idx == -1 {
		if _, err := f.NewSheet(name); err != nil {
			return err
		}
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		row := row
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return err
		}
	}

	last, err := excelize.ColumnNumberToName(len(rows[0]))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(name, "A1", last+"1", headerStyle); err != nil {
		return err
	}
	return f.SetColWidth(name, "A", last, 18)
}

package sheets

import (
	"context"
	"fmt"
	"time"

	"github.com/mamadbah2/ranch/internal/domain/models"
)

const defaultLedgerRange = "Analyses!A:L"

// LedgerHeader names the columns written by AnalysisLedger.
var LedgerHeader = []interface{}{
	"created_at", "analysis_id", "farm_id", "country", "period_days", "initial_inventory",
	"gross_revenue", "total_costs", "net_profit", "net_margin_pct", "roi_pct", "engine_version",
}

// AnalysisLedger keeps a one-row-per-analysis summary in a spreadsheet so
// farm owners can follow their results without the API.
type AnalysisLedger struct {
	repo       Repository
	sheetRange string
}

// NewAnalysisLedger wraps a sheet repository. An empty range selects
// Analyses!A:L.
func NewAnalysisLedger(repo Repository, sheetRange string) *AnalysisLedger {
	if sheetRange == "" {
		sheetRange = defaultLedgerRange
	}
	return &AnalysisLedger{repo: repo, sheetRange: sheetRange}
}

// EnsureHeader writes LedgerHeader when the ledger range is still empty.
func (l *AnalysisLedger) EnsureHeader(ctx context.Context) error {
	rows, err := l.repo.ReadRange(ctx, l.sheetRange)
	if err != nil {
		return fmt.Errorf("read ledger: %w", err)
	}
	if len(rows) > 0 {
		return nil
	}
	return l.repo.WriteRow(ctx, l.sheetRange, LedgerHeader)
}

// Append writes the summary row of record.
func (l *AnalysisLedger) Append(ctx context.Context, record models.AnalysisRecord) error {
	if record.Result == nil {
		return fmt.Errorf("analysis %s has no result", record.ID)
	}
	return l.repo.WriteRow(ctx, l.sheetRange, LedgerRow(record))
}

// Rows returns the ledger rows, header excluded.
func (l *AnalysisLedger) Rows(ctx context.Context) ([][]interface{}, error) {
	rows, err := l.repo.ReadRange(ctx, l.sheetRange)
	if err != nil {
		return nil, err
	}
	if len(rows) > 0 && len(rows[0]) > 0 && rows[0][0] == LedgerHeader[0] {
		rows = rows[1:]
	}
	return rows, nil
}

// LedgerRow flattens record into the ledger columns. Undefined metrics are
// written as empty cells.
func LedgerRow(record models.AnalysisRecord) []interface{} {
	r := record.Result
	return []interface{}{
		record.CreatedAt.UTC().Format(time.RFC3339),
		record.ID,
		record.FarmID,
		string(record.Locale.Country),
		r.TotalDays,
		r.InitialInventory,
		r.GrossRevenue,
		r.TotalCosts,
		r.NetProfit,
		metricCell(r.NetMargin),
		metricCell(r.ROI),
		record.EngineVersion,
	}
}

func metricCell(m models.Metric) interface{} {
	if !m.Defined {
		return ""
	}
	return m.Value
}

package reporting

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/ranch/internal/domain/models"
	"github.com/mamadbah2/ranch/internal/service/export"
)

const (
	dateLayout   = "2006-01-02"
	digestWindow = 7 * 24 * time.Hour
)

// AnalysisLister loads the analyses created since a point in time.
type AnalysisLister interface {
	ListSince(ctx context.Context, since time.Time) ([]models.AnalysisRecord, error)
}

// CurrencyTotals sums the analyses priced in one currency.
type CurrencyTotals struct {
	Currency     string
	Locale       models.LocaleConfig
	Analyses     int
	GrossRevenue decimal.Decimal
	NetProfit    decimal.Decimal
}

// Digest summarises a week of analyses.
type Digest struct {
	From             time.Time
	To               time.Time
	Analyses         int
	Farms            int
	Totals           []CurrencyTotals
	AverageNetMargin models.Metric
	BestFarm         string
	BestROI          models.Metric
}

// Service exposes lightweight analytics over stored analyses.
type Service struct {
	repo   AnalysisLister
	logger *zap.Logger
}

// NewService wires a new reporting service instance.
func NewService(repository AnalysisLister, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repository, logger: logger}
}

// GenerateWeeklyDigest summarises the analyses of the seven days ending at now.
func (s *Service) GenerateWeeklyDigest(ctx context.Context, now time.Time) (*Digest, error) {
	from := now.Add(-digestWindow)
	records, err := s.repo.ListSince(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("load analyses since %s: %w", from.Format(dateLayout), err)
	}

	d := &Digest{From: from, To: now}
	farms := map[string]struct{}{}
	totals := map[string]*CurrencyTotals{}
	marginSum := decimal.Zero
	margins := 0

	for _, record := range records {
		if record.Result == nil || record.CreatedAt.After(now) {
			s.logger.Debug("skip analysis outside digest", zap.String("id", record.ID))
			continue
		}
		r := record.Result
		d.Analyses++
		farms[record.FarmID] = struct{}{}

		currency := record.Locale.Currency
		t, ok := totals[currency]
		if !ok {
			t = &CurrencyTotals{Currency: currency, Locale: record.Locale}
			totals[currency] = t
		}
		t.Analyses++
		t.GrossRevenue = t.GrossRevenue.Add(decimal.NewFromFloat(r.GrossRevenue))
		t.NetProfit = t.NetProfit.Add(decimal.NewFromFloat(r.NetProfit))

		if r.NetMargin.Defined {
			marginSum = marginSum.Add(decimal.NewFromFloat(r.NetMargin.Value))
			margins++
		}
		if r.ROI.Defined && (!d.BestROI.Defined || r.ROI.Value > d.BestROI.Value) {
			d.BestROI = r.ROI
			d.BestFarm = record.FarmID
		}
	}

	d.Farms = len(farms)
	if margins > 0 {
		d.AverageNetMargin = models.Defined(marginSum.Div(decimal.NewFromInt(int64(margins))).InexactFloat64())
	}
	for _, t := range totals {
		d.Totals = append(d.Totals, *t)
	}
	sort.Slice(d.Totals, func(i, j int) bool { return d.Totals[i].Currency < d.Totals[j].Currency })

	s.logger.Info("weekly digest generated", zap.Int("analyses", d.Analyses), zap.Int("farms", d.Farms))
	return d, nil
}

// Message renders the digest as a short text suitable for chat delivery.
func (d *Digest) Message() string {
	period := fmt.Sprintf("%s-%s", d.From.Format(dateLayout), d.To.Format(dateLayout))
	if d.Analyses == 0 {
		return fmt.Sprintf("Weekly profitability digest (%s): no analyses this week.", period)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Weekly profitability digest (%s): %d analyses across %d farms.", period, d.Analyses, d.Farms)
	for _, t := range d.Totals {
		m := export.NewMoney(t.Locale)
		fmt.Fprintf(&b, "\n%s: revenue %s, net profit %s over %d analyses.",
			t.Currency, m.Amount(t.GrossRevenue.InexactFloat64()), m.Amount(t.NetProfit.InexactFloat64()), t.Analyses)
	}
	if d.AverageNetMargin.Defined {
		fmt.Fprintf(&b, "\nAverage net margin %.1f%%.", d.AverageNetMargin.Value)
	}
	if d.BestROI.Defined {
		fmt.Fprintf(&b, "\nBest ROI: farm %s at %.1f%%.", d.BestFarm, d.BestROI.Value)
	}
	return b.String()
}

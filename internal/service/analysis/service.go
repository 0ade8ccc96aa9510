package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/ranch/internal/domain/models"
	"github.com/mamadbah2/ranch/internal/repository/cache"
	"github.com/mamadbah2/ranch/internal/repository/mongodb"
	"github.com/mamadbah2/ranch/internal/service/export"
	"github.com/mamadbah2/ranch/internal/service/profitability"
)

// ErrNotFound is returned when an analysis id is unknown.
var ErrNotFound = mongodb.ErrNotFound

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// AnalysisService is what the HTTP layer needs from this package.
type AnalysisService interface {
	Validate(data models.LivestockData, locale models.LocaleConfig) models.ValidationResult
	Run(ctx context.Context, data models.LivestockData, locale models.LocaleConfig) (*models.AnalysisRecord, error)
	Get(ctx context.Context, id string) (*models.AnalysisRecord, error)
	ListByFarm(ctx context.Context, farmID string, limit int) ([]models.AnalysisRecord, error)
	Export(ctx context.Context, id string, format export.Format) ([]byte, error)
}

// Ledger receives a summary of every stored analysis.
type Ledger interface {
	Append(ctx context.Context, record models.AnalysisRecord) error
}

// Dependencies groups what the service is built from. Cache and Ledger are
// optional.
type Dependencies struct {
	Engine         *profitability.Engine
	Repo           mongodb.Repository
	Cache          cache.ResultCache
	Ledger         Ledger
	Exporter       *export.Exporter
	DefaultCountry models.CountryCode
}

// Service runs analyses and keeps their history.
type Service struct {
	engine         *profitability.Engine
	repo           mongodb.Repository
	cache          cache.ResultCache
	ledger         Ledger
	exporter       *export.Exporter
	defaultCountry models.CountryCode
	logger         *zap.Logger

	now   func() time.Time
	newID func() string
}

// NewService wires the analysis service.
func NewService(deps Dependencies, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if deps.Engine == nil {
		deps.Engine = profitability.NewEngine(profitability.Options{})
	}
	if deps.Exporter == nil {
		deps.Exporter = export.NewExporter(logger)
	}
	if deps.DefaultCountry == "" {
		deps.DefaultCountry = models.CountryColombia
	}

	return &Service{
		engine:         deps.Engine,
		repo:           deps.Repo,
		cache:          deps.Cache,
		ledger:         deps.Ledger,
		exporter:       deps.Exporter,
		defaultCountry: deps.DefaultCountry,
		logger:         logger,
		now:            time.Now,
		newID:          uuid.NewString,
	}
}

func (s *Service) resolveLocale(data models.LivestockData, locale models.LocaleConfig) models.LocaleConfig {
	if locale.Country == "" {
		locale.Country = s.defaultCountry
	}
	return s.engine.ResolveLocale(data, locale)
}

// Validate checks an input without computing or storing anything.
func (s *Service) Validate(data models.LivestockData, locale models.LocaleConfig) models.ValidationResult {
	return s.engine.Validate(data, s.resolveLocale(data, locale))
}

// Run analyses data, stores the record and returns it. An identical earlier
// request is answered from the cache with CacheHit set. Validation failures
// come back as *profitability.ValidationFailedError.
func (s *Service) Run(ctx context.Context, data models.LivestockData, locale models.LocaleConfig) (*models.AnalysisRecord, error) {
	locale = s.resolveLocale(data, locale)

	key := s.cacheKey(data, locale)
	if cached := s.fromCache(ctx, key); cached != nil {
		return cached, nil
	}

	result, err := s.engine.Analyze(data, locale)
	if err != nil {
		return nil, err
	}

	record := models.AnalysisRecord{
		ID:            s.newID(),
		FarmID:        data.FarmID,
		Input:         data,
		Locale:        locale,
		Result:        result,
		EngineVersion: profitability.EngineVersion,
		CreatedAt:     s.now().UTC(),
	}

	if err := s.repo.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("store analysis: %w", err)
	}

	if s.ledger != nil {
		if err := s.ledger.Append(ctx, record); err != nil {
			s.logger.Warn("ledger append failed", zap.String("id", record.ID), zap.Error(err))
		}
	}

	if s.cache != nil && key != "" {
		if err := s.cache.Set(ctx, key, record); err != nil {
			s.logger.Warn("cache store failed", zap.String("id", record.ID), zap.Error(err))
		}
	}

	s.logger.Info("analysis completed",
		zap.String("id", record.ID),
		zap.String("farm_id", record.FarmID),
		zap.String("country", string(locale.Country)),
		zap.Float64("net_profit", result.NetProfit),
		zap.Int("undefined_metrics", len(result.Undefined)))

	return &record, nil
}

func (s *Service) cacheKey(data models.LivestockData, locale models.LocaleConfig) string {
	if s.cache == nil {
		return ""
	}
	key, err := cache.Key(data, locale, profitability.EngineVersion)
	if err != nil {
		s.logger.Debug("request not cacheable", zap.Error(err))
		return ""
	}
	return key
}

func (s *Service) fromCache(ctx context.Context, key string) *models.AnalysisRecord {
	if key == "" {
		return nil
	}
	record, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("cache lookup failed", zap.Error(err))
		return nil
	}
	if !ok {
		return nil
	}
	record.CacheHit = true
	s.logger.Debug("analysis served from cache", zap.String("id", record.ID))
	return record
}

// Get loads a stored analysis.
func (s *Service) Get(ctx context.Context, id string) (*models.AnalysisRecord, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load analysis %s: %w", id, err)
	}
	return record, nil
}

// ListByFarm returns a farm's most recent analyses. The limit defaults to
// 20 and is capped at 100.
func (s *Service) ListByFarm(ctx context.Context, farmID string, limit int) ([]models.AnalysisRecord, error) {
	switch {
	case limit <= 0:
		limit = defaultListLimit
	case limit > maxListLimit:
		limit = maxListLimit
	}

	records, err := s.repo.ListByFarm(ctx, farmID, int64(limit))
	if err != nil {
		return nil, fmt.Errorf("list analyses for farm %s: %w", farmID, err)
	}
	return records, nil
}

// Export renders a stored analysis.
func (s *Service) Export(ctx context.Context, id string, format export.Format) ([]byte, error) {
	record, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.exporter.Export(record.Result, format, record.Locale)
}

package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/ranch/internal/domain/models"
	"github.com/mamadbah2/ranch/internal/service/analysis"
	"github.com/mamadbah2/ranch/internal/service/export"
	"github.com/mamadbah2/ranch/internal/service/profitability"
)

// AnalysisHandler exposes the profitability analyses over HTTP.
type AnalysisHandler struct {
	svc    analysis.AnalysisService
	logger *zap.Logger
}

// NewAnalysisHandler constructs the HTTP handler adapter.
func NewAnalysisHandler(svc analysis.AnalysisService, logger *zap.Logger) *AnalysisHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalysisHandler{svc: svc, logger: logger}
}

// Validate checks a payload and returns every finding.
func (h *AnalysisHandler) Validate(c *gin.Context) {
	var req models.AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid analysis payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	c.JSON(http.StatusOK, h.svc.Validate(req.Data, req.Locale))
}

// Create runs and stores an analysis.
func (h *AnalysisHandler) Create(c *gin.Context) {
	var req models.AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid analysis payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	record, err := h.svc.Run(c.Request.Context(), req.Data, req.Locale)
	if err != nil {
		h.writeError(c, err)
		return
	}

	status := http.StatusCreated
	if record.CacheHit {
		status = http.StatusOK
	}
	c.JSON(status, record)
}

// Get returns one stored analysis.
func (h *AnalysisHandler) Get(c *gin.Context) {
	record, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// ListByFarm returns a farm's recent analyses.
func (h *AnalysisHandler) ListByFarm(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = v
	}

	records, err := h.svc.ListByFarm(c.Request.Context(), c.Param("farmId"), limit)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"analyses": records, "count": len(records)})
}

// Export streams a stored analysis as a document.
func (h *AnalysisHandler) Export(c *gin.Context) {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	id := c.Param("id")
	body, err := h.svc.Export(c.Request.Context(), id, format)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=analysis-%s.%s", id, format.Extension()))
	c.Data(http.StatusOK, format.ContentType(), body)
}

func (h *AnalysisHandler) writeError(c *gin.Context, err error) {
	var validationErr *profitability.ValidationFailedError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "validation": validationErr.Result})
	case errors.Is(err, profitability.ErrInvalidDomain), errors.Is(err, profitability.ErrUndefinedMetric):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, analysis.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "analysis not found"})
	case errors.Is(err, export.ErrUnsupportedFormat):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error("analysis request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

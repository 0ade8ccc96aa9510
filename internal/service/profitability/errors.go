package profitability

import (
	"errors"
	"fmt"

	"github.com/mamadbah2/ranch/internal/domain/models"
)

// ErrValidation indicates the input failed one or more blocking rules.
var ErrValidation = errors.New("livestock data failed validation")

// ErrUndefinedMetric indicates a metric could not be computed for the input.
var ErrUndefinedMetric = errors.New("metric is undefined")

// ErrInvalidDomain indicates the input lies outside what the engine can compute.
var ErrInvalidDomain = errors.New("input outside calculable domain")

// ValidationFailedError carries the validator findings that stopped the pipeline.
type ValidationFailedError struct {
	Result models.ValidationResult
}

func (e *ValidationFailedError) Error() string {
	return fmt.Sprintf("%s: %s", ErrValidation, e.Result.Summary())
}

func (e *ValidationFailedError) Unwrap() error { return ErrValidation }

// DomainError reports an arithmetic guard that tripped on a specific metric.
type DomainError struct {
	Metric string
	Reason string
	Err    error
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Metric, e.Reason)
}

func (e *DomainError) Unwrap() error { return e.Err }

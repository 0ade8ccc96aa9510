package models

import "strings"

// Severity ranks a validation issue. Only SeverityError blocks an analysis.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// ValidationIssue is one field-scoped finding of the input validator.
type ValidationIssue struct {
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	Field    string   `json:"field,omitempty"`
	Severity Severity `json:"severity"`
}

// ValidationResult is the outcome of validating one input record.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationIssue `json:"errors"`
}

// Blocking returns the issues with error severity.
func (r ValidationResult) Blocking() []ValidationIssue {
	var out []ValidationIssue
	for _, issue := range r.Errors {
		if issue.Severity == SeverityError {
			out = append(out, issue)
		}
	}
	return out
}

// Summary joins the blocking messages into a single line.
func (r ValidationResult) Summary() string {
	blocking := r.Blocking()
	msgs := make([]string, 0, len(blocking))
	for _, issue := range blocking {
		msgs = append(msgs, issue.Message)
	}
	return strings.Join(msgs, "; ")
}

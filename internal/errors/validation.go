package errors

import (
	"fmt"
	"slices"
	"strings"
)

// FieldViolation is one failed check against an input or config field
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v FieldViolation) String() string {
	return v.Field + ": " + v.Message
}

// ValidationBuilder collects field violations in the order they are found.
// Build returns nil when nothing was collected, otherwise an INVALID_ARGUMENT
// error listing every violation.
type ValidationBuilder struct {
	violations []FieldViolation
}

func NewValidationBuilder() *ValidationBuilder {
	return &ValidationBuilder{}
}

func (vb *ValidationBuilder) Field(field, message string) *ValidationBuilder {
	vb.violations = append(vb.violations, FieldViolation{Field: field, Message: message})
	return vb
}

func (vb *ValidationBuilder) Fieldf(field, format string, args ...any) *ValidationBuilder {
	return vb.Field(field, fmt.Sprintf(format, args...))
}

func (vb *ValidationBuilder) RequiredField(field string) *ValidationBuilder {
	return vb.Field(field, "is required")
}

func (vb *ValidationBuilder) InvalidField(field, reason string) *ValidationBuilder {
	return vb.Field(field, "is invalid: "+reason)
}

// Violations returns a copy of what has been collected so far
func (vb *ValidationBuilder) Violations() []FieldViolation {
	return slices.Clone(vb.violations)
}

func (vb *ValidationBuilder) Build() error {
	if len(vb.violations) == 0 {
		return nil
	}

	parts := make([]string, 0, len(vb.violations))
	for _, v := range vb.violations {
		parts = append(parts, v.String())
	}
	return InvalidArgument("validation failed: "+strings.Join(parts, "; ")).
		WithMeta("violations", vb.Violations())
}

// ValidateRequired flags blank and whitespace-only values
func ValidateRequired(field, value string, vb *ValidationBuilder) {
	if strings.TrimSpace(value) == "" {
		vb.RequiredField(field)
	}
}

// ValidateRange flags values outside [minValue, maxValue]
func ValidateRange(field string, value, minValue, maxValue int, vb *ValidationBuilder) {
	if value < minValue || value > maxValue {
		vb.Fieldf(field, "must be between %d and %d", minValue, maxValue)
	}
}

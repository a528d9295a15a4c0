// Package validation checks job variables against the activity registry's JSON schemas.
package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	apperrors "business-advisor/internal/common/errors"
	"business-advisor/pkg/registry"
)

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Validator holds the compiled input schemas of every registered activity.
type Validator struct {
	schemas map[string]*gojsonschema.Schema
}

// NewValidator compiles each activity's inputSchema. A schema that does not compile is an error.
func NewValidator(reg *registry.ActivityRegistry) (*Validator, error) {
	v := &Validator{schemas: make(map[string]*gojsonschema.Schema, len(reg.Activities))}
	for _, a := range reg.Activities {
		if a.InputSchema == nil {
			continue
		}
		schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(a.InputSchema))
		if err != nil {
			return nil, fmt.Errorf("compile input schema for %s: %w", a.TaskType, err)
		}
		v.schemas[a.TaskType] = schema
	}
	return v, nil
}

// NewDefaultValidator compiles the embedded registry.
func NewDefaultValidator() (*Validator, error) {
	reg, err := registry.Default()
	if err != nil {
		return nil, err
	}
	return NewValidator(reg)
}

func (v *Validator) Has(taskType string) bool {
	_, ok := v.schemas[taskType]
	return ok
}

// ValidateJSON validates raw job variables. Task types without a schema pass.
func (v *Validator) ValidateJSON(taskType, variables string) (*ValidationResult, error) {
	return v.validate(taskType, gojsonschema.NewStringLoader(variables))
}

// ValidateInput validates an already decoded document.
func (v *Validator) ValidateInput(taskType string, input interface{}) (*ValidationResult, error) {
	return v.validate(taskType, gojsonschema.NewGoLoader(input))
}

func (v *Validator) validate(taskType string, doc gojsonschema.JSONLoader) (*ValidationResult, error) {
	schema, ok := v.schemas[taskType]
	if !ok {
		return &ValidationResult{Valid: true}, nil
	}
	result, err := schema.Validate(doc)
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}
	return toResult(result), nil
}

func toResult(result *gojsonschema.Result) *ValidationResult {
	out := &ValidationResult{Valid: result.Valid()}
	for _, desc := range result.Errors() {
		out.Errors = append(out.Errors, ValidationError{
			Field:   desc.Field(),
			Message: desc.Description(),
			Code:    strings.ToUpper(desc.Type()),
		})
	}
	sort.Slice(out.Errors, func(i, j int) bool {
		if out.Errors[i].Field != out.Errors[j].Field {
			return out.Errors[i].Field < out.Errors[j].Field
		}
		return out.Errors[i].Code < out.Errors[j].Code
	})
	return out
}

// Check validates variables and converts a failure into an INVALID_INPUT error.
func (v *Validator) Check(taskType, variables string) error {
	result, err := v.ValidateJSON(taskType, variables)
	if err != nil {
		return apperrors.NewInvalidInputError(err.Error())
	}
	if !result.Valid {
		return apperrors.NewInvalidInputError(result.Summary())
	}
	return nil
}

// Summary joins errors as "field: message" pairs.
func (r *ValidationResult) Summary() string {
	parts := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		parts[i] = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return strings.Join(parts, "; ")
}

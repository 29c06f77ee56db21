package methodology

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is a singleton validator instance
var validate = validator.New()

// ValidationError provides structured information about one rejected field.
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// FieldErrors is returned by Validate when one or more fields are rejected.
// Errors are in field order.
type FieldErrors struct {
	Methodology ID
	Errors      []ValidationError
}

func (e *FieldErrors) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return fmt.Sprintf("%s: invalid input: %s", e.Methodology, strings.Join(parts, "; "))
}

// Map returns field name -> human-readable message.
func (e *FieldErrors) Map() map[string]string {
	m := make(map[string]string, len(e.Errors))
	for _, fe := range e.Errors {
		m[fe.Field] = fe.Message
	}
	return m
}

// Fields returns the rejected field names in field order.
func (e *FieldErrors) Fields() []string {
	names := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		names = append(names, fe.Field)
	}
	return names
}

// Validated is input that has passed its methodology's rules. It can only be
// produced by Definition.Validate, so the assembler never sees invalid input.
type Validated struct {
	methodology ID
	values      map[string]string
}

// Methodology reports which definition accepted the input.
func (v Validated) Methodology() ID {
	return v.methodology
}

// Value returns the normalized value of a field.
func (v Validated) Value(name string) string {
	return v.values[name]
}

// Validate checks the required field of the definition and normalizes every
// value by trimming surrounding whitespace. Optional fields carry no rule.
func (d *Definition) Validate(in Input) (Validated, error) {
	values := make(map[string]string, len(d.Fields))
	var errs []ValidationError

	for _, f := range d.Fields {
		value := strings.TrimSpace(in[f.Name])
		values[f.Name] = value

		if !f.Required {
			continue
		}
		if fe := validateField(f, value); fe != nil {
			errs = append(errs, *fe)
		}
	}

	if len(errs) > 0 {
		return Validated{}, &FieldErrors{Methodology: d.ID, Errors: errs}
	}
	return Validated{methodology: d.ID, values: values}, nil
}

func validateField(f Field, value string) *ValidationError {
	tag := "required"
	if f.MinLength > 0 {
		tag = fmt.Sprintf("required,min=%d", f.MinLength)
	}

	err := validate.Var(value, tag)
	if err == nil {
		return nil
	}

	ve, ok := err.(validator.ValidationErrors)
	if !ok || len(ve) == 0 {
		return &ValidationError{Field: f.Name, Tag: "invalid", Message: err.Error()}
	}
	return &ValidationError{
		Field:   f.Name,
		Tag:     ve[0].Tag(),
		Message: formatValidationError(f, ve[0]),
	}
}

// formatValidationError creates a human-readable error message
func formatValidationError(f Field, err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", f.Label)
	case "min":
		return fmt.Sprintf("Please provide more details (at least %s characters)", err.Param())
	default:
		return fmt.Sprintf("%s failed validation: %s", f.Label, err.Tag())
	}
}

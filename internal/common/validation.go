package common

import (
	"fmt"
	"strings"
)

// ValidationError represents validation failures
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s %s (got %v)", e.Field, e.Message, e.Value)
}

// Validator provides validation utilities
type Validator struct {
	errors []ValidationError
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		errors: make([]ValidationError, 0),
	}
}

// Field validates a field and collects errors
func (v *Validator) Field(fieldName string, value interface{}, rules ...ValidationRule) *Validator {
	for _, rule := range rules {
		if err := rule(fieldName, value); err != nil {
			v.errors = append(v.errors, *err)
		}
	}
	return v
}

// HasErrors returns true if there are validation errors
func (v *Validator) HasErrors() bool {
	return len(v.errors) > 0
}

// Errors returns all validation errors
func (v *Validator) Errors() []ValidationError {
	return v.errors
}

// ErrorMessage returns a combined error message as string
func (v *Validator) ErrorMessage() string {
	if !v.HasErrors() {
		return ""
	}

	var messages []string
	for _, err := range v.errors {
		messages = append(messages, err.Error())
	}
	return strings.Join(messages, "; ")
}

// ValidationRule represents a single validation rule
type ValidationRule func(fieldName string, value interface{}) *ValidationError

// Required - Common validation rules
func Required(fieldName string, value interface{}) *ValidationError {
	if value == nil {
		return &ValidationError{Field: fieldName, Value: value, Message: "is required"}
	}

	switch v := value.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return &ValidationError{Field: fieldName, Value: value, Message: "is required"}
		}
	case []string:
		if len(v) == 0 {
			return &ValidationError{Field: fieldName, Value: value, Message: "requires at least one entry"}
		}
	}
	return nil
}

// Positive rejects numbers that are zero or negative.
func Positive(fieldName string, value interface{}) *ValidationError {
	var ok bool
	switch v := value.(type) {
	case int:
		ok = v > 0
	case float64:
		ok = v > 0
	default:
		return &ValidationError{Field: fieldName, Value: value, Message: "must be a number"}
	}
	if !ok {
		return &ValidationError{Field: fieldName, Value: value, Message: "must be a positive number"}
	}
	return nil
}

// OneOf builds a rule accepting only the listed strings.
func OneOf(allowed ...string) ValidationRule {
	return func(fieldName string, value interface{}) *ValidationError {
		str, _ := value.(string)
		for _, a := range allowed {
			if str == a {
				return nil
			}
		}
		return &ValidationError{
			Field:   fieldName,
			Value:   value,
			Message: "must be one of: " + strings.Join(allowed, ", "),
		}
	}
}

// ValidateAndReturnError returns an AppError with the given code if validation failed.
func ValidateAndReturnError(validator *Validator, code string, cause error) error {
	if validator.HasErrors() {
		return NewAppError(code, validator.ErrorMessage(), cause)
	}
	return nil
}

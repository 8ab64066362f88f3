package entities

import "fmt"

// ValidationError описывает нарушение правил для одного поля сущности.
type ValidationError struct {
	Entity string
	Field  string
	Err    error
}

// NewValidationError создает ошибку валидации поля.
func NewValidationError(entity, field string, err error) *ValidationError {
	return &ValidationError{Entity: entity, Field: field, Err: err}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s validation failed: %s: %v", e.Entity, e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

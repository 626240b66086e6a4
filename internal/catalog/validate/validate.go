// Package validate checks candidate items against field constraints.
// Validation is pure: no I/O, no store access, all violations collected.
package validate

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"catalog/internal/catalog/models"
)

// Violations maps a field name to a human-readable constraint description.
// An empty map (or nil) signifies a valid candidate.
type Violations map[string]string

// ItemValidator validates candidate items. Construct once and share; the
// underlying validator caches struct metadata and is safe for concurrent use.
type ItemValidator struct {
	validate *validator.Validate
}

func New() *ItemValidator {
	return &ItemValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// Check returns all constraint violations for the candidate, keyed by field.
// A nil result means the candidate is valid. Violations are collected, never
// short-circuited: a candidate breaking three rules reports three fields.
func (v *ItemValidator) Check(candidate *models.Item) Violations {
	err := v.validate.Struct(candidate)
	if err == nil {
		return nil
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		// InvalidValidationError only happens for non-struct input, which the
		// typed signature rules out; keep a defensive mapping regardless.
		return Violations{"candidate": err.Error()}
	}

	violations := make(Violations, len(fieldErrs))
	for _, fe := range fieldErrs {
		violations[fieldName(fe)] = describe(fe)
	}
	return violations
}

// fieldName strips the leading struct name ("Item.") and lowers the first
// letter so reports use the wire-level field names clients submitted.
func fieldName(fe validator.FieldError) string {
	switch fe.Field() {
	case "Name":
		return "name"
	case "Code":
		return "code"
	case "Category":
		return "category"
	case "Price":
		return "price"
	case "Discount":
		return "discount"
	case "Homepage":
		return "homepage"
	case "FirstName":
		return "contributors.firstName"
	case "LastName":
		return "contributors.lastName"
	}
	if fe.Tag() == "oneof" && fe.Field() != "Category" {
		return "tags"
	}
	return fe.Field()
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "isbn":
		return "must be a valid ISBN-10 or ISBN-13"
	case "url":
		return "must be a well-formed URL"
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lt":
		return fmt.Sprintf("must be less than %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	default:
		return fmt.Sprintf("failed %q constraint", fe.Tag())
	}
}

// Package validation is the single source of truth for person-record field
// rules. The pure predicates are exported for any caller that needs
// pre-submission checks; the same predicates back the validator tags used on
// the Person model, so the mutation path and any presentation layer cannot
// drift apart.
package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"registru/internal/person/models"
	dErrors "registru/pkg/domain-errors"
)

var (
	cnpPattern       = regexp.MustCompile(`^[0-9]{13}$`)
	cinSeriesPattern = regexp.MustCompile(`^[A-Za-z]{1,2}$`)
	cinNumberPattern = regexp.MustCompile(`^[0-9]{1,6}$`)
)

// ValidNationalID accepts the empty string or exactly 13 decimal digits.
// No checksum is applied; the registry stores the CNP as given.
func ValidNationalID(s string) bool {
	return s == "" || cnpPattern.MatchString(s)
}

// ValidCINSeries accepts the empty string or 1-2 alphabetic characters.
func ValidCINSeries(s string) bool {
	return s == "" || cinSeriesPattern.MatchString(s)
}

// ValidCINNumber accepts the empty string or 1-6 decimal digits.
func ValidCINNumber(s string) bool {
	return s == "" || cinNumberPattern.MatchString(s)
}

// ValidDateOrder accepts when either date is absent or expiry is on or after
// issue.
func ValidDateOrder(issue, expiry *models.Date) bool {
	if issue == nil || expiry == nil {
		return true
	}
	return !expiry.Before(*issue)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report violations under the wire field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("cnp", func(fl validator.FieldLevel) bool {
		return ValidNationalID(fl.Field().String())
	})
	_ = v.RegisterValidation("cin_series", func(fl validator.FieldLevel) bool {
		return ValidCINSeries(fl.Field().String())
	})
	_ = v.RegisterValidation("cin_number", func(fl validator.FieldLevel) bool {
		return ValidCINNumber(fl.Field().String())
	})

	v.RegisterStructValidation(personStructLevel, models.Person{})

	return v
}

// personStructLevel enforces cross-field rules that tags cannot express.
func personStructLevel(sl validator.StructLevel) {
	p := sl.Current().Interface().(models.Person)
	if !ValidDateOrder(p.IDIssueDate, p.IDExpiryDate) {
		sl.ReportError(p.IDExpiryDate, "id_expiry_date", "IDExpiryDate", "date_order", "")
	}
}

// Person validates a fully assembled record and returns every violated rule.
// Records are validated after normalization; an empty result means the record
// satisfies all stored-record invariants.
func Person(p *models.Person) []dErrors.Violation {
	err := validate.Struct(*p)
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []dErrors.Violation{{Field: "", Rule: "invalid", Message: "invalid record"}}
	}

	violations := make([]dErrors.Violation, 0, len(validationErrs))
	for _, fe := range validationErrs {
		violations = append(violations, dErrors.Violation{
			Field:   fe.Field(),
			Rule:    fe.ActualTag(),
			Message: message(fe),
		})
	}
	return violations
}

// ValidatePerson is the mutation-path entry point: it returns nil or a
// validation error carrying the full violation list.
func ValidatePerson(p *models.Person) error {
	if violations := Person(p); len(violations) > 0 {
		return dErrors.NewValidation(violations)
	}
	return nil
}

// message converts a validator error into a human-readable message.
func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.ActualTag() {
	case "required", "notblank":
		return fmt.Sprintf("%s is required", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email", field)
	case "cnp":
		return fmt.Sprintf("%s must be exactly 13 digits", field)
	case "cin_series":
		return fmt.Sprintf("%s must be 1-2 letters", field)
	case "cin_number":
		return fmt.Sprintf("%s must be 1-6 digits", field)
	case "date_order":
		return fmt.Sprintf("%s must not be before id_issue_date", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

package validation

import (
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/rezaariel/insight-report-hub/internal/domain"
)

// Allow letters, numbers, spaces, and common punctuation: . ' - / & ( ) ,
var nameRegex = regexp.MustCompile(`^[\p{L}0-9 .'/&(),-]+$`)

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("valid_name", ValidName)
	_ = v.RegisterValidation("periode", ValidPeriode)
	_ = v.RegisterValidation("division", ValidDivision)
}

// ValidName validates that a string contains only valid name characters.
func ValidName(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true // Optional, use required if needed
	}
	return nameRegex.MatchString(val)
}

// ValidPeriode validates that a string is one of the generated quarter labels
// around the current date.
func ValidPeriode(fl validator.FieldLevel) bool {
	return domain.IsValidPeriode(fl.Field().String(), time.Now())
}

// ValidDivision validates a division key (ga, acc, pcc, hrd).
func ValidDivision(fl validator.FieldLevel) bool {
	_, err := domain.ParseDivision(fl.Field().String())
	return err == nil
}

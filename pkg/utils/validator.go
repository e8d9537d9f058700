package utils

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate

	invitationCodePattern = regexp.MustCompile(`^[A-Z0-9]{6}$`)
	emailPattern          = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)
)

func init() {
	validate = validator.New()

	if err := validate.RegisterValidation("invitation_code", validateInvitationCode); err != nil {
		panic(err)
	}
	if err := validate.RegisterValidation("telemetry_period", validateTelemetryPeriod); err != nil {
		panic(err)
	}
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateInvitationCode(fl validator.FieldLevel) bool {
	return IsValidInvitationCode(fl.Field().String())
}

func validateTelemetryPeriod(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "day", "week", "month", "year":
		return true
	}
	return false
}

// IsValidInvitationCode reports whether code is six characters of [A-Z0-9].
func IsValidInvitationCode(code string) bool {
	return invitationCodePattern.MatchString(code)
}

// IsValidEmail checks the address shape without folding case; roster joins
// compare emails byte for byte.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}

package val

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

func registerCustomValidations(v *validator.Validate) {
	// errors are only returned for an empty tag name or a nil func
	_ = v.RegisterValidation("notblank", notBlank)
}

// notBlank rejects strings consisting only of whitespace. Empty strings pass
// so the rule can be combined with omitempty.
func notBlank(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s == "" || strings.TrimSpace(s) != ""
}

package utils

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	validate     = validator.New()
	phonePattern = regexp.MustCompile(`^\+?[0-9][0-9\-\s()]{5,19}$`)
)

func init() {
	if err := validate.RegisterValidation("phone", validatePhone); err != nil {
		panic(err)
	}
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// RegisterEnum adds a validation tag accepting only the given values.
func RegisterEnum(tag string, values ...string) {
	allowed := make(map[string]struct{}, len(values))
	for _, v := range values {
		allowed[v] = struct{}{}
	}

	err := validate.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		_, ok := allowed[fl.Field().String()]
		return ok
	})
	if err != nil {
		panic(err)
	}
}

func validatePhone(fl validator.FieldLevel) bool {
	return phonePattern.MatchString(fl.Field().String())
}

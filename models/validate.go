package models

import (
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

var monthYearRe = regexp.MustCompile(`^\d{1,2}-\d{4}$`)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Cinema started in 1888; allow a few years of headroom for announced titles.
	_ = v.RegisterValidation("releaseyear", func(fl validator.FieldLevel) bool {
		year := int(fl.Field().Int())
		return year >= 1888 && year <= time.Now().Year()+5
	})

	_ = v.RegisterValidation("monthyear", func(fl validator.FieldLevel) bool {
		return monthYearRe.MatchString(fl.Field().String())
	})

	return v
}

// Validate checks an input struct against its declared constraints.
func Validate(input any) error {
	return validate.Struct(input)
}

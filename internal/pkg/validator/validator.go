package validator

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator instance
var validate *validator.Validate

// banDurationRe matches "permanent" or "<integer><unit>" with unit in h/d/w/m.
var banDurationRe = regexp.MustCompile(`^([1-9][0-9]*)(h|d|w|m)$`)

func init() {
	validate = validator.New()

	// Use JSON tag names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomValidations()
}

func registerCustomValidations() {
	// Account type validation
	validate.RegisterValidation("account_type", func(fl validator.FieldLevel) bool {
		t := fl.Field().String()
		return t == "user" || t == "doctor"
	})

	// Ban duration spec validation
	validate.RegisterValidation("ban_duration", func(fl validator.FieldLevel) bool {
		d := fl.Field().String()
		return d == "permanent" || banDurationRe.MatchString(d)
	})
}

// Validate validates a struct and returns a map of field errors
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	for _, err := range err.(validator.ValidationErrors) {
		field := err.Field()
		switch err.Tag() {
		case "required":
			errors[field] = "This field is required"
		case "email":
			errors[field] = "Invalid email format"
		case "min":
			errors[field] = "Value is too short (min: " + err.Param() + ")"
		case "max":
			errors[field] = "Value is too long (max: " + err.Param() + ")"
		case "oneof":
			errors[field] = "Must be one of: " + err.Param()
		case "url":
			errors[field] = "Invalid URL format"
		case "uuid":
			errors[field] = "Invalid ID format"
		case "account_type":
			errors[field] = "Invalid account type. Must be: user or doctor"
		case "ban_duration":
			errors[field] = "Invalid ban duration. Use permanent or <number><h|d|w|m>, e.g. 24h or 7d"
		default:
			errors[field] = "Invalid value"
		}
	}

	return errors
}

// ValidateVar validates a single variable
func ValidateVar(field interface{}, tag string) error {
	return validate.Var(field, tag)
}

package domain

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// emailPattern is the loose local@domain.tld shape accepted for contact and account emails.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return fld.Name
	})
	_ = v.RegisterValidation("emailshape", func(fl validator.FieldLevel) bool {
		return IsValidEmail(fl.Field().String())
	})
	return v
}

func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// validateStruct runs the struct tags of in and folds failures into one ValidationError.
func validateStruct(in interface{}) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return ValidationError("invalid input: %v", err)
	}

	var missing, invalid []string
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			missing = append(missing, fe.Field())
		} else {
			invalid = append(invalid, fe.Field())
		}
	}
	switch {
	case len(missing) > 0 && len(invalid) > 0:
		return ValidationError("missing required fields: %s; invalid fields: %s",
			strings.Join(missing, ", "), strings.Join(invalid, ", "))
	case len(missing) > 0:
		return ValidationError("missing required fields: %s", strings.Join(missing, ", "))
	default:
		return ValidationError("invalid fields: %s", strings.Join(invalid, ", "))
	}
}

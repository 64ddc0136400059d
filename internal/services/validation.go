package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"storefront/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// newValidator returns a validator that reports fields by their json name and
// understands decimal.Decimal in numeric rules such as gte.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// validateStruct runs the struct tag rules and converts failures to a ValidationError.
func validateStruct(v *validator.Validate, s interface{}) *ValidationError {
	verr := &ValidationError{}
	err := v.Struct(s)
	if err == nil {
		return verr
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		verr.Add("body", err.Error())
		return verr
	}
	for _, fe := range fieldErrs {
		verr.Add(fe.Field(), fieldMessage(fe))
	}
	return verr
}

func fieldMessage(fe validator.FieldError) string {
	label := strings.ReplaceAll(fe.Field(), "_", " ")
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", label)
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address.", label)
	case "max":
		return fmt.Sprintf("The %s field must not be greater than %s characters.", label, fe.Param())
	case "min", "gte":
		if fe.Tag() == "gte" && fe.Param() == "0" {
			return fmt.Sprintf("The %s field must not be negative.", label)
		}
		return fmt.Sprintf("The %s field must be at least %s.", label, fe.Param())
	case "gt":
		return fmt.Sprintf("The %s field must be greater than %s.", label, fe.Param())
	case "oneof":
		return fmt.Sprintf("The selected %s is invalid.", label)
	default:
		return fmt.Sprintf("The %s field failed on the '%s' rule.", label, fe.Tag())
	}
}

// invalidSelection is the message for a reference to a row that does not exist.
func invalidSelection(field string) string {
	return fmt.Sprintf("The selected %s is invalid.", strings.ReplaceAll(field, "_", " "))
}

// checkExists runs lookup and records field as invalid when the row is missing.
// Any other lookup failure is returned as is.
func checkExists(verr *ValidationError, field string, lookup func() error) error {
	err := lookup()
	if err == nil {
		return nil
	}
	if errors.Is(err, repositories.ErrNotFound) {
		verr.Add(field, invalidSelection(field))
		return nil
	}
	return err
}

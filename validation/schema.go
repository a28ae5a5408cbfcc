package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"taskpro/api/models"

	"github.com/go-playground/validator/v10"
)

type mode int

const (
	modeCreate mode = iota
	modeUpdate
)

// schema declares the closed set of fields an entity accepts. Read-only
// fields are rejected on create and skipped on update.
type schema struct {
	writable []string
	readOnly []string
}

func (s schema) checkFields(p Payload, m mode, errs Errors) {
	for key := range p {
		if contains(s.writable, key) {
			continue
		}
		if m == modeUpdate && contains(s.readOnly, key) {
			continue
		}
		errs.Add(key, msgUnknownField)
	}
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("priority", validPriority); err != nil {
		panic(err)
	}
	return v
}

func validPriority(fl validator.FieldLevel) bool {
	priority := fl.Field().Int()
	return priority >= models.MinPriority && priority <= models.MaxPriority
}

// check runs the struct rules, skipping fields that already failed to
// decode so each field reports its most specific problem.
func check(input interface{}, errs Errors) {
	err := validate.Struct(input)
	if err == nil {
		return
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		errs.Add("_schema", err.Error())
		return
	}

	for _, fe := range fieldErrors {
		if errs.Has(fe.Field()) {
			continue
		}
		errs.Add(fe.Field(), message(fe))
	}
}

func message(fe validator.FieldError) string {
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return msgRequired
	case "min":
		if isString {
			return fmt.Sprintf("Shorter than minimum length %s.", fe.Param())
		}
		return fmt.Sprintf("Must be greater than or equal to %s.", fe.Param())
	case "max":
		if isString {
			return fmt.Sprintf("Longer than maximum length %s.", fe.Param())
		}
		return fmt.Sprintf("Must be less than or equal to %s.", fe.Param())
	case "gte":
		return fmt.Sprintf("Must be greater than or equal to %s.", fe.Param())
	case "lte":
		return fmt.Sprintf("Must be less than or equal to %s.", fe.Param())
	case "priority":
		return fmt.Sprintf("Must be greater than or equal to %d and less than or equal to %d.", models.MinPriority, models.MaxPriority)
	}
	return msgInvalidFormat
}

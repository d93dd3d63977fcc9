// Package validators holds the shared go-playground validator; request
// specific validators live in the sub packages.
package validators

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Validate reports fields by their json name and knows the "slug" tag.
var Validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})
	return v
}

// Struct validates s and returns field -> message, or nil when s is valid.
func Struct(s interface{}) map[string]string {
	err := Validate.Struct(s)
	if err == nil {
		return nil
	}

	out := make(map[string]string)
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		out["request"] = err.Error()
		return out
	}
	for _, fe := range fieldErrs {
		field := fe.Field()
		switch fe.Tag() {
		case "required":
			out[field] = fmt.Sprintf("%s is required!", field)
		case "email":
			out[field] = "Invalid email address!"
		case "min":
			out[field] = fmt.Sprintf("%s must be at least %s characters long!", field, fe.Param())
		case "slug":
			out[field] = "Slug may only contain lowercase letters, digits and dashes!"
		default:
			out[field] = fmt.Sprintf("%s is invalid!", field)
		}
	}
	return out
}

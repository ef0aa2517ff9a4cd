package service

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// checkStruct runs tag validation and reports the first failure as a
// ValidationError.
func checkStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return invalid("", "invalid request")
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return invalid(fe.Field(), "is required")
	case "min":
		if fe.Kind() == reflect.Slice {
			return invalid(fe.Field(), "needs at least %s entries", fe.Param())
		}
		return invalid(fe.Field(), "must be at least %s characters", fe.Param())
	case "max":
		if fe.Kind() == reflect.Slice {
			return invalid(fe.Field(), "allows at most %s entries", fe.Param())
		}
		return invalid(fe.Field(), "must be at most %s characters", fe.Param())
	default:
		return invalid(fe.Field(), "is %s", fe.Tag())
	}
}

package service

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/saadjs/drinklog/internal/apperr"
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// validateInput runs struct tags and maps failures onto apperr.FieldError.
func (t *Tracker) validateInput(in any) error {
	err := t.validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, apperr.Invalid(fe.Field(), fe.Value(), describeTag(fe)))
	}
	return errors.Join(out...)
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required, got"
	case "gte":
		return "must be >= " + fe.Param() + ", got"
	case "gt":
		return "must be > " + fe.Param() + ", got"
	case "max":
		return "must be at most " + fe.Param() + " characters, got"
	case "oneof":
		return "must be one of [" + fe.Param() + "], got"
	default:
		return "failed " + fe.Tag() + ", got"
	}
}

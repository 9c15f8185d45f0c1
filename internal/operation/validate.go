package operation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Messages maps a JSON field name to the message reported when the field
// fails validation. A "field.tag" key overrides the message for one tag.
type Messages map[string]string

func (m Messages) lookup(field, tag string) string {
	if msg, ok := m[field+"."+tag]; ok {
		return msg
	}
	if msg, ok := m[field]; ok {
		return msg
	}
	return "Invalid " + strings.ReplaceAll(field, "_", " ") + "."
}

// Check validates the struct tags of req and records one validation error per
// failing field, in declaration order. Every field is checked.
func Check(l *ErrorList, req any, msgs Messages) {
	err := validate.Struct(req)
	if err == nil {
		return
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		l.Add(ClassValidation, "Invalid request.")
		return
	}
	for _, fe := range verrs {
		l.Add(ClassValidation, msgs.lookup(fe.Field(), fe.Tag()))
	}
}

// Package form holds the client's form values. Each form is an immutable
// value: Set returns an updated copy and Validate is a pure function of the
// current fields.
package form

import (
	"errors"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Errors maps a field name to its message. A nil or empty Errors is valid.
type Errors map[string]string

// OK reports whether there are no errors.
func (e Errors) OK() bool { return len(e) == 0 }

// Has reports whether field has an error.
func (e Errors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// Get returns the message for field, or "".
func (e Errors) Get(field string) string { return e[field] }

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their form names so messages key on what views show.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := RegisterEmailRule(v); err != nil {
		panic(err)
	}
	return v
}

// RegisterEmailRule adds the email_simple tag to v. It is the address check
// the forms use, so a server validating with it accepts what they accept.
func RegisterEmailRule(v *validator.Validate) error {
	return v.RegisterValidation("email_simple", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
}

// check runs struct validation on v and records the first failure per field
// that does not already have an error.
func check(v any, errs Errors, message func(validator.FieldError) string) {
	err := validate.Struct(v)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return
	}
	for _, fe := range verrs {
		if errs.Has(fe.Field()) {
			continue
		}
		errs[fe.Field()] = message(fe)
	}
}

// parseWhole parses a whole number typed by the user. It returns false with
// a message when the input is empty or not a number.
func parseWhole(raw, required string) (int, string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, required, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, "Must be a whole number", false
	}
	return n, "", true
}

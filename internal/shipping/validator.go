package shipping

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Result is the outcome of validating one field.
type Result struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

type rule struct {
	tag     string
	message string
}

// Tags run left to right and stop at the first failure, which gives the
// required -> minimum length -> pattern precedence. min counts runes.
var rules = map[Field]rule{
	FieldFullName:   {tag: "required,min=3", message: "Full name must be at least 3 characters"},
	FieldEmail:      {tag: "required,shipping_email", message: "Please enter a valid email address"},
	FieldPhone:      {tag: "required,shipping_phone", message: "Phone number must be 10 digits"},
	FieldAddress:    {tag: "required,min=10", message: "Please enter a complete address"},
	FieldCity:       {tag: "required,min=2", message: "Please enter a valid city"},
	FieldPostalCode: {tag: "required,shipping_postal_code", message: "Postal code must be 6 digits"},
}

var (
	emailPattern      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern      = regexp.MustCompile(`^[0-9]{10}$`)
	postalCodePattern = regexp.MustCompile(`^[0-9]{6}$`)
)

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New()
	checks := map[string]func(string) bool{
		"shipping_email":       isEmail,
		"shipping_phone":       phonePattern.MatchString,
		"shipping_postal_code": postalCodePattern.MatchString,
	}
	for tag, check := range checks {
		if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return check(fl.Field().String())
		}); err != nil {
			panic(err)
		}
	}
	return v
}

// isEmail applies emailPattern and also rejects non-ASCII whitespace anywhere in the
// value, which regexp's \s does not cover.
func isEmail(value string) bool {
	if strings.ContainsFunc(value, isSpace) {
		return false
	}
	return emailPattern.MatchString(value)
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

// Validate checks one raw field value. The value is trimmed before every check.
// Unknown fields are always valid.
func Validate(field Field, raw string) Result {
	r, ok := rules[field]
	if !ok {
		return Result{Valid: true}
	}
	if err := validate.Var(strings.TrimFunc(raw, isSpace), r.tag); err != nil {
		return Result{Valid: false, Message: r.message}
	}
	return Result{Valid: true}
}

// ValidateAll checks every shipping field. The returned map holds a message for each
// failing field and is empty when the form passes.
func ValidateAll(values map[Field]string) (bool, map[Field]string) {
	errs := make(map[Field]string)
	for _, f := range orderedFields {
		if res := Validate(f, values[f]); !res.Valid {
			errs[f] = res.Message
		}
	}
	return len(errs) == 0, errs
}

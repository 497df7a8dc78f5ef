// Package inputval validates typed request inputs with struct tags.
//
// Inputs declare rules with `validate:"..."` and a human label with
// `label:"..."`. Field errors are keyed by the field's json name so API
// clients can map them back onto the payload they sent.
package inputval

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	validate *validator.Validate
)

func engine() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
		registerCustom(v)
		validate = v
	})
	return validate
}

// FieldError is one failed rule on one field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Result collects the field errors of one validation pass.
type Result struct {
	Errors []FieldError `json:"errors"`
}

// HasErrors reports whether any rule failed. A nil Result has no errors.
func (r *Result) HasErrors() bool {
	return r != nil && len(r.Errors) > 0
}

// First returns the first message, or "" when there is none.
func (r *Result) First() string {
	if !r.HasErrors() {
		return ""
	}
	return r.Errors[0].Message
}

// Add records a failure found outside struct tags (cross-field checks,
// lookups against the store).
func (r *Result) Add(field, message string) {
	r.Errors = append(r.Errors, FieldError{Field: field, Message: message})
}

// Fields returns field → first message.
func (r *Result) Fields() map[string]string {
	if r == nil {
		return map[string]string{}
	}
	out := make(map[string]string, len(r.Errors))
	for _, fe := range r.Errors {
		if _, seen := out[fe.Field]; !seen {
			out[fe.Field] = fe.Message
		}
	}
	return out
}

// Err returns the result as a *ValidationError, or nil when it holds no errors.
func (r *Result) Err() error {
	if !r.HasErrors() {
		return nil
	}
	return &ValidationError{Result: r}
}

// ValidationError carries a failed Result across package boundaries.
type ValidationError struct {
	Result *Result
}

func (e *ValidationError) Error() string {
	if e.Result == nil || len(e.Result.Errors) == 0 {
		return "validation failed"
	}
	fe := e.Result.Errors[0]
	if len(e.Result.Errors) == 1 {
		return fmt.Sprintf("validation failed: %s: %s", fe.Field, fe.Message)
	}
	return fmt.Sprintf("validation failed: %s: %s (and %d more)", fe.Field, fe.Message, len(e.Result.Errors)-1)
}

// Fail returns a *ValidationError holding a single field failure.
func Fail(field, message string) error {
	r := &Result{}
	r.Add(field, message)
	return r.Err()
}

// AsValidation unwraps err to its Result when err is a validation failure.
func AsValidation(err error) (*Result, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Result, true
	}
	return nil, false
}

// Validate checks s against its struct tags. s must be a struct or a
// pointer to one.
func Validate(s any) *Result {
	res := &Result{}
	err := engine().Struct(s)
	if err == nil {
		return res
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		res.Add("", err.Error())
		return res
	}
	root := reflect.TypeOf(s)
	for _, fe := range verrs {
		label := labelFor(root, fe.StructNamespace())
		if label == "" {
			label = fe.Field()
		}
		res.Add(fieldPath(fe.Namespace()), message(label, fe))
	}
	return res
}

// fieldPath drops the root type name from a validator namespace:
// "recordInput.items[0].quantity" → "items[0].quantity".
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// labelFor walks the struct namespace ("Input.Items[0].Quantity") down from
// root and returns the label tag of the last field.
func labelFor(root reflect.Type, structNS string) string {
	parts := strings.Split(structNS, ".")
	if len(parts) < 2 {
		return ""
	}
	t := root
	var label string
	for _, p := range parts[1:] {
		if i := strings.IndexByte(p, '['); i >= 0 {
			p = p[:i]
		}
		for t.Kind() == reflect.Pointer || t.Kind() == reflect.Slice || t.Kind() == reflect.Array || t.Kind() == reflect.Map {
			t = t.Elem()
		}
		if t.Kind() != reflect.Struct {
			return label
		}
		f, ok := t.FieldByName(p)
		if !ok {
			return label
		}
		label = f.Tag.Get("label")
		t = f.Type
	}
	return label
}

func message(label string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return label + " is required."
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters.", label, fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must have at most %s entries.", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s.", label, fe.Param())
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must have at least %s entries.", label, fe.Param())
		}
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters.", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s.", label, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s.", label, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be %s or more.", label, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be %s or less.", label, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s.", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "emailaddr", "email":
		return label + " must be a valid email address."
	case "datetime":
		return label + " must be a date in YYYY-MM-DD form."
	case "url":
		return label + " must be a valid URL."
	case "campaigncode":
		return label + " must be one uppercase letter followed by 5 or 6 digits."
	case "hexcolor":
		return label + " must be a hex color such as #1a2b3c."
	}
	return label + " is invalid."
}

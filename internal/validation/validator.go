package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldViolation is a single failed rule on a named field.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldRule pairs a field name with a validator tag, e.g. {"email", "email"}.
type FieldRule struct {
	Field string
	Rule  string
}

// Validator checks values against go-playground/validator tags and reports
// violations using the JSON field names.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator.
func New() *Validator {
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
	// bcrypt rejects passwords longer than 72 bytes, whatever their rune count.
	_ = v.RegisterValidation("maxbytes", func(fl validator.FieldLevel) bool {
		limit, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return len(fl.Field().String()) <= limit
	})
	return &Validator{validate: v}
}

// Struct validates a struct and returns its violations in field order.
// An empty result means the value is valid.
func (v *Validator) Struct(value any) []FieldViolation {
	err := v.validate.Struct(value)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldViolation{{Message: err.Error()}}
	}
	violations := make([]FieldViolation, 0, len(verrs))
	for _, fe := range verrs {
		violations = append(violations, FieldViolation{
			Field:   fe.Field(),
			Message: message(fe.Field(), fe.Tag(), fe.Param()),
		})
	}
	return violations
}

// Fields validates the entries of values that have a rule. Fields without an
// entry in values are skipped, so this suits partial updates.
func (v *Validator) Fields(values map[string]string, rules []FieldRule) []FieldViolation {
	var violations []FieldViolation
	for _, r := range rules {
		value, ok := values[r.Field]
		if !ok {
			continue
		}
		err := v.validate.Var(value, r.Rule)
		if err == nil {
			continue
		}
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			violations = append(violations, FieldViolation{Field: r.Field, Message: err.Error()})
			continue
		}
		for _, fe := range verrs {
			violations = append(violations, FieldViolation{
				Field:   r.Field,
				Message: message(r.Field, fe.Tag(), fe.Param()),
			})
		}
	}
	return violations
}

// Join renders violations as a single comma separated message.
func Join(violations []FieldViolation) string {
	msgs := make([]string, len(violations))
	for i, fv := range violations {
		msgs[i] = fv.Message
	}
	return strings.Join(msgs, ", ")
}

func message(field, tag, param string) string {
	switch tag {
	case "required":
		return "Required " + field
	case "email":
		return "Invalid email format"
	case "oneof":
		return fmt.Sprintf("Invalid %s. Allowed values are %s", field, allowed(strings.Fields(param)))
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, param)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, param)
	case "maxbytes":
		return fmt.Sprintf("%s must be at most %s bytes", field, param)
	case "uuid":
		return fmt.Sprintf("%s must be a valid UUID", field)
	default:
		return fmt.Sprintf("Invalid %s", field)
	}
}

func allowed(values []string) string {
	switch len(values) {
	case 0:
		return ""
	case 1:
		return values[0]
	}
	return strings.Join(values[:len(values)-1], ", ") + " or " + values[len(values)-1]
}

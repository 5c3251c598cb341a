// Package validation evaluates declarative field rules against a decoded
// JSON request body.
package validation

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/jsamuelsen11/todo-partiql-service/internal/domain"
)

// msgNotString is reported for a field present with a non-string value.
const msgNotString = "must be a string"

// validate is safe for concurrent use and caches parsed tags.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Rule checks one body field with a validator tag (e.g. "min=3").
type Rule struct {
	Field   string
	Tag     string
	Message string
}

// Rules is an ordered rule list for one route.
type Rules []Rule

// Check evaluates every rule against body in order and returns a
// *domain.ValidationError naming each failing field, or nil. A missing
// field or a JSON null is checked as the empty string. A field that fails
// more than one rule keeps the first message.
func (rs Rules) Check(body map[string]any) error {
	fields := make(map[string]string)

	for _, rule := range rs {
		if _, failed := fields[rule.Field]; failed {
			continue
		}

		value, ok := stringField(body, rule.Field)
		if !ok {
			fields[rule.Field] = msgNotString
			continue
		}

		if err := validate.Var(value, rule.Tag); err != nil {
			fields[rule.Field] = rule.message()
		}
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

func (r Rule) message() string {
	if r.Message != "" {
		return r.Message
	}
	return fmt.Sprintf("failed %q", r.Tag)
}

// stringField reads body[field] as a string. It reports false when the
// value is present and not a string.
func stringField(body map[string]any, field string) (string, bool) {
	v, present := body[field]
	if !present || v == nil {
		return "", true
	}
	s, ok := v.(string)
	return s, ok
}

// MinLength returns a rule requiring field to hold at least n characters.
func MinLength(field string, n int) Rule {
	return Rule{
		Field:   field,
		Tag:     fmt.Sprintf("min=%d", n),
		Message: fmt.Sprintf("must be at least %d characters", n),
	}
}

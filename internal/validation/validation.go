// Package validation checks submitted forms before any side effect happens.
// Every form is trimmed first, then all fields are checked so that each
// invalid field gets exactly one message.
package validation

import (
	"reflect"
	"slices"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/royaldevs/backend/internal/model"
)

// Errors maps a form field name (its JSON name) to a human-readable message.
type Errors map[string]string

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f + ": " + e[f]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// messages maps field -> validator tag -> message. The "*" tag is the
// fallback for any tag without its own entry.
type messages map[string]map[string]string

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	v.RegisterValidation("projecttype", oneOf(model.ProjectTypes))
	v.RegisterValidation("budgetrange", oneOf(model.BudgetRanges))
	return v
}

// oneOf builds a rule accepting only the values in set.
func oneOf(set []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return slices.Contains(set, fl.Field().String())
	}
}

// check runs the struct rules on form and converts failures to Errors.
// It returns nil when the form is valid.
func check(form any, msgs messages) Errors {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		// Only reachable on a programming error (non-struct form).
		return Errors{"form": "Invalid form"}
	}
	out := make(Errors, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		if _, seen := out[field]; seen {
			continue
		}
		out[field] = messageFor(msgs, field, fe.Tag())
	}
	return out
}

func messageFor(msgs messages, field, tag string) string {
	if byTag, ok := msgs[field]; ok {
		if m, ok := byTag[tag]; ok {
			return m
		}
		if m, ok := byTag["*"]; ok {
			return m
		}
	}
	return "Invalid value"
}

// Package validation decides whether a submitted answer is well formed for its
// component and coerces it to the canonical stored value.
package validation

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/linskybing/formflow/pkg/schema"
)

const stepTolerance = 1e-9

// Error is a rejected answer.
type Error struct {
	ComponentID uint
	Component   string
	Reason      string
}

func (e *Error) Error() string {
	return e.Reason
}

// Outcome is an accepted answer. Omitted answers are not persisted.
type Outcome struct {
	Value   any
	Omitted bool
}

type rule func(f schema.Field, raw any) (any, string)

var rules = map[schema.Type]rule{
	schema.TypeText:     validateText,
	schema.TypeNumber:   validateNumber,
	schema.TypeCheckbox: validateChoice,
	schema.TypeRadio:    validateChoice,
	schema.TypeSelect:   validateChoice,
	schema.TypeDatetime: validateDatetime,
	schema.TypeFile:     validateFile,
	schema.TypeButton:   validateButton,
	schema.TypeLabel:    passThrough,
	schema.TypeImage:    passThrough,
	schema.TypeTable:    passThrough,
}

// Validate checks raw against f. It has no side effects.
func Validate(f schema.Field, raw any) (Outcome, error) {
	if IsMissing(raw) {
		if f.Required {
			return Outcome{}, reject(f, fmt.Sprintf("Component '%s' is required.", f.Label()))
		}
		return Outcome{Omitted: true}, nil
	}

	check, ok := rules[f.Kind]
	if !ok {
		return Outcome{}, reject(f, fmt.Sprintf("Unsupported component type: %s.", f.Kind))
	}
	value, reason := check(f, raw)
	if reason != "" {
		return Outcome{}, reject(f, reason)
	}
	return Outcome{Value: value}, nil
}

// IsMissing reports whether raw counts as no answer: nil or a blank string.
func IsMissing(raw any) bool {
	if raw == nil {
		return true
	}
	if s, ok := raw.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

func reject(f schema.Field, reason string) *Error {
	return &Error{ComponentID: f.ID, Component: f.Label(), Reason: reason}
}

func validateText(f schema.Field, raw any) (any, string) {
	s, ok := raw.(string)
	if !ok {
		return nil, "Text answers must be strings."
	}
	trimmed := strings.TrimSpace(s)
	n := float64(utf8.RuneCountInString(trimmed))

	r, _ := f.Rules.(schema.TextRules)
	if r.MinLength != nil && n < *r.MinLength {
		return nil, fmt.Sprintf("Text answer must be at least %s characters long.", schema.FormatNumber(*r.MinLength))
	}
	if r.MaxLength != nil && n > *r.MaxLength {
		return nil, fmt.Sprintf("Text answer must be at most %s characters long.", schema.FormatNumber(*r.MaxLength))
	}
	return trimmed, ""
}

func validateNumber(f schema.Field, raw any) (any, string) {
	v, ok := schema.ParseNumber(raw)
	if !ok {
		return nil, "Number answers must be numeric."
	}

	r, _ := f.Rules.(schema.NumberRules)
	if r.Min != nil && v < *r.Min {
		return nil, fmt.Sprintf("Number answer cannot be less than %s.", schema.FormatNumber(*r.Min))
	}
	if r.Max != nil && v > *r.Max {
		return nil, fmt.Sprintf("Number answer cannot be greater than %s.", schema.FormatNumber(*r.Max))
	}
	if r.Step != nil && !alignsWithStep(v, r.Min, *r.Step) {
		return nil, fmt.Sprintf("Number answer must align with step %s.", schema.FormatNumber(*r.Step))
	}
	return v, ""
}

// alignsWithStep accepts a remainder within tolerance of either 0 or step.
func alignsWithStep(v float64, lower *float64, step float64) bool {
	base := 0.0
	if lower != nil {
		base = *lower
	}
	remainder := math.Abs(math.Mod(v-base, step))
	return remainder <= stepTolerance || math.Abs(remainder-step) <= stepTolerance
}

func validateChoice(f schema.Field, raw any) (any, string) {
	r, _ := f.Rules.(schema.OptionRules)
	title := choiceTitle(f.Kind)

	// Checkbox checks the answer's shape before its options; select does not.
	if f.Kind == schema.TypeCheckbox {
		if _, ok := asList(raw); !ok {
			return nil, "Checkbox answers must be an array of selected values."
		}
	}
	if len(r.Options) == 0 {
		return nil, fmt.Sprintf("%s component is missing valid options for validation.", title)
	}

	if !r.Multiple {
		selection, ok := schema.Stringify(raw)
		if !ok || !slices.Contains(r.Options, selection) {
			return nil, fmt.Sprintf("%s answer must be one of: %s.", title, strings.Join(r.Options, ", "))
		}
		return selection, ""
	}

	items, ok := asList(raw)
	if !ok {
		if f.Kind == schema.TypeSelect {
			return nil, "Select (multiple) answers must be an array of values."
		}
		return nil, "Checkbox answers must be an array of selected values."
	}

	selections := make([]string, 0, len(items))
	var invalid []string
	for _, item := range items {
		s, ok := schema.Stringify(item)
		if !ok {
			s = fmt.Sprint(item)
		}
		if !ok || !slices.Contains(r.Options, s) {
			invalid = append(invalid, s)
			continue
		}
		selections = append(selections, s)
	}
	if len(invalid) > 0 {
		return nil, fmt.Sprintf("%s answer contains invalid option(s): %s.", title, strings.Join(invalid, ", "))
	}
	if r.MaxSelections != nil && float64(len(selections)) > *r.MaxSelections {
		return nil, fmt.Sprintf("%s answer cannot select more than %s options.", title, schema.FormatNumber(*r.MaxSelections))
	}
	return selections, ""
}

func validateDatetime(f schema.Field, raw any) (any, string) {
	s, ok := raw.(string)
	if !ok {
		return nil, "Datetime answers must be ISO date strings."
	}
	t, ok := schema.ParseDate(s)
	if !ok {
		return nil, "Datetime answer must be a valid ISO date string."
	}

	r, _ := f.Rules.(schema.DateRules)
	if r.Min != nil && t.Before(*r.Min) {
		return nil, fmt.Sprintf("Datetime answer cannot be earlier than %s.", r.MinRaw)
	}
	if r.Max != nil && t.After(*r.Max) {
		return nil, fmt.Sprintf("Datetime answer cannot be later than %s.", r.MaxRaw)
	}
	return s, ""
}

func validateFile(f schema.Field, raw any) (any, string) {
	s, ok := raw.(string)
	if !ok {
		return nil, "File answers must be strings (e.g., URLs or IDs)."
	}
	r, _ := f.Rules.(schema.FileRules)
	if r.MaxSizeMB != nil && float64(len(s))/(1024*1024) > *r.MaxSizeMB {
		return nil, fmt.Sprintf("File answer exceeds max size of %s MB.", schema.FormatNumber(*r.MaxSizeMB))
	}
	return s, ""
}

func validateButton(_ schema.Field, raw any) (any, string) {
	s, ok := raw.(string)
	if !ok {
		return nil, "Button answers (if provided) must be strings."
	}
	return s, ""
}

func passThrough(_ schema.Field, raw any) (any, string) {
	return raw, ""
}

func choiceTitle(kind schema.Type) string {
	switch kind {
	case schema.TypeCheckbox:
		return "Checkbox"
	case schema.TypeRadio:
		return "Radio"
	}
	return "Select"
}

func asList(raw any) ([]any, bool) {
	switch list := raw.(type) {
	case []any:
		return list, true
	case []string:
		out := make([]any, len(list))
		for i, s := range list {
			out[i] = s
		}
		return out, true
	}
	return nil, false
}

package validation

import (
	"errors"
	"fmt"

	"github.com/linskybing/formflow/pkg/schema"
)

var ErrUnknownComponent = errors.New("unknown component")

// ReferenceError is returned when an answer names a component the form does not have.
type ReferenceError struct {
	ComponentID uint
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("Answer references unknown component ID %d.", e.ComponentID)
}

func (e *ReferenceError) Unwrap() error {
	return ErrUnknownComponent
}

// Answer is one submitted entry.
type Answer struct {
	ComponentID uint `json:"componentId" yaml:"componentId"`
	Value       any  `json:"value" yaml:"value"`
}

// Accepted is a canonical answer ready to be stored.
type Accepted struct {
	Field schema.Field
	Value any
}

// Index maps answers by component id after checking every reference.
// When a component is answered more than once the first entry wins.
func Index(fields []schema.Field, answers []Answer) (map[uint]any, error) {
	known := make(map[uint]struct{}, len(fields))
	for _, f := range fields {
		if f.ID != 0 {
			known[f.ID] = struct{}{}
		}
	}

	out := make(map[uint]any, len(answers))
	for _, a := range answers {
		if _, ok := known[a.ComponentID]; !ok {
			return nil, &ReferenceError{ComponentID: a.ComponentID}
		}
		if _, seen := out[a.ComponentID]; seen {
			continue
		}
		out[a.ComponentID] = a.Value
	}
	return out, nil
}

// ValidateAll validates every field in order, including fields with no
// answer, and stops at the first rejection. Omitted answers are dropped.
func ValidateAll(fields []schema.Field, answers map[uint]any) ([]Accepted, error) {
	accepted := make([]Accepted, 0, len(fields))
	for _, f := range fields {
		if f.ID == 0 {
			continue
		}
		outcome, err := Validate(f, answers[f.ID])
		if err != nil {
			return nil, err
		}
		if outcome.Omitted {
			continue
		}
		accepted = append(accepted, Accepted{Field: f, Value: outcome.Value})
	}
	return accepted, nil
}

// Check runs Index then ValidateAll.
func Check(fields []schema.Field, answers []Answer) ([]Accepted, error) {
	indexed, err := Index(fields, answers)
	if err != nil {
		return nil, err
	}
	return ValidateAll(fields, indexed)
}

package schema

import (
	"strings"
	"time"
)

// Rules is the typed constraint set of one component kind.
type Rules interface {
	kind() Type
}

type TextRules struct {
	MinLength *float64
	MaxLength *float64
}

type NumberRules struct {
	Min  *float64
	Max  *float64
	Step *float64
}

// OptionRules covers checkbox, radio and select components.
type OptionRules struct {
	Kind          Type
	Options       []string
	Multiple      bool
	MaxSelections *float64
}

// DateRules keeps both the parsed bound and its source text for messages.
// Bounds that fail to parse are left nil.
type DateRules struct {
	Min    *time.Time
	Max    *time.Time
	MinRaw string
	MaxRaw string
}

type FileRules struct {
	MaxSizeMB *float64
	Accept    []string
}

// NoRules is used by button, structural and unsupported kinds.
type NoRules struct {
	Kind Type
}

func (TextRules) kind() Type     { return TypeText }
func (NumberRules) kind() Type   { return TypeNumber }
func (r OptionRules) kind() Type { return r.Kind }
func (DateRules) kind() Type     { return TypeDatetime }
func (FileRules) kind() Type     { return TypeFile }
func (r NoRules) kind() Type     { return r.Kind }

// Field is a descriptor compiled for validation.
type Field struct {
	Descriptor
	Kind     Type
	Required bool
	Rules    Rules
}

// Compile resolves the effective kind of d and parses its property bag once.
func Compile(d Descriptor) Field {
	kind := EffectiveKind(d)
	return Field{
		Descriptor: d,
		Kind:       kind,
		Required:   IsTrue(d.Properties["required"]),
		Rules:      parseRules(kind, d.Properties),
	}
}

// CompileAll compiles descriptors, keeping their order.
func CompileAll(ds []Descriptor) []Field {
	out := make([]Field, 0, len(ds))
	for _, d := range ds {
		out = append(out, Compile(d))
	}
	return out
}

func parseRules(kind Type, props map[string]any) Rules {
	switch kind {
	case TypeText:
		return TextRules{
			MinLength: numberProp(props, "minLength"),
			MaxLength: numberProp(props, "maxLength"),
		}
	case TypeNumber:
		r := NumberRules{
			Min: numberProp(props, "min"),
			Max: numberProp(props, "max"),
		}
		if step := numberProp(props, "step"); step != nil && *step > 0 {
			r.Step = step
		}
		return r
	case TypeCheckbox, TypeRadio, TypeSelect:
		return OptionRules{
			Kind:          kind,
			Options:       OptionValues(props["options"]),
			Multiple:      kind == TypeCheckbox || (kind == TypeSelect && IsTrue(props["multiple"])),
			MaxSelections: numberProp(props, "maxSelections"),
		}
	case TypeDatetime:
		r := DateRules{}
		if s, ok := props["min"].(string); ok {
			r.MinRaw = s
			if t, ok := ParseDate(s); ok {
				r.Min = &t
			}
		}
		if s, ok := props["max"].(string); ok {
			r.MaxRaw = s
			if t, ok := ParseDate(s); ok {
				r.Max = &t
			}
		}
		return r
	case TypeFile:
		r := FileRules{Accept: stringList(props["accept"])}
		if size := numberProp(props, "maxSizeMb"); size != nil && *size > 0 {
			r.MaxSizeMB = size
		}
		return r
	}
	return NoRules{Kind: kind}
}

// OptionValues extracts option values from plain strings or {label, value} objects.
func OptionValues(v any) []string {
	items, ok := v.([]any)
	if !ok {
		if ss, ok := v.([]string); ok {
			return append([]string(nil), ss...)
		}
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		switch o := item.(type) {
		case string:
			out = append(out, o)
		case map[string]any:
			if s, ok := o["value"].(string); ok {
				out = append(out, s)
			}
		}
	}
	return out
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDate parses an ISO-8601 date or date-time. Values without a zone are read as UTC.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func numberProp(props map[string]any, key string) *float64 {
	f, ok := AsFloat(props[key])
	if !ok {
		return nil
	}
	return &f
}

func stringList(v any) []string {
	switch list := v.(type) {
	case []string:
		return append([]string(nil), list...)
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

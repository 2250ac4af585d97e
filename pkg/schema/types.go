package schema

import "strings"

// Type is a canonical component type.
type Type string

const (
	TypeText     Type = "text"
	TypeNumber   Type = "number"
	TypeSelect   Type = "select"
	TypeCheckbox Type = "checkbox"
	TypeRadio    Type = "radio"
	TypeDatetime Type = "datetime"
	TypeFile     Type = "file"
	TypeButton   Type = "button"

	// Structural types produced by schema generators.
	TypeInput Type = "input"
	TypeLabel Type = "label"
	TypeImage Type = "image"
	TypeTable Type = "table"
)

var canonicalTypes = map[Type]struct{}{
	TypeText: {}, TypeNumber: {}, TypeSelect: {}, TypeCheckbox: {},
	TypeRadio: {}, TypeDatetime: {}, TypeFile: {}, TypeButton: {},
	TypeInput: {}, TypeLabel: {}, TypeImage: {}, TypeTable: {},
}

var answerableTypes = map[Type]struct{}{
	TypeText: {}, TypeNumber: {}, TypeSelect: {}, TypeCheckbox: {},
	TypeRadio: {}, TypeDatetime: {}, TypeFile: {}, TypeButton: {},
}

// kindAliases maps HTML-ish input kinds onto the canonical answerable types.
var kindAliases = map[string]Type{
	"date":           TypeDatetime,
	"datetime-local": TypeDatetime,
	"time":           TypeDatetime,
	"textarea":       TypeText,
	"email":          TypeText,
	"tel":            TypeText,
	"url":            TypeText,
	"password":       TypeText,
	"search":         TypeText,
	"range":          TypeNumber,
	"submit":         TypeButton,
	"reset":          TypeButton,
}

// ParseType reports whether s names a canonical type.
func ParseType(s string) (Type, bool) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	_, ok := canonicalTypes[t]
	return t, ok
}

// Answerable reports whether components of type t collect a respondent value.
func (t Type) Answerable() bool {
	_, ok := answerableTypes[t]
	return ok
}

// Structural reports whether t is a layout type whose value passes through untouched.
func (t Type) Structural() bool {
	return t == TypeLabel || t == TypeImage || t == TypeTable
}

func resolveAlias(kind string) Type {
	k := strings.ToLower(strings.TrimSpace(kind))
	if t, ok := kindAliases[k]; ok {
		return t
	}
	return Type(k)
}

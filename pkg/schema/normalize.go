// Package schema turns loosely shaped component records into canonical
// descriptors and parses their property bags into typed rules.
package schema

import (
	"sort"
)

// Descriptor is the canonical view of a form component.
type Descriptor struct {
	ID         uint           `json:"id"`
	FormID     uint           `json:"formId"`
	Type       Type           `json:"type"`
	Name       string         `json:"name"`
	Order      float64        `json:"order"`
	Properties map[string]any `json:"properties"`
}

// Label is the name shown in validation messages: the name, or the id when unnamed.
func (d Descriptor) Label() string {
	if d.Name != "" {
		return d.Name
	}
	return FormatNumber(float64(d.ID))
}

// Normalize canonicalizes one raw component record. index is the record's
// zero-based position in its source list and is the fallback order.
//
// Accepted shapes:
//   - id: number or numeric string, otherwise 0
//   - form_id, then formId
//   - type: canonical types are kept, anything else becomes "input" and the
//     original string is preserved under properties.inputType
//   - order, then properties.order, then properties.orderBy
//   - settings merged under properties; properties win on collisions
func Normalize(raw map[string]any, index int) Descriptor {
	props := mergeProperties(raw["settings"], raw["properties"])

	d := Descriptor{
		ID:         toID(raw["id"]),
		Type:       TypeInput,
		Properties: props,
	}

	if v, ok := raw["form_id"]; ok && v != nil {
		d.FormID = toID(v)
	} else {
		d.FormID = toID(raw["formId"])
	}

	if name, ok := raw["name"].(string); ok {
		d.Name = name
	}

	if s, ok := raw["type"].(string); ok {
		if t, known := ParseType(s); known {
			d.Type = t
		} else if _, set := props["inputType"]; !set && s != "" {
			props["inputType"] = s
		}
	}

	d.Order = float64(index)
	for _, candidate := range []any{raw["order"], props["order"], props["orderBy"]} {
		if f, ok := ParseNumber(candidate); ok {
			d.Order = f
			break
		}
	}
	return d
}

// NormalizeAll normalizes every record and returns them in canonical order.
func NormalizeAll(raws []map[string]any) []Descriptor {
	out := make([]Descriptor, 0, len(raws))
	for i, raw := range raws {
		out = append(out, Normalize(raw, i))
	}
	Sort(out)
	return out
}

// Sort orders descriptors by ascending order, then ascending id.
func Sort(ds []Descriptor) {
	sort.SliceStable(ds, func(i, j int) bool {
		if ds[i].Order != ds[j].Order {
			return ds[i].Order < ds[j].Order
		}
		return ds[i].ID < ds[j].ID
	})
}

// EffectiveKind resolves the kind used for answer validation. The first
// non-empty string of the following wins:
//
//	properties.inputType
//	properties.input.type
//	properties.fieldType
//	descriptor type (skipped when it is the generic "input")
//	properties.kind
//	properties.variant
//
// Aliases such as "email" or "date" resolve to their canonical type. When
// nothing resolves the kind is "input".
func EffectiveKind(d Descriptor) Type {
	var nested any
	if input, ok := d.Properties["input"].(map[string]any); ok {
		nested = input["type"]
	}
	var declared any
	if d.Type != TypeInput {
		declared = string(d.Type)
	}

	for _, candidate := range []any{
		d.Properties["inputType"],
		nested,
		d.Properties["fieldType"],
		declared,
		d.Properties["kind"],
		d.Properties["variant"],
	} {
		if s, ok := nonEmptyString(candidate); ok {
			return resolveAlias(s)
		}
	}
	return TypeInput
}

func mergeProperties(settings, properties any) map[string]any {
	out := map[string]any{}
	if m, ok := settings.(map[string]any); ok {
		for k, v := range m {
			out[k] = v
		}
	}
	if m, ok := properties.(map[string]any); ok {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}

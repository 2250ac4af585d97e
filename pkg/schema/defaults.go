package schema

import "strconv"

// DefaultValue is the value a component is reset to: its defaultValue when
// present, an empty list for multi-value components, otherwise nil.
// Defaults are trusted configuration and are not validated.
func DefaultValue(d Descriptor) any {
	if v, ok := d.Properties["defaultValue"]; ok {
		return v
	}
	if v, ok := d.Properties["multiple"].(bool); ok && v {
		return []any{}
	}
	return nil
}

// DefaultValues maps component id to its default. Components without an id are skipped.
func DefaultValues(ds []Descriptor) map[string]any {
	out := make(map[string]any, len(ds))
	for _, d := range ds {
		if d.ID == 0 {
			continue
		}
		out[strconv.FormatUint(uint64(d.ID), 10)] = DefaultValue(d)
	}
	return out
}

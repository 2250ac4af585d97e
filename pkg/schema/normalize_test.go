package schema

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

// --------------------- Normalize ---------------------
func TestNormalize_CanonicalRecord(t *testing.T) {
	raw := map[string]any{
		"id":         float64(7),
		"form_id":    float64(3),
		"type":       "number",
		"name":       "Age",
		"properties": map[string]any{"min": float64(18), "order": float64(2)},
	}

	got := Normalize(raw, 0)
	want := Descriptor{
		ID:         7,
		FormID:     3,
		Type:       TypeNumber,
		Name:       "Age",
		Order:      2,
		Properties: map[string]any{"min": float64(18), "order": float64(2)},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("descriptor mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalize_AlternateFieldNames(t *testing.T) {
	got := Normalize(map[string]any{"id": "12", "formId": "4", "type": "text"}, 5)

	assert.Equal(t, uint(12), got.ID)
	assert.Equal(t, uint(4), got.FormID)
	assert.Equal(t, float64(5), got.Order)
	assert.NotNil(t, got.Properties)
	assert.Empty(t, got.Properties)
}

func TestNormalize_UnknownTypeIsCoarsened(t *testing.T) {
	got := Normalize(map[string]any{"id": 1, "type": "email"}, 0)

	assert.Equal(t, TypeInput, got.Type)
	assert.Equal(t, "email", got.Properties["inputType"])
	assert.Equal(t, TypeText, EffectiveKind(got))
}

func TestNormalize_UnknownTypeKeepsExplicitInputType(t *testing.T) {
	raw := map[string]any{
		"type":       "widget",
		"properties": map[string]any{"inputType": "number"},
	}
	got := Normalize(raw, 0)

	assert.Equal(t, TypeInput, got.Type)
	assert.Equal(t, "number", got.Properties["inputType"])
}

func TestNormalize_MissingTypeIsInput(t *testing.T) {
	got := Normalize(map[string]any{"id": 1}, 0)

	assert.Equal(t, TypeInput, got.Type)
	_, set := got.Properties["inputType"]
	assert.False(t, set)
	assert.Equal(t, TypeInput, EffectiveKind(got))
}

func TestNormalize_SettingsMergedUnderProperties(t *testing.T) {
	raw := map[string]any{
		"type":       "text",
		"settings":   map[string]any{"minLength": float64(1), "placeholder": "old"},
		"properties": map[string]any{"placeholder": "new"},
	}
	got := Normalize(raw, 0)

	want := map[string]any{"minLength": float64(1), "placeholder": "new"}
	if diff := cmp.Diff(want, got.Properties); diff != "" {
		t.Fatalf("properties mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalize_DoesNotMutateInput(t *testing.T) {
	props := map[string]any{"label": "x"}
	Normalize(map[string]any{"type": "color", "properties": props}, 0)

	_, set := props["inputType"]
	assert.False(t, set)
}

func TestNormalize_OrderResolution(t *testing.T) {
	cases := []struct {
		name string
		raw  map[string]any
		want float64
	}{
		{"top level", map[string]any{"order": float64(4)}, 4},
		{"numeric string", map[string]any{"order": "9"}, 9},
		{"properties order", map[string]any{"properties": map[string]any{"order": float64(3)}}, 3},
		{"properties orderBy", map[string]any{"properties": map[string]any{"orderBy": "6"}}, 6},
		{"top level wins", map[string]any{"order": float64(1), "properties": map[string]any{"order": float64(8)}}, 1},
		{"non numeric falls back", map[string]any{"order": "first"}, 2},
		{"absent falls back", map[string]any{}, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Normalize(tc.raw, 2).Order)
		})
	}
}

// --------------------- Sort ---------------------
func TestNormalizeAll_SortsByOrderThenID(t *testing.T) {
	raws := []map[string]any{
		{"id": 5, "type": "text", "order": 1},
		{"id": 2, "type": "text", "order": 1},
		{"id": 9, "type": "text", "order": 0},
		{"id": 1, "type": "text"},
	}

	got := NormalizeAll(raws)

	ids := make([]uint, len(got))
	for i, d := range got {
		ids[i] = d.ID
	}
	// id 1 falls back to its position (3).
	assert.Equal(t, []uint{9, 2, 5, 1}, ids)
}

// --------------------- EffectiveKind ---------------------
func TestEffectiveKind_FallbackOrder(t *testing.T) {
	cases := []struct {
		name string
		d    Descriptor
		want Type
	}{
		{"inputType wins", Descriptor{Type: TypeText, Properties: map[string]any{"inputType": "number", "fieldType": "radio"}}, TypeNumber},
		{"nested input type", Descriptor{Type: TypeInput, Properties: map[string]any{"input": map[string]any{"type": "checkbox"}}}, TypeCheckbox},
		{"fieldType before declared", Descriptor{Type: TypeText, Properties: map[string]any{"fieldType": "select"}}, TypeSelect},
		{"declared type", Descriptor{Type: TypeRadio, Properties: map[string]any{"kind": "text"}}, TypeRadio},
		{"generic input skipped", Descriptor{Type: TypeInput, Properties: map[string]any{"kind": "file"}}, TypeFile},
		{"variant last", Descriptor{Type: TypeInput, Properties: map[string]any{"variant": "datetime"}}, TypeDatetime},
		{"blank strings ignored", Descriptor{Type: TypeInput, Properties: map[string]any{"inputType": "  ", "variant": "button"}}, TypeButton},
		{"nothing resolves", Descriptor{Type: TypeInput, Properties: map[string]any{}}, TypeInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, EffectiveKind(tc.d))
		})
	}
}

func TestEffectiveKind_Aliases(t *testing.T) {
	aliases := map[string]Type{
		"date": TypeDatetime, "datetime-local": TypeDatetime, "time": TypeDatetime,
		"textarea": TypeText, "email": TypeText, "tel": TypeText, "url": TypeText,
		"password": TypeText, "search": TypeText,
		"range":  TypeNumber,
		"submit": TypeButton, "reset": TypeButton,
	}
	for alias, want := range aliases {
		d := Descriptor{Type: TypeInput, Properties: map[string]any{"inputType": alias}}
		assert.Equal(t, want, EffectiveKind(d), alias)
	}
}

package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile_TextRules(t *testing.T) {
	f := Compile(Descriptor{ID: 1, Type: TypeText, Properties: map[string]any{
		"required": true, "minLength": float64(2), "maxLength": 50,
	}})

	assert.Equal(t, TypeText, f.Kind)
	assert.True(t, f.Required)
	r, ok := f.Rules.(TextRules)
	require.True(t, ok)
	assert.Equal(t, 2.0, *r.MinLength)
	assert.Equal(t, 50.0, *r.MaxLength)
}

func TestCompile_NumberRulesIgnoresNonPositiveStep(t *testing.T) {
	f := Compile(Descriptor{Type: TypeNumber, Properties: map[string]any{"min": 1, "step": 0}})

	r, ok := f.Rules.(NumberRules)
	require.True(t, ok)
	assert.Equal(t, 1.0, *r.Min)
	assert.Nil(t, r.Max)
	assert.Nil(t, r.Step)
}

func TestCompile_OptionRules(t *testing.T) {
	options := []any{"a", map[string]any{"label": "Bee", "value": "b"}, 42, map[string]any{"label": "x"}}

	checkbox := Compile(Descriptor{Type: TypeCheckbox, Properties: map[string]any{"options": options}})
	r := checkbox.Rules.(OptionRules)
	assert.Equal(t, []string{"a", "b"}, r.Options)
	assert.True(t, r.Multiple)

	single := Compile(Descriptor{Type: TypeSelect, Properties: map[string]any{"options": options}})
	assert.False(t, single.Rules.(OptionRules).Multiple)

	multi := Compile(Descriptor{Type: TypeSelect, Properties: map[string]any{"options": options, "multiple": true}})
	assert.True(t, multi.Rules.(OptionRules).Multiple)

	radio := Compile(Descriptor{Type: TypeRadio, Properties: map[string]any{"options": options, "multiple": true}})
	assert.False(t, radio.Rules.(OptionRules).Multiple)
}

func TestCompile_DateRulesSkipUnparsableBounds(t *testing.T) {
	f := Compile(Descriptor{Type: TypeDatetime, Properties: map[string]any{"min": "2024-01-01", "max": "soon"}})

	r := f.Rules.(DateRules)
	require.NotNil(t, r.Min)
	assert.Equal(t, 2024, r.Min.Year())
	assert.Nil(t, r.Max)
	assert.Equal(t, "soon", r.MaxRaw)
}

func TestCompile_RequiredAcceptsStringTrue(t *testing.T) {
	assert.True(t, Compile(Descriptor{Type: TypeText, Properties: map[string]any{"required": "true"}}).Required)
	assert.False(t, Compile(Descriptor{Type: TypeText, Properties: map[string]any{"required": "false"}}).Required)
	assert.False(t, Compile(Descriptor{Type: TypeText, Properties: map[string]any{}}).Required)
}

func TestParseDate(t *testing.T) {
	for _, s := range []string{"2024-05-01", "2024-05-01T10:30", "2024-05-01T10:30:15", "2024-05-01T10:30:15Z", "2024-05-01T10:30:15.123+02:00"} {
		_, ok := ParseDate(s)
		assert.True(t, ok, s)
	}
	for _, s := range []string{"", "yesterday", "2024-13-01", "05/01/2024"} {
		_, ok := ParseDate(s)
		assert.False(t, ok, s)
	}
}

package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitYAMLDocuments(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name: "single document",
			input: `
title: Signup
components: []
`,
			expected: []string{"title: Signup\ncomponents: []"},
		},
		{
			name: "multiple answer sets",
			input: `
---
answers:
  - componentId: 1
    value: Alice
---
answers:
  - componentId: 1
    value: ""
`,
			expected: []string{
				"answers:\n  - componentId: 1\n    value: Alice",
				"answers:\n  - componentId: 1\n    value: \"\"",
			},
		},
		{
			name:     "trailing separator",
			input:    "a: 1\n---\n",
			expected: []string{"a: 1"},
		},
		{
			name:     "separator with comment",
			input:    "a: 1\n--- # next\nb: 2",
			expected: []string{"a: 1", "b: 2"},
		},
		{
			name:     "dashes inside a value are kept",
			input:    "note: \"a---b\"",
			expected: []string{"note: \"a---b\""},
		},
		{
			name:     "empty",
			input:    "\n---\n\n",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitYAMLDocuments(tt.input))
		})
	}
}

func TestYAMLToJSON(t *testing.T) {
	out, err := YAMLToJSON("title: Signup\nrequired: true\nmax: 99\n1: first\n")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, map[string]any{
		"title":    "Signup",
		"required": true,
		"max":      float64(99),
		"1":        "first",
	}, got)
}

func TestYAMLToJSON_Invalid(t *testing.T) {
	_, err := YAMLToJSON("a: [1, 2")
	assert.Error(t, err)
}

func TestDecodeDocument(t *testing.T) {
	type answer struct {
		ComponentID uint `json:"componentId"`
		Value       any  `json:"value"`
	}
	var doc struct {
		Answers []answer `json:"answers"`
	}

	err := DecodeDocument(`
answers:
  - componentId: 4
    value: [Events, Offers]
  - componentId: 2
    value: 28
`, &doc)
	require.NoError(t, err)
	require.Len(t, doc.Answers, 2)
	assert.Equal(t, uint(4), doc.Answers[0].ComponentID)
	assert.Equal(t, []any{"Events", "Offers"}, doc.Answers[0].Value)
	assert.Equal(t, float64(28), doc.Answers[1].Value)
}

func TestDecodeDocument_AcceptsJSON(t *testing.T) {
	var doc map[string]any
	require.NoError(t, DecodeDocument(`{"title": "Signup", "components": [{"type": "text"}]}`, &doc))
	assert.Equal(t, "Signup", doc["title"])
}

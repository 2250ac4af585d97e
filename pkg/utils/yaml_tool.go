package utils

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// SplitYAMLDocuments splits a multi-document YAML stream on lines that are
// exactly "---" (optionally followed by a comment).
var SplitYAMLDocuments = func(content string) []string {
	lines := strings.Split(content, "\n")
	docs := make([]string, 0)
	var currentDoc []string

	flush := func() {
		if len(currentDoc) == 0 {
			return
		}
		if docStr := strings.TrimSpace(strings.Join(currentDoc, "\n")); docStr != "" {
			docs = append(docs, docStr)
		}
		currentDoc = nil
	}

	for _, line := range lines {
		trimmedLine := strings.TrimSpace(line)
		if trimmedLine == "---" || strings.HasPrefix(trimmedLine, "--- ") {
			flush()
			continue
		}
		currentDoc = append(currentDoc, line)
	}
	flush()

	return docs
}

// YAMLToJSON converts a YAML document to indented JSON. JSON input is valid
// YAML, so it passes through unchanged in meaning.
var YAMLToJSON = func(yamlContent string) (string, error) {
	var yamlObj any
	if err := yaml.Unmarshal([]byte(yamlContent), &yamlObj); err != nil {
		return "", err
	}

	jsonBytes, err := json.MarshalIndent(convertToStringKeys(yamlObj), "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonBytes), nil
}

// DecodeDocument reads a YAML or JSON document into out using out's json
// tags.
func DecodeDocument(content string, out any) error {
	jsonStr, err := YAMLToJSON(content)
	if err != nil {
		return fmt.Errorf("parse document: %w", err)
	}
	if err := json.Unmarshal([]byte(jsonStr), out); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	return nil
}

// convertToStringKeys rewrites non-string map keys, such as numeric
// component ids, so the value can be marshalled as JSON.
func convertToStringKeys(v any) any {
	switch x := v.(type) {
	case map[string]any:
		for k, v2 := range x {
			x[k] = convertToStringKeys(v2)
		}
		return x
	case map[any]any:
		m2 := make(map[string]any, len(x))
		for k, v2 := range x {
			m2[fmt.Sprint(k)] = convertToStringKeys(v2)
		}
		return m2
	case []any:
		for i, v2 := range x {
			x[i] = convertToStringKeys(v2)
		}
	}
	return v
}

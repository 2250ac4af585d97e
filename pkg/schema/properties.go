package schema

import (
	"errors"
	"fmt"
)

// ValidateProperties checks a component property bag when the component is
// authored. It enforces shapes only; answers are checked by the validation package.
func ValidateProperties(t Type, props map[string]any) error {
	if err := validateCommon(props); err != nil {
		return err
	}

	switch t {
	case TypeButton:
		_, hasLabel := props["label"].(string)
		_, hasText := props["text"].(string)
		if !hasLabel && !hasText {
			return errors.New("Button components require a 'label' or 'text' string.")
		}
		if v, ok := props["action"]; ok {
			if _, isString := v.(string); !isString {
				return errors.New("Button property 'action' must be a string when provided.")
			}
		}
	case TypeCheckbox:
		if err := validateOptions(props["options"], 1, t); err != nil {
			return err
		}
		if v, ok := props["maxSelections"]; ok {
			if _, isNumber := AsFloat(v); !isNumber {
				return errors.New("Checkbox property 'maxSelections' must be a number.")
			}
		}
	case TypeRadio:
		return validateOptions(props["options"], 2, t)
	case TypeSelect:
		if err := validateOptions(props["options"], 1, t); err != nil {
			return err
		}
		if v, ok := props["multiple"]; ok {
			if _, isBool := v.(bool); !isBool {
				return errors.New("Select property 'multiple' must be a boolean.")
			}
		}
	case TypeText:
		if v, ok := props["defaultValue"]; ok {
			if _, isString := v.(string); !isString {
				return errors.New("Text property 'defaultValue' must be a string.")
			}
		}
		for _, key := range []string{"minLength", "maxLength"} {
			if v, ok := props[key]; ok {
				if _, isNumber := AsFloat(v); !isNumber {
					return fmt.Errorf("Text property '%s' must be a number.", key)
				}
			}
		}
		minLen, maxLen := numberProp(props, "minLength"), numberProp(props, "maxLength")
		if minLen != nil && maxLen != nil && *minLen > *maxLen {
			return errors.New("Text property 'minLength' cannot be greater than 'maxLength'.")
		}
	case TypeNumber:
		for _, key := range []string{"defaultValue", "min", "max", "step"} {
			if v, ok := props[key]; ok {
				if _, isNumber := AsFloat(v); !isNumber {
					return fmt.Errorf("Number property '%s' must be a number.", key)
				}
			}
		}
		lo, hi := numberProp(props, "min"), numberProp(props, "max")
		if lo != nil && hi != nil && *lo > *hi {
			return errors.New("Number property 'min' cannot be greater than 'max'.")
		}
		if step := numberProp(props, "step"); step != nil && *step <= 0 {
			return errors.New("Number property 'step' must be greater than 0.")
		}
	case TypeDatetime:
		for _, key := range []string{"defaultValue", "min", "max"} {
			v, ok := props[key]
			if !ok {
				continue
			}
			s, isString := v.(string)
			if !isString {
				return fmt.Errorf("Datetime property '%s' must be an ISO date string.", key)
			}
			if _, valid := ParseDate(s); !valid {
				return fmt.Errorf("Datetime property '%s' must be a valid ISO date string.", key)
			}
		}
		lo, loOK := props["min"].(string)
		hi, hiOK := props["max"].(string)
		if loOK && hiOK {
			from, _ := ParseDate(lo)
			to, _ := ParseDate(hi)
			if from.After(to) {
				return errors.New("Datetime property 'min' cannot be later than 'max'.")
			}
		}
	case TypeFile:
		if v, ok := props["accept"]; ok {
			if !isStringList(v) {
				return errors.New("File property 'accept' must be an array of MIME type strings.")
			}
		}
		if v, ok := props["maxSizeMb"]; ok {
			if size, isNumber := AsFloat(v); !isNumber || size <= 0 {
				return errors.New("File property 'maxSizeMb' must be a positive number.")
			}
		}
	}
	return nil
}

func validateCommon(props map[string]any) error {
	checks := []struct {
		key  string
		ok   func(any) bool
		want string
	}{
		{"label", isString, "a string"},
		{"placeholder", isString, "a string"},
		{"required", isBool, "a boolean"},
		{"order", isNumber, "a number"},
	}
	for _, c := range checks {
		if v, present := props[c.key]; present && !c.ok(v) {
			return fmt.Errorf("Property '%s' must be %s.", c.key, c.want)
		}
	}
	return nil
}

func validateOptions(options any, minCount int, t Type) error {
	var items []any
	switch list := options.(type) {
	case []any:
		items = list
	case []string:
		for _, s := range list {
			items = append(items, s)
		}
	default:
		items = nil
	}
	if options == nil || items == nil || len(items) < minCount {
		return fmt.Errorf("%s components require an 'options' array with at least %d entries.", t, minCount)
	}
	for _, item := range items {
		switch o := item.(type) {
		case string:
			continue
		case map[string]any:
			_, labelOK := o["label"].(string)
			_, valueOK := o["value"].(string)
			if labelOK && valueOK {
				continue
			}
		}
		return fmt.Errorf("%s component options must be strings or objects with 'label' and 'value' strings.", t)
	}
	return nil
}

func isString(v any) bool { _, ok := v.(string); return ok }
func isBool(v any) bool   { _, ok := v.(bool); return ok }
func isNumber(v any) bool { _, ok := AsFloat(v); return ok }

func isStringList(v any) bool {
	switch list := v.(type) {
	case []string:
		return true
	case []any:
		for _, item := range list {
			if !isString(item) {
				return false
			}
		}
		return true
	}
	return false
}

package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FieldType is the widget/value kind of an intake field. Validation is a
// total mapping over the variants so that an unknown type stored in the
// catalog is an error, not a silently accepted value.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldTextarea FieldType = "textarea"
	FieldNumber   FieldType = "number"
	FieldDate     FieldType = "date"
	FieldSelect   FieldType = "select"
	FieldBoolean  FieldType = "boolean"
)

// ValidateValue checks a submitted raw value against the field type.
// Values arrive serialized as strings; an empty string means "not filled in"
// and is accepted here (required-ness is enforced separately).
func (t FieldType) ValidateValue(raw string) error {
	if raw == "" {
		return nil
	}
	switch t {
	case FieldText, FieldTextarea, FieldSelect:
		return nil
	case FieldNumber:
		if _, err := strconv.ParseFloat(raw, 64); err != nil {
			return fmt.Errorf("not a number: %q", raw)
		}
		return nil
	case FieldDate:
		if _, err := time.Parse("2006-01-02", raw); err != nil {
			return fmt.Errorf("not a date (YYYY-MM-DD): %q", raw)
		}
		return nil
	case FieldBoolean:
		switch strings.ToLower(raw) {
		case "true", "false":
			return nil
		}
		return fmt.Errorf("not a boolean: %q", raw)
	default:
		return fmt.Errorf("unknown field type %q", string(t))
	}
}

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldTypeValidateValue(t *testing.T) {
	t.Run("empty is always accepted", func(t *testing.T) {
		for _, ft := range []FieldType{FieldText, FieldTextarea, FieldNumber, FieldDate, FieldSelect, FieldBoolean} {
			assert.NoError(t, ft.ValidateValue(""))
		}
	})

	t.Run("free text", func(t *testing.T) {
		assert.NoError(t, FieldText.ValidateValue("anything at all"))
		assert.NoError(t, FieldTextarea.ValidateValue("multi\nline"))
		assert.NoError(t, FieldSelect.ValidateValue("option-a"))
	})

	t.Run("number", func(t *testing.T) {
		assert.NoError(t, FieldNumber.ValidateValue("42"))
		assert.NoError(t, FieldNumber.ValidateValue("-3.14"))
		assert.Error(t, FieldNumber.ValidateValue("forty two"))
	})

	t.Run("date", func(t *testing.T) {
		assert.NoError(t, FieldDate.ValidateValue("2026-01-31"))
		assert.Error(t, FieldDate.ValidateValue("31-01-2026"))
		assert.Error(t, FieldDate.ValidateValue("2026-13-01"))
	})

	t.Run("boolean", func(t *testing.T) {
		assert.NoError(t, FieldBoolean.ValidateValue("true"))
		assert.NoError(t, FieldBoolean.ValidateValue("False"))
		assert.Error(t, FieldBoolean.ValidateValue("yes"))
	})

	t.Run("unknown type", func(t *testing.T) {
		assert.Error(t, FieldType("slider").ValidateValue("5"))
	})
}

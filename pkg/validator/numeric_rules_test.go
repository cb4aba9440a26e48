package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumeric(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value string
		want  bool
	}{
		{"0", true},
		{"0123456789", true},
		{"", false},
		{" 12", false},
		{"12 ", false},
		{"-1", false},
		{"1.5", false},
		{"1e3", false},
		{"١٢٣", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, eval(t, "numeric", tt.value), "value %q", tt.value)
	}
}

func TestMinValue(t *testing.T) {
	t.Parallel()

	t.Run("passes at and above the bound", func(t *testing.T) {
		assert.True(t, eval(t, "minValue", "18", "18"))
		assert.True(t, eval(t, "minValue", "18.5", "18"))
		assert.True(t, eval(t, "minValue", "0", "-1"))
	})

	t.Run("fails below the bound", func(t *testing.T) {
		assert.False(t, eval(t, "minValue", "17.99", "18"))
		assert.False(t, eval(t, "minValue", "-5", "0"))
	})

	t.Run("accepts surrounding whitespace", func(t *testing.T) {
		assert.True(t, eval(t, "minValue", " 20 ", "18"))
	})

	t.Run("fails closed on non-numeric value", func(t *testing.T) {
		assert.False(t, eval(t, "minValue", "", "0"))
		assert.False(t, eval(t, "minValue", "abc", "0"))
		assert.False(t, eval(t, "minValue", "NaN", "0"))
	})

	t.Run("rejects notations a form number cannot use", func(t *testing.T) {
		assert.False(t, eval(t, "minValue", "0x10p0", "10"))
		assert.False(t, eval(t, "minValue", "inf", "0"))
		assert.False(t, eval(t, "minValue", "Infinity", "0"))
		assert.False(t, eval(t, "minValue", "1_000", "0"))
		assert.False(t, eval(t, "minValue", "5", "0x1"))
	})

	t.Run("accepts plain decimal forms", func(t *testing.T) {
		assert.True(t, eval(t, "minValue", ".5", "0"))
		assert.True(t, eval(t, "minValue", "+3", "3"))
		assert.True(t, eval(t, "minValue", "7.", "7"))
	})

	t.Run("fails closed on malformed bound", func(t *testing.T) {
		assert.False(t, eval(t, "minValue", "5", "low"))
		assert.False(t, eval(t, "minValue", "5"))
	})
}

func TestMaxValue(t *testing.T) {
	t.Parallel()

	t.Run("passes at and below the bound", func(t *testing.T) {
		assert.True(t, eval(t, "maxValue", "100", "100"))
		assert.True(t, eval(t, "maxValue", "-3", "100"))
		assert.True(t, eval(t, "maxValue", "1e2", "100"))
	})

	t.Run("fails above the bound", func(t *testing.T) {
		assert.False(t, eval(t, "maxValue", "100.01", "100"))
	})

	t.Run("fails closed on malformed input", func(t *testing.T) {
		assert.False(t, eval(t, "maxValue", "ten", "100"))
		assert.False(t, eval(t, "maxValue", "10", "ten"))
		assert.False(t, eval(t, "maxValue", "10"))
	})
}

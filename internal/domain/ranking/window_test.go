package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectWindow(t *testing.T) {
	t.Run("supported widths pass through", func(t *testing.T) {
		for _, w := range []int{1, 4, 8, 12} {
			assert.Equal(t, w, SelectWindow(w))
		}
	})

	t.Run("anything else falls back to 1", func(t *testing.T) {
		for _, w := range []int{-4, 0, 2, 3, 5, 6, 7, 9, 11, 13, 24, 1000} {
			assert.Equal(t, DefaultWindow, SelectWindow(w), "width %d", w)
		}
	})
}

func TestParseWindow(t *testing.T) {
	assert.Equal(t, 4, ParseWindow("4"))
	assert.Equal(t, 12, ParseWindow(" 12 "))
	assert.Equal(t, 1, ParseWindow("6"))
	assert.Equal(t, 1, ParseWindow(""))
	assert.Equal(t, 1, ParseWindow("eight"))
}

func TestIsValidBase(t *testing.T) {
	assert.True(t, IsValidBase("profitability"))
	assert.True(t, IsValidBase("income_statements"))
	assert.False(t, IsValidBase("Profitability"))
	assert.False(t, IsValidBase(""))
	assert.Len(t, Bases(), 10)
}

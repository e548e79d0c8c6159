package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetPlainLabel(t *testing.T) {
	assert.Equal(t, HeavyValue, GetPlainLabel(7.2))
	assert.Equal(t, HeavyValue, GetPlainLabel(5))
	assert.Equal(t, ModerateValue, GetPlainLabel(3.1))
	assert.Equal(t, LightValue, GetPlainLabel(1.0))
	assert.Equal(t, TrivialValue, GetPlainLabel(0.1))
}

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "short", TruncateText("short", 10))
	assert.Equal(t, "abcdefg...", TruncateText("abcdefghijkl", 10))
	assert.Equal(t, "abcd", TruncateText("abcd", 3), "width too small to truncate")
}

func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"yes", "TRUE", "1"} {
		got, err := ParseBoolString(s)
		assert.NoError(t, err)
		assert.True(t, got)
	}
	for _, s := range []string{"no", "False", "0"} {
		got, err := ParseBoolString(s)
		assert.NoError(t, err)
		assert.False(t, got)
	}
	_, err := ParseBoolString("maybe")
	assert.Error(t, err)
}

package werr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestSentinelMatching(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"range", Range("x", 0, 1, 2), ErrRange},
		{"text", Text("name", "must not contain a newline", "a\nb"), ErrRange},
		{"capacity", Capacity("Add", 10, 1, 0, 10), ErrCapacity},
		{"index", Index("index", 5, 0, 4), ErrIndex},
		{"null", Null("item"), ErrNull},
		{"format", Format(12, "header mismatch", nil), ErrFormat},
		{"classification", Classification(-5), ErrClassification},
		{"operation", Operation("Add", Range("v", 0, 1, 3)), ErrOperation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.sentinel)
			wrapped := fmt.Errorf("context: %w", tt.err)
			assert.ErrorIs(t, wrapped, tt.sentinel)
		})
	}
}

func TestFormatError_UnwrapsCause(t *testing.T) {
	cause := Range("code", 0, 10, 11)
	err := Format(40, "decoding command", cause)

	assert.ErrorIs(t, err, ErrFormat)
	assert.ErrorIs(t, err, ErrRange)

	var fe *FormatError
	require.True(t, errors.As(fmt.Errorf("wrap: %w", err), &fe))
	assert.Equal(t, 40, fe.Offset)
	assert.Contains(t, err.Error(), "offset 40 (0x28)")
}

func TestOperationError_UnwrapsRange(t *testing.T) {
	err := Operation("address add", Range("address", 0, 9, 10))
	var re *RangeError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, 10, re.Value)
}

func TestCheckIndex(t *testing.T) {
	assert.NoError(t, CheckIndex("i", 0, 1))
	assert.ErrorIs(t, CheckIndex("i", 1, 1), ErrIndex)
	assert.ErrorIs(t, CheckIndex("i", -1, 3), ErrIndex)
	assert.ErrorIs(t, CheckIndex("i", 0, 0), ErrIndex)
}

func TestPropertyCheckRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		min := rapid.IntRange(-1000, 1000).Draw(t, "min")
		max := rapid.IntRange(min, min+1000).Draw(t, "max")
		v := rapid.IntRange(min-500, max+500).Draw(t, "v")
		err := CheckRange("v", min, max, v)
		inside := v >= min && v <= max
		if inside && err != nil {
			t.Fatalf("value %d inside [%d, %d] rejected: %v", v, min, max, err)
		}
		if !inside && !errors.Is(err, ErrRange) {
			t.Fatalf("value %d outside [%d, %d] accepted", v, min, max)
		}
	})
}

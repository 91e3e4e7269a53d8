package native

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToCString(t *testing.T) {
	for _, tc := range []struct {
		name  string
		input string
		err   bool
	}{
		{"empty", "", false},
		{"plain", "leveldb.BytewiseComparator", false},
		{"utf8", "семейство", false},
		{"leading nul", "\x00abc", true},
		{"interior nul", "ab\x00c", true},
		{"trailing nul", "abc\x00", true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			c, err := ToCString(tc.input)
			if tc.err {
				require.ErrorIs(t, err, ErrInteriorNul)
				assert.Equal(t, "", c.String())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.input, c.String())
		})
	}
}

func TestToCStringReportsOffset(t *testing.T) {
	_, err := ToCString("ab\x00c")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "offset 2")
}

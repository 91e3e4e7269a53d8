package assert

import (
	"testing"

	assert2 "github.com/stretchr/testify/assert"
)

func TestTrue(t *testing.T) {
	assert2.NotPanics(t, func() { True(true, "never") })
	assert2.PanicsWithValue(t, "Assertion Failed: engine returned nil for livefiles\n", func() {
		True(false, "engine returned nil for %s", "livefiles")
	})
}

package assert

import (
	"fmt"
)

// True panics with errMsg when condition does not hold. Use it for
// conditions the caller cannot recover from, such as the engine failing
// to allocate.
func True(condition bool, errMsg string, arg ...any) {
	if !condition {
		panic(fmt.Sprintf("Assertion Failed: %s\n", fmt.Sprintf(errMsg, arg...)))
	}
}

//go:build !rocksdb

package cfmeta

import (
	"github.com/slatedb/cfmeta-go/internal/native"
	"github.com/slatedb/cfmeta-go/internal/native/memlib"
)

var defaultLibrary = memlib.New()

// DefaultLibrary returns the in-process engine. Build with -tags rocksdb
// to bind librocksdb instead.
func DefaultLibrary() native.Library {
	return defaultLibrary
}

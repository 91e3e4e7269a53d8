//go:build rocksdb

package cfmeta

import (
	"github.com/slatedb/cfmeta-go/internal/native"
	"github.com/slatedb/cfmeta-go/internal/native/rocksdb"
)

// DefaultLibrary returns the librocksdb binding.
func DefaultLibrary() native.Library {
	return rocksdb.Library{}
}

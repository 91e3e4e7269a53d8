package cfmeta

import (
	"log/slog"

	"github.com/kapetan-io/tackle/set"

	"github.com/slatedb/cfmeta-go/internal/native"
)

// Options configure an ExportImportFilesMetadata.
type Options struct {
	// Library is the engine binding that owns the native resources. Defaults
	// to the binding selected at build time (see DefaultLibrary).
	Library native.Library

	Log *slog.Logger
}

// DefaultOptions uses DefaultLibrary and slog.Default.
func DefaultOptions() Options {
	return Options{
		Library: DefaultLibrary(),
		Log:     slog.Default(),
	}
}

func (o *Options) setDefaults() {
	if o.Library == nil {
		o.Library = DefaultLibrary()
	}
	set.Default(&o.Log, slog.Default())
}

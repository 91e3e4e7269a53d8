package cfmeta

import (
	"log/slog"

	"github.com/slatedb/cfmeta-go/internal/assert"
	"github.com/slatedb/cfmeta-go/internal/native"
)

// ExportImportFilesMetadata holds the files metadata of a column family
// snapshot: the comparator name and the live files that make up the column
// family. It owns one engine resource which Close releases.
//
// A value may be handed between goroutines but callers must serialize
// access to it.
type ExportImportFilesMetadata struct {
	lib   native.Library
	inner native.Metadata
	log   *slog.Logger
}

// NewExportImportFilesMetadata allocates empty metadata on the default
// library. It panics if the engine cannot allocate.
func NewExportImportFilesMetadata() *ExportImportFilesMetadata {
	return NewExportImportFilesMetadataWithOptions(DefaultOptions())
}

// NewExportImportFilesMetadataWithOptions is NewExportImportFilesMetadata on
// the library and logger given in opts.
func NewExportImportFilesMetadataWithOptions(opts Options) *ExportImportFilesMetadata {
	opts.setDefaults()

	inner := opts.Library.CreateMetadata()
	assert.True(inner != nil, "engine failed to allocate export/import files metadata")
	return &ExportImportFilesMetadata{
		lib:   opts.Library,
		inner: inner,
		log:   opts.Log,
	}
}

// NewFromSnapshot allocates metadata holding the contents of s. The
// returned value is never partially populated: on error nothing is left
// allocated.
func NewFromSnapshot(s Snapshot, opts Options) (*ExportImportFilesMetadata, error) {
	m := NewExportImportFilesMetadataWithOptions(opts)
	if err := m.Restore(s); err != nil {
		_ = m.Close()
		return nil, err
	}
	return m, nil
}

// DBComparatorName returns the name of the comparator the column family
// was using when it was exported.
func (m *ExportImportFilesMetadata) DBComparatorName() string {
	m.checkOpen()
	return m.inner.DBComparatorName()
}

// SetDBComparatorName replaces the comparator name. It returns
// ErrInvalidArgument and leaves the current name in place if name contains
// a NUL byte.
func (m *ExportImportFilesMetadata) SetDBComparatorName(name string) error {
	m.checkOpen()
	cName, err := native.ToCString(name)
	if err != nil {
		return invalidArgument("comparator name: %s", err)
	}
	m.inner.SetDBComparatorName(cName)
	return nil
}

// Files returns a copy of the live file list in the order it was set.
func (m *ExportImportFilesMetadata) Files() []LiveFile {
	m.checkOpen()
	lf := m.inner.Files()
	assert.True(lf != nil, "engine failed to allocate livefiles")
	defer lf.Destroy()

	count := lf.Count()
	files := make([]LiveFile, 0, count)
	for i := 0; i < count; i++ {
		files = append(files, liveFileFromNative(lf, i))
	}
	return files
}

// SetFiles replaces the live file list with files, preserving order. Every
// descriptor is validated before the engine is touched, so on
// ErrInvalidArgument the previous list is left as it was.
func (m *ExportImportFilesMetadata) SetFiles(files []LiveFile) error {
	m.checkOpen()
	entries, err := toNativeEntries(files)
	if err != nil {
		return err
	}
	m.install(entries)
	return nil
}

// Snapshot copies the comparator name and file list into a plain value.
func (m *ExportImportFilesMetadata) Snapshot() Snapshot {
	return Snapshot{
		DBComparatorName: m.DBComparatorName(),
		Files:            m.Files(),
	}
}

// Restore replaces both the comparator name and the file list with the
// contents of s. Either both are replaced or, on ErrInvalidArgument,
// neither is.
func (m *ExportImportFilesMetadata) Restore(s Snapshot) error {
	m.checkOpen()
	cName, err := native.ToCString(s.DBComparatorName)
	if err != nil {
		return invalidArgument("comparator name: %s", err)
	}
	entries, err := toNativeEntries(s.Files)
	if err != nil {
		return err
	}
	m.inner.SetDBComparatorName(cName)
	m.install(entries)
	return nil
}

// Close releases the engine resource. Calling Close more than once is a
// no-op; any other method called after Close panics.
func (m *ExportImportFilesMetadata) Close() error {
	if m.inner == nil {
		return nil
	}
	inner := m.inner
	m.inner = nil
	inner.Destroy()
	return nil
}

func (m *ExportImportFilesMetadata) install(entries []native.FileEntry) {
	lf := m.lib.CreateLiveFiles()
	assert.True(lf != nil, "engine failed to allocate livefiles")
	defer lf.Destroy()

	for i := range entries {
		lf.Add(&entries[i])
	}
	m.inner.SetFiles(lf)
	m.log.Debug("installed live files", "count", len(entries))
}

func (m *ExportImportFilesMetadata) checkOpen() {
	assert.True(m.inner != nil, "export/import files metadata used after Close")
}

func toNativeEntries(files []LiveFile) ([]native.FileEntry, error) {
	entries := make([]native.FileEntry, 0, len(files))
	for i, f := range files {
		entry, err := f.toNative(i)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

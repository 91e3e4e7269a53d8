// Package native describes the entry points the embedded storage engine
// exposes for column family export/import metadata. Callers outside this
// module never see these types; cfmeta wraps them.
package native

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/mo"
)

var ErrInteriorNul = errors.New("string contains an interior NUL byte")

// CString is a string that has been checked to be representable as a
// NUL terminated C string. The zero value is the empty string.
type CString struct {
	s string
}

// ToCString validates s for crossing the native boundary.
func ToCString(s string) (CString, error) {
	if i := strings.IndexByte(s, 0); i >= 0 {
		return CString{}, fmt.Errorf("%w at offset %d", ErrInteriorNul, i)
	}
	return CString{s: s}, nil
}

func (c CString) String() string {
	return c.s
}

// FileEntry carries every field of one live file across the boundary.
// SmallestKey and LargestKey are absent when the file has no bound.
type FileEntry struct {
	ColumnFamilyName CString
	Name             CString
	Directory        CString
	Size             uint64
	Level            int32
	SmallestKey      mo.Option[[]byte]
	LargestKey       mo.Option[[]byte]
	SmallestSeqno    uint64
	LargestSeqno     uint64
	NumEntries       uint64
	NumDeletions     uint64
}

// Library creates engine owned resources. Implementations return nil when
// the engine cannot allocate.
type Library interface {
	CreateMetadata() Metadata
	CreateLiveFiles() LiveFiles
}

// Metadata is the engine's export/import files metadata resource.
type Metadata interface {
	DBComparatorName() string
	SetDBComparatorName(name CString)

	// Files returns a new transient collection. The caller must Destroy it.
	Files() LiveFiles

	// SetFiles replaces the file list with a copy of files. The caller keeps
	// ownership of files and must still Destroy it.
	SetFiles(files LiveFiles)

	Destroy()
}

// LiveFiles is a transient collection of live file records.
type LiveFiles interface {
	Add(entry *FileEntry)
	Count() int

	ColumnFamilyName(i int) string
	Name(i int) string
	Directory(i int) string
	Size(i int) uint64
	Level(i int) int32
	SmallestKey(i int) mo.Option[[]byte]
	LargestKey(i int) mo.Option[[]byte]
	SmallestSeqno(i int) uint64
	LargestSeqno(i int) uint64
	Entries(i int) uint64
	Deletions(i int) uint64

	Destroy()
}

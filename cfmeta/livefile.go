package cfmeta

import (
	"bytes"
	"path"

	"github.com/samber/mo"

	"github.com/slatedb/cfmeta-go/internal/native"
)

// LiveFile describes one table file that belongs to a column family at
// the time its metadata was exported.
//
// StartKey and EndKey distinguish an absent bound (mo.None) from a present
// empty key (mo.Some([]byte{})). The in-process engine keeps the two apart.
// The RocksDB engine does not: an absent key read back through Files comes
// out present and empty. Snapshot and store.ExportStore keep the
// distinction on any engine.
type LiveFile struct {
	ColumnFamilyName string
	Name             string
	Directory        string
	Size             uint64
	Level            int32
	StartKey         mo.Option[[]byte]
	EndKey           mo.Option[[]byte]
	SmallestSeqno    uint64
	LargestSeqno     uint64
	NumEntries       uint64
	NumDeletions     uint64
}

// Path joins Directory and Name.
func (f LiveFile) Path() string {
	return path.Join(f.Directory, f.Name)
}

// Clone returns a copy that shares no memory with f.
func (f LiveFile) Clone() LiveFile {
	f.StartKey = cloneKey(f.StartKey)
	f.EndKey = cloneKey(f.EndKey)
	return f
}

// Equal reports whether f and other describe the same file. A present key
// holding a nil slice equals a present empty key.
func (f LiveFile) Equal(other LiveFile) bool {
	return f.ColumnFamilyName == other.ColumnFamilyName &&
		f.Name == other.Name &&
		f.Directory == other.Directory &&
		f.Size == other.Size &&
		f.Level == other.Level &&
		keysEqual(f.StartKey, other.StartKey) &&
		keysEqual(f.EndKey, other.EndKey) &&
		f.SmallestSeqno == other.SmallestSeqno &&
		f.LargestSeqno == other.LargestSeqno &&
		f.NumEntries == other.NumEntries &&
		f.NumDeletions == other.NumDeletions
}

// toNative validates every string field before anything is handed to the
// engine. i is the position of f in the caller's list and only appears in
// the error.
func (f LiveFile) toNative(i int) (native.FileEntry, error) {
	cfName, err := native.ToCString(f.ColumnFamilyName)
	if err != nil {
		return native.FileEntry{}, invalidArgument("file %d column family name: %s", i, err)
	}
	name, err := native.ToCString(f.Name)
	if err != nil {
		return native.FileEntry{}, invalidArgument("file %d name: %s", i, err)
	}
	directory, err := native.ToCString(f.Directory)
	if err != nil {
		return native.FileEntry{}, invalidArgument("file %d directory: %s", i, err)
	}

	return native.FileEntry{
		ColumnFamilyName: cfName,
		Name:             name,
		Directory:        directory,
		Size:             f.Size,
		Level:            f.Level,
		SmallestKey:      f.StartKey,
		LargestKey:       f.EndKey,
		SmallestSeqno:    f.SmallestSeqno,
		LargestSeqno:     f.LargestSeqno,
		NumEntries:       f.NumEntries,
		NumDeletions:     f.NumDeletions,
	}, nil
}

func liveFileFromNative(lf native.LiveFiles, i int) LiveFile {
	return LiveFile{
		ColumnFamilyName: lf.ColumnFamilyName(i),
		Name:             lf.Name(i),
		Directory:        lf.Directory(i),
		Size:             lf.Size(i),
		Level:            lf.Level(i),
		StartKey:         cloneKey(lf.SmallestKey(i)),
		EndKey:           cloneKey(lf.LargestKey(i)),
		SmallestSeqno:    lf.SmallestSeqno(i),
		LargestSeqno:     lf.LargestSeqno(i),
		NumEntries:       lf.Entries(i),
		NumDeletions:     lf.Deletions(i),
	}
}

func cloneKey(key mo.Option[[]byte]) mo.Option[[]byte] {
	b, ok := key.Get()
	if !ok {
		return mo.None[[]byte]()
	}
	return mo.Some(append(make([]byte, 0, len(b)), b...))
}

func keysEqual(a, b mo.Option[[]byte]) bool {
	av, aok := a.Get()
	bv, bok := b.Get()
	if aok != bok {
		return false
	}
	return bytes.Equal(av, bv)
}

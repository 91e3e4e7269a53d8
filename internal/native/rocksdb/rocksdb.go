//go:build rocksdb

// Package rocksdb binds the export/import metadata entry points of the
// RocksDB C API. Build with -tags rocksdb and a librocksdb that exports
// rocksdb_export_import_files_metadata_* and rocksdb_livefiles_add.
//
// Keys do not keep their presence through the engine. A NULL key passed to
// rocksdb_livefiles_add is stored as an empty string, and
// rocksdb_livefiles_smallestkey/largestkey never return NULL, so an absent
// key reads back as present and empty. Callers that need the distinction
// keep it in a cfmeta.Snapshot or a stored export instead.
package rocksdb

/*
#cgo LDFLAGS: -lrocksdb -lstdc++ -lm -lz -lsnappy -llz4 -lzstd
#include <stdlib.h>
#include "rocksdb/c.h"
*/
import "C"

import (
	"unsafe"

	"github.com/samber/mo"

	"github.com/slatedb/cfmeta-go/internal/native"
)

type Library struct{}

var _ native.Library = Library{}

func (Library) CreateMetadata() native.Metadata {
	c := C.rocksdb_export_import_files_metadata_create()
	if c == nil {
		return nil
	}
	return &metadata{c: c}
}

func (Library) CreateLiveFiles() native.LiveFiles {
	c := C.rocksdb_livefiles_create()
	if c == nil {
		return nil
	}
	return &liveFiles{c: c}
}

// ------------------------------------------------
// metadata
// ------------------------------------------------

type metadata struct {
	c *C.rocksdb_export_import_files_metadata_t
}

func (m *metadata) DBComparatorName() string {
	return C.GoString(C.rocksdb_export_import_files_metadata_get_db_comparator_name(m.c))
}

func (m *metadata) SetDBComparatorName(name native.CString) {
	cName := C.CString(name.String())
	defer C.free(unsafe.Pointer(cName))
	C.rocksdb_export_import_files_metadata_set_db_comparator_name(m.c, cName)
}

func (m *metadata) Files() native.LiveFiles {
	c := C.rocksdb_export_import_files_metadata_get_files(m.c)
	if c == nil {
		return nil
	}
	return &liveFiles{c: c}
}

func (m *metadata) SetFiles(files native.LiveFiles) {
	lf := files.(*liveFiles)
	C.rocksdb_export_import_files_metadata_set_files(m.c, lf.c)
}

func (m *metadata) Destroy() {
	C.rocksdb_export_import_files_metadata_destroy(m.c)
	m.c = nil
}

// ------------------------------------------------
// liveFiles
// ------------------------------------------------

type liveFiles struct {
	c *C.rocksdb_livefiles_t
}

func (lf *liveFiles) Add(entry *native.FileEntry) {
	cfName := C.CString(entry.ColumnFamilyName.String())
	defer C.free(unsafe.Pointer(cfName))
	name := C.CString(entry.Name.String())
	defer C.free(unsafe.Pointer(name))
	directory := C.CString(entry.Directory.String())
	defer C.free(unsafe.Pointer(directory))

	smallest, smallestLen := keyArg(entry.SmallestKey)
	defer freeKey(smallest)
	largest, largestLen := keyArg(entry.LargestKey)
	defer freeKey(largest)

	C.rocksdb_livefiles_add(
		lf.c,
		cfName,
		name,
		directory,
		C.size_t(entry.Size),
		C.int(entry.Level),
		smallest,
		smallestLen,
		largest,
		largestLen,
		C.uint64_t(entry.SmallestSeqno),
		C.uint64_t(entry.LargestSeqno),
		C.uint64_t(entry.NumEntries),
		C.uint64_t(entry.NumDeletions),
	)
}

func (lf *liveFiles) Count() int {
	return int(C.rocksdb_livefiles_count(lf.c))
}

func (lf *liveFiles) ColumnFamilyName(i int) string {
	return C.GoString(C.rocksdb_livefiles_column_family_name(lf.c, C.int(i)))
}

func (lf *liveFiles) Name(i int) string {
	return C.GoString(C.rocksdb_livefiles_name(lf.c, C.int(i)))
}

func (lf *liveFiles) Directory(i int) string {
	return C.GoString(C.rocksdb_livefiles_directory(lf.c, C.int(i)))
}

func (lf *liveFiles) Size(i int) uint64 {
	return uint64(C.rocksdb_livefiles_size(lf.c, C.int(i)))
}

func (lf *liveFiles) Level(i int) int32 {
	return int32(C.rocksdb_livefiles_level(lf.c, C.int(i)))
}

func (lf *liveFiles) SmallestKey(i int) mo.Option[[]byte] {
	var size C.size_t
	key := C.rocksdb_livefiles_smallestkey(lf.c, C.int(i), &size)
	return keyResult(key, size)
}

func (lf *liveFiles) LargestKey(i int) mo.Option[[]byte] {
	var size C.size_t
	key := C.rocksdb_livefiles_largestkey(lf.c, C.int(i), &size)
	return keyResult(key, size)
}

func (lf *liveFiles) SmallestSeqno(i int) uint64 {
	return uint64(C.rocksdb_livefiles_smallest_seqno(lf.c, C.int(i)))
}

func (lf *liveFiles) LargestSeqno(i int) uint64 {
	return uint64(C.rocksdb_livefiles_largest_seqno(lf.c, C.int(i)))
}

func (lf *liveFiles) Entries(i int) uint64 {
	return uint64(C.rocksdb_livefiles_entries(lf.c, C.int(i)))
}

func (lf *liveFiles) Deletions(i int) uint64 {
	return uint64(C.rocksdb_livefiles_deletions(lf.c, C.int(i)))
}

func (lf *liveFiles) Destroy() {
	C.rocksdb_livefiles_destroy(lf.c)
	lf.c = nil
}

// keyArg maps an optional key onto the pointer+length pair the C API
// expects. Absent is a NULL pointer; present and empty is a valid pointer
// with zero length. The returned buffer is C allocated and must be passed
// to freeKey.
func keyArg(key mo.Option[[]byte]) (*C.char, C.size_t) {
	b, ok := key.Get()
	if !ok {
		return nil, 0
	}
	p := (*C.char)(C.malloc(C.size_t(len(b) + 1)))
	if len(b) > 0 {
		copy(unsafe.Slice((*byte)(unsafe.Pointer(p)), len(b)), b)
	}
	return p, C.size_t(len(b))
}

func freeKey(p *C.char) {
	if p != nil {
		C.free(unsafe.Pointer(p))
	}
}

// keyResult maps NULL to an absent key. librocksdb does not return NULL
// here, so in practice every key is present.
func keyResult(key *C.char, size C.size_t) mo.Option[[]byte] {
	if key == nil {
		return mo.None[[]byte]()
	}
	return mo.Some(C.GoBytes(unsafe.Pointer(key), C.int(size)))
}

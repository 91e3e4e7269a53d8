package memlib

import (
	"github.com/gammazero/deque"
	"github.com/samber/mo"

	"github.com/slatedb/cfmeta-go/internal/native"
)

// record is the engine side copy of one live file.
type record struct {
	columnFamilyName string
	name             string
	directory        string
	size             uint64
	level            int32
	smallestKey      mo.Option[[]byte]
	largestKey       mo.Option[[]byte]
	smallestSeqno    uint64
	largestSeqno     uint64
	numEntries       uint64
	numDeletions     uint64
}

func (r record) clone() record {
	r.smallestKey = copyKey(r.smallestKey)
	r.largestKey = copyKey(r.largestKey)
	return r
}

func copyKey(key mo.Option[[]byte]) mo.Option[[]byte] {
	b, ok := key.Get()
	if !ok {
		return mo.None[[]byte]()
	}
	return mo.Some(append(make([]byte, 0, len(b)), b...))
}

// ------------------------------------------------
// metadata
// ------------------------------------------------

type metadata struct {
	lib            *Library
	id             uint64
	comparatorName string
	files          []record
}

func (m *metadata) DBComparatorName() string {
	m.lib.access(m.id, kindMetadata)
	return m.comparatorName
}

func (m *metadata) SetDBComparatorName(name native.CString) {
	m.lib.access(m.id, kindMetadata)
	m.comparatorName = name.String()
}

func (m *metadata) Files() native.LiveFiles {
	m.lib.access(m.id, kindMetadata)
	lf := m.lib.newLiveFiles()
	if lf == nil {
		return nil
	}
	for _, r := range m.files {
		lf.records.PushBack(r.clone())
	}
	return lf
}

func (m *metadata) SetFiles(files native.LiveFiles) {
	m.lib.access(m.id, kindMetadata)
	lf, ok := files.(*liveFiles)
	if !ok || lf.lib != m.lib {
		m.lib.foreign(kindLiveFiles)
		return
	}
	m.lib.access(lf.id, kindLiveFiles)

	installed := make([]record, 0, lf.records.Len())
	for i := 0; i < lf.records.Len(); i++ {
		installed = append(installed, lf.records.At(i).clone())
	}
	m.files = installed
}

func (m *metadata) Destroy() {
	m.lib.release(m.id, kindMetadata)
}

// ------------------------------------------------
// liveFiles
// ------------------------------------------------

type liveFiles struct {
	lib     *Library
	id      uint64
	records *deque.Deque[record]
}

func newLiveFiles(lib *Library, id uint64) *liveFiles {
	return &liveFiles{
		lib:     lib,
		id:      id,
		records: deque.New[record](0),
	}
}

func (lf *liveFiles) Add(entry *native.FileEntry) {
	lf.lib.access(lf.id, kindLiveFiles)
	lf.records.PushBack(record{
		columnFamilyName: entry.ColumnFamilyName.String(),
		name:             entry.Name.String(),
		directory:        entry.Directory.String(),
		size:             entry.Size,
		level:            entry.Level,
		smallestKey:      copyKey(entry.SmallestKey),
		largestKey:       copyKey(entry.LargestKey),
		smallestSeqno:    entry.SmallestSeqno,
		largestSeqno:     entry.LargestSeqno,
		numEntries:       entry.NumEntries,
		numDeletions:     entry.NumDeletions,
	})
}

func (lf *liveFiles) Count() int {
	lf.lib.access(lf.id, kindLiveFiles)
	return lf.records.Len()
}

func (lf *liveFiles) at(i int) record {
	lf.lib.access(lf.id, kindLiveFiles)
	return lf.records.At(i)
}

func (lf *liveFiles) ColumnFamilyName(i int) string { return lf.at(i).columnFamilyName }
func (lf *liveFiles) Name(i int) string             { return lf.at(i).name }
func (lf *liveFiles) Directory(i int) string        { return lf.at(i).directory }
func (lf *liveFiles) Size(i int) uint64             { return lf.at(i).size }
func (lf *liveFiles) Level(i int) int32             { return lf.at(i).level }
func (lf *liveFiles) SmallestSeqno(i int) uint64    { return lf.at(i).smallestSeqno }
func (lf *liveFiles) LargestSeqno(i int) uint64     { return lf.at(i).largestSeqno }
func (lf *liveFiles) Entries(i int) uint64          { return lf.at(i).numEntries }
func (lf *liveFiles) Deletions(i int) uint64        { return lf.at(i).numDeletions }

// SmallestKey returns a copy; the collection keeps its own bytes.
func (lf *liveFiles) SmallestKey(i int) mo.Option[[]byte] {
	return copyKey(lf.at(i).smallestKey)
}

func (lf *liveFiles) LargestKey(i int) mo.Option[[]byte] {
	return copyKey(lf.at(i).largestKey)
}

func (lf *liveFiles) Destroy() {
	lf.lib.release(lf.id, kindLiveFiles)
}

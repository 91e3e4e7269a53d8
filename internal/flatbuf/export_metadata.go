// Package flatbuf holds the flatbuffer accessors and builders for the
// export object format:
//
//	table LiveFile {
//	  column_family_name:string;
//	  name:string;
//	  directory:string;
//	  size:ulong;
//	  level:int;
//	  start_key:[ubyte];
//	  end_key:[ubyte];
//	  smallest_seqno:ulong;
//	  largest_seqno:ulong;
//	  num_entries:ulong;
//	  num_deletions:ulong;
//	}
//
//	table ExportMetadata {
//	  comparator_name:string;
//	  files:[LiveFile];
//	}
//
//	root_type ExportMetadata;
//
// An unset start_key or end_key means the file has no such bound; an empty
// vector is a present, empty key.
package flatbuf

import (
	flatbuffers "github.com/google/flatbuffers/go"
)

// ------------------------------------------------
// ExportMetadata
// ------------------------------------------------

type ExportMetadata struct {
	_tab flatbuffers.Table
}

func GetRootAsExportMetadata(buf []byte, offset flatbuffers.UOffsetT) *ExportMetadata {
	n := flatbuffers.GetUOffsetT(buf[offset:])
	x := &ExportMetadata{}
	x.Init(buf, n+offset)
	return x
}

func (rcv *ExportMetadata) Init(buf []byte, i flatbuffers.UOffsetT) {
	rcv._tab.Bytes = buf
	rcv._tab.Pos = i
}

func (rcv *ExportMetadata) ComparatorName() []byte {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(4))
	if o != 0 {
		return rcv._tab.ByteVector(o + rcv._tab.Pos)
	}
	return nil
}

func (rcv *ExportMetadata) Files(obj *LiveFile, j int) bool {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(6))
	if o != 0 {
		x := rcv._tab.Vector(o)
		x += flatbuffers.UOffsetT(j) * 4
		x = rcv._tab.Indirect(x)
		obj.Init(rcv._tab.Bytes, x)
		return true
	}
	return false
}

func (rcv *ExportMetadata) FilesLength() int {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(6))
	if o != 0 {
		return rcv._tab.VectorLen(o)
	}
	return 0
}

func ExportMetadataStart(builder *flatbuffers.Builder) {
	builder.StartObject(2)
}

func ExportMetadataAddComparatorName(builder *flatbuffers.Builder, comparatorName flatbuffers.UOffsetT) {
	builder.PrependUOffsetTSlot(0, comparatorName, 0)
}

func ExportMetadataAddFiles(builder *flatbuffers.Builder, files flatbuffers.UOffsetT) {
	builder.PrependUOffsetTSlot(1, files, 0)
}

func ExportMetadataStartFilesVector(builder *flatbuffers.Builder, numElems int) flatbuffers.UOffsetT {
	return builder.StartVector(4, numElems, 4)
}

func ExportMetadataEnd(builder *flatbuffers.Builder) flatbuffers.UOffsetT {
	return builder.EndObject()
}

// ------------------------------------------------
// LiveFile
// ------------------------------------------------

type LiveFile struct {
	_tab flatbuffers.Table
}

func (rcv *LiveFile) Init(buf []byte, i flatbuffers.UOffsetT) {
	rcv._tab.Bytes = buf
	rcv._tab.Pos = i
}

func (rcv *LiveFile) ColumnFamilyName() []byte {
	return rcv.getBytes(4)
}

func (rcv *LiveFile) Name() []byte {
	return rcv.getBytes(6)
}

func (rcv *LiveFile) Directory() []byte {
	return rcv.getBytes(8)
}

func (rcv *LiveFile) Size() uint64 {
	return rcv.getUint64(10)
}

func (rcv *LiveFile) Level() int32 {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(12))
	if o != 0 {
		return rcv._tab.GetInt32(o + rcv._tab.Pos)
	}
	return 0
}

// StartKey returns the key and whether the field was set at all.
func (rcv *LiveFile) StartKey() ([]byte, bool) {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(14))
	if o != 0 {
		return rcv._tab.ByteVector(o + rcv._tab.Pos), true
	}
	return nil, false
}

func (rcv *LiveFile) EndKey() ([]byte, bool) {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(16))
	if o != 0 {
		return rcv._tab.ByteVector(o + rcv._tab.Pos), true
	}
	return nil, false
}

func (rcv *LiveFile) SmallestSeqno() uint64 {
	return rcv.getUint64(18)
}

func (rcv *LiveFile) LargestSeqno() uint64 {
	return rcv.getUint64(20)
}

func (rcv *LiveFile) NumEntries() uint64 {
	return rcv.getUint64(22)
}

func (rcv *LiveFile) NumDeletions() uint64 {
	return rcv.getUint64(24)
}

func (rcv *LiveFile) getBytes(slot flatbuffers.VOffsetT) []byte {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(slot))
	if o != 0 {
		return rcv._tab.ByteVector(o + rcv._tab.Pos)
	}
	return nil
}

func (rcv *LiveFile) getUint64(slot flatbuffers.VOffsetT) uint64 {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(slot))
	if o != 0 {
		return rcv._tab.GetUint64(o + rcv._tab.Pos)
	}
	return 0
}

func LiveFileStart(builder *flatbuffers.Builder) {
	builder.StartObject(11)
}

func LiveFileAddColumnFamilyName(builder *flatbuffers.Builder, columnFamilyName flatbuffers.UOffsetT) {
	builder.PrependUOffsetTSlot(0, columnFamilyName, 0)
}

func LiveFileAddName(builder *flatbuffers.Builder, name flatbuffers.UOffsetT) {
	builder.PrependUOffsetTSlot(1, name, 0)
}

func LiveFileAddDirectory(builder *flatbuffers.Builder, directory flatbuffers.UOffsetT) {
	builder.PrependUOffsetTSlot(2, directory, 0)
}

func LiveFileAddSize(builder *flatbuffers.Builder, size uint64) {
	builder.PrependUint64Slot(3, size, 0)
}

func LiveFileAddLevel(builder *flatbuffers.Builder, level int32) {
	builder.PrependInt32Slot(4, level, 0)
}

func LiveFileAddStartKey(builder *flatbuffers.Builder, startKey flatbuffers.UOffsetT) {
	builder.PrependUOffsetTSlot(5, startKey, 0)
}

func LiveFileAddEndKey(builder *flatbuffers.Builder, endKey flatbuffers.UOffsetT) {
	builder.PrependUOffsetTSlot(6, endKey, 0)
}

func LiveFileAddSmallestSeqno(builder *flatbuffers.Builder, smallestSeqno uint64) {
	builder.PrependUint64Slot(7, smallestSeqno, 0)
}

func LiveFileAddLargestSeqno(builder *flatbuffers.Builder, largestSeqno uint64) {
	builder.PrependUint64Slot(8, largestSeqno, 0)
}

func LiveFileAddNumEntries(builder *flatbuffers.Builder, numEntries uint64) {
	builder.PrependUint64Slot(9, numEntries, 0)
}

func LiveFileAddNumDeletions(builder *flatbuffers.Builder, numDeletions uint64) {
	builder.PrependUint64Slot(10, numDeletions, 0)
}

func LiveFileEnd(builder *flatbuffers.Builder) flatbuffers.UOffsetT {
	return builder.EndObject()
}

package store

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"

	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/samber/mo"

	"github.com/slatedb/cfmeta-go/cfmeta"
	"github.com/slatedb/cfmeta-go/internal/compress"
	"github.com/slatedb/cfmeta-go/internal/flatbuf"
)

// CompressionCodec selects how export payloads are compressed.
type CompressionCodec = compress.Codec

const (
	CompressionNone   = compress.CodecNone
	CompressionSnappy = compress.CodecSnappy
	CompressionZlib   = compress.CodecZlib
	CompressionLz4    = compress.CodecLz4
	CompressionZstd   = compress.CodecZstd
)

const (
	frameVersion     = 1
	frameHeaderLen   = 2
	frameChecksumLen = 4
)

// ExportCodec defines how a snapshot is turned into bytes and back.
type ExportCodec interface {
	Encode(snapshot cfmeta.Snapshot) []byte
	Decode(data []byte) (cfmeta.Snapshot, error)
}

// ------------------------------------------------
// FlatBufferExportCodec
// ------------------------------------------------

// FlatBufferExportCodec implements ExportCodec using the ExportMetadata
// flatbuffer table.
type FlatBufferExportCodec struct{}

func (f FlatBufferExportCodec) Encode(snapshot cfmeta.Snapshot) []byte {
	builder := flatbuffers.NewBuilder(0)

	files := make([]flatbuffers.UOffsetT, 0, len(snapshot.Files))
	for _, file := range snapshot.Files {
		files = append(files, f.liveFile(builder, file))
	}
	flatbuf.ExportMetadataStartFilesVector(builder, len(files))
	for i := len(files) - 1; i >= 0; i-- {
		builder.PrependUOffsetT(files[i])
	}
	filesOffset := builder.EndVector(len(files))
	comparatorName := builder.CreateString(snapshot.DBComparatorName)

	flatbuf.ExportMetadataStart(builder)
	flatbuf.ExportMetadataAddComparatorName(builder, comparatorName)
	flatbuf.ExportMetadataAddFiles(builder, filesOffset)
	builder.Finish(flatbuf.ExportMetadataEnd(builder))
	return builder.FinishedBytes()
}

func (f FlatBufferExportCodec) liveFile(builder *flatbuffers.Builder, file cfmeta.LiveFile) flatbuffers.UOffsetT {
	cfName := builder.CreateString(file.ColumnFamilyName)
	name := builder.CreateString(file.Name)
	directory := builder.CreateString(file.Directory)
	startKey := f.key(builder, file.StartKey)
	endKey := f.key(builder, file.EndKey)

	flatbuf.LiveFileStart(builder)
	flatbuf.LiveFileAddColumnFamilyName(builder, cfName)
	flatbuf.LiveFileAddName(builder, name)
	flatbuf.LiveFileAddDirectory(builder, directory)
	flatbuf.LiveFileAddSize(builder, file.Size)
	flatbuf.LiveFileAddLevel(builder, file.Level)
	if k, ok := startKey.Get(); ok {
		flatbuf.LiveFileAddStartKey(builder, k)
	}
	if k, ok := endKey.Get(); ok {
		flatbuf.LiveFileAddEndKey(builder, k)
	}
	flatbuf.LiveFileAddSmallestSeqno(builder, file.SmallestSeqno)
	flatbuf.LiveFileAddLargestSeqno(builder, file.LargestSeqno)
	flatbuf.LiveFileAddNumEntries(builder, file.NumEntries)
	flatbuf.LiveFileAddNumDeletions(builder, file.NumDeletions)
	return flatbuf.LiveFileEnd(builder)
}

// key writes a present key, even an empty one, as a vector. Absent keys
// leave the field unset.
func (f FlatBufferExportCodec) key(builder *flatbuffers.Builder, key mo.Option[[]byte]) mo.Option[flatbuffers.UOffsetT] {
	b, ok := key.Get()
	if !ok {
		return mo.None[flatbuffers.UOffsetT]()
	}
	return mo.Some(builder.CreateByteVector(b))
}

func (f FlatBufferExportCodec) Decode(data []byte) (snapshot cfmeta.Snapshot, err error) {
	// The flatbuffers runtime indexes into data without bounds checks of its
	// own, so a corrupt payload surfaces as a panic.
	defer func() {
		if r := recover(); r != nil {
			snapshot = cfmeta.Snapshot{}
			err = fmt.Errorf("%w: %v", ErrInvalidFlatbuffer, r)
		}
	}()
	if len(data) < flatbuffers.SizeUOffsetT {
		return cfmeta.Snapshot{}, ErrInvalidFlatbuffer
	}

	md := flatbuf.GetRootAsExportMetadata(data, 0)
	files := make([]cfmeta.LiveFile, 0, md.FilesLength())
	var fbFile flatbuf.LiveFile
	for i := 0; i < md.FilesLength(); i++ {
		md.Files(&fbFile, i)
		files = append(files, f.parseLiveFile(&fbFile))
	}
	return cfmeta.Snapshot{
		DBComparatorName: string(md.ComparatorName()),
		Files:            files,
	}, nil
}

func (f FlatBufferExportCodec) parseLiveFile(file *flatbuf.LiveFile) cfmeta.LiveFile {
	startKey, hasStart := file.StartKey()
	endKey, hasEnd := file.EndKey()
	return cfmeta.LiveFile{
		ColumnFamilyName: string(file.ColumnFamilyName()),
		Name:             string(file.Name()),
		Directory:        string(file.Directory()),
		Size:             file.Size(),
		Level:            file.Level(),
		StartKey:         f.parseKey(startKey, hasStart),
		EndKey:           f.parseKey(endKey, hasEnd),
		SmallestSeqno:    file.SmallestSeqno(),
		LargestSeqno:     file.LargestSeqno(),
		NumEntries:       file.NumEntries(),
		NumDeletions:     file.NumDeletions(),
	}
}

// parseKey copies the key out of the flatbuffer so the snapshot does not
// pin the decoded object.
func (f FlatBufferExportCodec) parseKey(key []byte, present bool) mo.Option[[]byte] {
	if !present {
		return mo.None[[]byte]()
	}
	return mo.Some(append(make([]byte, 0, len(key)), key...))
}

// ------------------------------------------------
// framing
// ------------------------------------------------

// encodeFrame lays out an export object as
//
//	| version (1) | codec (1) | compressed payload | crc32 (4, big endian) |
//
// with the checksum covering everything before it.
func encodeFrame(payload []byte, codec CompressionCodec) ([]byte, error) {
	compressed, err := compress.Encode(payload, codec)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, 0, frameHeaderLen+len(compressed)+frameChecksumLen)
	buf = append(buf, frameVersion, byte(codec))
	buf = append(buf, compressed...)
	buf = binary.BigEndian.AppendUint32(buf, crc32.ChecksumIEEE(buf))
	return buf, nil
}

func decodeFrame(data []byte) ([]byte, error) {
	if len(data) < frameHeaderLen+frameChecksumLen {
		return nil, fmt.Errorf("%w: %d bytes is shorter than the frame", ErrInvalidExport, len(data))
	}

	body := data[:len(data)-frameChecksumLen]
	checksum := binary.BigEndian.Uint32(data[len(data)-frameChecksumLen:])
	if checksum != crc32.ChecksumIEEE(body) {
		return nil, ErrChecksumMismatch
	}
	if body[0] != frameVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidExport, body[0])
	}

	codec, err := compress.CodecFromByte(body[1])
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidExport, err)
	}
	payload, err := compress.Decode(body[frameHeaderLen:], codec)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidExport, err)
	}
	return payload, nil
}

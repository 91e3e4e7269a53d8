package store

import (
	"encoding/binary"
	"hash/crc32"
	"testing"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slatedb/cfmeta-go/cfmeta"
)

func testSnapshot() cfmeta.Snapshot {
	return cfmeta.Snapshot{
		DBComparatorName: "leveldb.BytewiseComparator",
		Files: []cfmeta.LiveFile{
			{
				ColumnFamilyName: "cf1",
				Name:             "000123.sst",
				Directory:        "/data",
				Size:             4096,
				Level:            1,
				StartKey:         mo.Some([]byte{0x00}),
				EndKey:           mo.None[[]byte](),
				SmallestSeqno:    10,
				LargestSeqno:     20,
				NumEntries:       5,
				NumDeletions:     1,
			},
			{
				ColumnFamilyName: "cf1",
				Name:             "000124.sst",
				Directory:        "/data",
				Size:             1 << 40,
				Level:            -1,
				StartKey:         mo.Some([]byte{}),
				EndKey:           mo.Some([]byte("zzz")),
				SmallestSeqno:    21,
				LargestSeqno:     1<<64 - 1,
				NumEntries:       1<<64 - 1,
				NumDeletions:     0,
			},
		},
	}
}

func TestFlatBufferCodecRoundTrip(t *testing.T) {
	var codec FlatBufferExportCodec
	s := testSnapshot()

	decoded, err := codec.Decode(codec.Encode(s))
	require.NoError(t, err)
	assert.True(t, s.Equal(decoded))

	// absent and present-empty keys survive separately
	assert.True(t, decoded.Files[0].EndKey.IsAbsent())
	key, ok := decoded.Files[1].StartKey.Get()
	assert.True(t, ok)
	assert.Len(t, key, 0)
}

func TestFlatBufferCodecEmptySnapshot(t *testing.T) {
	var codec FlatBufferExportCodec

	decoded, err := codec.Decode(codec.Encode(cfmeta.Snapshot{}))
	require.NoError(t, err)
	assert.Equal(t, "", decoded.DBComparatorName)
	assert.Len(t, decoded.Files, 0)
}

func TestFlatBufferCodecRejectsGarbage(t *testing.T) {
	var codec FlatBufferExportCodec

	_, err := codec.Decode([]byte{0x01})
	assert.ErrorIs(t, err, ErrInvalidFlatbuffer)

	_, err = codec.Decode([]byte{0xff, 0xff, 0xff, 0x7f, 0x00, 0x00})
	assert.ErrorIs(t, err, ErrInvalidFlatbuffer)
}

func TestFrameRoundTrip(t *testing.T) {
	payload := FlatBufferExportCodec{}.Encode(testSnapshot())
	for _, codec := range []CompressionCodec{
		CompressionNone,
		CompressionSnappy,
		CompressionZlib,
		CompressionLz4,
		CompressionZstd,
	} {
		t.Run(codec.String(), func(t *testing.T) {
			data, err := encodeFrame(payload, codec)
			require.NoError(t, err)
			assert.Equal(t, byte(frameVersion), data[0])
			assert.Equal(t, byte(codec), data[1])

			decoded, err := decodeFrame(data)
			require.NoError(t, err)
			assert.Equal(t, payload, decoded)
		})
	}
}

func TestFrameDetectsCorruption(t *testing.T) {
	data, err := encodeFrame([]byte("payload"), CompressionNone)
	require.NoError(t, err)

	data[3] ^= 0xff
	_, err = decodeFrame(data)
	assert.ErrorIs(t, err, ErrChecksumMismatch)

	_, err = decodeFrame(data[:5])
	assert.ErrorIs(t, err, ErrInvalidExport)
}

func TestFrameRejectsUnknownVersionAndCodec(t *testing.T) {
	frame := func(version, codec byte) []byte {
		buf := []byte{version, codec, 'x'}
		return binary.BigEndian.AppendUint32(buf, crc32.ChecksumIEEE(buf))
	}

	_, err := decodeFrame(frame(frameVersion+1, byte(CompressionNone)))
	assert.ErrorIs(t, err, ErrInvalidExport)

	_, err = decodeFrame(frame(frameVersion, 0xee))
	assert.ErrorIs(t, err, ErrInvalidExport)

	payload, err := decodeFrame(frame(frameVersion, byte(CompressionNone)))
	require.NoError(t, err)
	assert.Equal(t, []byte("x"), payload)
}

//go:build rocksdb

package rocksdb

import (
	"testing"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slatedb/cfmeta-go/internal/native"
)

func TestMetadataRoundTrip(t *testing.T) {
	lib := Library{}
	md := lib.CreateMetadata()
	require.NotNil(t, md)
	defer md.Destroy()

	name, err := native.ToCString("leveldb.BytewiseComparator")
	require.NoError(t, err)
	md.SetDBComparatorName(name)
	assert.Equal(t, "leveldb.BytewiseComparator", md.DBComparatorName())

	cf, _ := native.ToCString("cf1")
	file, _ := native.ToCString("000123.sst")
	dir, _ := native.ToCString("/data")

	lf := lib.CreateLiveFiles()
	require.NotNil(t, lf)
	lf.Add(&native.FileEntry{
		ColumnFamilyName: cf,
		Name:             file,
		Directory:        dir,
		Size:             4096,
		Level:            1,
		SmallestKey:      mo.Some([]byte{0x00}),
		LargestKey:       mo.Some([]byte("k")),
		SmallestSeqno:    10,
		LargestSeqno:     20,
		NumEntries:       5,
		NumDeletions:     1,
	})
	md.SetFiles(lf)
	lf.Destroy()

	got := md.Files()
	require.NotNil(t, got)
	defer got.Destroy()
	require.Equal(t, 1, got.Count())
	assert.Equal(t, "cf1", got.ColumnFamilyName(0))
	assert.Equal(t, "000123.sst", got.Name(0))
	assert.Equal(t, uint64(4096), got.Size(0))
	assert.Equal(t, int32(1), got.Level(0))
	assert.Equal(t, mo.Some([]byte{0x00}), got.SmallestKey(0))
	assert.Equal(t, uint64(20), got.LargestSeqno(0))
}

func TestAbsentKeyReadsBackEmpty(t *testing.T) {
	lib := Library{}
	md := lib.CreateMetadata()
	require.NotNil(t, md)
	defer md.Destroy()

	name, _ := native.ToCString("000124.sst")
	lf := lib.CreateLiveFiles()
	require.NotNil(t, lf)
	lf.Add(&native.FileEntry{
		Name:        name,
		SmallestKey: mo.None[[]byte](),
		LargestKey:  mo.Some([]byte{}),
	})
	md.SetFiles(lf)
	lf.Destroy()

	got := md.Files()
	require.NotNil(t, got)
	defer got.Destroy()
	require.Equal(t, 1, got.Count())

	smallest, ok := got.SmallestKey(0).Get()
	assert.True(t, ok)
	assert.Len(t, smallest, 0)
	largest, ok := got.LargestKey(0).Get()
	assert.True(t, ok)
	assert.Len(t, largest, 0)
}

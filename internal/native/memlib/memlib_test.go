package memlib

import (
	"testing"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slatedb/cfmeta-go/internal/native"
)

func cstr(t *testing.T, s string) native.CString {
	t.Helper()
	c, err := native.ToCString(s)
	require.NoError(t, err)
	return c
}

func TestCleanLibraryChecksNil(t *testing.T) {
	lib := New()
	md := lib.CreateMetadata()
	lf := lib.CreateLiveFiles()
	assert.Equal(t, 2, lib.Live())

	lf.Destroy()
	md.Destroy()
	assert.Equal(t, 0, lib.Live())
	assert.Equal(t, uint64(2), lib.Allocated())
	assert.NoError(t, lib.Check())
}

func TestCheckReportsLeaks(t *testing.T) {
	lib := New()
	_ = lib.CreateMetadata()
	lf := lib.CreateLiveFiles()
	_ = lib.CreateLiveFiles()
	lf.Destroy()

	err := lib.Check()
	require.ErrorIs(t, err, ErrLeak)
	assert.Contains(t, err.Error(), "export_import_files_metadata #1")
	assert.Contains(t, err.Error(), "livefiles #3")
	assert.NotContains(t, err.Error(), "#2")
}

func TestCheckReportsDoubleRelease(t *testing.T) {
	lib := New()
	md := lib.CreateMetadata()
	md.Destroy()
	md.Destroy()

	err := lib.Check()
	require.ErrorIs(t, err, ErrDoubleRelease)
	assert.NotErrorIs(t, err, ErrLeak)
}

func TestCheckReportsUseAfterRelease(t *testing.T) {
	lib := New()
	md := lib.CreateMetadata()
	md.Destroy()
	_ = md.DBComparatorName()

	assert.ErrorIs(t, lib.Check(), ErrUseAfterRelease)
}

func TestSetFilesRejectsForeignCollection(t *testing.T) {
	lib, other := New(), New()
	md := lib.CreateMetadata()
	lf := other.CreateLiveFiles()

	md.SetFiles(lf)
	lf.Destroy()
	md.Destroy()

	assert.ErrorIs(t, lib.Check(), ErrForeignResource)
	assert.NoError(t, other.Check())
}

func TestAllocationLimit(t *testing.T) {
	lib := New(WithAllocationLimit(1))
	md := lib.CreateMetadata()
	require.NotNil(t, md)

	assert.Nil(t, lib.CreateLiveFiles())
	assert.Nil(t, lib.CreateMetadata())
	assert.Nil(t, md.Files())

	md.Destroy()
	lf := lib.CreateLiveFiles()
	require.NotNil(t, lf)
	lf.Destroy()
	assert.NoError(t, lib.Check())
}

func TestSetFilesCopiesCollection(t *testing.T) {
	lib := New()
	md := lib.CreateMetadata()
	defer md.Destroy()

	key := []byte("a")
	lf := lib.CreateLiveFiles()
	lf.Add(&native.FileEntry{
		ColumnFamilyName: cstr(t, "default"),
		Name:             cstr(t, "000001.sst"),
		Directory:        cstr(t, "/db"),
		Size:             10,
		Level:            2,
		SmallestKey:      mo.Some(key),
		LargestKey:       mo.None[[]byte](),
		SmallestSeqno:    1,
		LargestSeqno:     2,
		NumEntries:       3,
		NumDeletions:     1,
	})
	md.SetFiles(lf)
	lf.Destroy()
	key[0] = 'z'

	got := md.Files()
	defer got.Destroy()
	require.Equal(t, 1, got.Count())
	assert.Equal(t, "default", got.ColumnFamilyName(0))
	assert.Equal(t, "000001.sst", got.Name(0))
	assert.Equal(t, "/db", got.Directory(0))
	assert.Equal(t, uint64(10), got.Size(0))
	assert.Equal(t, int32(2), got.Level(0))
	assert.Equal(t, mo.Some([]byte("a")), got.SmallestKey(0))
	assert.True(t, got.LargestKey(0).IsAbsent())
	assert.Equal(t, uint64(1), got.SmallestSeqno(0))
	assert.Equal(t, uint64(2), got.LargestSeqno(0))
	assert.Equal(t, uint64(3), got.Entries(0))
	assert.Equal(t, uint64(1), got.Deletions(0))
}

func TestPresentEmptyKeyStaysPresent(t *testing.T) {
	lib := New()
	lf := lib.CreateLiveFiles()
	defer lf.Destroy()

	lf.Add(&native.FileEntry{SmallestKey: mo.Some([]byte{}), LargestKey: mo.None[[]byte]()})
	smallest, ok := lf.SmallestKey(0).Get()
	assert.True(t, ok)
	assert.NotNil(t, smallest)
	assert.Len(t, smallest, 0)
	assert.True(t, lf.LargestKey(0).IsAbsent())
}

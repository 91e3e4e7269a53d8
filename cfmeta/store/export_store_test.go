package store

import (
	"bytes"
	"context"
	"path"
	"sync/atomic"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thanos-io/objstore"

	"github.com/slatedb/cfmeta-go/cfmeta"
	"github.com/slatedb/cfmeta-go/internal/native/memlib"
)

// sequentialIDs returns IDs whose timestamps are 1, 2, 3...
func sequentialIDs() func() ulid.ULID {
	var ms atomic.Uint64
	return func() ulid.ULID {
		return ulid.MustNew(ms.Add(1), nil)
	}
}

func newTestStore(t *testing.T, bucket objstore.Bucket) *ExportStore {
	t.Helper()
	opts := DefaultStoreOptions()
	opts.NewID = sequentialIDs()
	s := NewExportStore(rootPath, bucket, opts)
	t.Cleanup(s.Close)
	return s
}

func TestExportStoreWriteRead(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, objstore.NewInMemBucket())

	snap := testSnapshot()
	id, err := s.WriteSnapshot(ctx, snap)
	require.NoError(t, err)

	got, err := s.Read(ctx, id)
	require.NoError(t, err)
	assert.True(t, snap.Equal(got))
}

func TestExportStoreReadFromBucket(t *testing.T) {
	ctx := context.Background()
	bucket := objstore.NewInMemBucket()
	writer := newTestStore(t, bucket)

	for _, codec := range []CompressionCodec{CompressionNone, CompressionZstd} {
		writer.opts.CompressionCodec = codec
		id, err := writer.WriteSnapshot(ctx, testSnapshot())
		require.NoError(t, err)

		// a second store has a cold cache and must decode the object
		reader := newTestStore(t, bucket)
		got, err := reader.Read(ctx, id)
		require.NoError(t, err)
		assert.True(t, testSnapshot().Equal(got))
	}
}

func TestExportStoreReadReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, objstore.NewInMemBucket())

	id, err := s.WriteSnapshot(ctx, testSnapshot())
	require.NoError(t, err)

	got, err := s.Read(ctx, id)
	require.NoError(t, err)
	got.DBComparatorName = "changed"
	key, _ := got.Files[0].StartKey.Get()
	key[0] = 0x7f

	again, err := s.Read(ctx, id)
	require.NoError(t, err)
	assert.True(t, testSnapshot().Equal(again))
}

func TestExportStoreWriteMetadata(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, objstore.NewInMemBucket())
	lib := memlib.New()

	md, err := cfmeta.NewFromSnapshot(testSnapshot(), cfmeta.Options{Library: lib})
	require.NoError(t, err)
	id, err := s.Write(ctx, md)
	require.NoError(t, err)
	require.NoError(t, md.Close())

	opened, err := s.Open(ctx, id, cfmeta.Options{Library: lib})
	require.NoError(t, err)
	assert.Equal(t, "leveldb.BytewiseComparator", opened.DBComparatorName())
	assert.True(t, testSnapshot().Equal(opened.Snapshot()))
	require.NoError(t, opened.Close())

	assert.NoError(t, lib.Check())
}

func TestExportStoreRejectsInvalidSnapshot(t *testing.T) {
	ctx := context.Background()
	bucket := objstore.NewInMemBucket()
	s := newTestStore(t, bucket)

	_, err := s.WriteSnapshot(ctx, cfmeta.Snapshot{DBComparatorName: "bad\x00name"})
	assert.ErrorIs(t, err, cfmeta.ErrInvalidArgument)

	exports, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, exports, 0)
}

func TestExportStoreDuplicateID(t *testing.T) {
	ctx := context.Background()
	opts := DefaultStoreOptions()
	opts.NewID = func() ulid.ULID { return ulid.MustNew(1, nil) }
	s := NewExportStore(rootPath, objstore.NewInMemBucket(), opts)
	defer s.Close()

	_, err := s.WriteSnapshot(ctx, testSnapshot())
	require.NoError(t, err)
	_, err = s.WriteSnapshot(ctx, testSnapshot())
	assert.ErrorIs(t, err, ErrExportExists)
}

func TestExportStoreNotFound(t *testing.T) {
	for _, tc := range testBuckets(t) {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			s := newTestStore(t, tc.bucket)
			id := ulid.MustNew(42, nil)

			_, err := s.Read(ctx, id)
			assert.ErrorIs(t, err, ErrExportNotFound)

			_, err = s.Open(ctx, id, cfmeta.Options{Library: memlib.New()})
			assert.ErrorIs(t, err, ErrExportNotFound)

			assert.ErrorIs(t, s.Delete(ctx, id), ErrExportNotFound)

			written, err := s.WriteSnapshot(ctx, testSnapshot())
			require.NoError(t, err)
			require.NoError(t, s.Delete(ctx, written))
			assert.ErrorIs(t, s.Delete(ctx, written), ErrExportNotFound)
		})
	}
}

func TestExportStoreListAndLatest(t *testing.T) {
	ctx := context.Background()
	bucket := objstore.NewInMemBucket()
	s := newTestStore(t, bucket)

	latest, err := s.Latest(ctx)
	require.NoError(t, err)
	assert.True(t, latest.IsAbsent())

	var ids []ulid.ULID
	for i := 0; i < 3; i++ {
		id, err := s.WriteSnapshot(ctx, testSnapshot())
		require.NoError(t, err)
		ids = append(ids, id)
	}

	// unrelated objects under the export directory are skipped
	err = bucket.Upload(ctx, path.Join(rootPath, exportDir, "notes.txt"), bytes.NewReader([]byte("x")))
	require.NoError(t, err)

	exports, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, exports, 3)
	for i, e := range exports {
		assert.Equal(t, ids[i], e.ID)
		assert.Equal(t, path.Join(rootPath, s.exportPath(ids[i])), e.Location)
	}

	latest, err = s.Latest(ctx)
	require.NoError(t, err)
	info, ok := latest.Get()
	require.True(t, ok)
	assert.Equal(t, ids[2], info.ID)
}

func TestExportStoreDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, objstore.NewInMemBucket())

	first, err := s.WriteSnapshot(ctx, testSnapshot())
	require.NoError(t, err)
	second, err := s.WriteSnapshot(ctx, testSnapshot())
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, second))

	_, err = s.Read(ctx, second)
	assert.ErrorIs(t, err, ErrExportNotFound)

	latest, err := s.Latest(ctx)
	require.NoError(t, err)
	info, ok := latest.Get()
	require.True(t, ok)
	assert.Equal(t, first, info.ID)
}

func TestExportStoreReadCorruptObject(t *testing.T) {
	ctx := context.Background()
	bucket := objstore.NewInMemBucket()
	s := newTestStore(t, bucket)
	id := ulid.MustNew(7, nil)

	err := bucket.Upload(ctx, path.Join(rootPath, s.exportPath(id)), bytes.NewReader([]byte("not an export")))
	require.NoError(t, err)

	_, err = s.Read(ctx, id)
	assert.ErrorIs(t, err, ErrChecksumMismatch)
}

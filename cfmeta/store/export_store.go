package store

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/kapetan-io/tackle/set"
	"github.com/maypok86/otter"
	"github.com/oklog/ulid/v2"
	"github.com/samber/mo"
	"github.com/thanos-io/objstore"

	"github.com/slatedb/cfmeta-go/cfmeta"
	"github.com/slatedb/cfmeta-go/internal/assert"
)

const (
	exportDir    = "exports"
	exportSuffix = ".cfmeta"
)

// StoreOptions configure an ExportStore.
type StoreOptions struct {
	// CompressionCodec applied to new exports. Existing exports record the
	// codec they were written with.
	CompressionCodec CompressionCodec

	// CacheSize is the number of decoded exports kept in memory.
	CacheSize int

	// NewID generates the ID of each new export. Defaults to ulid.Make.
	NewID func() ulid.ULID

	Log *slog.Logger
}

func DefaultStoreOptions() StoreOptions {
	return StoreOptions{
		CompressionCodec: CompressionSnappy,
		CacheSize:        128,
		NewID:            ulid.Make,
		Log:              slog.Default(),
	}
}

// ExportInfo describes one stored export.
type ExportInfo struct {
	ID ulid.ULID

	// LastModified is the timestamp the export was written, when the bucket
	// reports one.
	LastModified time.Time

	// Location is the path of the export object
	Location string
}

// ExportStore persists column family export metadata to an object store
// bucket so that a later import, possibly in another process, can load it.
// Exports are immutable once written.
type ExportStore struct {
	objectStore ObjectStore
	codec       ExportCodec
	opts        StoreOptions
	cache       otter.Cache[ulid.ULID, cfmeta.Snapshot]
}

func NewExportStore(rootPath string, bucket objstore.Bucket, opts StoreOptions) *ExportStore {
	set.Default(&opts.CacheSize, 128)
	set.Default(&opts.Log, slog.Default())
	if opts.NewID == nil {
		opts.NewID = ulid.Make
	}

	cache, err := otter.MustBuilder[ulid.ULID, cfmeta.Snapshot](opts.CacheSize).Build()
	assert.True(err == nil, "unable to build export cache: %v", err)
	return &ExportStore{
		objectStore: newDelegatingObjectStore(rootPath, bucket),
		codec:       FlatBufferExportCodec{},
		opts:        opts,
		cache:       cache,
	}
}

// Write stores the current contents of md under a new ID.
func (s *ExportStore) Write(ctx context.Context, md *cfmeta.ExportImportFilesMetadata) (ulid.ULID, error) {
	return s.WriteSnapshot(ctx, md.Snapshot())
}

// WriteSnapshot stores snapshot under a new ID. It returns
// cfmeta.ErrInvalidArgument for a snapshot that could never be restored.
func (s *ExportStore) WriteSnapshot(ctx context.Context, snapshot cfmeta.Snapshot) (ulid.ULID, error) {
	if err := snapshot.CheckArguments(); err != nil {
		return ulid.ULID{}, err
	}
	if err := snapshot.Validate(); err != nil {
		s.opts.Log.Warn("exporting metadata with warnings", "warnings", err.Error())
	}

	data, err := encodeFrame(s.codec.Encode(snapshot), s.opts.CompressionCodec)
	if err != nil {
		return ulid.ULID{}, err
	}

	id := s.opts.NewID()
	if err := s.objectStore.putIfNotExists(ctx, s.exportPath(id), data); err != nil {
		if errors.Is(err, ErrObjectExists) {
			return ulid.ULID{}, fmt.Errorf("%w: %s", ErrExportExists, id)
		}
		return ulid.ULID{}, err
	}

	s.cache.Set(id, snapshot.Clone())
	s.opts.Log.Info("wrote export",
		"id", id,
		"files", len(snapshot.Files),
		"bytes", len(data),
		"codec", s.opts.CompressionCodec)
	return id, nil
}

// Read returns the snapshot stored under id.
func (s *ExportStore) Read(ctx context.Context, id ulid.ULID) (cfmeta.Snapshot, error) {
	if snapshot, ok := s.cache.Get(id); ok {
		return snapshot.Clone(), nil
	}

	data, err := s.objectStore.get(ctx, s.exportPath(id))
	if err != nil {
		if errors.Is(err, ErrExportNotFound) {
			return cfmeta.Snapshot{}, fmt.Errorf("%w: %s", ErrExportNotFound, id)
		}
		return cfmeta.Snapshot{}, err
	}

	payload, err := decodeFrame(data)
	if err != nil {
		return cfmeta.Snapshot{}, fmt.Errorf("export %s: %w", id, err)
	}
	snapshot, err := s.codec.Decode(payload)
	if err != nil {
		return cfmeta.Snapshot{}, fmt.Errorf("export %s: %w", id, err)
	}

	s.cache.Set(id, snapshot.Clone())
	return snapshot, nil
}

// Open loads the export stored under id into new engine metadata ready to
// be handed to an import. The caller must Close the result.
func (s *ExportStore) Open(ctx context.Context, id ulid.ULID, opts cfmeta.Options) (*cfmeta.ExportImportFilesMetadata, error) {
	snapshot, err := s.Read(ctx, id)
	if err != nil {
		return nil, err
	}
	return cfmeta.NewFromSnapshot(snapshot, opts)
}

// List returns all stored exports ordered by ID, oldest first.
func (s *ExportStore) List(ctx context.Context) ([]ExportInfo, error) {
	objMetaList, err := s.objectStore.list(ctx, mo.Some(exportDir))
	if err != nil {
		return nil, err
	}

	exports := make([]ExportInfo, 0, len(objMetaList))
	for _, objMeta := range objMetaList {
		id, err := s.parseID(objMeta.Location)
		if err != nil {
			s.opts.Log.Debug("skipping unrecognized object", "location", objMeta.Location)
			continue
		}
		exports = append(exports, ExportInfo{
			ID:           id,
			LastModified: objMeta.LastModified,
			Location:     objMeta.Location,
		})
	}

	slices.SortFunc(exports, func(a, b ExportInfo) int {
		return cmp.Compare(a.ID.String(), b.ID.String())
	})
	return exports, nil
}

// Latest returns the most recently written export, if any.
func (s *ExportStore) Latest(ctx context.Context) (mo.Option[ExportInfo], error) {
	exports, err := s.List(ctx)
	if err != nil || len(exports) == 0 {
		return mo.None[ExportInfo](), err
	}
	return mo.Some(exports[len(exports)-1]), nil
}

// Delete removes the export stored under id.
func (s *ExportStore) Delete(ctx context.Context, id ulid.ULID) error {
	s.cache.Delete(id)
	if err := s.objectStore.delete(ctx, s.exportPath(id)); err != nil {
		if errors.Is(err, ErrExportNotFound) {
			return fmt.Errorf("%w: %s", ErrExportNotFound, id)
		}
		return err
	}
	s.opts.Log.Info("deleted export", "id", id)
	return nil
}

// Close releases the decoded export cache.
func (s *ExportStore) Close() {
	s.cache.Close()
}

func (s *ExportStore) exportPath(id ulid.ULID) string {
	return path.Join(exportDir, id.String()+exportSuffix)
}

func (s *ExportStore) parseID(location string) (ulid.ULID, error) {
	if path.Ext(location) != exportSuffix {
		return ulid.ULID{}, ErrInvalidExport
	}
	id, err := ulid.Parse(strings.TrimSuffix(path.Base(location), exportSuffix))
	if err != nil {
		return ulid.ULID{}, fmt.Errorf("%w: %s", ErrInvalidExport, err)
	}
	return id, nil
}

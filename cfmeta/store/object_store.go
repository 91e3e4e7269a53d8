package store

import (
	"bytes"
	"context"
	"io"
	"path"
	"slices"
	"time"

	"github.com/samber/mo"
	"github.com/thanos-io/objstore"
)

type ObjectMeta struct {
	// LastModified is the time the object was last modified.
	LastModified time.Time

	// Location is the path of the object
	Location string
}

type ObjectStore interface {
	putIfNotExists(ctx context.Context, path string, data []byte) error

	get(ctx context.Context, path string) ([]byte, error)

	list(ctx context.Context, path mo.Option[string]) ([]ObjectMeta, error)

	delete(ctx context.Context, path string) error
}

// DelegatingObjectStore resolves every path under rootPath of bucket.
type DelegatingObjectStore struct {
	rootPath string
	bucket   objstore.Bucket
}

func newDelegatingObjectStore(rootPath string, bucket objstore.Bucket) *DelegatingObjectStore {
	return &DelegatingObjectStore{rootPath, bucket}
}

// TODO: objstore has no conditional upload; two writers racing on one ID can
// both pass the Exists check.
func (d *DelegatingObjectStore) putIfNotExists(ctx context.Context, objPath string, data []byte) error {
	fullPath := path.Join(d.rootPath, objPath)
	exists, err := d.bucket.Exists(ctx, fullPath)
	if err != nil {
		return errRetryable(err, "during bucket exists check")
	}
	if exists {
		return ErrObjectExists
	}

	if err := d.bucket.Upload(ctx, fullPath, bytes.NewReader(data)); err != nil {
		return errRetryable(err, "during bucket upload")
	}
	return nil
}

// get returns ErrExportNotFound when the object does not exist.
func (d *DelegatingObjectStore) get(ctx context.Context, objPath string) ([]byte, error) {
	fullPath := path.Join(d.rootPath, objPath)
	reader, err := d.bucket.Get(ctx, fullPath)
	if err != nil {
		if d.bucket.IsObjNotFoundErr(err) {
			return nil, ErrExportNotFound
		}
		return nil, errRetryable(err, "during bucket get")
	}
	defer func() { _ = reader.Close() }()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errRetryable(err, "while reading data from bucket")
	}
	return data, nil
}

func (d *DelegatingObjectStore) list(ctx context.Context, objPath mo.Option[string]) ([]ObjectMeta, error) {
	fullPath := d.rootPath
	if p, ok := objPath.Get(); ok {
		fullPath = path.Join(d.rootPath, p)
	}

	objMetaList := make([]ObjectMeta, 0)
	iterFn := func(attrs objstore.IterObjectAttributes) error {
		lastModified, _ := attrs.LastModified()
		objMetaList = append(objMetaList, ObjectMeta{lastModified, attrs.Name})
		return nil
	}
	err := d.bucket.IterWithAttributes(ctx, fullPath, iterFn, objStoreIterOptions(d.bucket)...)
	if err != nil {
		return nil, errRetryable(err, "during bucket listing")
	}
	return objMetaList, nil
}

// delete returns ErrExportNotFound when the object does not exist. Some
// providers, filesystem among them, report success for a missing path, so
// existence is checked first.
func (d *DelegatingObjectStore) delete(ctx context.Context, objPath string) error {
	fullPath := path.Join(d.rootPath, objPath)
	exists, err := d.bucket.Exists(ctx, fullPath)
	if err != nil {
		return errRetryable(err, "during bucket exists check")
	}
	if !exists {
		return ErrExportNotFound
	}

	if err := d.bucket.Delete(ctx, fullPath); err != nil {
		if d.bucket.IsObjNotFoundErr(err) {
			return ErrExportNotFound
		}
		return errRetryable(err, "during bucket delete")
	}
	return nil
}

// objStoreIterOptions gets IterOptions supported by the storage provider
func objStoreIterOptions(bucket objstore.Bucket) []objstore.IterOption {
	iterOptions := make([]objstore.IterOption, 0)
	requiredOptions := []objstore.IterOption{objstore.WithRecursiveIter(), objstore.WithUpdatedAt()}

	for _, required := range requiredOptions {
		if slices.Contains(bucket.SupportedIterOptions(), required.Type) {
			iterOptions = append(iterOptions, required)
		}
	}
	return iterOptions
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/oklog/ulid/v2"
	"github.com/samber/mo"
	"github.com/thanos-io/objstore"
	"github.com/thanos-io/objstore/providers/filesystem"
	"go.uber.org/zap"

	"github.com/slatedb/cfmeta-go/cfmeta"
	"github.com/slatedb/cfmeta-go/cfmeta/logger"
	"github.com/slatedb/cfmeta-go/cfmeta/store"
	"github.com/slatedb/cfmeta-go/internal/config"
)

var errUsage = errors.New("usage: cfmeta-go [-config path] <demo|list|latest|show ID|delete ID>")

func main() {
	configPath := flag.String("config", "cfmeta.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer logger.Sync()

	if err := run(context.Background(), cfg, flag.Args()); err != nil {
		logger.Error("command failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	bucket, err := openBucket(cfg.Store)
	if err != nil {
		return err
	}
	defer func() { _ = bucket.Close() }()

	codec, err := cfg.Store.Codec()
	if err != nil {
		return err
	}
	opts := store.DefaultStoreOptions()
	opts.CompressionCodec = codec
	opts.CacheSize = cfg.Store.CacheSize
	exports := store.NewExportStore(cfg.Store.Root, bucket, opts)
	defer exports.Close()

	switch args[0] {
	case "demo":
		return demo(ctx, exports)
	case "list":
		return list(ctx, exports)
	case "latest":
		latest, err := exports.Latest(ctx)
		if err != nil {
			return err
		}
		info, ok := latest.Get()
		if !ok {
			logger.Info("no exports stored")
			return nil
		}
		return show(ctx, exports, info.ID)
	case "show", "delete":
		if len(args) != 2 {
			return errUsage
		}
		id, err := ulid.Parse(args[1])
		if err != nil {
			return fmt.Errorf("export id %q: %w", args[1], err)
		}
		if args[0] == "delete" {
			return exports.Delete(ctx, id)
		}
		return show(ctx, exports, id)
	default:
		return errUsage
	}
}

func openBucket(cfg config.StoreConfig) (objstore.Bucket, error) {
	if cfg.Bucket == "memory" {
		return objstore.NewInMemBucket(), nil
	}
	bucket, err := filesystem.NewBucket(cfg.Dir)
	if err != nil {
		return nil, err
	}
	return bucket, nil
}

// demo exports the metadata of a single file column family.
func demo(ctx context.Context, exports *store.ExportStore) error {
	md := cfmeta.NewExportImportFilesMetadata()
	defer func() { _ = md.Close() }()

	if err := md.SetDBComparatorName("leveldb.BytewiseComparator"); err != nil {
		return err
	}
	err := md.SetFiles([]cfmeta.LiveFile{{
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
	}})
	if err != nil {
		return err
	}

	id, err := exports.Write(ctx, md)
	if err != nil {
		return err
	}
	logger.Info("wrote export", zap.Stringer("id", id))
	fmt.Println(cfmeta.PrettyPrint(md.Snapshot()))
	return nil
}

func list(ctx context.Context, exports *store.ExportStore) error {
	infos, err := exports.List(ctx)
	if err != nil {
		return err
	}
	for _, info := range infos {
		fmt.Printf("%s\t%s\n", info.ID, info.LastModified.Format("2006-01-02T15:04:05Z07:00"))
	}
	return nil
}

// show opens the export through the engine, the way an import would.
func show(ctx context.Context, exports *store.ExportStore, id ulid.ULID) error {
	md, err := exports.Open(ctx, id, cfmeta.DefaultOptions())
	if err != nil {
		return err
	}
	defer func() { _ = md.Close() }()

	snapshot := md.Snapshot()
	if err := snapshot.Validate(); err != nil {
		logger.Warn("export has warnings", zap.Stringer("id", id), zap.Error(err))
	}
	fmt.Println(cfmeta.PrettyPrint(snapshot))
	return nil
}

// Package config holds the cfmeta-go command configuration, read from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/slatedb/cfmeta-go/internal/compress"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Logger LoggerConfig `yaml:"logger"`
	Store  StoreConfig  `yaml:"store"`
}

type LoggerConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `yaml:"level"`
}

type StoreConfig struct {
	// Bucket is "filesystem" or "memory".
	Bucket string `yaml:"bucket"`

	// Dir is the filesystem bucket directory.
	Dir string `yaml:"dir"`

	// Root is the path inside the bucket that exports are written under.
	Root string `yaml:"root"`

	// Compression names the codec used for new exports.
	Compression string `yaml:"compression"`

	CacheSize int `yaml:"cache_size"`
}

// Default returns a config that stores exports under ./data.
func Default() Config {
	return Config{
		Logger: LoggerConfig{
			Level: "info",
		},
		Store: StoreConfig{
			Bucket:      "filesystem",
			Dir:         "./data",
			Root:        "cfmeta",
			Compression: "snappy",
			CacheSize:   128,
		},
	}
}

// Load reads the YAML file at path over Default. A missing file yields
// Default unchanged.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: %s: %s", ErrInvalidConfig, path, err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch strings.ToLower(c.Logger.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: logger.level %q", ErrInvalidConfig, c.Logger.Level)
	}

	switch c.Store.Bucket {
	case "filesystem":
		if c.Store.Dir == "" {
			return fmt.Errorf("%w: store.dir is required for a filesystem bucket", ErrInvalidConfig)
		}
	case "memory":
	default:
		return fmt.Errorf("%w: store.bucket %q", ErrInvalidConfig, c.Store.Bucket)
	}

	if _, err := c.Store.Codec(); err != nil {
		return fmt.Errorf("%w: store.compression: %s", ErrInvalidConfig, err)
	}
	if c.Store.CacheSize <= 0 {
		return fmt.Errorf("%w: store.cache_size must be positive", ErrInvalidConfig)
	}
	return nil
}

// Codec returns the compression codec named by Compression.
func (s StoreConfig) Codec() (compress.Codec, error) {
	return compress.CodecFromString(s.Compression)
}

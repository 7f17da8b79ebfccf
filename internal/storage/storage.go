// Package storage is a string key/value store with the semantics of browser
// local storage, used to persist client state between runs.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	KindFile     = "file"
	KindSQLite   = "sqlite"
	KindRedis    = "redis"
	KindPostgres = "postgres"
)

type Storage interface {
	// GetItem reports ok=false when the key has never been set.
	GetItem(ctx context.Context, key string) (value string, ok bool, err error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
	Close() error
}

// Open selects a backend. For file and sqlite the dsn is a path; for redis
// and postgres it is a connection URL.
func Open(ctx context.Context, kind, dsn string) (Storage, error) {
	switch strings.ToLower(kind) {
	case KindFile:
		return NewFileStore(dsn), nil
	case KindSQLite, "":
		return NewSQLiteStore(dsn)
	case KindRedis:
		return NewRedisStore(ctx, dsn)
	case KindPostgres:
		return NewPostgresStore(ctx, dsn)
	default:
		return nil, fmt.Errorf("unknown storage kind %q", kind)
	}
}

// DefaultPath is where local backends keep their data.
func DefaultPath(kind string) string {
	name := "storage.db"
	if kind == KindFile {
		name = "storage.json"
	}
	return filepath.Join(userHome(), ".roaster", name)
}

func userHome() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

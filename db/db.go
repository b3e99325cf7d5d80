package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Storage drivers
const (
	DriverBadger = "badger"
	DriverSQLite = "sqlite"
	DriverFile   = "file"
)

var (
	// ErrUnknownDriver occurs when the configured storage driver is not supported
	ErrUnknownDriver = errors.New("unknown storage driver")
)

// KV is a string keyed, string valued store backed by one of the drivers
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Open the store for driver at path
func Open(driver, path string, log zerolog.Logger) (KV, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required for driver %s", driver)
	}

	var (
		kv  KV
		err error
	)

	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", DriverBadger:
		kv, err = NewBadger(path, log)
	case DriverSQLite, "sqlite3":
		kv, err = NewSQLite(path)
	case DriverFile:
		kv, err = NewFile(path)
	default:
		return nil, fmt.Errorf("%s: %w", driver, ErrUnknownDriver)
	}

	if err != nil {
		return nil, err
	}

	return kv, nil
}

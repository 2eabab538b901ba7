package storage

import (
	"fmt"
	"log/slog"
	"strings"
)

const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

type Options struct {
	Backend    string
	JSONPath   string
	SQLitePath string
	Logger     *slog.Logger
}

// Open returns the configured store and a func that releases it.
func Open(opts Options) (Store, func() error, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Backend)) {
	case "", BackendJSON:
		return NewJSONFileStore(opts.JSONPath, opts.Logger), func() error { return nil }, nil
	case BackendSQLite:
		s, err := OpenSQLite(opts.SQLitePath, opts.Logger)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
}

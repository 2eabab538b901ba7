package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/sandeepkv93/duetoday/internal/logging"
	"github.com/sandeepkv93/duetoday/internal/model"
)

// JSONFileStore keeps state in one human-diffable JSON file.
type JSONFileStore struct {
	path   string
	logger *slog.Logger
}

func NewJSONFileStore(path string, logger *slog.Logger) *JSONFileStore {
	return &JSONFileStore{path: strings.TrimSpace(path), logger: logging.OrDiscard(logger)}
}

func (s *JSONFileStore) Path() string { return s.path }

func (s *JSONFileStore) Load(ctx context.Context) (model.State, bool) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.DebugContext(ctx, "no state file", "path", s.path)
		} else {
			s.logger.WarnContext(ctx, "state file unreadable, treating as uninitialized", "path", s.path, "err", err)
		}
		return model.State{}, false
	}
	st, err := DecodeJSON(raw)
	if err != nil {
		s.logger.WarnContext(ctx, "state file malformed, treating as uninitialized", "path", s.path, "err", err)
		return model.State{}, false
	}
	s.logger.DebugContext(ctx, "state loaded", "path", s.path, "completions", len(st.Completions), "anchors", len(st.Anchors))
	return st, true
}

func (s *JSONFileStore) Save(ctx context.Context, st model.State) error {
	payload, err := EncodeJSON(st)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if err := writeFileAtomic(s.path, payload, 0o644); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, s.path, err)
	}
	s.logger.InfoContext(ctx, "state saved", "path", s.path, "completions", len(st.Completions))
	return nil
}

// writeFileAtomic writes through a temp file in the same directory so a
// failed write never leaves a truncated state file behind.
func writeFileAtomic(path string, data []byte, perm fs.FileMode) error {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}

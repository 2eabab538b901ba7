package storage

import (
	"context"
	"errors"

	"github.com/sandeepkv93/duetoday/internal/model"
)

var (
	ErrWrite          = errors.New("storage: write failed")
	ErrUnknownBackend = errors.New("storage: unknown backend")
)

// Store is the durable home of the completion record and rotation anchors.
//
// Load reports ok=false when there is nothing usable on disk: missing state
// and unparsable state are treated the same way, and neither is an error.
// Save replaces everything previously stored.
type Store interface {
	Load(ctx context.Context) (model.State, bool)
	Save(ctx context.Context, st model.State) error
}

package storage

import (
	"context"

	"github.com/sandeepkv93/duetoday/internal/model"
)

// MemoryStore keeps state in memory. SaveErr, when set, is returned by every
// Save without touching the stored state.
type MemoryStore struct {
	state   model.State
	has     bool
	Saves   int
	SaveErr error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// NewMemoryStoreWith returns a store that already holds st.
func NewMemoryStoreWith(st model.State) *MemoryStore {
	return &MemoryStore{state: st.Clone(), has: true}
}

func (m *MemoryStore) Load(context.Context) (model.State, bool) {
	if !m.has {
		return model.State{}, false
	}
	return m.state.Clone(), true
}

func (m *MemoryStore) Save(_ context.Context, st model.State) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	if err := st.Validate(); err != nil {
		return err
	}
	m.state = st.Clone()
	m.has = true
	m.Saves++
	return nil
}

package storage

import (
	"database/sql"
	"path/filepath"
	"testing"
)

func TestMigrateRoundTripCompatibility(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate-roundtrip.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := MigrateUp(db); err != nil {
		t.Fatalf("first migrate up failed: %v", err)
	}

	if err := MigrateDown(db); err != nil {
		t.Fatalf("migrate down failed: %v", err)
	}

	if err := MigrateUp(db); err != nil {
		t.Fatalf("second migrate up failed: %v", err)
	}

	store, err := NewSQLiteStore(db, nil)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	if err := store.Save(t.Context(), sampleState()); err != nil {
		t.Fatalf("save after roundtrip failed: %v", err)
	}

	got, ok := store.Load(t.Context())
	if !ok {
		t.Fatal("load after roundtrip failed")
	}
	if w, _ := got.Anchor("dragon_nest_start_week"); w != 10 {
		t.Fatalf("unexpected anchor after roundtrip: %d", w)
	}
}

package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(filepath.Join(dir, "history.json"))
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()

	if _, err := store.Get(ctx, "slot"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get on empty store = %v, want ErrNotFound", err)
	}

	if err := store.Set(ctx, "slot", []byte(`["a"]`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := store.Get(ctx, "slot")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != `["a"]` {
		t.Errorf("Get = %s, want [\"a\"]", got)
	}

	// Set is a full overwrite
	if err := store.Set(ctx, "slot", []byte(`[]`)); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	got, _ = store.Get(ctx, "slot")
	if string(got) != `[]` {
		t.Errorf("Get after overwrite = %s, want []", got)
	}
}

func TestFileStoreLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(filepath.Join(dir, "history.json"))
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	if err := store.Set(context.Background(), "slot", []byte("x")); err != nil {
		t.Fatalf("Set: %v", err)
	}

	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".tmp" {
			t.Errorf("temp file %s left behind", e.Name())
		}
	}
}

package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/matzehuels/fsgraph/pkg/snapshot"
)

func snap(id string, age time.Duration) *snapshot.Snapshot {
	return &snapshot.Snapshot{
		ID:        id,
		Path:      "/srv/" + id,
		CreatedAt: time.Now().UTC().Add(-age),
		Graph:     []byte(`{"nodes":[],"edges":[]}`),
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get(missing): err = %v, want ErrNotFound", err)
	}

	if err := s.Save(ctx, snap("a", time.Hour)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Save(ctx, snap("b", 0)); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Get(ctx, "a")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Path != "/srv/a" {
		t.Errorf("Path = %q", got.Path)
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("List returned %d snapshots", len(list))
	}
	if list[0].ID != "b" {
		t.Errorf("List order = [%s, %s], want newest first", list[0].ID, list[1].ID)
	}

	if err := s.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete: err = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreReplaces(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	first := snap("a", 0)
	if err := s.Save(ctx, first); err != nil {
		t.Fatal(err)
	}
	second := snap("a", 0)
	second.Path = "/elsewhere"
	if err := s.Save(ctx, second); err != nil {
		t.Fatal(err)
	}

	got, err := s.Get(ctx, "a")
	if err != nil {
		t.Fatal(err)
	}
	if got.Path != "/elsewhere" {
		t.Errorf("Save did not replace: Path = %q", got.Path)
	}
}

package cards

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "data", DBFileName))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_CreateGet(t *testing.T) {
	s := newTestStore(t)

	n, err := s.Create("", "# Groceries\nmilk\neggs")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if n.Title != "Groceries" {
		t.Errorf("title = %q, want Groceries", n.Title)
	}
	if len(n.ID) != len("nt-")+8 {
		t.Errorf("unexpected id %q", n.ID)
	}

	got, err := s.Get(n.ID)
	if err != nil || got == nil {
		t.Fatalf("Get: %v, %v", got, err)
	}
	if got.Content != n.Content || got.Pinned || got.Archived {
		t.Errorf("round trip = %+v", got)
	}

	missing, err := s.Get("nt-00000000")
	if err != nil || missing != nil {
		t.Errorf("Get missing = %v, %v", missing, err)
	}
}

func TestStore_ListFiltersArchivedAndDeleted(t *testing.T) {
	s := newTestStore(t)
	a, _ := s.Create("a", "a")
	b, _ := s.Create("b", "b")
	c, _ := s.Create("c", "c")

	if _, err := s.ToggleArchive(b.ID); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(c.ID); err != nil {
		t.Fatal(err)
	}

	active, err := s.List(false)
	if err != nil {
		t.Fatal(err)
	}
	if len(active) != 1 || active[0].ID != a.ID {
		t.Errorf("active = %v", active)
	}

	all, _ := s.List(true)
	if len(all) != 2 {
		t.Errorf("with archived = %d notes, want 2", len(all))
	}
}

func TestStore_TogglePin(t *testing.T) {
	s := newTestStore(t)
	n, _ := s.Create("x", "x")

	pinned, err := s.TogglePin(n.ID)
	if err != nil || !pinned {
		t.Fatalf("TogglePin = %v, %v", pinned, err)
	}
	got, _ := s.Get(n.ID)
	if !got.Pinned {
		t.Error("pin not persisted")
	}
	if pinned, _ = s.TogglePin(n.ID); pinned {
		t.Error("second toggle should unpin")
	}
}

func TestStore_MissingNote(t *testing.T) {
	s := newTestStore(t)
	n, _ := s.Create("x", "x")
	_ = s.Delete(n.ID)

	if _, err := s.TogglePin(n.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("TogglePin deleted: %v", err)
	}
	if err := s.Delete(n.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("double Delete: %v", err)
	}
	if err := s.UpdateContent("nt-ffffffff", "y"); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateContent missing: %v", err)
	}
}

func TestStore_NotePathAndUpdateContent(t *testing.T) {
	s := newTestStore(t)
	n, _ := s.Create("", "first\nbody")

	path, err := s.NotePath(n.ID)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Remove(path) })

	data, err := os.ReadFile(path)
	if err != nil || string(data) != "first\nbody" {
		t.Fatalf("temp file = %q, %v", data, err)
	}

	if err := s.UpdateContent(n.ID, "renamed\nnew body"); err != nil {
		t.Fatal(err)
	}
	got, _ := s.Get(n.ID)
	if got.Title != "renamed" || got.Content != "renamed\nnew body" {
		t.Errorf("after update = %+v", got)
	}
	if !got.UpdatedAt.After(n.UpdatedAt) && !got.UpdatedAt.Equal(n.UpdatedAt) {
		t.Errorf("updated_at went backwards: %v < %v", got.UpdatedAt, n.UpdatedAt)
	}
}

func TestTitleFromContent(t *testing.T) {
	tests := []struct{ in, want string }{
		{"hello\nworld", "hello"},
		{"## Heading", "Heading"},
		{"   ", "Untitled"},
		{"", "Untitled"},
	}
	for _, tt := range tests {
		if got := titleFromContent(tt.in); got != tt.want {
			t.Errorf("titleFromContent(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

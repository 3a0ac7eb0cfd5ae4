package cards

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"
)

func TestCoalescer_BatchesBurst(t *testing.T) {
	ch := make(chan ChangedMsg, 1)
	c := newCoalescer(50*time.Millisecond, ch)
	c.add("cards.db")
	c.add("cards.db-wal")
	c.add("cards.db")

	select {
	case msg := <-ch:
		slices.Sort(msg.Files)
		if !slices.Equal(msg.Files, []string{"cards.db", "cards.db-wal"}) {
			t.Errorf("files = %v", msg.Files)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no flush")
	}

	select {
	case msg := <-ch:
		t.Errorf("unexpected second flush %v", msg)
	case <-time.After(150 * time.Millisecond):
	}
}

func TestCoalescer_CloseCancels(t *testing.T) {
	ch := make(chan ChangedMsg, 1)
	c := newCoalescer(50*time.Millisecond, ch)
	c.add("cards.db")
	c.close()
	c.add("cards.db-wal")
	c.close()

	time.Sleep(150 * time.Millisecond)
	if msg, ok := <-ch; ok {
		t.Errorf("flush after close: %v", msg)
	}
}

func TestCoalescer_DefaultWindow(t *testing.T) {
	c := newCoalescer(0, nil)
	if c.window != defaultCoalesceWindow {
		t.Errorf("window = %v", c.window)
	}
}

func TestWatcher_ReportsDatabaseWrites(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, DBFileName)
	if err := os.WriteFile(db, nil, 0644); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(db, 20*time.Millisecond, nil)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(filepath.Join(dir, "unrelated.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(db, []byte("data"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case msg := <-w.Events():
		if !slices.Contains(msg.Files, DBFileName) {
			t.Errorf("files = %v", msg.Files)
		}
		if slices.Contains(msg.Files, "unrelated.txt") {
			t.Error("unrelated file reported")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change event")
	}

	w.Stop()
	w.Stop()
}

func TestWatcher_StopReleasesListener(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(filepath.Join(dir, DBFileName), 20*time.Millisecond, nil)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}

	done := make(chan bool)
	go func() {
		_, ok := <-w.Events()
		done <- ok
	}()

	w.Stop()
	select {
	case ok := <-done:
		if ok {
			t.Error("listener got an event instead of the channel closing")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("listener still blocked after Stop")
	}
}

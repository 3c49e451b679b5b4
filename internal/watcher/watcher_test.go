package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

type intakeRecorder struct {
	mu    sync.Mutex
	paths []string
}

func (r *intakeRecorder) record(path string) {
	r.mu.Lock()
	r.paths = append(r.paths, path)
	r.mu.Unlock()
}

func (r *intakeRecorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(20 * time.Millisecond)
	}
	return cond()
}

func TestWatcher_intakeOnCreate(t *testing.T) {
	dir := t.TempDir()
	rec := &intakeRecorder{}
	w := NewWatcher([]string{dir}, []string{".txt"}, false, rec.record, WithDebounce(50*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	path := filepath.Join(dir, "contract.txt")
	if err := os.WriteFile(path, []byte("contract body"), 0600); err != nil {
		t.Fatal(err)
	}

	if !waitFor(t, 2*time.Second, func() bool { return len(rec.snapshot()) >= 1 }) {
		t.Fatal("intake callback never fired")
	}
	if got := rec.snapshot()[0]; got != path {
		t.Errorf("intake path = %q, want %q", got, path)
	}
}

func TestWatcher_extensionFilter(t *testing.T) {
	dir := t.TempDir()
	rec := &intakeRecorder{}
	w := NewWatcher([]string{dir}, []string{".txt", ".pdf"}, false, rec.record, WithDebounce(50*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(filepath.Join(dir, "notes.md"), []byte("ignored"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "lease.txt"), []byte("taken"), 0600); err != nil {
		t.Fatal(err)
	}

	if !waitFor(t, 2*time.Second, func() bool { return len(rec.snapshot()) >= 1 }) {
		t.Fatal("intake callback never fired")
	}
	for _, p := range rec.snapshot() {
		if filepath.Ext(p) == ".md" {
			t.Errorf("unexpected intake for %q", p)
		}
	}
}

func TestWatcher_syncExistingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "existing.txt")
	if err := os.WriteFile(path, []byte("already here"), 0600); err != nil {
		t.Fatal(err)
	}

	rec := &intakeRecorder{}
	w := NewWatcher([]string{dir}, []string{".txt"}, false, rec.record)
	w.SyncExistingFiles()

	got := rec.snapshot()
	if len(got) != 1 || got[0] != path {
		t.Errorf("sync intake = %v", got)
	}
}

func TestWatcher_createsMissingRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "intake")
	w := NewWatcher([]string{root}, nil, false, func(string) {})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	if _, err := os.Stat(root); err != nil {
		t.Errorf("root not created: %v", err)
	}
	if got := w.Directories(); len(got) != 1 || got[0] != root {
		t.Errorf("Directories() = %v", got)
	}
}

func TestMatchExtension(t *testing.T) {
	tests := []struct {
		path string
		exts []string
		want bool
	}{
		{"a/b.txt", []string{".txt"}, true},
		{"a/b.TXT", []string{".txt"}, true},
		{"a/b.pdf", []string{"pdf"}, true},
		{"a/b.docx", []string{".txt", ".pdf"}, false},
		{"a/b.anything", nil, true},
	}
	for _, tt := range tests {
		if got := matchExtension(tt.path, tt.exts); got != tt.want {
			t.Errorf("matchExtension(%q, %v) = %v, want %v", tt.path, tt.exts, got, tt.want)
		}
	}
}

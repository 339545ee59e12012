package auth

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestStatic_TrimsToken(t *testing.T) {
	if got := Static("  abc \n").Token(); got != "abc" {
		t.Fatalf("Token = %q, want abc", got)
	}
	if got := Static("").Token(); got != "" {
		t.Fatalf("Token = %q, want empty", got)
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "token")
	if err := os.WriteFile(path, []byte(" secret\n"), 0o600); err != nil {
		t.Fatalf("write token: %v", err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile returned error: %v", err)
	}
	if got.Token() != "secret" {
		t.Fatalf("Token = %q, want secret", got.Token())
	}

	missing, err := ReadFile(filepath.Join(dir, "absent"))
	if err != nil {
		t.Fatalf("ReadFile missing returned error: %v", err)
	}
	if missing.Token() != "" {
		t.Fatalf("missing file Token = %q, want empty", missing.Token())
	}

	if _, err := ReadFile(dir); err == nil {
		t.Fatalf("expected error reading a directory")
	}
}

func TestNewFileWatcher_ReadsInitialToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	if err := os.WriteFile(path, []byte("first\n"), 0o600); err != nil {
		t.Fatalf("write token: %v", err)
	}
	w, err := NewFileWatcher(path, nil)
	if err != nil {
		t.Fatalf("NewFileWatcher returned error: %v", err)
	}
	defer func() { _ = w.Close() }()

	if got := w.Token(); got != "first" {
		t.Fatalf("Token = %q, want first", got)
	}
}

func TestNewFileWatcher_MissingFileIsSignedOut(t *testing.T) {
	w, err := NewFileWatcher(filepath.Join(t.TempDir(), "absent"), nil)
	if err != nil {
		t.Fatalf("NewFileWatcher returned error: %v", err)
	}
	defer func() { _ = w.Close() }()

	if got := w.Token(); got != "" {
		t.Fatalf("Token = %q, want empty", got)
	}
}

func TestNewFileWatcher_Errors(t *testing.T) {
	if _, err := NewFileWatcher("  ", nil); err == nil {
		t.Fatalf("expected error for empty path")
	}
	if _, err := NewFileWatcher(filepath.Join(t.TempDir(), "no", "such", "token"), nil); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}

func TestFileWatcher_PublishesChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "token")
	if err := os.WriteFile(path, []byte("one"), 0o600); err != nil {
		t.Fatalf("write token: %v", err)
	}
	w, err := NewFileWatcher(path, nil)
	if err != nil {
		t.Fatalf("NewFileWatcher returned error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	if err := os.WriteFile(path, []byte("two\n"), 0o600); err != nil {
		t.Fatalf("rewrite token: %v", err)
	}
	if got := waitToken(t, w.Changes()); got != "two" {
		t.Fatalf("change = %q, want two", got)
	}
	if got := w.Token(); got != "two" {
		t.Fatalf("Token = %q, want two", got)
	}

	// Unrelated files in the same directory are ignored.
	if err := os.WriteFile(filepath.Join(dir, "other"), []byte("x"), 0o600); err != nil {
		t.Fatalf("write other: %v", err)
	}

	if err := os.Remove(path); err != nil {
		t.Fatalf("remove token: %v", err)
	}
	if got := waitToken(t, w.Changes()); got != "" {
		t.Fatalf("change after remove = %q, want empty", got)
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if _, ok := <-w.Changes(); ok {
		t.Fatalf("Changes should be closed after Run returns")
	}
}

func TestFileWatcher_RenameSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "token")
	if err := os.WriteFile(path, []byte("before"), 0o600); err != nil {
		t.Fatalf("write token: %v", err)
	}
	w, err := NewFileWatcher(path, nil)
	if err != nil {
		t.Fatalf("NewFileWatcher returned error: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	tmp := filepath.Join(dir, "token.tmp")
	if err := os.WriteFile(tmp, []byte("after"), 0o600); err != nil {
		t.Fatalf("write tmp: %v", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		t.Fatalf("rename: %v", err)
	}
	if got := waitToken(t, w.Changes()); got != "after" {
		t.Fatalf("change = %q, want after", got)
	}

	cancel()
	<-done
}

func waitToken(t *testing.T, ch <-chan string) string {
	t.Helper()
	select {
	case tok, ok := <-ch:
		if !ok {
			t.Fatalf("changes channel closed")
		}
		return tok
	case <-time.After(3 * time.Second):
		t.Fatalf("timed out waiting for token change")
	}
	return ""
}

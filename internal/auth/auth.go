// Package auth supplies the bearer token used for catalog requests.
package auth

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Source yields the current bearer token. An empty token means signed out.
type Source interface {
	Token() string
}

// Static is a token that never changes, typically from config, env or flags.
type Static string

// Token returns the trimmed token.
func (s Static) Token() string { return strings.TrimSpace(string(s)) }

// ReadFile reads the token stored at path once. A missing file is signed out.
func ReadFile(path string) (Static, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read token file: %w", err)
	}
	return Static(strings.TrimSpace(string(data))), nil
}

// FileWatcher reads a token from a file and publishes every change to it.
//
// The parent directory is watched rather than the file so editors that save
// by rename, and tools that delete and recreate the file, are both seen.
// A removed or unreadable file yields an empty token.
type FileWatcher struct {
	path    string
	logger  *zap.Logger
	watcher *fsnotify.Watcher
	changes chan string

	mu    sync.RWMutex
	token string

	closeOnce sync.Once
}

// Ensure FileWatcher implements Source at compile time.
var _ Source = (*FileWatcher)(nil)

// NewFileWatcher reads the initial token from path and starts watching it.
// The caller must call Run or Close to release the watch.
func NewFileWatcher(path string, logger *zap.Logger) (*FileWatcher, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("token file path is empty")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve token file %q: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create token watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	fw := &FileWatcher{
		path:    abs,
		logger:  logger.Named("auth"),
		watcher: w,
		changes: make(chan string, 1),
	}
	fw.token = fw.read()
	return fw, nil
}

// Path returns the absolute path of the watched token file.
func (w *FileWatcher) Path() string { return w.path }

// Token returns the most recently read token.
func (w *FileWatcher) Token() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.token
}

// Changes delivers the new token each time the file content changes. The
// channel is closed when Run returns.
func (w *FileWatcher) Changes() <-chan string { return w.changes }

// Run processes file events until ctx is cancelled or the watcher fails.
func (w *FileWatcher) Run(ctx context.Context) error {
	defer close(w.changes)
	defer w.Close()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("token watcher error", zap.Error(err))
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename) {
				continue
			}
			token := w.read()
			// Writers truncate before writing; an empty file that still exists
			// is a transient state, not a sign-out.
			if token == "" && !event.Has(fsnotify.Remove|fsnotify.Rename) {
				continue
			}
			if !w.swap(token) {
				continue
			}
			w.logger.Info("token changed",
				zap.String("op", event.Op.String()),
				zap.Bool("present", token != ""),
			)
			select {
			case w.changes <- token:
			case <-ctx.Done():
				return nil
			}
		}
	}
}

// Close stops watching. It is safe to call more than once.
func (w *FileWatcher) Close() error {
	var err error
	w.closeOnce.Do(func() { err = w.watcher.Close() })
	return err
}

func (w *FileWatcher) swap(token string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if token == w.token {
		return false
	}
	w.token = token
	return true
}

func (w *FileWatcher) read() string {
	data, err := os.ReadFile(w.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			w.logger.Warn("read token file", zap.String("path", w.path), zap.Error(err))
		}
		return ""
	}
	return strings.TrimSpace(string(data))
}

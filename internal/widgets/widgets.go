// Package widgets serves the bundled widget HTML. Assets are compiled into
// the binary; a directory override exists for widget development so edits
// show up without a rebuild.
package widgets

import (
	"embed"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

//go:embed assets/*.html
var embedded embed.FS

// Store resolves widget names ("quiz") to their HTML.
type Store struct {
	dir    string // empty: embedded only
	logger *zap.Logger

	mu      sync.RWMutex
	cache   map[string]string
	watcher *fsnotify.Watcher
}

// NewStore creates a widget store. If dir is non-empty, files named
// <name>.html under it shadow the embedded assets and are re-read when
// they change on disk.
func NewStore(dir string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{
		dir:    dir,
		logger: logger,
		cache:  make(map[string]string),
	}
	if dir == "" {
		return s, nil
	}

	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("widget dir: %w", err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("widget watcher: %w", err)
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	s.watcher = w
	go s.watch()
	return s, nil
}

func (s *Store) watch() {
	for {
		select {
		case ev, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			name := strings.TrimSuffix(filepath.Base(ev.Name), ".html")
			s.mu.Lock()
			delete(s.cache, name)
			s.mu.Unlock()
			s.logger.Debug("widget invalidated", zap.String("widget", name))
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.logger.Warn("widget watcher error", zap.Error(err))
		}
	}
}

// HTML returns the widget markup for name.
func (s *Store) HTML(name string) (string, error) {
	s.mu.RLock()
	html, ok := s.cache[name]
	s.mu.RUnlock()
	if ok {
		return html, nil
	}

	if s.dir != "" {
		b, err := os.ReadFile(filepath.Join(s.dir, name+".html"))
		if err == nil {
			s.store(name, string(b))
			return string(b), nil
		}
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("read widget %s: %w", name, err)
		}
		// Fall through to the embedded copy.
	}

	b, err := embedded.ReadFile("assets/" + name + ".html")
	if err != nil {
		return "", fmt.Errorf("widget %q not bundled", name)
	}
	s.store(name, string(b))
	return string(b), nil
}

func (s *Store) store(name, html string) {
	s.mu.Lock()
	s.cache[name] = html
	s.mu.Unlock()
}

// Handler serves widgets over HTTP at <prefix>/<name>.html for clients
// that load them by URL instead of through MCP resources.
func (s *Store) Handler(prefix string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, prefix)
		name = strings.TrimSuffix(name, ".html")
		if name == "" || strings.ContainsAny(name, "/\\.") {
			http.NotFound(w, r)
			return
		}
		html, err := s.HTML(name)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		fmt.Fprint(w, html)
	})
}

// Close stops the dev-mode watcher if one is running.
func (s *Store) Close() error {
	if s.watcher != nil {
		return s.watcher.Close()
	}
	return nil
}

// Package filesystem loads plain-text documents from a local directory
// and watches it for changes.
package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/quaero-cli/internal/core/domain"
	"github.com/custodia-labs/quaero-cli/internal/core/ports/driven"
	"github.com/custodia-labs/quaero-cli/internal/logger"
)

// documentPattern selects the files the loader reads.
const documentPattern = "*.txt"

// Loader reads *.txt documents from a directory for ingestion.
type Loader struct {
	dir string

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	closed  bool
}

var _ driven.DocumentSource = (*Loader)(nil)

// New creates a loader for the given directory.
func New(dir string) *Loader {
	return &Loader{dir: dir}
}

// Dir returns the directory being loaded.
func (l *Loader) Dir() string {
	return l.dir
}

// Load reads every matching document, sorted by file name. Unreadable
// files are logged and skipped so one bad file cannot block ingestion.
// Returns domain.ErrNotFound when the directory does not exist.
func (l *Loader) Load(ctx context.Context) ([]domain.Document, error) {
	info, err := os.Stat(l.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: documents directory %s", domain.ErrNotFound, l.dir)
		}
		return nil, fmt.Errorf("reading documents directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", domain.ErrInvalidInput, l.dir)
	}

	// Glob returns paths in sorted order
	paths, err := filepath.Glob(filepath.Join(l.dir, documentPattern))
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	docs := make([]domain.Document, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		content, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("Skipping unreadable file %s: %v", path, err)
			continue
		}

		docs = append(docs, domain.Document{
			Content: string(content),
			Metadata: map[string]string{
				"source": filepath.Base(path),
				"type":   "text",
				"path":   path,
			},
		})
	}

	logger.Debug("Loaded %d documents from %s", len(docs), l.dir)
	return docs, nil
}

// Watch emits a change event for every create, write, or remove of a
// matching file in the directory. The channel closes when the context
// is cancelled or the loader is closed.
func (l *Loader) Watch(ctx context.Context) (<-chan domain.FileChange, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil, fmt.Errorf("loader is closed")
	}

	if _, err := os.Stat(l.dir); err != nil {
		return nil, fmt.Errorf("watch directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := watcher.Add(l.dir); err != nil {
		watcher.Close() //nolint:errcheck
		return nil, fmt.Errorf("watching %s: %w", l.dir, err)
	}
	l.watcher = watcher

	changes := make(chan domain.FileChange)
	go func() {
		defer close(changes)
		defer watcher.Close() //nolint:errcheck

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				change, relevant := translateEvent(event)
				if !relevant {
					continue
				}
				select {
				case changes <- change:
				case <-ctx.Done():
					return
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("Watcher error: %v", err)
			}
		}
	}()

	return changes, nil
}

// Close stops any active watcher. It is safe to call more than once.
func (l *Loader) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true

	if l.watcher != nil {
		return l.watcher.Close()
	}
	return nil
}

// translateEvent maps an fsnotify event to a document change. Events
// for non-document files report relevant=false.
func translateEvent(event fsnotify.Event) (domain.FileChange, bool) {
	matched, err := filepath.Match(documentPattern, filepath.Base(event.Name))
	if err != nil || !matched {
		return domain.FileChange{}, false
	}
	// Editors drop hidden swap files alongside documents
	if strings.HasPrefix(filepath.Base(event.Name), ".") {
		return domain.FileChange{}, false
	}

	switch {
	case event.Op.Has(fsnotify.Create):
		return domain.FileChange{Type: domain.ChangeCreated, Path: event.Name}, true
	case event.Op.Has(fsnotify.Write):
		return domain.FileChange{Type: domain.ChangeUpdated, Path: event.Name}, true
	case event.Op.Has(fsnotify.Remove), event.Op.Has(fsnotify.Rename):
		return domain.FileChange{Type: domain.ChangeDeleted, Path: event.Name}, true
	default:
		return domain.FileChange{}, false
	}
}

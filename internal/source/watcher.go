package source

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/rshade/listkit/internal/logging"
)

// ReloadFunc receives freshly loaded entries, or the error that prevented loading.
type ReloadFunc func(entries []Entry, err error)

// Watcher reloads a set of source files whenever one of them changes.
//
// Parent directories are watched rather than the files, so editors that
// replace a file by rename keep triggering reloads.
type Watcher struct {
	paths     []string
	watched   map[string]bool
	fsw       *fsnotify.Watcher
	debouncer *Debouncer
	onReload  ReloadFunc
	logger    zerolog.Logger
	done      chan struct{}
}

// NewWatcher creates a watcher for paths. Call Run to start delivering reloads.
func NewWatcher(paths []string, debounce time.Duration, onReload ReloadFunc) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, ErrNoPaths
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}

	w := &Watcher{
		paths:     paths,
		watched:   make(map[string]bool, len(paths)),
		fsw:       fsw,
		debouncer: NewDebouncer(debounce),
		onReload:  onReload,
		logger:    zerolog.Nop(),
		done:      make(chan struct{}),
	}

	dirs := map[string]bool{}
	for _, p := range paths {
		abs, absErr := filepath.Abs(p)
		if absErr != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("resolving %s: %w", p, absErr)
		}
		w.watched[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if addErr := fsw.Add(dir); addErr != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("watching %s: %w", dir, addErr)
		}
	}

	return w, nil
}

// Run delivers reloads until ctx is cancelled or Close is called.
func (w *Watcher) Run(ctx context.Context) {
	w.logger = logging.ComponentLogger(*logging.FromContext(ctx), "watcher")
	defer close(w.done)

	for {
		select {
		case <-ctx.Done():
			w.debouncer.Cancel()
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				w.debouncer.Cancel()
				return
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("source changed")
			w.debouncer.Trigger(func() { w.reload(ctx) })
		case err, ok := <-w.fsw.Errors:
			if !ok {
				w.debouncer.Cancel()
				return
			}
			w.logger.Warn().Err(err).Msg("file watcher error")
		}
	}
}

// Close stops watching. A running Run returns once the event channels close.
func (w *Watcher) Close() error {
	err := w.fsw.Close()
	w.debouncer.Cancel()
	return err
}

// Done is closed when Run returns. It never closes if Run was not started.
func (w *Watcher) Done() <-chan struct{} {
	return w.done
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return w.watched[abs]
}

func (w *Watcher) reload(ctx context.Context) {
	entries, err := LoadAll(ctx, w.paths)
	if err != nil {
		w.logger.Warn().Err(err).Msg("reloading sources failed")
	} else {
		w.logger.Info().Int("entries", len(entries)).Msg("sources reloaded")
	}
	w.onReload(entries, err)
}

package load

import (
	"io"
	"log/slog"

	"github.com/fsnotify/fsnotify"

	"github.com/syssam/fieldgate/schema"
)

// Watcher keeps a registry in sync with a definition directory.
type Watcher struct {
	dir    string
	reg    *schema.Registry
	fw     *fsnotify.Watcher
	logger *slog.Logger
	done   chan struct{}
}

// WatchOption configures a Watcher.
type WatchOption func(*Watcher)

// WithWatchLogger sets the logger for reload events and failures. The
// default discards them.
func WithWatchLogger(l *slog.Logger) WatchOption {
	return func(w *Watcher) {
		w.logger = l
	}
}

// Watch loads dir into reg and reloads it whenever a definition file
// changes. Reloads are all-or-nothing: when any file fails to parse or
// the compiled set fails validation, the registry keeps its previous
// models and the failure is logged. The initial load is synchronous and
// its error is returned.
func Watch(dir string, reg *schema.Registry, opts ...WatchOption) (*Watcher, error) {
	w := &Watcher{
		dir:    dir,
		reg:    reg,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	if err := w.reload(); err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, err
	}
	w.fw = fw
	go w.loop()
	return w, nil
}

// Close stops watching. The registry keeps its last loaded models.
func (w *Watcher) Close() error {
	err := w.fw.Close()
	<-w.done
	return err
}

func (w *Watcher) loop() {
	defer close(w.done)
	for {
		select {
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if !ev.Op.Has(fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename) {
				continue
			}
			if !definitionFile(ev.Name) {
				continue
			}
			if err := w.reload(); err != nil {
				w.logger.Error("definition reload failed", "dir", w.dir, "error", err)
				continue
			}
			w.logger.Info("definitions reloaded", "dir", w.dir, "models", w.reg.Len())
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.logger.Error("definition watch error", "dir", w.dir, "error", err)
		}
	}
}

// reload compiles the directory into a fresh registry and swaps the
// models in only when the whole set is valid.
func (w *Watcher) reload() error {
	next, err := Dir(w.dir)
	if err != nil {
		return err
	}
	w.reg.Reset(next.Models()...)
	return nil
}

// Package watcher observes the config files of the last successful
// resolution pass and triggers a new pass when any of them changes.
package watcher

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/solgo-dev/solgo/internal/logging"
)

// Watcher invokes a callback whenever a watched config file is written,
// created, renamed or removed. Directories are watched rather than the
// files themselves so that deleting and recreating a config file keeps
// being observed.
type Watcher struct {
	fsw      *fsnotify.Watcher
	onChange func(path string)

	mu    sync.Mutex
	files map[string]bool
	done  chan struct{}
}

// New creates a watcher calling onChange with the path of each changed
// config file. Call Watch to set the file list and Close to stop.
func New(onChange func(path string)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		fsw:      fsw,
		onChange: onChange,
		files:    make(map[string]bool),
		done:     make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Watch replaces the watched file set, typically with the Sources of
// the latest successful pass.
func (w *Watcher) Watch(files []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, dir := range w.fsw.WatchList() {
		_ = w.fsw.Remove(dir)
	}
	w.files = make(map[string]bool, len(files))

	dirs := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			continue
		}
		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := w.fsw.Add(dir); err != nil {
			return err
		}
	}
	return nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	err := w.fsw.Close()
	<-w.done
	return err
}

func (w *Watcher) run() {
	defer close(w.done)
	log := logging.For("watcher")
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			abs, err := filepath.Abs(ev.Name)
			if err != nil {
				continue
			}
			w.mu.Lock()
			watched := w.files[abs]
			w.mu.Unlock()
			if watched {
				log.Debug().Str("path", abs).Str("op", ev.Op.String()).Msg("config file changed")
				w.onChange(abs)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Warn().Err(err).Msg("watch error")
		}
	}
}

package prefabs

import (
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher collects the spec and script files that changed on disk. The game
// polls it once per frame; repeated saves of one file collapse into a single
// entry.
type Watcher struct {
	fs   *fsnotify.Watcher
	done chan struct{}
	once sync.Once

	mu      sync.Mutex
	changed map[string]struct{}
	err     error
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}

	w := &Watcher{fs: fw, done: make(chan struct{}), changed: make(map[string]struct{})}
	go w.collect()
	return w, nil
}

// Poll returns the changed files in name order and the last watch error,
// then forgets both.
func (w *Watcher) Poll() ([]string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	names := make([]string, 0, len(w.changed))
	for name := range w.changed {
		names = append(names, name)
	}
	slices.Sort(names)
	clear(w.changed)

	err := w.err
	w.err = nil
	return names, err
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		err = w.fs.Close()
		<-w.done
	})
	return err
}

func (w *Watcher) collect() {
	defer close(w.done)
	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if ev.Op == fsnotify.Chmod || !reloadable(ev.Name) {
				continue
			}
			w.mu.Lock()
			w.changed[ev.Name] = struct{}{}
			w.mu.Unlock()
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.mu.Lock()
			w.err = err
			w.mu.Unlock()
		}
	}
}

// reloadable reports whether a change to path affects the sandbox.
func reloadable(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".tengo":
		return true
	}
	return false
}

package dictionary

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// Watcher unloads file-backed dictionaries when their word list changes on
// disk, so the next query reads the new contents. Appends made by the
// dictionary itself are recognised and ignored.
type Watcher struct {
	watcher *fsnotify.Watcher
	mu      sync.Mutex
	targets map[string][]*Dictionary
	dirs    map[string]bool
	done    chan struct{}
	wg      sync.WaitGroup
}

// NewWatcher creates an idle watcher.
func NewWatcher() (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	return &Watcher{
		watcher: fw,
		targets: make(map[string][]*Dictionary),
		dirs:    make(map[string]bool),
		done:    make(chan struct{}),
	}, nil
}

func watchKey(path string) string {
	return strings.ToLower(filepath.Clean(path))
}

// Watch registers d. Its resource must be a FileResource. The containing
// directory is watched so editors that replace the file are noticed.
func (w *Watcher) Watch(d *Dictionary) error {
	fr, ok := d.Resource().(*FileResource)
	if !ok {
		return fmt.Errorf("dictionary %s is not backed by a file", d.Name())
	}
	abs, err := filepath.Abs(fr.Path())
	if err != nil {
		return err
	}
	dir := filepath.Dir(abs)

	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.dirs[dir] {
		if err := w.watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		w.dirs[dir] = true
	}
	key := watchKey(abs)
	w.targets[key] = append(w.targets[key], d)
	log.Debugf("Watching %s for dictionary %s", abs, d.Name())
	return nil
}

// Start handles events in the background until Close.
func (w *Watcher) Start() {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for {
			select {
			case <-w.done:
				return
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				w.handle(event)
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				log.Warnf("File watcher error: %v", err)
			}
		}
	}()
}

func (w *Watcher) handle(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}
	w.mu.Lock()
	targets := w.targets[watchKey(event.Name)]
	w.mu.Unlock()

	for _, d := range targets {
		if event.Op == fsnotify.Write {
			if info, err := os.Stat(event.Name); err == nil && d.ownWrite(info.Size()) {
				continue
			}
		}
		log.Debugf("Word list %s changed (%s), unloading %s", event.Name, event.Op, d.Name())
		d.Unload()
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	err := w.watcher.Close()
	w.wg.Wait()
	return err
}

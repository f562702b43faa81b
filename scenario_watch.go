package main

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ScenarioWatcher reports debounced changes to a scenario file so the server
// can rebuild the terrain and clear the path cache. The engine never notices
// cost-landscape changes on its own; this watcher is the caller that owns
// the explicit invalidation.
type ScenarioWatcher struct {
	watcher  *fsnotify.Watcher
	Events   chan string
	Errors   chan error
	fileName string
	closeCh  chan struct{}
	once     sync.Once
}

// NewScenarioWatcher watches the directory containing path. Watching the
// directory rather than the file survives editors that replace the file on
// save.
func NewScenarioWatcher(path string) (*ScenarioWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		_ = w.Close()
		return nil, err
	}

	sw := &ScenarioWatcher{
		watcher:  w,
		Events:   make(chan string, 16),
		Errors:   make(chan error, 1),
		fileName: filepath.Base(path),
		closeCh:  make(chan struct{}),
	}
	go sw.run()
	return sw, nil
}

// Close shuts the watcher down. Safe to call more than once.
func (sw *ScenarioWatcher) Close() error {
	var err error
	sw.once.Do(func() {
		close(sw.closeCh)
		err = sw.watcher.Close()
		close(sw.Events)
		close(sw.Errors)
	})
	return err
}

func (sw *ScenarioWatcher) run() {
	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-sw.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !sw.isScenarioFile(event.Name) {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < 100*time.Millisecond {
				continue
			}
			last[event.Name] = now
			sw.Events <- event.Name
		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return
			}
			sw.Errors <- err
		case <-sw.closeCh:
			return
		}
	}
}

func (sw *ScenarioWatcher) isScenarioFile(path string) bool {
	if filepath.Base(path) != sw.fileName {
		return false
	}
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

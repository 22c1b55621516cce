package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce is how long a file must stay quiet before it is reloaded.
const reloadDebounce = 100 * time.Millisecond

// Watcher reloads a config file whenever it changes on disk.
// The parent directory is watched so atomic rename-on-save is seen.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	Configs chan OverworldConfig
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
	done    sync.WaitGroup
}

// NewWatcher starts watching path.
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, err
	}

	watcher := &Watcher{
		path:    abs,
		watcher: w,
		Configs: make(chan OverworldConfig, 1),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	watcher.done.Add(1)
	go watcher.run()
	return watcher, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Close stops the watcher and closes its channels.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		w.done.Wait()
		close(w.Configs)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) run() {
	defer w.done.Done()

	// Reload once events have been quiet for reloadDebounce.
	var timer *time.Timer
	var reload <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(reloadDebounce)
			} else {
				timer.Reset(reloadDebounce)
			}
			reload = timer.C
		case <-reload:
			reload = nil
			cfg, err := LoadFile(w.path)
			if err != nil {
				w.sendErr(err)
				continue
			}
			// Keep only the newest config if the consumer is behind.
			select {
			case <-w.Configs:
			default:
			}
			select {
			case w.Configs <- cfg:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.sendErr(err)
		case <-w.closeCh:
			return
		}
	}
}

func (w *Watcher) sendErr(err error) {
	select {
	case w.Errors <- err:
	default:
	}
}

package daemon

import (
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// DefaultReloadDebounce is how long the watcher waits for a burst of writes
// to settle before reloading.
const DefaultReloadDebounce = 500 * time.Millisecond

// ConfigWatcher reloads the configuration file when it changes and hands
// each valid result to an apply callback.
type ConfigWatcher struct {
	path     string
	debounce time.Duration
	apply    func(*config.Config)
	logger   *slog.Logger

	watcher  *fsnotify.Watcher
	done     chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// NewConfigWatcher creates a watcher for the configuration file at path.
func NewConfigWatcher(path string, debounce time.Duration, apply func(*config.Config), logger *slog.Logger) (*ConfigWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to resolve config path").
			WithContext("path", path).Build()
	}
	if debounce <= 0 {
		debounce = DefaultReloadDebounce
	}
	return &ConfigWatcher{
		path:     abs,
		debounce: debounce,
		apply:    apply,
		logger:   logger,
		done:     make(chan struct{}),
	}, nil
}

// Start watches the directory holding the file. Editors that replace the
// file on save would detach a watch on the file itself.
func (cw *ConfigWatcher) Start() error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.WrapError(err, errors.CategoryRuntime, "failed to create file watcher").Build()
	}
	if err := w.Add(filepath.Dir(cw.path)); err != nil {
		_ = w.Close()
		return errors.WrapError(err, errors.CategoryRuntime, "failed to watch config directory").
			WithContext("path", filepath.Dir(cw.path)).Build()
	}
	cw.watcher = w

	cw.wg.Add(1)
	go cw.loop()
	cw.logger.Info("Watching configuration file", logfields.File(cw.path))
	return nil
}

// Stop ends watching. It is safe to call more than once.
func (cw *ConfigWatcher) Stop() error {
	var err error
	cw.stopOnce.Do(func() {
		close(cw.done)
		if cw.watcher != nil {
			err = cw.watcher.Close()
		}
		cw.wg.Wait()
	})
	return err
}

func (cw *ConfigWatcher) loop() {
	defer cw.wg.Done()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-cw.done:
			return
		case ev, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != cw.path {
				continue
			}
			switch {
			case ev.Has(fsnotify.Write), ev.Has(fsnotify.Create):
				if timer == nil {
					timer = time.NewTimer(cw.debounce)
				} else {
					timer.Reset(cw.debounce)
				}
				fire = timer.C
			case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
				cw.logger.Warn("Configuration file removed; keeping current settings", logfields.File(ev.Name))
			}
		case <-fire:
			fire = nil
			cw.reload()
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			cw.logger.Error("Config watcher error", logfields.Error(err))
		}
	}
}

func (cw *ConfigWatcher) reload() {
	cfg, err := config.Load(cw.path)
	if err != nil {
		cw.logger.Error("Failed to reload configuration; keeping current settings",
			logfields.File(cw.path), logfields.Error(err))
		return
	}
	cw.apply(cfg)
}

package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	mdwerror "github.com/msto63/hcmd/foundation/core/error"
	mdwlog "github.com/msto63/hcmd/foundation/core/log"
)

// reloadDelay collapses the burst of events an editor save produces
const reloadDelay = 100 * time.Millisecond

// ChangeHandler receives a configuration that loaded and validated
type ChangeHandler func(cfg *Config)

// Watcher reloads a configuration file whenever it changes. Invalid
// versions are logged and skipped; the handler only sees valid configs.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	onChange ChangeHandler
	logger   *mdwlog.Logger

	done chan struct{}
	wg   sync.WaitGroup
}

// Watch starts watching path. The directory is watched rather than the file
// so that editors replacing the file by rename are noticed.
func Watch(path string, onChange ChangeHandler, logger *mdwlog.Logger) (*Watcher, error) {
	if path == "" {
		return nil, mdwerror.New("file path required for watching").
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("config.Watch")
	}
	if logger == nil {
		logger = mdwlog.GetDefault()
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to resolve config path").
			WithCode(mdwerror.CodeConfigError).
			WithOperation("config.Watch")
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to create file watcher").
			WithCode(mdwerror.CodeConfigError).
			WithOperation("config.Watch")
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, mdwerror.Wrap(err, "failed to watch config directory").
			WithCode(mdwerror.CodeConfigError).
			WithOperation("config.Watch").
			WithDetail("path", abs)
	}

	w := &Watcher{
		path:     abs,
		watcher:  fw,
		onChange: onChange,
		logger:   logger.WithFields(mdwlog.Fields{"component": "config-watch", "path": abs}),
		done:     make(chan struct{}),
	}

	w.wg.Add(1)
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	defer w.wg.Done()

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(reloadDelay)
			} else {
				timer.Reset(reloadDelay)
			}
			fire = timer.C

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.WarnWithErr("config watcher error", err)

		case <-fire:
			fire = nil
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		w.logger.LogError(mdwerror.Wrap(err, "config reload skipped"))
		return
	}

	w.logger.Info("config reloaded")
	if w.onChange != nil {
		w.onChange(cfg)
	}
}

// Path returns the watched file
func (w *Watcher) Path() string {
	return w.path
}

// Close stops watching and waits for the watch loop to end
func (w *Watcher) Close() error {
	close(w.done)
	err := w.watcher.Close()
	w.wg.Wait()
	return err
}

package config

import (
	"path/filepath"

	log "charm.land/log/v2"
	"github.com/fsnotify/fsnotify"
)

// Watch reloads the config file whenever it changes and delivers the result
// on the returned channel. Parse failures keep the previous options and are
// logged. The watcher stops when the done channel closes.
func Watch(path string, done <-chan struct{}) (<-chan *Options, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the directory: editors replace the file on save, which drops
	// a watch on the file itself.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, err
	}

	out := make(chan *Options, 1)
	go func() {
		defer watcher.Close()
		defer close(out)
		for {
			select {
			case <-done:
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != filepath.Clean(path) {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
					continue
				}
				opts, err := LoadFrom(path)
				if err != nil {
					log.Warn("config reload failed", "err", err)
					continue
				}
				select {
				case out <- opts:
				case <-done:
					return
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warn("config watcher error", "err", err)
			}
		}
	}()
	return out, nil
}

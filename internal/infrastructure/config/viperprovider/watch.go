package viperprovider

import (
	"log"

	"github.com/fsnotify/fsnotify"
)

// Watch supplements SIGHUP-triggered reload with automatic reload on file
// change, following the same reload path so both triggers are
// indistinguishable to the Supervisor. It runs until the watcher's
// underlying fsnotify.Watcher is closed.
func Watch(path string, logger *log.Logger, onChange func()) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(path); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	if logger == nil {
		logger = log.Default()
	}

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
					logger.Printf("config: detected change to %s, reloading", path)
					onChange()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Printf("config: watch error: %v", err)
			}
		}
	}()

	return watcher, nil
}

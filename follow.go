package main

import (
	"log"
	"path/filepath"
	"time"

	"github.com/howeyc/fsnotify"

	"github.com/nf/regmon/monitor"
)

// follow watches the dump file's directory and reloads the file when
// it changes, after a short debounce so editors that write in several
// steps trigger a single reload.
func follow(m *monitor.Monitor, file string) error {
	file = filepath.Clean(file)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Watch(filepath.Dir(file)); err != nil {
		return err
	}

	var reload <-chan time.Time
	for {
		select {
		case <-reload:
			reload = nil
			if err := loadDump(m, file); err != nil {
				log.Printf("follow: %v", err)
				break
			}
			log.Printf("follow: reloaded %s", filepath.Base(file))
		case ev := <-watcher.Event:
			if ev.Name == file && !ev.IsAttrib() {
				reload = time.After(100 * time.Millisecond)
			}
		case err := <-watcher.Error:
			log.Printf("follow: watcher: %v", err)
		}
	}
}

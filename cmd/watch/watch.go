package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watch runs do once immediately, then again after file changes under root
// settle. Hidden directories like .git are not watched.
func watch(ctx context.Context, root string, do func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	root = filepath.Clean(root)
	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(info.Name(), ".") {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
	if err != nil {
		watcher.Close()
		return err
	}

	go func() {
		timer := time.NewTimer(0) // fire watch right away
		defer timer.Stop()

		const debounce = 2 * time.Second
		for {
			select {
			case <-timer.C:
				log.Println("Refreshing link manifest...")
				if err := do(); err != nil {
					log.Println("Error refreshing link manifest:", err)
				}
			case <-ctx.Done():
				watcher.Close()
				return
			case event := <-watcher.Events:
				switch {
				case event.Op&fsnotify.Write == fsnotify.Write,
					event.Op&fsnotify.Create == fsnotify.Create,
					event.Op&fsnotify.Remove == fsnotify.Remove:
					timer.Reset(debounce)
				}
			case err := <-watcher.Errors:
				log.Println("error:", err)
			}
		}
	}()
	return nil
}

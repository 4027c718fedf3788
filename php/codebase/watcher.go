package codebase

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileWatcher polls the codebase root and keeps the index current as PHP
// sources are created, rewritten, or deleted on disk.
type FileWatcher struct {
	codebase     *Codebase
	stopCh       chan struct{}
	pollInterval time.Duration
	modTimes     map[string]time.Time
}

func NewFileWatcher(c *Codebase) *FileWatcher {
	return &FileWatcher{
		codebase:     c,
		stopCh:       make(chan struct{}),
		pollInterval: 1 * time.Second,
		modTimes:     make(map[string]time.Time),
	}
}

func (w *FileWatcher) Start() {
	go w.run()
}

func (w *FileWatcher) Stop() {
	close(w.stopCh)
}

func (w *FileWatcher) run() {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.scan()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.scan()
		}
	}
}

func (w *FileWatcher) scan() {
	currentFiles := make(map[string]bool)

	filepath.Walk(w.codebase.RootDir(), func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if strings.HasPrefix(info.Name(), ".") || info.Name() == "vendor" {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".php" {
			return nil
		}

		currentFiles[path] = true

		lastMod, known := w.modTimes[path]
		if !known || info.ModTime().After(lastMod) {
			w.modTimes[path] = info.ModTime()
			w.codebase.ScanFile(path)
		}
		return nil
	})

	for path := range w.modTimes {
		if !currentFiles[path] {
			delete(w.modTimes, path)
			w.codebase.RemoveFile(path)
		}
	}
}

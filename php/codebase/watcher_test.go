package codebase

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileWatcherDetectsNewAndDeletedFiles(t *testing.T) {
	dir := t.TempDir()

	c := New(dir)
	if err := c.ScanAll(); err != nil {
		t.Fatal(err)
	}
	w := NewFileWatcher(c)
	w.scan()

	path := filepath.Join(dir, "Store.php")
	writeFile(t, path, ifaceSource)
	w.scan()
	if c.FindClass("Acme\\Store") == nil {
		t.Error("FindClass after create = nil, want hit")
	}

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	w.scan()
	if c.FindClass("Acme\\Store") != nil {
		t.Error("FindClass after delete != nil, want nil")
	}
}

func TestFileWatcherDetectsModifiedFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.php")
	writeFile(t, path, "<?php\nclass A {}\n")

	c := New(dir)
	if err := c.ScanAll(); err != nil {
		t.Fatal(err)
	}
	w := NewFileWatcher(c)
	w.scan()

	writeFile(t, path, "<?php\nclass B {}\n")
	// Force a newer mtime so the rewrite registers regardless of
	// filesystem timestamp granularity.
	later := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatal(err)
	}
	w.scan()

	if c.FindClass("A") != nil {
		t.Error("FindClass(A) after rewrite != nil, want nil")
	}
	if c.FindClass("B") == nil {
		t.Error("FindClass(B) after rewrite = nil, want hit")
	}
}

func TestFileWatcherStartStop(t *testing.T) {
	dir := t.TempDir()

	c := New(dir)
	if err := c.ScanAll(); err != nil {
		t.Fatal(err)
	}
	w := NewFileWatcher(c)
	w.pollInterval = 10 * time.Millisecond
	w.Start()
	defer w.Stop()

	writeFile(t, filepath.Join(dir, "Store.php"), ifaceSource)

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if c.FindClass("Acme\\Store") != nil {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("watcher never indexed the new file")
}

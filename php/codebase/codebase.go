package codebase

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/dhamidi/phint/php"
	"github.com/dhamidi/phint/php/typehint"
)

type Codebase struct {
	mu      sync.RWMutex
	rootDir string
	files   map[string]*FileInfo
	index   *php.Index
}

type FileInfo struct {
	Path    string
	Content []byte
	Model   *php.FileModel
}

func New(rootDir string) *Codebase {
	return &Codebase{
		rootDir: rootDir,
		files:   make(map[string]*FileInfo),
		index:   php.NewIndex(nil, nil),
	}
}

func (c *Codebase) RootDir() string {
	return c.rootDir
}

func (c *Codebase) ScanAll() error {
	return filepath.Walk(c.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			return nil
		}
		if filepath.Ext(path) == ".php" {
			c.ScanFile(path)
		}
		return nil
	})
}

func (c *Codebase) ScanFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return c.UpdateFile(path, content)
}

func (c *Codebase) UpdateFile(path string, content []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.files[path] = &FileInfo{
		Path:    path,
		Content: content,
		Model:   php.ParseFile(content, filepath.Base(path)),
	}

	c.rebuildIndexLocked()
	return nil
}

func (c *Codebase) rebuildIndexLocked() {
	var classes []*php.ClassModel
	var functions []*php.FunctionModel
	for _, f := range c.files {
		if f.Model == nil {
			continue
		}
		classes = append(classes, f.Model.Classes...)
		functions = append(functions, f.Model.Functions...)
	}
	c.index = php.NewIndex(classes, functions)
}

func (c *Codebase) RemoveFile(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.files, path)
	c.rebuildIndexLocked()
}

func (c *Codebase) GetFile(path string) *FileInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.files[path]
}

// Index returns the current project-wide symbol index. The returned index
// is an immutable snapshot; edits after this call build a fresh one.
func (c *Codebase) Index() *php.Index {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.index
}

func (c *Codebase) AllClasses() []*php.ClassModel {
	return c.Index().Classes()
}

func (c *Codebase) FindClass(name string) *php.ClassModel {
	return c.Index().Class(name)
}

// Rewrite runs the type-hint rewriter over one tracked file against the
// project-wide index, so inherited documentation from other files applies.
func (c *Codebase) Rewrite(path string, config typehint.Config) (string, []typehint.Edit, bool) {
	c.mu.RLock()
	f := c.files[path]
	index := c.index
	c.mu.RUnlock()

	if f == nil {
		return "", nil, false
	}
	out, edits := typehint.RewriteSource(f.Content, filepath.Base(path), index, config)
	return out, edits, true
}

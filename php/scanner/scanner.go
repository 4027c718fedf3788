// Package scanner runs type-hint rewrites over whole directory trees in the
// background, tracking per-job progress.
package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/phint/php"
	"github.com/dhamidi/phint/php/typehint"
)

var log = commonlog.GetLogger("phint.scanner")

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

type Request struct {
	ID        string
	Path      string   // directory to walk
	Files     []string // explicit file list, used when Path is empty
	Config    typehint.Config
	Write     bool // write rewritten files back in place
	CreatedAt time.Time
}

// FileResult is the outcome for one source file.
type FileResult struct {
	Path    string
	Changed bool
	Hints   []typehint.Edit
	Output  string // rewritten source, kept only for dry runs
	Error   string
}

type Result struct {
	ID        string
	Status    Status
	Request   Request
	Files     []FileResult
	Error     string
	Errors    []string
	StartedAt time.Time
	EndedAt   time.Time
	Progress  int
	Total     int
}

func (s *Result) ProgressPercent() int {
	if s.Total == 0 {
		return 0
	}
	return (s.Progress * 100) / s.Total
}

// ChangedCount returns how many files received at least one hint.
func (s *Result) ChangedCount() int {
	n := 0
	for _, f := range s.Files {
		if f.Changed {
			n++
		}
	}
	return n
}

type Scanner struct {
	mu       sync.RWMutex
	scans    map[string]*Result
	requests chan Request
	nextID   int
}

func New() *Scanner {
	s := &Scanner{
		scans:    make(map[string]*Result),
		requests: make(chan Request, 100),
	}
	go s.run()
	return s
}

func (s *Scanner) run() {
	for req := range s.requests {
		s.processScan(req)
	}
}

func (s *Scanner) processScan(req Request) {
	s.mu.Lock()
	result := s.scans[req.ID]
	result.Status = StatusInProgress
	result.StartedAt = time.Now()
	s.mu.Unlock()

	files := req.Files
	var errors []string
	if req.Path != "" {
		files, errors = collectFiles(req.Path)
	}
	sort.Strings(files)

	s.mu.Lock()
	s.scans[req.ID].Total = len(files)
	s.mu.Unlock()

	log.Infof("scan %s: %d files", req.ID, len(files))

	index, indexErrors := buildIndex(files)
	errors = append(errors, indexErrors...)

	var results []FileResult
	for i, file := range files {
		results = append(results, rewriteFile(file, index, req))

		s.mu.Lock()
		s.scans[req.ID].Progress = i + 1
		s.mu.Unlock()
	}
	for _, fr := range results {
		if fr.Error != "" {
			errors = append(errors, fr.Error)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	result.EndedAt = time.Now()
	result.Files = results
	result.Errors = errors
	if len(errors) > 0 && len(results) == 0 {
		result.Status = StatusFailed
		result.Error = errors[0]
	} else {
		result.Status = StatusCompleted
	}
}

func collectFiles(root string) ([]string, []string) {
	var files []string
	var errors []string
	err := filepath.Walk(root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			errors = append(errors, fmt.Sprintf("walk %s: %v", p, err))
			return nil
		}
		if info.IsDir() {
			if info.Name() == "vendor" || (info.Name() != "." && info.Name()[0] == '.' && p != root) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(p) == ".php" {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		errors = append(errors, fmt.Sprintf("walk %s: %v", root, err))
	}
	return files, errors
}

// buildIndex parses every file once so inherited documentation resolves
// across file boundaries before any rewriting starts.
func buildIndex(files []string) (*php.Index, []string) {
	var classes []*php.ClassModel
	var functions []*php.FunctionModel
	var errors []string
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			errors = append(errors, fmt.Sprintf("read %s: %v", file, err))
			continue
		}
		model := php.ParseFile(data, filepath.Base(file))
		classes = append(classes, model.Classes...)
		functions = append(functions, model.Functions...)
	}
	return php.NewIndex(classes, functions), errors
}

func rewriteFile(file string, index *php.Index, req Request) FileResult {
	data, err := os.ReadFile(file)
	if err != nil {
		return FileResult{Path: file, Error: fmt.Sprintf("read %s: %v", file, err)}
	}

	out, edits := typehint.RewriteSource(data, filepath.Base(file), index, req.Config)
	fr := FileResult{Path: file, Changed: len(edits) > 0, Hints: edits}
	if !fr.Changed {
		return fr
	}

	if req.Write {
		info, statErr := os.Stat(file)
		mode := os.FileMode(0644)
		if statErr == nil {
			mode = info.Mode()
		}
		if err := os.WriteFile(file, []byte(out), mode); err != nil {
			fr.Error = fmt.Sprintf("write %s: %v", file, err)
			return fr
		}
		log.Debugf("rewrote %s: %d hints", file, len(edits))
	} else {
		fr.Output = out
	}
	return fr
}

func (s *Scanner) Submit(req Request) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	req.ID = fmt.Sprintf("%d", s.nextID)
	req.CreatedAt = time.Now()

	s.scans[req.ID] = &Result{
		ID:      req.ID,
		Status:  StatusPending,
		Request: req,
	}

	s.requests <- req
	return req.ID
}

// Get returns a snapshot of the scan with the given id. The worker keeps
// mutating the live Result under the lock, so callers never see the shared
// pointer.
func (s *Scanner) Get(id string) (*Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result, ok := s.scans[id]
	if !ok {
		return nil, false
	}
	snapshot := *result
	return &snapshot, true
}

// List returns snapshots of all scans, oldest first.
func (s *Scanner) List() []*Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	results := make([]*Result, 0, len(s.scans))
	for _, r := range s.scans {
		snapshot := *r
		results = append(results, &snapshot)
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].ID < results[j].ID
	})
	return results
}

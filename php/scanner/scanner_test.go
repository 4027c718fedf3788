package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dhamidi/phint/php/typehint"
)

const docSource = `<?php
/**
 * @param int $a
 * @return int
 */
function double($a)
{
    return $a * 2;
}
`

func waitForScan(t *testing.T, s *Scanner, id string) *Result {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		r, ok := s.Get(id)
		if !ok {
			t.Fatalf("Get(%s) ok = false", id)
		}
		if r.Status == StatusCompleted || r.Status == StatusFailed {
			return r
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("scan %s did not finish", id)
	return nil
}

func TestScannerDryRun(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "math.php")
	if err := os.WriteFile(path, []byte(docSource), 0644); err != nil {
		t.Fatal(err)
	}

	s := New()
	id := s.Submit(Request{Path: dir, Config: typehint.Config{Nullable: true}})
	result := waitForScan(t, s, id)

	if result.Status != StatusCompleted {
		t.Fatalf("Status = %s, want completed", result.Status)
	}
	if len(result.Files) != 1 || !result.Files[0].Changed {
		t.Fatalf("Files = %+v, want one changed file", result.Files)
	}
	if !strings.Contains(result.Files[0].Output, "function double(int $a): int") {
		t.Errorf("Output = %q, want typed signature", result.Files[0].Output)
	}

	// Dry run leaves the file alone.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != docSource {
		t.Error("dry run modified the source file")
	}
}

func TestScannerWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "math.php")
	if err := os.WriteFile(path, []byte(docSource), 0644); err != nil {
		t.Fatal(err)
	}

	s := New()
	id := s.Submit(Request{Path: dir, Config: typehint.Config{Nullable: true}, Write: true})
	result := waitForScan(t, s, id)

	if result.ChangedCount() != 1 {
		t.Fatalf("ChangedCount() = %d, want 1", result.ChangedCount())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "function double(int $a): int") {
		t.Errorf("file after write = %q, want typed signature", data)
	}
}

func TestScannerCrossFileInheritance(t *testing.T) {
	dir := t.TempDir()
	iface := "<?php\ninterface I\n{\n    /**\n     * @param int $n\n     */\n    public function f($n);\n}\n"
	impl := "<?php\nclass C implements I\n{\n    public function f($n) {}\n}\n"
	if err := os.WriteFile(filepath.Join(dir, "I.php"), []byte(iface), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "C.php"), []byte(impl), 0644); err != nil {
		t.Fatal(err)
	}

	s := New()
	id := s.Submit(Request{Path: dir, Config: typehint.Config{Nullable: true}})
	result := waitForScan(t, s, id)

	var implResult *FileResult
	for i := range result.Files {
		if filepath.Base(result.Files[i].Path) == "C.php" {
			implResult = &result.Files[i]
		}
	}
	if implResult == nil || !implResult.Changed {
		t.Fatalf("Files = %+v, want C.php changed", result.Files)
	}
	if !strings.Contains(implResult.Output, "public function f(int $n)") {
		t.Errorf("Output = %q, want inherited int", implResult.Output)
	}
}

func TestScannerGetReturnsSnapshot(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "math.php"), []byte(docSource), 0644); err != nil {
		t.Fatal(err)
	}

	s := New()
	id := s.Submit(Request{Path: dir, Config: typehint.Config{Nullable: true}})
	first := waitForScan(t, s, id)

	first.Status = StatusFailed
	second, _ := s.Get(id)
	if second.Status != StatusCompleted {
		t.Errorf("Status after mutating a snapshot = %s, want completed", second.Status)
	}
}

func TestScannerPollDuringScan(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 50; i++ {
		path := filepath.Join(dir, fmt.Sprintf("f%02d.php", i))
		if err := os.WriteFile(path, []byte(docSource), 0644); err != nil {
			t.Fatal(err)
		}
	}

	s := New()
	id := s.Submit(Request{Path: dir, Config: typehint.Config{Nullable: true}})

	// Poll while the worker is still writing Status and Progress.
	var last *Result
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		r, ok := s.Get(id)
		if !ok {
			t.Fatalf("Get(%s) ok = false", id)
		}
		if r.Progress > r.Total {
			t.Fatalf("Progress = %d, Total = %d", r.Progress, r.Total)
		}
		last = r
		if r.Status == StatusCompleted || r.Status == StatusFailed {
			break
		}
	}

	if last == nil || last.Status != StatusCompleted {
		t.Fatalf("final result = %+v, want completed", last)
	}
	if last.ChangedCount() != 50 {
		t.Errorf("ChangedCount() = %d, want 50", last.ChangedCount())
	}
}

func TestScannerMissingPath(t *testing.T) {
	s := New()
	id := s.Submit(Request{Path: filepath.Join(t.TempDir(), "nope")})
	result := waitForScan(t, s, id)

	if result.Status != StatusFailed {
		t.Errorf("Status = %s, want failed", result.Status)
	}
}

func TestScannerList(t *testing.T) {
	s := New()
	dir := t.TempDir()
	first := s.Submit(Request{Path: dir})
	second := s.Submit(Request{Path: dir})
	waitForScan(t, s, first)
	waitForScan(t, s, second)

	list := s.List()
	if len(list) != 2 || list[0].ID != first || list[1].ID != second {
		t.Errorf("List() = %v, want [%s %s]", list, first, second)
	}
}

// Package project locates and reads composer project metadata.
package project

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Project represents a composer-managed PHP project.
type Project struct {
	Name        string
	Description string
	RootDir     string
	Autoload    []AutoloadRule
}

// AutoloadRule maps one namespace prefix onto the directories it loads
// from, per the project's PSR-4 configuration.
type AutoloadRule struct {
	Prefix string // namespace prefix, "" for the fallback rule
	Dirs   []string
	Dev    bool // declared under autoload-dev
}

// composerFile is the subset of composer.json the tool cares about.
type composerFile struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Autoload    composerSection `json:"autoload"`
	AutoloadDev composerSection `json:"autoload-dev"`
}

type composerSection struct {
	PSR4 map[string]dirList `json:"psr-4"`
	PSR0 map[string]dirList `json:"psr-0"`
}

// dirList accepts both the single-string and array forms composer allows.
type dirList []string

func (d *dirList) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*d = dirList{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*d = dirList(many)
	return nil
}

// Load reads the composer project rooted in the current directory.
func Load() (*Project, error) {
	return LoadFrom(".")
}

// LoadFrom reads composer.json from the given directory.
func LoadFrom(rootDir string) (*Project, error) {
	path := filepath.Join(rootDir, "composer.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(data, rootDir)
}

// Parse builds a Project from composer.json contents.
func Parse(data []byte, rootDir string) (*Project, error) {
	var cf composerFile
	if err := json.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parse composer.json: %w", err)
	}

	proj := &Project{
		Name:        cf.Name,
		Description: cf.Description,
		RootDir:     rootDir,
	}
	proj.Autoload = append(proj.Autoload, sectionRules(cf.Autoload, false)...)
	proj.Autoload = append(proj.Autoload, sectionRules(cf.AutoloadDev, true)...)
	return proj, nil
}

func sectionRules(section composerSection, dev bool) []AutoloadRule {
	var rules []AutoloadRule
	for _, mapping := range []map[string]dirList{section.PSR4, section.PSR0} {
		for prefix, dirs := range mapping {
			rules = append(rules, AutoloadRule{
				Prefix: strings.TrimSuffix(prefix, "\\"),
				Dirs:   dirs,
				Dev:    dev,
			})
		}
	}
	sort.Slice(rules, func(i, j int) bool {
		return rules[i].Prefix < rules[j].Prefix
	})
	return rules
}

// SourceDirs returns the autoload directories that exist on disk, resolved
// against the project root, deduplicated and in stable order.
func (p *Project) SourceDirs(includeDev bool) []string {
	seen := make(map[string]bool)
	var dirs []string
	for _, rule := range p.Autoload {
		if rule.Dev && !includeDev {
			continue
		}
		for _, dir := range rule.Dirs {
			full := filepath.Join(p.RootDir, dir)
			if seen[full] {
				continue
			}
			seen[full] = true
			if info, err := os.Stat(full); err == nil && info.IsDir() {
				dirs = append(dirs, full)
			}
		}
	}
	sort.Strings(dirs)
	return dirs
}

// PHPFiles returns every .php file under the project's autoload
// directories, vendor excluded. Projects without autoload rules fall back
// to the whole root directory.
func (p *Project) PHPFiles(includeDev bool) ([]string, error) {
	dirs := p.SourceDirs(includeDev)
	if len(dirs) == 0 {
		dirs = []string{p.RootDir}
	}

	seen := make(map[string]bool)
	var files []string
	for _, dir := range dirs {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if d.Name() == "vendor" || strings.HasPrefix(d.Name(), ".") && path != dir {
					return filepath.SkipDir
				}
				return nil
			}
			if filepath.Ext(path) != ".php" || seen[path] {
				return nil
			}
			seen[path] = true
			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scan php files in %s: %w", dir, err)
		}
	}
	sort.Strings(files)
	return files, nil
}

// NamespaceFor returns the expected namespace for a file path, derived from
// the autoload rules, or "" when no rule covers it.
func (p *Project) NamespaceFor(path string) string {
	best := ""
	bestLen := -1
	for _, rule := range p.Autoload {
		for _, dir := range rule.Dirs {
			full := filepath.Join(p.RootDir, dir)
			rel, err := filepath.Rel(full, path)
			if err != nil || strings.HasPrefix(rel, "..") {
				continue
			}
			if len(full) <= bestLen {
				continue
			}
			bestLen = len(full)
			sub := filepath.Dir(rel)
			ns := rule.Prefix
			if sub != "." {
				parts := strings.Split(sub, string(filepath.Separator))
				if ns != "" {
					parts = append([]string{ns}, parts...)
				}
				ns = strings.Join(parts, "\\")
			}
			best = ns
		}
	}
	return best
}

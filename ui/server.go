// Package ui serves a local web interface for previewing type-hint
// rewrites before they are written back to disk.
package ui

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/dhamidi/phint/php/scanner"
	"github.com/dhamidi/phint/php/typehint"
)

//go:embed static templates
var embeddedFS embed.FS

type Server struct {
	scanner    *scanner.Scanner
	staticFS   fs.FS
	mux        *http.ServeMux
	templateFS fs.FS
	funcMap    template.FuncMap
}

func NewServer() (*Server, error) {
	staticFS := overlayFS("ui/static", mustSub(embeddedFS, "static"))
	templateFS := overlayFS("ui/templates", mustSub(embeddedFS, "templates"))

	funcMap := template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"sub": func(a, b int) int {
			return a - b
		},
		"statusLabel": func(s scanner.Status) string {
			return strings.ReplaceAll(string(s), "_", " ")
		},
		"hintText": func(e typehint.Edit) string {
			return strings.TrimSpace(e.Text)
		},
	}

	if _, err := template.New("").Funcs(funcMap).ParseFS(templateFS, "*.html"); err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		scanner:    scanner.New(),
		staticFS:   staticFS,
		mux:        http.NewServeMux(),
		templateFS: templateFS,
		funcMap:    funcMap,
	}

	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	s.mux.HandleFunc("POST /scan", s.handleScan)
	s.mux.HandleFunc("GET /scans/{id}", s.handleGetScan)
	s.mux.HandleFunc("GET /scans/{id}/files/{idx}", s.handleGetFile)
	s.mux.HandleFunc("GET /", s.handleIndex)

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// render reparses the templates per request so edits under ui/templates
// show up without restarting the server.
func (s *Server) render(w http.ResponseWriter, name string, data any) {
	tmpl, err := template.New("").Funcs(s.funcMap).ParseFS(s.templateFS, "*.html")
	if err != nil {
		http.Error(w, "template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	tmpl.ExecuteTemplate(w, name, data)
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	var req scanner.Request

	contentType := r.Header.Get("Content-Type")
	if contentType == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form data: "+err.Error(), http.StatusBadRequest)
			return
		}
		req.Path = r.FormValue("path")
		req.Config.Nullable = r.FormValue("nullable") != ""
		req.Write = r.FormValue("write") != ""
	}

	if req.Path == "" && len(req.Files) == 0 {
		http.Error(w, "must provide path or files", http.StatusBadRequest)
		return
	}

	id := s.scanner.Submit(req)
	http.Redirect(w, r, "/scans/"+id, http.StatusSeeOther)
}

func (s *Server) handleGetScan(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	result, ok := s.scanner.Get(id)
	if !ok {
		http.Error(w, "scan not found", http.StatusNotFound)
		return
	}

	accept := r.Header.Get("Accept")
	if accept == "application/json" {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result)
		return
	}

	s.render(w, "scan.html", result)
}

type fileViewData struct {
	ScanID string
	Index  int
	File   scanner.FileResult
	Before string
}

func (s *Server) handleGetFile(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	result, ok := s.scanner.Get(id)
	if !ok {
		http.Error(w, "scan not found", http.StatusNotFound)
		return
	}

	idx, err := strconv.Atoi(r.PathValue("idx"))
	if err != nil || idx < 0 || idx >= len(result.Files) {
		http.Error(w, "file not found", http.StatusNotFound)
		return
	}
	file := result.Files[idx]

	before := ""
	if data, err := os.ReadFile(file.Path); err == nil {
		before = string(data)
	}

	s.render(w, "file.html", fileViewData{
		ScanID: id,
		Index:  idx,
		File:   file,
		Before: before,
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := struct {
		Scans []*scanner.Result
	}{
		Scans: s.scanner.List(),
	}
	s.render(w, "index.html", data)
}

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

type overlayFSType struct {
	primary   fs.FS
	secondary fs.FS
}

func overlayFS(primaryPath string, secondary fs.FS) fs.FS {
	return &overlayFSType{
		primary:   os.DirFS(primaryPath),
		secondary: secondary,
	}
}

func (o *overlayFSType) Open(name string) (fs.File, error) {
	f, err := o.primary.Open(name)
	if err == nil {
		return f, nil
	}
	return o.secondary.Open(name)
}

func (o *overlayFSType) ReadDir(name string) ([]fs.DirEntry, error) {
	entries := make(map[string]fs.DirEntry)

	if rd, ok := o.secondary.(fs.ReadDirFS); ok {
		if list, err := rd.ReadDir(name); err == nil {
			for _, e := range list {
				entries[e.Name()] = e
			}
		}
	}

	if rd, ok := o.primary.(fs.ReadDirFS); ok {
		if list, err := rd.ReadDir(name); err == nil {
			for _, e := range list {
				entries[e.Name()] = e
			}
		}
	}

	result := make([]fs.DirEntry, 0, len(entries))
	for _, e := range entries {
		result = append(result, e)
	}
	return result, nil
}

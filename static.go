package main

import (
	"errors"
	"io/fs"
	"net/http"
	"path"
	"strings"
)

// StaticHandler serves files below Root. Directories are answered with their
// index file when one exists, or with the generated listing otherwise.
type StaticHandler struct {
	Root  string
	files http.Handler
}

// NewStaticHandler creates a handler serving the directory tree at root.
func NewStaticHandler(root string) *StaticHandler {
	return &StaticHandler{
		Root:  root,
		files: http.FileServer(indexFileSystem{http.Dir(root)}),
	}
}

// ServeHTTP generates the HTTP response.
func (s *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Unsupported method ('"+r.Method+"')", http.StatusNotImplemented)
		return
	}
	s.files.ServeHTTP(w, r)
}

// indexFileSystem falls back to index.htm when a directory has no
// index.html.
type indexFileSystem struct {
	http.FileSystem
}

func (i indexFileSystem) Open(name string) (http.File, error) {
	file, err := i.FileSystem.Open(name)
	if err == nil || !errors.Is(err, fs.ErrNotExist) {
		return file, err
	}

	dir, base := path.Split(name)
	if base != "index.html" || !strings.HasSuffix(dir, "/") {
		return nil, err
	}

	alt, altErr := i.FileSystem.Open(dir + "index.htm")
	if altErr != nil {
		return nil, err
	}
	return alt, nil
}

// Copyright 2021 Cmdtree Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package filesys

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// InMemFS is an in memory filesystem implementation primarily intended for testing
type InMemFS struct {
	mu    *sync.RWMutex
	cwd   string
	files map[string][]byte
	dirs  map[string]struct{}
}

var _ Filesys = (*InMemFS)(nil)

// EmptyInMemFS creates an empty InMemFS instance with the given working directory
func EmptyInMemFS(workingDir string) *InMemFS {
	return NewInMemFS(nil, workingDir)
}

// NewInMemFS creates an InMemFS containing the files provided. Relative paths
// resolve against cwd, which must be absolute (defaults to "/").
func NewInMemFS(files map[string][]byte, cwd string) *InMemFS {
	if cwd == "" {
		cwd = "/"
	}
	if !filepath.IsAbs(cwd) {
		panic("cwd for InMemFS must be an absolute path")
	}

	fs := &InMemFS{
		mu:    &sync.RWMutex{},
		cwd:   cwd,
		files: make(map[string][]byte),
		dirs:  map[string]struct{}{"/": {}},
	}

	for path, data := range files {
		abs := fs.abs(path)
		fs.files[abs] = data
		fs.addParentDirs(abs)
	}

	return fs
}

func (fs *InMemFS) abs(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(fs.cwd, path)
}

func (fs *InMemFS) addParentDirs(abs string) {
	for dir := filepath.Dir(abs); dir != "/" && dir != "."; dir = filepath.Dir(dir) {
		fs.dirs[dir] = struct{}{}
	}
}

// Exists will tell you if a file or directory with a given path already exists, and if it does is it a directory
func (fs *InMemFS) Exists(path string) (exists bool, isDir bool) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	abs := fs.abs(path)
	if _, ok := fs.files[abs]; ok {
		return true, false
	}
	if _, ok := fs.dirs[abs]; ok {
		return true, true
	}

	return false, false
}

// OpenForRead opens a file for reading
func (fs *InMemFS) OpenForRead(fp string) (io.ReadCloser, error) {
	data, err := fs.ReadFile(fp)
	if err != nil {
		return nil, err
	}

	return io.NopCloser(bytes.NewReader(data)), nil
}

// ReadFile reads the entire contents of a file
func (fs *InMemFS) ReadFile(fp string) ([]byte, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	abs := fs.abs(fp)
	if _, ok := fs.dirs[abs]; ok {
		return nil, ErrIsDir
	}

	data, ok := fs.files[abs]
	if !ok {
		return nil, os.ErrNotExist
	}

	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

type inMemFileWriter struct {
	fs  *InMemFS
	abs string
	buf *bytes.Buffer
}

func (wr *inMemFileWriter) Write(p []byte) (int, error) {
	return wr.buf.Write(p)
}

func (wr *inMemFileWriter) Close() error {
	wr.fs.mu.Lock()
	defer wr.fs.mu.Unlock()

	wr.fs.files[wr.abs] = wr.buf.Bytes()
	wr.fs.addParentDirs(wr.abs)
	return nil
}

// OpenForWrite opens a file for writing, creating or truncating it.
func (fs *InMemFS) OpenForWrite(fp string, _ os.FileMode) (io.WriteCloser, error) {
	return &inMemFileWriter{fs: fs, abs: fs.abs(fp), buf: &bytes.Buffer{}}, nil
}

// WriteFile writes the entire data buffer to a given file
func (fs *InMemFS) WriteFile(fp string, data []byte, _ os.FileMode) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	abs := fs.abs(fp)
	fs.files[abs] = data
	fs.addParentDirs(abs)
	return nil
}

// MkDirs creates a folder and all the parent folders that are necessary to create it.
func (fs *InMemFS) MkDirs(path string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	abs := fs.abs(path)
	fs.dirs[abs] = struct{}{}
	fs.addParentDirs(abs)
	return nil
}

// DeleteFile will delete a file at the given path
func (fs *InMemFS) DeleteFile(path string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	abs := fs.abs(path)
	if _, ok := fs.dirs[abs]; ok {
		return ErrIsDir
	}
	if _, ok := fs.files[abs]; !ok {
		return os.ErrNotExist
	}

	delete(fs.files, abs)
	return nil
}

// Abs converts a path to an absolute path relative to the working dir the
// filesystem was created with.
func (fs *InMemFS) Abs(path string) (string, error) {
	return fs.abs(path), nil
}

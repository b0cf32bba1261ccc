// Package storage holds the raw bytes of uploaded files in a flat directory
// on local disk. Metadata lives in Postgres; this layer only knows stored
// names and byte streams.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Store defines the blob operations the upload pipeline and preview builder need.
type Store interface {
	// Save writes the full stream under the stored name and returns the real
	// byte count written.
	Save(name string, r io.Reader) (int64, error)
	// Open returns a reader over an existing blob.
	Open(name string) (io.ReadCloser, error)
	// Path resolves a stored name to an absolute path inside the upload
	// directory, rejecting anything that would escape it.
	Path(name string) (string, error)
}

// LocalStore implements Store on the local filesystem.
type LocalStore struct {
	uploadDir string
}

// NewLocalStore creates the upload directory if absent.
func NewLocalStore(uploadDir string) (*LocalStore, error) {
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}
	return &LocalStore{uploadDir: uploadDir}, nil
}

func (s *LocalStore) Save(name string, r io.Reader) (int64, error) {
	path, err := s.Path(name)
	if err != nil {
		return 0, err
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	size, err := io.Copy(f, r)
	if err != nil {
		os.Remove(path)
		return 0, fmt.Errorf("writing file: %w", err)
	}
	return size, nil
}

func (s *LocalStore) Open(name string) (io.ReadCloser, error) {
	path, err := s.Path(name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	return f, nil
}

// Path re-validates the name independently of upstream sanitization: download
// requests arrive with client-supplied names.
func (s *LocalStore) Path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.Contains(name, "..") {
		return "", fmt.Errorf("invalid stored name: %q", name)
	}
	return filepath.Join(s.uploadDir, name), nil
}

// FakeStore 方便測試時替換 LocalStore 實作
type FakeStore struct {
	SaveFn func(name string, r io.Reader) (int64, error)
	OpenFn func(name string) (io.ReadCloser, error)
	PathFn func(name string) (string, error)
}

func (f *FakeStore) Save(name string, r io.Reader) (int64, error) {
	if f.SaveFn != nil {
		return f.SaveFn(name, r)
	}
	panic("unexpected Save")
}

func (f *FakeStore) Open(name string) (io.ReadCloser, error) {
	if f.OpenFn != nil {
		return f.OpenFn(name)
	}
	panic("unexpected Open")
}

func (f *FakeStore) Path(name string) (string, error) {
	if f.PathFn != nil {
		return f.PathFn(name)
	}
	panic("unexpected Path")
}

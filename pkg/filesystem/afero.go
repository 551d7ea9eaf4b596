package filesystem

import (
	"errors"
	"io/fs"

	"github.com/arthur-debert/mixconf/pkg/types"
	"github.com/spf13/afero"
)

// aferoFS implements types.FS using afero
type aferoFS struct {
	fs afero.Fs
}

// NewAferoFS creates a new afero filesystem implementation
func NewAferoFS(fs afero.Fs) types.FS {
	return &aferoFS{fs: fs}
}

// NewMemory creates an empty in-memory filesystem
func NewMemory() types.FS {
	return NewAferoFS(afero.NewMemMapFs())
}

func (a *aferoFS) Stat(name string) (fs.FileInfo, error) {
	return a.fs.Stat(name)
}

func (a *aferoFS) ReadFile(name string) ([]byte, error) {
	info, err := a.fs.Stat(name)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrInvalid}
	}
	return afero.ReadFile(a.fs, name)
}

func (a *aferoFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return afero.WriteFile(a.fs, name, data, perm)
}

func (a *aferoFS) MkdirAll(path string, perm fs.FileMode) error {
	return a.fs.MkdirAll(path, perm)
}

// Exists reports whether a regular file exists. A missing file is not an
// error; any other stat failure is returned.
func Exists(fsys types.FS, name string) (bool, error) {
	info, err := fsys.Stat(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return !info.IsDir(), nil
}

// ReadOptional reads a file, returning ok=false when it does not exist
func ReadOptional(fsys types.FS, name string) ([]byte, bool, error) {
	exists, err := Exists(fsys, name)
	if err != nil || !exists {
		return nil, false, err
	}
	data, err := fsys.ReadFile(name)
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

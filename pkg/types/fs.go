package types

import (
	"io/fs"
)

// FS is the file access collaborator used for configuration discovery,
// module resolution and writing generated output
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	MkdirAll(path string, perm fs.FileMode) error
}

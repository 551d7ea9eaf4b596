// Package emit writes generated configuration files below the project root
// through a synthfs pipeline.
package emit

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/arthur-debert/mixconf/pkg/errors"
	"github.com/arthur-debert/mixconf/pkg/logging"
	"github.com/arthur-debert/synthfs/pkg/synthfs"
	"github.com/arthur-debert/synthfs/pkg/synthfs/core"
	"github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
	"github.com/arthur-debert/synthfs/pkg/synthfs/operations"
	"github.com/rs/zerolog"
)

// File is one file to write
type File struct {
	// Path is absolute or relative to the project root
	Path    string
	Content []byte
}

// Writer writes files below a root directory
type Writer struct {
	root   string
	force  bool
	logger zerolog.Logger
}

// NewWriter creates a writer rooted at root. With force, existing files
// are replaced; otherwise they are an error.
func NewWriter(root string, force bool) *Writer {
	return &Writer{
		root:   root,
		force:  force,
		logger: logging.GetLogger("emit"),
	}
}

// Write writes every file in one pipeline run. All files are validated
// before anything on disk changes, and files replaced in force mode are
// restored when the run fails.
func (w *Writer) Write(ctx context.Context, files ...File) error {
	if len(files) == 0 {
		return nil
	}

	targets := make([]*target, 0, len(files))
	seen := make(map[string]bool, len(files))
	for _, f := range files {
		t, err := w.check(f)
		if err != nil {
			return err
		}
		if seen[t.rel] {
			return errors.Newf(errors.ErrInvalidInput, "%s is listed more than once", t.rel).
				WithDetail("path", t.path)
		}
		seen[t.rel] = true
		targets = append(targets, t)
	}

	for _, t := range targets {
		if err := os.MkdirAll(filepath.Dir(t.path), 0755); err != nil {
			return errors.Wrapf(err, errors.ErrFileWrite, "failed to create directory for %s", t.rel)
		}
	}

	var removed []*target
	for _, t := range targets {
		if t.previous == nil {
			continue
		}
		if err := os.Remove(t.path); err != nil {
			w.restore(removed)
			return errors.Wrapf(err, errors.ErrFileWrite, "failed to replace %s", t.rel)
		}
		w.logger.Debug().Str("path", t.path).Msg("Removed existing file")
		removed = append(removed, t)
	}

	pipeline := synthfs.NewMemPipeline()
	for _, t := range targets {
		op := operations.NewCreateFileOperation(core.OperationID("write-"+t.rel), t.rel)
		op.SetItem(&fileItem{path: t.rel, content: t.content, mode: 0644})
		if err := pipeline.Add(synthfs.NewOperationsPackageAdapter(op)); err != nil {
			w.restore(removed)
			return errors.Wrapf(err, errors.ErrFileWrite, "failed to queue %s", t.rel)
		}
	}

	result := synthfs.NewExecutor().Run(ctx, pipeline, filesystem.NewOSFileSystem(w.root))
	if err := result.GetError(); err != nil {
		w.logger.Error().Err(err).Msg("Writing files failed")
		w.restore(removed)
		return errors.Wrap(err, errors.ErrFileWrite, "failed to write files")
	}

	w.logger.Info().Int("files", len(files)).Str("root", w.root).Msg("Wrote files")
	return nil
}

// target is a validated file write
type target struct {
	rel      string
	path     string
	content  []byte
	previous *previousFile
}

// previousFile is the content a forced write replaces
type previousFile struct {
	content []byte
	mode    fs.FileMode
}

// check validates one file without touching the disk
func (w *Writer) check(f File) (*target, error) {
	rel, err := w.relative(f.Path)
	if err != nil {
		return nil, err
	}
	t := &target{rel: rel, path: filepath.Join(w.root, filepath.FromSlash(rel)), content: f.Content}

	info, err := os.Stat(t.path)
	if os.IsNotExist(err) {
		return t, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", rel)
	}
	if info.IsDir() {
		return nil, errors.Newf(errors.ErrFileWrite, "%s is a directory", rel)
	}
	if !w.force {
		return nil, errors.Newf(errors.ErrAlreadyExists, "%s already exists, use --force to replace it", rel).
			WithDetail("path", t.path)
	}

	content, err := os.ReadFile(t.path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", rel)
	}
	t.previous = &previousFile{content: content, mode: info.Mode().Perm()}
	return t, nil
}

// restore puts back files removed for a forced write
func (w *Writer) restore(removed []*target) {
	for _, t := range removed {
		if err := os.WriteFile(t.path, t.previous.content, t.previous.mode); err != nil {
			w.logger.Error().Err(err).Str("path", t.path).Msg("Failed to restore replaced file")
		}
	}
}

// relative converts path to a slash path inside the root
func (w *Writer) relative(path string) (string, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(w.root, path)
	}
	rel, err := filepath.Rel(w.root, filepath.Clean(path))
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.Newf(errors.ErrInvalidInput, "%s is outside the project root %s", path, w.root).
			WithDetail("path", path)
	}
	return filepath.ToSlash(rel), nil
}

type fileItem struct {
	path    string
	content []byte
	mode    fs.FileMode
}

func (f *fileItem) Path() string       { return f.path }
func (f *fileItem) Type() string       { return "file" }
func (f *fileItem) Content() []byte    { return f.content }
func (f *fileItem) Mode() fs.FileMode  { return f.mode }
func (f *fileItem) IsDir() bool        { return false }
func (f *fileItem) ModTime() time.Time { return time.Now() }
func (f *fileItem) Size() int64        { return int64(len(f.content)) }

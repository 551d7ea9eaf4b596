// Package filesystem provides the file access collaborator used by mixconf.
//
// This package contains implementations of the types.FS interface backed
// by the OS filesystem and by afero, which tests use with an in-memory
// filesystem.
package filesystem

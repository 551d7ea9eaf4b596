// Package paths resolves the project root and every path mixconf derives
// from it. Project-relative paths handed to the bundler are always made
// absolute against the root; absolute paths are only cleaned.
package paths

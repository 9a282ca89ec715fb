// Package file provides properties about the contents of a single file:
// exact bytes (Content) and a set of lines it must contain (Lines).
//
// Both work on an afero.Fs so they can be exercised against an in-memory
// filesystem. The default is the operating system's filesystem.
package file

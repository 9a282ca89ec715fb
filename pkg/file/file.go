package file

import (
	"github.com/spf13/afero"
	"github.com/wzhd/rotor/pkg/paths"
)

// File names a file that properties are built on.
type File struct {
	path paths.UserPath
	fs   afero.Fs
}

// New refers to the file at path on the OS filesystem.
func New(path paths.UserPath) File {
	return File{path: path, fs: afero.NewOsFs()}
}

// WithFs returns a copy of f that operates on fs.
func (f File) WithFs(fs afero.Fs) File {
	f.fs = fs
	return f
}

// Path returns the unexpanded path of the file
func (f File) Path() paths.UserPath {
	return f.path
}

// ContentBytes states that the file holds exactly content.
func (f File) ContentBytes(content []byte) *Content {
	return newContent(f, content)
}

// ContainsLine states that the file has line as one of its lines.
func (f File) ContainsLine(line string) *Lines {
	return newLines(f, []string{line})
}

// ContainsLines states that every line in lines is a line of the file.
func (f File) ContainsLines(lines ...string) *Lines {
	return newLines(f, lines)
}

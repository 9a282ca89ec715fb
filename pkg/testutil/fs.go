package testutil

import (
	"io"
	"os"

	"github.com/spf13/afero"
)

// Write is one call that modified a file through a RecordingFs
type Write struct {
	Path   string
	Offset int64
	Data   []byte
}

// RecordingFs wraps an afero.Fs and records every write made through
// files it opened, with the offset the write started at.
type RecordingFs struct {
	afero.Fs
	Writes []Write
}

// NewRecordingFs wraps base, usually an afero.MemMapFs
func NewRecordingFs(base afero.Fs) *RecordingFs {
	return &RecordingFs{Fs: base}
}

func (r *RecordingFs) Create(name string) (afero.File, error) {
	f, err := r.Fs.Create(name)
	if err != nil {
		return nil, err
	}
	return &recordingFile{File: f, fs: r}, nil
}

func (r *RecordingFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	f, err := r.Fs.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}
	return &recordingFile{File: f, fs: r}, nil
}

type recordingFile struct {
	afero.File
	fs *RecordingFs
}

func (f *recordingFile) Write(p []byte) (int, error) {
	offset, err := f.File.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}
	f.record(offset, p)
	return f.File.Write(p)
}

func (f *recordingFile) WriteAt(p []byte, off int64) (int, error) {
	f.record(off, p)
	return f.File.WriteAt(p, off)
}

func (f *recordingFile) WriteString(s string) (int, error) {
	return f.Write([]byte(s))
}

func (f *recordingFile) record(offset int64, p []byte) {
	f.fs.Writes = append(f.fs.Writes, Write{
		Path:   f.Name(),
		Offset: offset,
		Data:   append([]byte(nil), p...),
	})
}

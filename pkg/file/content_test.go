package file_test

import (
	"bytes"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wzhd/rotor/pkg/file"
	"github.com/wzhd/rotor/pkg/paths"
	"github.com/wzhd/rotor/pkg/testutil"
)

const home = "/home/user"

func setup(t *testing.T) (*testutil.RecordingFs, file.File) {
	t.Helper()
	t.Setenv(paths.EnvHome, home)
	fs := testutil.NewRecordingFs(afero.NewMemMapFs())
	return fs, file.New(paths.Home("bin/em")).WithFs(fs)
}

func readFile(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	return string(data)
}

func TestContentCreatesMissingFile(t *testing.T) {
	fs, f := setup(t)
	prop := f.ContentBytes([]byte("#!/bin/sh\nemacsclient -c"))

	ok, err := prop.Check()
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, prop.Apply())
	assert.Equal(t, "#!/bin/sh\nemacsclient -c", readFile(t, fs, home+"/bin/em"))

	ok, err = prop.Check()
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestContentWritesOnlyDivergentSuffix(t *testing.T) {
	fs, f := setup(t)
	require.NoError(t, afero.WriteFile(fs.Fs, home+"/bin/em", []byte("ABCDEXXXXX"), 0644))

	require.NoError(t, f.ContentBytes([]byte("ABCDEFGHIJ")).Apply())

	assert.Equal(t, "ABCDEFGHIJ", readFile(t, fs, home+"/bin/em"))
	require.Len(t, fs.Writes, 1)
	assert.Equal(t, int64(5), fs.Writes[0].Offset)
	assert.Equal(t, "FGHIJ", string(fs.Writes[0].Data))
}

func TestContentTruncatesLongerFile(t *testing.T) {
	fs, f := setup(t)
	require.NoError(t, afero.WriteFile(fs.Fs, home+"/bin/em", []byte("ABCDEFGHIJabcde"), 0644))
	prop := f.ContentBytes([]byte("ABCDEFGHIJ"))

	ok, err := prop.Check()
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, prop.Apply())
	assert.Equal(t, "ABCDEFGHIJ", readFile(t, fs, home+"/bin/em"))
	assert.Empty(t, fs.Writes)
}

func TestContentExtendsShorterFile(t *testing.T) {
	fs, f := setup(t)
	require.NoError(t, afero.WriteFile(fs.Fs, home+"/bin/em", []byte("ABC"), 0644))

	require.NoError(t, f.ContentBytes([]byte("ABCDEF")).Apply())

	assert.Equal(t, "ABCDEF", readFile(t, fs, home+"/bin/em"))
	require.Len(t, fs.Writes, 1)
	assert.Equal(t, int64(3), fs.Writes[0].Offset)
}

func TestContentApplyIsIdempotent(t *testing.T) {
	fs, f := setup(t)
	require.NoError(t, afero.WriteFile(fs.Fs, home+"/bin/em", []byte("same"), 0644))

	require.NoError(t, f.ContentBytes([]byte("same")).Apply())
	assert.Empty(t, fs.Writes)
}

func TestContentLargeFile(t *testing.T) {
	fs, f := setup(t)
	want := bytes.Repeat([]byte("0123456789"), 60000)
	current := append([]byte(nil), want...)
	current[300001] = 'x'
	require.NoError(t, afero.WriteFile(fs.Fs, home+"/bin/em", current, 0644))

	require.NoError(t, f.ContentBytes(want).Apply())

	require.Len(t, fs.Writes, 1)
	assert.Equal(t, int64(300001), fs.Writes[0].Offset)
	assert.Equal(t, string(want), readFile(t, fs, home+"/bin/em"))
}

func TestContentDoesNotAliasInput(t *testing.T) {
	fs, f := setup(t)
	input := []byte("abc")
	prop := f.ContentBytes(input)
	input[0] = 'x'

	require.NoError(t, prop.Apply())
	assert.Equal(t, "abc", readFile(t, fs, home+"/bin/em"))
}

func TestContentDiff(t *testing.T) {
	fs, f := setup(t)

	diff, err := f.ContentBytes([]byte("a\nb\n")).Diff()
	require.NoError(t, err)
	assert.Equal(t, "+a\n+b\n", diff)

	require.NoError(t, afero.WriteFile(fs.Fs, home+"/bin/em", []byte("a\nb\n"), 0644))
	diff, err = f.ContentBytes([]byte("a\nb\n")).Diff()
	require.NoError(t, err)
	assert.Empty(t, diff)

	diff, err = f.ContentBytes([]byte{0xff, 0x00}).Diff()
	require.NoError(t, err)
	assert.Equal(t, "binary content differs (4 bytes, want 2)\n", diff)
}

func TestContentString(t *testing.T) {
	_, f := setup(t)
	assert.Equal(t, "File ~/bin/em has content of 3 bytes", f.ContentBytes([]byte("abc")).String())
}

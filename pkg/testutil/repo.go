package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestRepo is a package repository inside a temporary home directory
type TestRepo struct {
	Home string // Home directory, also the default install directory
	Dir  string // Repository directory holding one subdirectory per package
}

// SetupTestRepo creates HOME/<name> and points HOME at the temporary home.
func SetupTestRepo(t *testing.T, name string) *TestRepo {
	t.Helper()

	// Resolve symlinked temp dirs (macOS /var -> /private/var) so path
	// comparisons in tests match what the linker computes.
	tmp, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	home := filepath.Join(tmp, "home")
	require.NoError(t, os.MkdirAll(filepath.Join(home, name), 0755))
	t.Setenv("HOME", home)

	return &TestRepo{Home: home, Dir: filepath.Join(home, name)}
}

// AddFile writes a file at rel inside package pkg, creating directories
func (r *TestRepo) AddFile(t *testing.T, pkg, rel, content string) string {
	t.Helper()

	path := filepath.Join(r.Dir, pkg, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// AddDir creates an empty directory at rel inside package pkg
func (r *TestRepo) AddDir(t *testing.T, pkg, rel string) string {
	t.Helper()

	path := filepath.Join(r.Dir, pkg, rel)
	require.NoError(t, os.MkdirAll(path, 0755))
	return path
}

// WriteFile writes an arbitrary file under dir, creating parents
func WriteFile(t *testing.T, dir, rel, content string) string {
	t.Helper()

	path := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

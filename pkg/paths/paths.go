package paths

import (
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/wzhd/rotor/pkg/errors"
)

// EnvHome is the standard home directory variable
const EnvHome = "HOME"

// UserPath is a path that is either relative to the current user's home
// directory or absolute.
type UserPath struct {
	path string
	home bool
}

// New classifies p. Relative paths, "~" and paths starting with "~/" are
// home-relative; everything else is absolute.
func New(p string) UserPath {
	switch {
	case p == "~":
		return UserPath{path: ".", home: true}
	case strings.HasPrefix(p, "~/"):
		return UserPath{path: filepath.Clean(p[2:]), home: true}
	case filepath.IsAbs(p):
		return UserPath{path: filepath.Clean(p)}
	default:
		return UserPath{path: filepath.Clean(p), home: true}
	}
}

// ParseHome returns a path relative to the user's home directory. An
// absolute rel is an INVALID_INPUT error.
func ParseHome(rel string) (UserPath, error) {
	if filepath.IsAbs(rel) {
		return UserPath{}, errors.Newf(errors.ErrInvalidInput, "%s is absolute, a home-relative path is required", rel).
			WithDetail("path", rel)
	}
	return UserPath{path: filepath.Clean(rel), home: true}, nil
}

// Home is ParseHome for paths written in Go. It panics if rel is
// absolute.
func Home(rel string) UserPath {
	u, err := ParseHome(rel)
	if err != nil {
		panic(err)
	}
	return u
}

// IsHome reports whether the path is relative to the home directory
func (u UserPath) IsHome() bool {
	return u.home
}

// IsZero reports whether u was never set
func (u UserPath) IsZero() bool {
	return u.path == ""
}

// Path returns the unexpanded path
func (u UserPath) Path() string {
	return u.path
}

// Expand resolves the path against the current home directory.
func (u UserPath) Expand() (string, error) {
	if !u.home {
		return u.path, nil
	}
	home, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, u.path), nil
}

// Parent returns the parent directory keeping the same anchoring. The
// second result is false when there is no parent: the home directory
// itself or the filesystem root.
func (u UserPath) Parent() (UserPath, bool) {
	dir := filepath.Dir(u.path)
	if u.home {
		if u.path == "." {
			return UserPath{}, false
		}
		return UserPath{path: dir, home: true}, true
	}
	if dir == u.path {
		return UserPath{}, false
	}
	return UserPath{path: dir}, true
}

// String renders home-relative paths as ~/rel
func (u UserPath) String() string {
	if !u.home {
		return u.path
	}
	if u.path == "." {
		return "~"
	}
	return "~/" + filepath.ToSlash(u.path)
}

// HomeDir returns $HOME, or the home directory from the user database
// when it is unset. It is read fresh on every call.
func HomeDir() (string, error) {
	if home := os.Getenv(EnvHome); home != "" {
		return home, nil
	}
	u, err := user.Current()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrNotFound, "user home directory not found")
	}
	if u.HomeDir == "" {
		return "", errors.New(errors.ErrNotFound, "user home directory not found")
	}
	return u.HomeDir, nil
}

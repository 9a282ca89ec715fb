package linker

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/wzhd/rotor/pkg/errors"
)

// errStop ends a walk early once its answer is known.
var errStop = stderrors.New("stop walk")

// entry is one item of a package tree
type entry struct {
	path   string // absolute path inside the package
	rel    string // path relative to the package root
	dir    bool
	info   fs.FileInfo
	target string // corresponding path in the installation directory
}

// walk visits every entry of package pkg, directories before their
// contents, mapping each onto install. Ignored entries are skipped and
// anything other than a regular file or directory is an error.
func (l *Linker) walk(repo, install, pkg string, fn func(e entry) error) error {
	pkgDir, err := filepath.EvalSymlinks(filepath.Join(repo, pkg))
	if err != nil {
		return errors.WrapIO(err, "package %s not found in %s", pkg, repo)
	}

	err = filepath.WalkDir(pkgDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return errors.WrapIO(walkErr, "cannot read %s", path)
		}
		rel, err := filepath.Rel(pkgDir, path)
		if err != nil {
			return errors.Wrapf(err, errors.ErrInternal, "cannot compute path of %s", path)
		}
		if rel != "." && l.ignored(rel) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() && !d.Type().IsRegular() {
			return errors.Newf(errors.ErrUnsupportedEntry,
				"package %s must contain only files and directories; %s is not supported", pkg, path).
				WithDetail("path", path)
		}
		info, err := d.Info()
		if err != nil {
			return errors.WrapIO(err, "cannot stat %s", path)
		}
		return fn(entry{
			path:   path,
			rel:    rel,
			dir:    d.IsDir(),
			info:   info,
			target: filepath.Join(install, rel),
		})
	})
	if stderrors.Is(err, errStop) {
		return nil
	}
	return err
}

func (l *Linker) ignored(rel string) bool {
	slashed := filepath.ToSlash(rel)
	for _, pattern := range l.ignore {
		if ok, _ := doublestar.Match(pattern, slashed); ok {
			return true
		}
	}
	return false
}

// resolvesTo reports whether target is a symlink whose destination is
// the same file as info.
func resolvesTo(target string, info fs.FileInfo) bool {
	lst, err := os.Lstat(target)
	if err != nil || lst.Mode()&fs.ModeSymlink == 0 {
		return false
	}
	st, err := os.Stat(target)
	if err != nil {
		return false
	}
	return os.SameFile(st, info)
}

// checkLinked reports whether every file of pkg has a symlink resolving
// to it and every directory exists under install.
func (l *Linker) checkLinked(repo, install, pkg string) (bool, error) {
	linked := true
	err := l.walk(repo, install, pkg, func(e entry) error {
		if e.dir {
			st, err := os.Stat(e.target)
			if err != nil || !st.IsDir() {
				linked = false
				return errStop
			}
			return nil
		}
		if !resolvesTo(e.target, e.info) {
			linked = false
			return errStop
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return linked, nil
}

// checkUnlinked reports whether no symlink under install resolves to a
// file of pkg. Directories never violate: they may be shared.
func (l *Linker) checkUnlinked(repo, install, pkg string) (bool, error) {
	unlinked := true
	err := l.walk(repo, install, pkg, func(e entry) error {
		if !e.dir && resolvesTo(e.target, e.info) {
			unlinked = false
			return errStop
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return unlinked, nil
}

// link creates missing directories and symlinks for pkg. A slot holding a
// live symlink to some other file is left alone since another package may
// own it; a broken symlink or any other file in the slot is an error.
func (l *Linker) link(repo, install, pkg string) error {
	return l.walk(repo, install, pkg, func(e entry) error {
		if e.dir {
			if st, err := os.Stat(e.target); err == nil && st.IsDir() {
				return nil
			}
			if _, err := os.Lstat(e.target); err == nil {
				return errors.Newf(errors.ErrAlreadyExists,
					"%s exists and is not a directory, can't create it for %s", e.target, pkg).
					WithDetail("path", e.target)
			}
			l.logger.Debug().Str("package", pkg).Str("dir", e.rel).Msg("Creating directory")
			if err := os.Mkdir(e.target, 0755); err != nil {
				return errors.WrapIO(err, "cannot create directory %s for package %s", e.target, pkg)
			}
			return nil
		}

		lst, err := os.Lstat(e.target)
		switch {
		case stderrors.Is(err, fs.ErrNotExist):
			dest, err := filepath.Rel(filepath.Dir(e.target), e.path)
			if err != nil {
				return errors.Wrapf(err, errors.ErrInternal, "cannot compute link target for %s", e.path)
			}
			l.logger.Debug().Str("link", e.target).Str("dest", dest).Msg("Creating symlink")
			if err := os.Symlink(dest, e.target); err != nil {
				return errors.WrapIO(err, "cannot create symlink %s", e.target)
			}
			return nil
		case err != nil:
			return errors.WrapIO(err, "cannot stat %s", e.target)
		case lst.Mode()&fs.ModeSymlink == 0:
			return errors.Newf(errors.ErrAlreadyExists,
				"%s exists, can't create symlink for %s", e.target, pkg).
				WithDetail("path", e.target)
		}

		st, err := os.Stat(e.target)
		if err != nil {
			return errors.Newf(errors.ErrAlreadyExists, "%s is a broken symlink", e.target).
				WithDetail("path", e.target)
		}
		if !os.SameFile(st, e.info) {
			l.logger.Debug().Str("link", e.target).Str("package", pkg).
				Msg("Slot is linked to another file, leaving it")
		}
		return nil
	})
}

// unlink removes symlinks resolving to files of pkg. Everything else,
// including directories, is left untouched.
func (l *Linker) unlink(repo, install, pkg string) error {
	return l.walk(repo, install, pkg, func(e entry) error {
		if e.dir || !resolvesTo(e.target, e.info) {
			return nil
		}
		l.logger.Debug().Str("link", e.target).Msg("Removing symlink")
		if err := os.Remove(e.target); err != nil {
			return errors.WrapIO(err, "cannot remove symlink %s", e.target)
		}
		return nil
	})
}

package linker

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/wzhd/rotor/pkg/capability"
	"github.com/wzhd/rotor/pkg/errors"
	"github.com/wzhd/rotor/pkg/logging"
	"github.com/wzhd/rotor/pkg/paths"
	"github.com/wzhd/rotor/pkg/property"
)

// Linker is a property stating that a set of packages is linked from a
// repository into an installation directory and another set is not.
type Linker struct {
	repo     paths.UserPath
	install  paths.UserPath
	linked   []string
	unlinked []string
	ignore   []string
	logger   zerolog.Logger
}

// New treats the subdirectories of repo as packages. The installation
// directory defaults to the parent of repo.
func New(repo paths.UserPath) *Linker {
	l := &Linker{
		repo:   repo,
		logger: logging.GetLogger("linker"),
	}
	if parent, ok := repo.Parent(); ok {
		l.install = parent
	}
	return l
}

// InstallTo returns a copy of l that places directories and symlinks in
// install instead of the repository's parent.
func (l *Linker) InstallTo(install paths.UserPath) *Linker {
	c := l.clone()
	c.install = install
	return c
}

// Linked returns a copy of l that also links packages.
func (l *Linker) Linked(packages ...string) *Linker {
	c := l.clone()
	c.linked = append(c.linked, packages...)
	return c
}

// Unlinked returns a copy of l that also unlinks packages.
func (l *Linker) Unlinked(packages ...string) *Linker {
	c := l.clone()
	c.unlinked = append(c.unlinked, packages...)
	return c
}

// Ignore returns a copy of l that skips package entries whose
// slash-separated path relative to the package root matches any of the
// doublestar patterns. An ignored directory is skipped with its contents.
func (l *Linker) Ignore(patterns ...string) *Linker {
	c := l.clone()
	c.ignore = append(c.ignore, patterns...)
	return c
}

func (l *Linker) clone() *Linker {
	c := *l
	c.linked = append([]string(nil), l.linked...)
	c.unlinked = append([]string(nil), l.unlinked...)
	c.ignore = append([]string(nil), l.ignore...)
	return &c
}

// Capability implements property.Property
func (l *Linker) Capability() capability.Capability {
	return capability.Any
}

// Validate rejects configurations that cannot be applied consistently: a
// package both linked and unlinked, package names that are not a single
// path element, malformed ignore patterns and a missing install path.
func (l *Linker) Validate() error {
	if l.install.IsZero() {
		return errors.Newf(errors.ErrInvalidInput, "no install directory for repository %s", l.repo)
	}
	unlinked := make(map[string]bool, len(l.unlinked))
	for _, name := range l.unlinked {
		if err := validName(name); err != nil {
			return err
		}
		unlinked[name] = true
	}
	for _, name := range l.linked {
		if err := validName(name); err != nil {
			return err
		}
		if unlinked[name] {
			return errors.Newf(errors.ErrInvalidInput,
				"package %q is both linked and unlinked in %s", name, l.repo).
				WithDetail("package", name)
		}
	}
	for _, pattern := range l.ignore {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Newf(errors.ErrInvalidInput, "invalid ignore pattern %q", pattern)
		}
	}
	return nil
}

func validName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsRune(name, filepath.Separator) || strings.Contains(name, "/") {
		return errors.Newf(errors.ErrInvalidInput, "invalid package name %q", name).
			WithDetail("package", name)
	}
	return nil
}

// Check implements property.Property. It holds when every linked package
// is fully linked and no unlinked package has a link left.
func (l *Linker) Check() (bool, error) {
	repo, install, err := l.dirs()
	if err != nil {
		return false, err
	}
	for _, pkg := range l.linked {
		ok, err := l.checkLinked(repo, install, pkg)
		if err != nil || !ok {
			return false, err
		}
	}
	for _, pkg := range l.unlinked {
		ok, err := l.checkUnlinked(repo, install, pkg)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

// Apply implements property.Property. Packages are handled in declared
// order, linked ones first; a package already in the desired state is
// left alone.
func (l *Linker) Apply() error {
	repo, install, err := l.dirs()
	if err != nil {
		return err
	}
	for _, pkg := range l.linked {
		ok, err := l.checkLinked(repo, install, pkg)
		if err != nil {
			return err
		}
		if !ok {
			l.logger.Info().Str("package", pkg).Str("install", install).Msg("Linking package")
			if err := l.link(repo, install, pkg); err != nil {
				return err
			}
		}
	}
	for _, pkg := range l.unlinked {
		ok, err := l.checkUnlinked(repo, install, pkg)
		if err != nil {
			return err
		}
		if !ok {
			l.logger.Info().Str("package", pkg).Str("install", install).Msg("Unlinking package")
			if err := l.unlink(repo, install, pkg); err != nil {
				return err
			}
		}
	}
	return nil
}

// dirs resolves the repository and installation directories to absolute
// paths. The repository must exist and is canonicalised; the installation
// directory is canonicalised when it exists so relative link targets are
// computed between real locations.
func (l *Linker) dirs() (string, string, error) {
	if err := l.Validate(); err != nil {
		return "", "", err
	}
	repo, err := l.repo.Expand()
	if err != nil {
		return "", "", err
	}
	repo, err = canonical(repo)
	if err != nil {
		return "", "", errors.WrapIO(err, "cannot resolve repository %s", l.repo)
	}
	install, err := l.install.Expand()
	if err != nil {
		return "", "", err
	}
	if resolved, err := canonical(install); err == nil {
		return repo, resolved, nil
	}
	abs, err := filepath.Abs(install)
	if err != nil {
		return "", "", errors.WrapIO(err, "cannot resolve install directory %s", l.install)
	}
	return repo, abs, nil
}

func canonical(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

// String implements property.Property
func (l *Linker) String() string {
	return fmt.Sprintf("packages %v are linked from %s to %s; packages %v are not linked",
		l.linked, l.repo, l.install, l.unlinked)
}

var (
	_ property.Property  = (*Linker)(nil)
	_ property.Validator = (*Linker)(nil)
)

package config

import (
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/spf13/afero"
	"github.com/wzhd/rotor/pkg/apt"
	"github.com/wzhd/rotor/pkg/capability"
	"github.com/wzhd/rotor/pkg/command"
	"github.com/wzhd/rotor/pkg/conffile"
	"github.com/wzhd/rotor/pkg/errors"
	"github.com/wzhd/rotor/pkg/file"
	"github.com/wzhd/rotor/pkg/gitconfig"
	"github.com/wzhd/rotor/pkg/host"
	"github.com/wzhd/rotor/pkg/linker"
	"github.com/wzhd/rotor/pkg/pacman"
	"github.com/wzhd/rotor/pkg/paths"
	"github.com/wzhd/rotor/pkg/property"
)

// Property kinds accepted in configuration files
const (
	KindConfValues      = "conf_values"
	KindContainsLines   = "contains_lines"
	KindContent         = "content"
	KindPackages        = "packages"
	KindGitGlobal       = "git_global"
	KindPacmanInstalled = "pacman_installed"
	KindPacmanRemoved   = "pacman_removed"
	KindAptInstalled    = "apt_installed"
	KindAptRemoved      = "apt_removed"
)

// Kinds lists every property kind
func Kinds() []string {
	return []string{
		KindConfValues, KindContainsLines, KindContent, KindPackages, KindGitGlobal,
		KindPacmanInstalled, KindPacmanRemoved, KindAptInstalled, KindAptRemoved,
	}
}

// Builder turns a Config into a host.Registry. Text file properties use
// Fs and command properties use Runner.
type Builder struct {
	Fs     afero.Fs
	Runner command.Runner
}

// Build uses the OS filesystem and real commands
func Build(cfg *Config) (*host.Registry, error) {
	return (&Builder{Fs: afero.NewOsFs(), Runner: command.NewExec()}).Build(cfg)
}

// Build validates every host, user and property. Errors are
// CONFIG_INVALID and name the offending entry.
func (b *Builder) Build(cfg *Config) (*host.Registry, error) {
	registry := host.NewRegistry()
	for i, hc := range cfg.Hosts {
		if hc.Name == "" {
			return nil, errors.Newf(errors.ErrConfigValid, "hosts[%d]: missing name", i)
		}
		c, err := capability.Parse(hc.OS)
		if err != nil {
			return nil, invalid(err, hc.Name, "", -1, "unknown os %q", hc.OS)
		}
		h := host.NewHost(hc.Name, c)

		for j, uc := range hc.Users {
			if uc.Name == "" {
				return nil, invalid(nil, hc.Name, "", -1, "users[%d]: missing name", j)
			}
			list := property.NewList(c)
			for k, pc := range uc.Properties {
				prop, err := b.property(pc)
				if err != nil {
					return nil, invalid(err, hc.Name, uc.Name, k, "invalid %s property", pc.Kind)
				}
				if err := list.Add(prop); err != nil {
					return nil, invalid(err, hc.Name, uc.Name, k, "%s property rejected", pc.Kind)
				}
			}
			if err := h.AddUser(uc.Name, list); err != nil {
				return nil, invalid(err, hc.Name, uc.Name, -1, "duplicate user")
			}
		}

		if err := registry.Add(h); err != nil {
			return nil, invalid(err, hc.Name, "", -1, "duplicate host")
		}
	}
	return registry, nil
}

// invalid builds a CONFIG_INVALID error located at host, user and
// property index. Empty user and negative index are omitted.
func invalid(cause error, hostName, user string, index int, format string, args ...interface{}) error {
	loc := "host " + hostName
	if user != "" {
		loc += ", user " + user
	}
	if index >= 0 {
		loc += fmt.Sprintf(", property %d", index)
	}
	e := errors.Newf(errors.ErrConfigValid, "%s: %s", loc, fmt.Sprintf(format, args...)).
		WithDetail("host", hostName)
	if user != "" {
		e.WithDetail("user", user)
	}
	if index >= 0 {
		e.WithDetail("property", index)
	}
	e.Wrapped = cause
	return e
}

func (b *Builder) property(pc PropertyConfig) (property.Property, error) {
	switch pc.Kind {
	case KindConfValues:
		if err := requireField(pc.Kind, "path", pc.Path); err != nil {
			return nil, err
		}
		if len(pc.Values) == 0 {
			return nil, errors.New(errors.ErrConfigValid, "conf_values needs at least one value")
		}
		comment, err := singleRune("comment", pc.Comment, conffile.ClassicSyntax.Comment)
		if err != nil {
			return nil, err
		}
		equal, err := singleRune("equal", pc.Equal, conffile.ClassicSyntax.Equal)
		if err != nil {
			return nil, err
		}
		return conffile.WithSyntax(paths.New(pc.Path), comment, equal).WithFs(b.Fs).ValuesSet(assignments(pc.Values)...), nil

	case KindContainsLines:
		if err := requireField(pc.Kind, "path", pc.Path); err != nil {
			return nil, err
		}
		if len(pc.Lines) == 0 {
			return nil, errors.New(errors.ErrConfigValid, "contains_lines needs at least one line")
		}
		return file.New(paths.New(pc.Path)).WithFs(b.Fs).ContainsLines(pc.Lines...), nil

	case KindContent:
		if err := requireField(pc.Kind, "path", pc.Path); err != nil {
			return nil, err
		}
		return file.New(paths.New(pc.Path)).WithFs(b.Fs).ContentBytes([]byte(pc.Content)), nil

	case KindPackages:
		if err := requireField(pc.Kind, "repo", pc.Repo); err != nil {
			return nil, err
		}
		l := linker.New(paths.New(pc.Repo)).Linked(pc.Link...).Unlinked(pc.Unlink...).Ignore(pc.Ignore...)
		if pc.Install != "" {
			l = l.InstallTo(paths.New(pc.Install))
		}
		return l, nil

	case KindGitGlobal:
		if err := requireField(pc.Kind, "key", pc.Key); err != nil {
			return nil, err
		}
		return gitconfig.Global(pc.Key).Value(pc.Value).WithRunner(b.Runner), nil

	case KindPacmanInstalled:
		return pacman.Installed(pc.Packages...).WithRunner(b.Runner), nil
	case KindPacmanRemoved:
		return pacman.Removed(pc.Packages...).WithRunner(b.Runner), nil
	case KindAptInstalled:
		return apt.Installed(pc.Packages...).WithRunner(b.Runner), nil
	case KindAptRemoved:
		return apt.Removed(pc.Packages...).WithRunner(b.Runner), nil

	case "":
		return nil, errors.New(errors.ErrConfigValid, "missing kind")
	default:
		return nil, errors.Newf(errors.ErrConfigValid, "unknown kind %q", pc.Kind)
	}
}

func requireField(kind, field, value string) error {
	if value == "" {
		return errors.Newf(errors.ErrConfigValid, "%s needs %s", kind, field)
	}
	return nil
}

func singleRune(field, value string, def rune) (rune, error) {
	if value == "" {
		return def, nil
	}
	if utf8.RuneCountInString(value) != 1 {
		return 0, errors.Newf(errors.ErrConfigValid, "%s must be a single character, got %q", field, value)
	}
	r, _ := utf8.DecodeRuneInString(value)
	return r, nil
}

// assignments orders a value table by key. Tables carry no order of
// their own.
func assignments(values map[string]string) []conffile.Assignment {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]conffile.Assignment, len(keys))
	for i, k := range keys {
		out[i] = conffile.Assignment{Key: k, Value: values[k]}
	}
	return out
}

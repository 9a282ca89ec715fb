package config

import (
	toml "github.com/pelletier/go-toml/v2"
	"github.com/wzhd/rotor/pkg/errors"
)

// Config is the decoded configuration file
type Config struct {
	Output OutputConfig `koanf:"output" toml:"output" yaml:"output"`
	Hosts  []HostConfig `koanf:"hosts" toml:"hosts,omitempty" yaml:"hosts,omitempty"`

	// Source is the file the configuration was read from, if any
	Source string `koanf:"-" toml:"-" yaml:"-"`
}

type OutputConfig struct {
	Format string `koanf:"format" toml:"format" yaml:"format"`
}

// HostConfig declares one machine. OS is a capability name.
type HostConfig struct {
	Name  string       `koanf:"name" toml:"name" yaml:"name"`
	OS    string       `koanf:"os" toml:"os" yaml:"os"`
	Users []UserConfig `koanf:"users" toml:"users,omitempty" yaml:"users,omitempty"`
}

type UserConfig struct {
	Name       string           `koanf:"name" toml:"name" yaml:"name"`
	Properties []PropertyConfig `koanf:"properties" toml:"properties,omitempty" yaml:"properties,omitempty"`
}

// PropertyConfig is one property entry. Kind selects which of the other
// fields apply.
type PropertyConfig struct {
	Kind string `koanf:"kind" toml:"kind" yaml:"kind"`

	// text files
	Path    string            `koanf:"path" toml:"path,omitempty" yaml:"path,omitempty"`
	Comment string            `koanf:"comment" toml:"comment,omitempty" yaml:"comment,omitempty"`
	Equal   string            `koanf:"equal" toml:"equal,omitempty" yaml:"equal,omitempty"`
	Values  map[string]string `koanf:"values" toml:"values,omitempty" yaml:"values,omitempty"`
	Lines   []string          `koanf:"lines" toml:"lines,omitempty" yaml:"lines,omitempty"`
	Content string            `koanf:"content" toml:"content,omitempty" yaml:"content,omitempty"`

	// package linker
	Repo    string   `koanf:"repo" toml:"repo,omitempty" yaml:"repo,omitempty"`
	Install string   `koanf:"install" toml:"install,omitempty" yaml:"install,omitempty"`
	Link    []string `koanf:"link" toml:"link,omitempty" yaml:"link,omitempty"`
	Unlink  []string `koanf:"unlink" toml:"unlink,omitempty" yaml:"unlink,omitempty"`
	Ignore  []string `koanf:"ignore" toml:"ignore,omitempty" yaml:"ignore,omitempty"`

	// git
	Key   string `koanf:"key" toml:"key,omitempty" yaml:"key,omitempty"`
	Value string `koanf:"value" toml:"value,omitempty" yaml:"value,omitempty"`

	// package managers
	Packages []string `koanf:"packages" toml:"packages,omitempty" yaml:"packages,omitempty"`
}

// TOML renders the effective configuration
func (c *Config) TOML() ([]byte, error) {
	out, err := toml.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode configuration")
	}
	return out, nil
}

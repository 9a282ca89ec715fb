// Package gitconfig provides properties over the user's global git
// configuration.
package gitconfig

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/wzhd/rotor/pkg/capability"
	"github.com/wzhd/rotor/pkg/command"
	"github.com/wzhd/rotor/pkg/errors"
	"github.com/wzhd/rotor/pkg/logging"
)

// Key is a global git configuration key
type Key struct {
	name string
}

// Global refers to key in the global git configuration
func Global(key string) Key {
	return Key{name: key}
}

// Value states that the key is set to value
func (k Key) Value(value string) *Value {
	return &Value{
		key:    k.name,
		value:  value,
		runner: command.NewExec(),
		logger: logging.GetLogger("gitconfig"),
	}
}

// Value is a property stating that a global git key has a value
type Value struct {
	key    string
	value  string
	runner command.Runner
	logger zerolog.Logger
}

// WithRunner returns a copy of v that runs git through r
func (v *Value) WithRunner(r command.Runner) *Value {
	c := *v
	c.runner = r
	return &c
}

// Capability implements property.Property
func (v *Value) Capability() capability.Capability {
	return capability.Any
}

func (v *Value) String() string {
	return fmt.Sprintf("git global config %s=%s", v.key, v.value)
}

// Validate implements property.Validator
func (v *Value) Validate() error {
	if !strings.Contains(v.key, ".") || strings.HasPrefix(v.key, "-") || strings.ContainsAny(v.key, " \t\n=") {
		return errors.Newf(errors.ErrInvalidInput, "invalid git config key %q", v.key)
	}
	return nil
}

// Check compares the current value. git exits with status 1 when the
// key is unset.
func (v *Value) Check() (bool, error) {
	out, code, err := v.runner.Output(command.New("git", "config", "--null", "--global", v.key))
	if err != nil {
		return false, err
	}
	if code > 1 {
		return false, errors.Newf(errors.ErrCommandFailed, "git config --global %s exited with status %d", v.key, code)
	}
	out = bytes.TrimSuffix(out, []byte{0})
	if !utf8.Valid(out) {
		return false, errors.Newf(errors.ErrInvalidData, "value of git config %s is not valid UTF-8", v.key)
	}
	current := string(out)
	v.logger.Debug().Str("key", v.key).Str("current", current).Str("want", v.value).Msg("git config value")
	return current == v.value, nil
}

func (v *Value) Apply() error {
	return command.Succeed(v.runner, command.New("git", "config", "--global", v.key, v.value))
}

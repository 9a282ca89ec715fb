// Package apt provides properties for packages managed by apt on
// Debian-like systems.
package apt

import (
	"bufio"
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

// Packages states that packages are installed, or that none of them is
type Packages struct {
	packages  []string
	installed bool
	runner    command.Runner
	logger    zerolog.Logger
}

// Installed states that every package is installed by apt
func Installed(packages ...string) *Packages {
	return newPackages(packages, true)
}

// Removed states that no package in packages is installed
func Removed(packages ...string) *Packages {
	return newPackages(packages, false)
}

func newPackages(packages []string, installed bool) *Packages {
	return &Packages{
		packages:  append([]string(nil), packages...),
		installed: installed,
		runner:    command.NewExec(),
		logger:    logging.GetLogger("apt"),
	}
}

// WithRunner returns a copy of p that runs commands through r
func (p *Packages) WithRunner(r command.Runner) *Packages {
	c := *p
	c.runner = r
	return &c
}

// Capability implements property.Property
func (p *Packages) Capability() capability.Capability {
	return capability.DebianLike
}

func (p *Packages) String() string {
	state := "installed"
	if !p.installed {
		state = "not installed"
	}
	if len(p.packages) == 1 {
		return fmt.Sprintf("package %s is %s by apt", p.packages[0], state)
	}
	return fmt.Sprintf("packages %v are %s by apt", p.packages, state)
}

// Validate implements property.Validator
func (p *Packages) Validate() error {
	if len(p.packages) == 0 {
		return errors.New(errors.ErrInvalidInput, "no apt packages given")
	}
	for _, name := range p.packages {
		if name == "" || strings.HasPrefix(name, "-") || strings.ContainsAny(name, " \t\n") {
			return errors.Newf(errors.ErrInvalidInput, "invalid apt package name %q", name)
		}
	}
	return nil
}

// policy returns, for each "Installed:" line of apt-cache policy, whether
// it names a version.
func (p *Packages) policy() ([]bool, error) {
	cmd := command.New("apt-cache", append([]string{"policy"}, p.packages...)...).WithEnv("LANG=C")
	out, code, err := p.runner.Output(cmd)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(out) {
		return nil, errors.New(errors.ErrInvalidData, "apt-cache policy output is not valid UTF-8")
	}
	p.logger.Trace().Int("exit_code", code).Msg("apt-cache policy")

	var states []bool
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.Contains(line, "Installed: (none)"):
			states = append(states, false)
		case strings.Contains(line, "Installed: "):
			states = append(states, true)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrInvalidData, "failed to read apt-cache policy output")
	}
	return states, nil
}

func (p *Packages) Check() (bool, error) {
	states, err := p.policy()
	if err != nil {
		return false, err
	}
	if p.installed {
		if len(states) != len(p.packages) {
			return false, nil
		}
		for _, installed := range states {
			if !installed {
				return false, nil
			}
		}
		return true, nil
	}
	for _, installed := range states {
		if installed {
			return false, nil
		}
	}
	return true, nil
}

func (p *Packages) Apply() error {
	action := "install"
	if !p.installed {
		action = "remove"
	}
	args := append([]string{"--assume-yes", action}, p.packages...)
	p.logger.Info().Strs("packages", p.packages).Str("action", action).Msg("running apt-get")
	return command.Succeed(p.runner, command.New("apt-get", args...))
}

// Package pacman provides properties for packages managed by pacman on
// Arch Linux.
package pacman

import (
	"fmt"
	"strings"

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

// Installed states that every package is installed by pacman
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
		logger:    logging.GetLogger("pacman"),
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
	return capability.ArchLinux
}

func (p *Packages) String() string {
	state := "installed"
	if !p.installed {
		state = "not installed"
	}
	if len(p.packages) == 1 {
		return fmt.Sprintf("package %s is %s by pacman", p.packages[0], state)
	}
	return fmt.Sprintf("packages %v are %s by pacman", p.packages, state)
}

// Validate implements property.Validator
func (p *Packages) Validate() error {
	if len(p.packages) == 0 {
		return errors.New(errors.ErrInvalidInput, "no pacman packages given")
	}
	for _, name := range p.packages {
		if name == "" || strings.HasPrefix(name, "-") || strings.ContainsAny(name, " \t\n") {
			return errors.Newf(errors.ErrInvalidInput, "invalid pacman package name %q", name)
		}
	}
	return nil
}

// isInstalled queries the local database. -Ql lists the files of an
// installed package and fails for anything else.
func (p *Packages) isInstalled(name string) (bool, error) {
	flag := "-Ql"
	if !p.installed {
		flag = "-Q"
	}
	_, code, err := p.runner.Output(command.New("pacman", flag, name))
	if err != nil {
		return false, err
	}
	return code == 0, nil
}

func (p *Packages) Check() (bool, error) {
	for _, name := range p.packages {
		installed, err := p.isInstalled(name)
		if err != nil {
			return false, err
		}
		if installed != p.installed {
			return false, nil
		}
	}
	return true, nil
}

// Apply installs the packages, or removes those of them still installed.
func (p *Packages) Apply() error {
	if p.installed {
		p.logger.Info().Strs("packages", p.packages).Msg("installing")
		args := append([]string{"-S", "--needed", "--noconfirm"}, p.packages...)
		return command.Succeed(p.runner, command.New("pacman", args...))
	}

	var present []string
	for _, name := range p.packages {
		installed, err := p.isInstalled(name)
		if err != nil {
			return err
		}
		if installed {
			present = append(present, name)
		}
	}
	if len(present) == 0 {
		return nil
	}
	p.logger.Info().Strs("packages", present).Msg("removing")
	args := append([]string{"-R", "--noconfirm"}, present...)
	return command.Succeed(p.runner, command.New("pacman", args...))
}

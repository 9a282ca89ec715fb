// Package capability classifies host environments into a small lattice
// used to restrict which properties may be composed for which hosts.
//
// The order is Any < Linux < {ArchLinux, DebianLike}. A property that
// requires capability C may be added to a list declared for capability D
// when D is C or more specific than C. ArchLinux and DebianLike are
// incomparable. There is no runtime OS detection: the lattice only
// constrains what a configuration may declare.
package capability

import (
	"fmt"
	"strings"

	"github.com/wzhd/rotor/pkg/errors"
)

// Capability identifies an environment class
type Capability int

const (
	// Any is every environment rotor runs in
	Any Capability = iota
	// Linux is any Linux distribution
	Linux
	// ArchLinux is Arch Linux and derivatives using pacman
	ArchLinux
	// DebianLike is Debian and derivatives using apt
	DebianLike
)

// parents maps every capability to the next less specific one.
var parents = map[Capability]Capability{
	Linux:      Any,
	ArchLinux:  Linux,
	DebianLike: Linux,
}

// All returns every known capability, least specific first.
func All() []Capability {
	return []Capability{Any, Linux, ArchLinux, DebianLike}
}

// Valid reports whether c is one of the declared capabilities.
func (c Capability) Valid() bool {
	return c >= Any && c <= DebianLike
}

// String returns the configuration name of the capability
func (c Capability) String() string {
	switch c {
	case Any:
		return "any"
	case Linux:
		return "linux"
	case ArchLinux:
		return "archlinux"
	case DebianLike:
		return "debianlike"
	default:
		return fmt.Sprintf("capability(%d)", int(c))
	}
}

// Satisfies reports whether an environment declared as c accepts a
// property that requires the capability required.
func (c Capability) Satisfies(required Capability) bool {
	if !c.Valid() || !required.Valid() {
		return false
	}
	for cur := c; ; {
		if cur == required {
			return true
		}
		parent, ok := parents[cur]
		if !ok {
			return false
		}
		cur = parent
	}
}

// Parse converts a configuration name into a Capability
func Parse(name string) (Capability, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "any", "":
		return Any, nil
	case "linux":
		return Linux, nil
	case "archlinux", "arch":
		return ArchLinux, nil
	case "debianlike", "debian":
		return DebianLike, nil
	default:
		return Any, errors.Newf(errors.ErrInvalidInput, "unknown capability: %s", name)
	}
}

// MarshalText renders the configuration name
func (c Capability) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, errors.Newf(errors.ErrInvalidInput, "invalid capability %d", int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText accepts every name Parse does
func (c *Capability) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Package host holds the declared hosts, the users configured on each
// and the property list belonging to every user.
package host

import (
	"github.com/wzhd/rotor/pkg/capability"
	"github.com/wzhd/rotor/pkg/errors"
	"github.com/wzhd/rotor/pkg/property"
)

// User is a user account and the properties it should have
type User struct {
	Name       string
	Properties *property.List
}

// Host is a machine of a known kind
type Host struct {
	Name       string
	Capability capability.Capability
	Users      []User
}

// NewHost returns a host without users
func NewHost(name string, c capability.Capability) *Host {
	return &Host{Name: name, Capability: c}
}

// AddUser configures a user on h. The list must be declared for the
// host's capability.
func (h *Host) AddUser(name string, list *property.List) error {
	if name == "" {
		return errors.Newf(errors.ErrInvalidInput, "empty user name on host %s", h.Name)
	}
	if list == nil {
		return errors.Newf(errors.ErrInvalidInput, "user %s on host %s has no property list", name, h.Name)
	}
	if list.Capability() != h.Capability {
		return errors.Newf(errors.ErrInvalidInput,
			"property list of %s@%s is declared for %s, host is %s", name, h.Name, list.Capability(), h.Capability)
	}
	if _, ok := h.User(name); ok {
		return errors.Newf(errors.ErrAlreadyExists, "user %s already configured on host %s", name, h.Name)
	}
	h.Users = append(h.Users, User{Name: name, Properties: list})
	return nil
}

// User finds a configured user by name
func (h *Host) User(name string) (User, bool) {
	for _, u := range h.Users {
		if u.Name == name {
			return u, true
		}
	}
	return User{}, false
}

// Registry is the ordered set of configured hosts
type Registry struct {
	hosts []*Host
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Add appends h. Host names are unique.
func (r *Registry) Add(h *Host) error {
	if h == nil || h.Name == "" {
		return errors.New(errors.ErrInvalidInput, "host without a name")
	}
	if !h.Capability.Valid() {
		return errors.Newf(errors.ErrInvalidInput, "host %s has an invalid capability", h.Name)
	}
	if _, ok := r.Host(h.Name); ok {
		return errors.Newf(errors.ErrAlreadyExists, "host %s already configured", h.Name)
	}
	r.hosts = append(r.hosts, h)
	return nil
}

// Hosts returns the hosts in declaration order
func (r *Registry) Hosts() []*Host {
	return append([]*Host(nil), r.hosts...)
}

// Host finds a host by name
func (r *Registry) Host(name string) (*Host, bool) {
	for _, h := range r.hosts {
		if h.Name == name {
			return h, true
		}
	}
	return nil, false
}

// Lookup returns the property list configured for a user at a host.
func (r *Registry) Lookup(target UserAtHost) (*property.List, error) {
	h, ok := r.Host(target.Host)
	if !ok {
		return nil, errors.Newf(errors.ErrNotFound, "host %s not configured", target.Host).
			WithDetail("host", target.Host)
	}
	u, ok := h.User(target.User)
	if !ok {
		return nil, errors.Newf(errors.ErrNotFound, "user %s not configured on host %s", target.User, target.Host).
			WithDetail("host", target.Host).
			WithDetail("user", target.User)
	}
	return u.Properties, nil
}

// Pair is one configured user at a host
type Pair struct {
	Host       string                `json:"host" yaml:"host"`
	User       string                `json:"user" yaml:"user"`
	Capability capability.Capability `json:"capability" yaml:"capability"`
	Properties int                   `json:"properties" yaml:"properties"`
}

// Target returns the address of the pair
func (p Pair) Target() UserAtHost {
	return UserAtHost{User: p.User, Host: p.Host}
}

// Pairs enumerates every user of every host in declaration order
func (r *Registry) Pairs() []Pair {
	var pairs []Pair
	for _, h := range r.hosts {
		for _, u := range h.Users {
			pairs = append(pairs, Pair{
				Host:       h.Name,
				User:       u.Name,
				Capability: h.Capability,
				Properties: u.Properties.Len(),
			})
		}
	}
	return pairs
}

// Resolve expands push targets into the users they address. Every target
// must name configured hosts and users.
func (r *Registry) Resolve(targets ...PushTarget) ([]UserAtHost, error) {
	var resolved []UserAtHost
	for _, t := range targets {
		if !t.IsHost() {
			u := UserAtHost{User: t.User, Host: t.Host}
			if _, err := r.Lookup(u); err != nil {
				return nil, err
			}
			resolved = append(resolved, u)
			continue
		}
		h, ok := r.Host(t.Host)
		if !ok {
			return nil, errors.Newf(errors.ErrNotFound, "host %s not configured", t.Host).
				WithDetail("host", t.Host)
		}
		for _, u := range h.Users {
			resolved = append(resolved, UserAtHost{User: u.Name, Host: h.Name})
		}
	}
	return resolved, nil
}

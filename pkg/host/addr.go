package host

import (
	"strings"

	"github.com/wzhd/rotor/pkg/errors"
)

// UserAtHost addresses one user on one host
type UserAtHost struct {
	User string
	Host string
}

// ParseUserAtHost parses "user@host". Exactly one '@' is allowed and both
// sides must be non-empty.
func ParseUserAtHost(s string) (UserAtHost, error) {
	user, host, ok := strings.Cut(s, "@")
	switch {
	case !ok:
		return UserAtHost{}, errors.Newf(errors.ErrInvalidInput, "%q is not of the form user@host", s)
	case strings.Contains(host, "@"):
		return UserAtHost{}, errors.Newf(errors.ErrInvalidInput, "%q contains more than one @", s)
	case user == "":
		return UserAtHost{}, errors.Newf(errors.ErrInvalidInput, "%q has an empty user name", s)
	case host == "":
		return UserAtHost{}, errors.Newf(errors.ErrInvalidInput, "%q has an empty host name", s)
	}
	return UserAtHost{User: user, Host: host}, nil
}

func (u UserAtHost) String() string {
	return u.User + "@" + u.Host
}

// PushTarget is either every user of a host or a single user at a host
type PushTarget struct {
	Host string
	// User is empty when the target is the whole host
	User string
}

// ParsePushTarget reads a string without '@' as a host name and anything
// else as user@host.
func ParsePushTarget(s string) (PushTarget, error) {
	if !strings.Contains(s, "@") {
		if s == "" {
			return PushTarget{}, errors.New(errors.ErrInvalidInput, "empty push target")
		}
		return PushTarget{Host: s}, nil
	}
	u, err := ParseUserAtHost(s)
	if err != nil {
		return PushTarget{}, err
	}
	return PushTarget{Host: u.Host, User: u.User}, nil
}

// IsHost reports whether t names all users of a host
func (t PushTarget) IsHost() bool {
	return t.User == ""
}

func (t PushTarget) String() string {
	if t.IsHost() {
		return t.Host
	}
	return t.User + "@" + t.Host
}

package property

import (
	"github.com/wzhd/rotor/pkg/capability"
	"github.com/wzhd/rotor/pkg/errors"
)

// List is an ordered collection of properties applied sequentially. All
// of them are usable for the list's capability.
type List struct {
	capability capability.Capability
	properties []Property
}

// NewList creates an empty list for hosts declared with capability c.
func NewList(c capability.Capability) *List {
	return &List{capability: c}
}

// Capability returns the capability the list was declared for
func (l *List) Capability() capability.Capability {
	return l.capability
}

// Add appends properties in order. A property whose capability is not
// satisfied by the list's capability, or that fails validation, is
// rejected and nothing after it is added.
func (l *List) Add(props ...Property) error {
	for _, p := range props {
		if p == nil {
			return errors.New(errors.ErrInvalidInput, "nil property")
		}
		if !l.capability.Satisfies(p.Capability()) {
			return errors.Newf(errors.ErrInvalidInput,
				"property %q requires %s, not available for %s",
				p.String(), p.Capability(), l.capability).
				WithDetail("required", p.Capability().String()).
				WithDetail("declared", l.capability.String())
		}
		if v, ok := p.(Validator); ok {
			if err := v.Validate(); err != nil {
				return err
			}
		}
		l.properties = append(l.properties, p)
	}
	return nil
}

// MustAdd is Add for configurations written in Go, where a lattice
// violation is a programming error. It panics on failure.
func (l *List) MustAdd(props ...Property) *List {
	if err := l.Add(props...); err != nil {
		panic(err)
	}
	return l
}

// Len returns the number of properties
func (l *List) Len() int {
	return len(l.properties)
}

// Properties returns the properties in execution order. The slice is a
// copy; the properties themselves are shared.
func (l *List) Properties() []Property {
	out := make([]Property, len(l.properties))
	copy(out, l.properties)
	return out
}

// Clone returns an independent list holding the same properties.
func (l *List) Clone() *List {
	return &List{capability: l.capability, properties: l.Properties()}
}

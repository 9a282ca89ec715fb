// Package property defines the unit of desired state and the ordered list
// properties are composed into.
//
// A Property reports whether its condition already holds (Check) and
// brings it about (Apply). Every implementation is idempotent, and
// immediately after a successful Apply, Check observes true. Properties
// are immutable once constructed, so one value can be shared by several
// lists without copying.
package property

import (
	"github.com/wzhd/rotor/pkg/capability"
)

// Property is a single idempotent, checkable and applicable unit of
// desired configuration state.
type Property interface {
	// Check reports whether the condition already holds
	Check() (bool, error)

	// Apply brings the condition into effect. It must not assume Check
	// was just called.
	Apply() error

	// String returns a human-readable description used in progress output
	String() string

	// Capability returns the least specific environment the property
	// works in
	Capability() capability.Capability
}

// Validator is implemented by properties whose configuration can be
// inconsistent. Validate is called when the property is added to a list.
type Validator interface {
	Validate() error
}

// Differ is implemented by properties that can describe the change Apply
// would make without making it. An empty diff means nothing would change.
type Differ interface {
	Diff() (string, error)
}

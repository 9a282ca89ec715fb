package testutil

import (
	"fmt"

	"github.com/wzhd/rotor/pkg/capability"
	"github.com/wzhd/rotor/pkg/property"
)

// FakeProperty is a property whose outcome is scripted by its fields.
// A successful Apply makes later Checks report true.
type FakeProperty struct {
	Name      string
	Cap       capability.Capability
	Satisfied bool
	CheckErr  error
	ApplyErr  error

	Checks  int
	Applies int
}

// NewFakeProperty returns an unsatisfied property usable on any host
func NewFakeProperty(name string) *FakeProperty {
	return &FakeProperty{Name: name, Cap: capability.Any}
}

func (f *FakeProperty) Check() (bool, error) {
	f.Checks++
	if f.CheckErr != nil {
		return false, f.CheckErr
	}
	return f.Satisfied, nil
}

func (f *FakeProperty) Apply() error {
	f.Applies++
	if f.ApplyErr != nil {
		return f.ApplyErr
	}
	f.Satisfied = true
	return nil
}

func (f *FakeProperty) String() string {
	return fmt.Sprintf("fake %s", f.Name)
}

func (f *FakeProperty) Capability() capability.Capability {
	return f.Cap
}

var _ property.Property = (*FakeProperty)(nil)

package property_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wzhd/rotor/pkg/capability"
	"github.com/wzhd/rotor/pkg/errors"
	"github.com/wzhd/rotor/pkg/property"
	"github.com/wzhd/rotor/pkg/testutil"
)

type invalidProperty struct {
	*testutil.FakeProperty
}

func (invalidProperty) Validate() error {
	return errors.New(errors.ErrInvalidInput, "package in both sets")
}

func TestListPreservesOrder(t *testing.T) {
	list := property.NewList(capability.ArchLinux)
	a := testutil.NewFakeProperty("a")
	b := testutil.NewFakeProperty("b")
	c := testutil.NewFakeProperty("c")

	require.NoError(t, list.Add(a, b))
	require.NoError(t, list.Add(c))

	props := list.Properties()
	require.Len(t, props, 3)
	assert.Same(t, a, props[0])
	assert.Same(t, b, props[1])
	assert.Same(t, c, props[2])
}

func TestListEnforcesCapability(t *testing.T) {
	tests := []struct {
		name     string
		declared capability.Capability
		required capability.Capability
		wantErr  bool
	}{
		{"any_on_arch", capability.ArchLinux, capability.Any, false},
		{"linux_on_debian", capability.DebianLike, capability.Linux, false},
		{"arch_on_debian", capability.DebianLike, capability.ArchLinux, true},
		{"linux_on_any", capability.Any, capability.Linux, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list := property.NewList(tt.declared)
			p := testutil.NewFakeProperty("p")
			p.Cap = tt.required

			err := list.Add(p)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
				assert.Equal(t, 0, list.Len())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 1, list.Len())
		})
	}
}

func TestListStopsAtFirstRejected(t *testing.T) {
	list := property.NewList(capability.Linux)
	bad := testutil.NewFakeProperty("bad")
	bad.Cap = capability.DebianLike

	err := list.Add(testutil.NewFakeProperty("good"), bad, testutil.NewFakeProperty("after"))
	require.Error(t, err)
	assert.Equal(t, 1, list.Len())
}

func TestListRunsValidator(t *testing.T) {
	list := property.NewList(capability.Any)
	err := list.Add(invalidProperty{testutil.NewFakeProperty("conflict")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "both sets")
	assert.Equal(t, 0, list.Len())
}

func TestListRejectsNil(t *testing.T) {
	list := property.NewList(capability.Any)
	assert.Error(t, list.Add(nil))
}

func TestMustAddPanics(t *testing.T) {
	list := property.NewList(capability.Any)
	p := testutil.NewFakeProperty("pacman only")
	p.Cap = capability.ArchLinux

	assert.Panics(t, func() { list.MustAdd(p) })
	assert.NotPanics(t, func() { list.MustAdd(testutil.NewFakeProperty("ok")) })
}

func TestCloneSharesPropertiesNotStorage(t *testing.T) {
	list := property.NewList(capability.Any).MustAdd(testutil.NewFakeProperty("a"))
	clone := list.Clone()

	clone.MustAdd(testutil.NewFakeProperty("b"))

	assert.Equal(t, 1, list.Len())
	assert.Equal(t, 2, clone.Len())
	assert.Same(t, list.Properties()[0], clone.Properties()[0])
	assert.Equal(t, capability.Any, clone.Capability())
}

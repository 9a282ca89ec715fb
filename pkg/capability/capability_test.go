package capability_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wzhd/rotor/pkg/capability"
	"github.com/wzhd/rotor/pkg/errors"
)

func TestSatisfies(t *testing.T) {
	tests := []struct {
		declared capability.Capability
		required capability.Capability
		want     bool
	}{
		{capability.Any, capability.Any, true},
		{capability.Linux, capability.Any, true},
		{capability.ArchLinux, capability.Any, true},
		{capability.DebianLike, capability.Any, true},
		{capability.ArchLinux, capability.Linux, true},
		{capability.DebianLike, capability.Linux, true},
		{capability.ArchLinux, capability.ArchLinux, true},

		// never upwards
		{capability.Any, capability.Linux, false},
		{capability.Linux, capability.ArchLinux, false},
		{capability.Any, capability.DebianLike, false},

		// siblings are incomparable
		{capability.ArchLinux, capability.DebianLike, false},
		{capability.DebianLike, capability.ArchLinux, false},

		{capability.Capability(42), capability.Any, false},
	}

	for _, tt := range tests {
		t.Run(tt.declared.String()+"_requires_"+tt.required.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.declared.Satisfies(tt.required))
		})
	}
}

func TestParse(t *testing.T) {
	for _, c := range capability.All() {
		parsed, err := capability.Parse(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
	}

	parsed, err := capability.Parse("Debian")
	require.NoError(t, err)
	assert.Equal(t, capability.DebianLike, parsed)

	_, err = capability.Parse("windows")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestText(t *testing.T) {
	text, err := capability.ArchLinux.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "archlinux", string(text))

	var c capability.Capability
	require.NoError(t, c.UnmarshalText([]byte("debian")))
	assert.Equal(t, capability.DebianLike, c)

	_, err = capability.Capability(42).MarshalText()
	assert.Error(t, err)
}

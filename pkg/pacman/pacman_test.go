package pacman_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wzhd/rotor/pkg/capability"
	"github.com/wzhd/rotor/pkg/errors"
	"github.com/wzhd/rotor/pkg/pacman"
	"github.com/wzhd/rotor/pkg/testutil"
)

func TestInstalledCheck(t *testing.T) {
	r := testutil.NewFakeRunner()
	r.On("pacman -Ql fish", testutil.FakeResult{ExitCode: 1})

	ok, err := pacman.Installed("bash").WithRunner(r).Check()
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = pacman.Installed("bash", "fish").WithRunner(r).Check()
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Equal(t, []string{"pacman -Ql bash", "pacman -Ql bash", "pacman -Ql fish"}, r.CommandLines())
}

func TestRemovedCheck(t *testing.T) {
	r := testutil.NewFakeRunner()
	r.On("pacman -Q nano", testutil.FakeResult{ExitCode: 1})

	ok, err := pacman.Removed("nano").WithRunner(r).Check()
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = pacman.Removed("nano", "vi").WithRunner(r).Check()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCheckPropagatesRunError(t *testing.T) {
	r := testutil.NewFakeRunner()
	r.On("pacman -Ql bash", testutil.FakeResult{Err: errors.New(errors.ErrCommandFailed, "failed to run pacman")})

	_, err := pacman.Installed("bash").WithRunner(r).Check()
	assert.True(t, errors.IsErrorCode(err, errors.ErrCommandFailed))
}

func TestInstalledApply(t *testing.T) {
	r := testutil.NewFakeRunner()

	require.NoError(t, pacman.Installed("bash", "fish").WithRunner(r).Apply())
	assert.Equal(t, []string{"pacman -S --needed --noconfirm bash fish"}, r.CommandLines())
}

func TestRemovedApplySkipsAbsentPackages(t *testing.T) {
	r := testutil.NewFakeRunner()
	r.On("pacman -Q nano", testutil.FakeResult{ExitCode: 1})

	require.NoError(t, pacman.Removed("nano", "vi").WithRunner(r).Apply())
	assert.Equal(t, []string{"pacman -Q nano", "pacman -Q vi", "pacman -R --noconfirm vi"}, r.CommandLines())
}

func TestRemovedApplyNothingInstalled(t *testing.T) {
	r := testutil.NewFakeRunner()
	r.On("pacman -Q nano", testutil.FakeResult{ExitCode: 1})

	require.NoError(t, pacman.Removed("nano").WithRunner(r).Apply())
	assert.Equal(t, []string{"pacman -Q nano"}, r.CommandLines())
}

func TestApplyFailure(t *testing.T) {
	r := testutil.NewFakeRunner()
	r.On("pacman -S --needed --noconfirm bash", testutil.FakeResult{ExitCode: 1})

	err := pacman.Installed("bash").WithRunner(r).Apply()
	assert.True(t, errors.IsErrorCode(err, errors.ErrCommandFailed))
}

func TestValidate(t *testing.T) {
	assert.NoError(t, pacman.Installed("bash").Validate())
	assert.Error(t, pacman.Removed().Validate())
	assert.Error(t, pacman.Installed("-Syu").Validate())
}

func TestDescription(t *testing.T) {
	assert.Equal(t, "package bash is installed by pacman", pacman.Installed("bash").String())
	assert.Equal(t, "packages [nano vi] are not installed by pacman", pacman.Removed("nano", "vi").String())
	assert.Equal(t, capability.ArchLinux, pacman.Installed("bash").Capability())
}

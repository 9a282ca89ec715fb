// Package testutil provides utilities for testing rotor components.
//
// Key components:
//   - FakeProperty: a scriptable property for runner and list tests
//   - TestRepo: a package repository and home directory on the real
//     filesystem, for linker tests that need real symlinks
//   - FakeRunner: a recorded replacement for external commands
//   - RecordingFs: an afero.Fs that records where each write landed
//
// Usage guidelines:
//   - Text file properties are tested against afero.MemMapFs
//   - Anything involving symlinks or file identity uses t.TempDir()
//   - Each test should be completely isolated with no shared state
package testutil

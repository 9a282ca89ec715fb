// Package paths provides user-relative path handling for rotor.
//
// Properties name files the way a user writes them in a configuration:
// a relative path (or one starting with "~/") lives in the home
// directory of whoever runs rotor, an absolute path is taken as-is.
//
// # Resolution
//
// A UserPath is resolved only at the point of use. The home directory is
// looked up on every call to Expand, so a run that changes HOME (tests,
// sudo wrappers) sees the new value immediately. Nothing is cached.
//
// # Display
//
// String renders home-relative paths as "~/rel" so progress lines stay
// short and identical across machines.
package paths

// Package linker mirrors packages of a repository into an installation
// directory using symlinks, in the manner of GNU Stow.
//
// A repository is a directory holding one subdirectory per package. Each
// package is a tree of regular files and directories. Linking a package
// recreates its directories under the installation directory and places a
// relative symlink for every regular file. Unlinking removes only the
// symlinks that resolve to files of that package; directories are never
// removed because other packages may still use them.
//
// Link state is decided by file identity (device and inode), not by
// comparing link target strings, so relative and absolute links to the
// same file are equivalent and two packages holding a file at the same
// relative path never match each other.
//
// Packages may contain only regular files and directories. A symlink,
// device or socket inside a package is an UNSUPPORTED_ENTRY error.
package linker

// Package filesystem provides a virtualized abstraction layer for all filesystem operations.
//
// It utilizes the afero library so configuration, logs and caches can run against an in-memory backend in tests.
package filesystem

import "github.com/spf13/afero"

var backend = afero.Afero{Fs: afero.NewOsFs()}

// API returns the active afero.Afero instance for filesystem interaction.
func API() afero.Afero {
	return backend
}

// SetOsFs restores the native operating system backend.
func SetOsFs() {
	backend = afero.Afero{Fs: afero.NewOsFs()}
}

// SetMemMapFs switches to a volatile in-memory backend.
func SetMemMapFs() {
	backend = afero.Afero{Fs: afero.NewMemMapFs()}
}

// Exists reports whether path exists, treating lookup errors as absence.
func Exists(path string) bool {
	ok, err := backend.Exists(path)
	return err == nil && ok
}

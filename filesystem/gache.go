package filesystem

import (
	"io"
	"os"
)

// CacheFs exposes the swappable backend through the gache.FileSystem interface,
// so on-disk caches follow SetMemMapFs in tests.
type CacheFs struct{}

// OpenFile opens a file using the current filesystem backend.
func (CacheFs) OpenFile(name string, flag int, perm os.FileMode) (io.ReadWriteCloser, error) {
	return API().OpenFile(name, flag, perm)
}

// MkdirAll creates a directory using the current filesystem backend.
func (CacheFs) MkdirAll(path string, perm os.FileMode) error {
	return API().MkdirAll(path, perm)
}

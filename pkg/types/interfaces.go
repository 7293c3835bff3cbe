package types

import (
	"io/fs"
)

// FS is the part of a filesystem the cleaner works against. ReadDir and
// Lstat must report symbolic links as links, never as their targets; Stat
// follows them.
type FS interface {
	ReadDir(name string) ([]fs.DirEntry, error)
	Lstat(name string) (fs.FileInfo, error)
	Stat(name string) (fs.FileInfo, error)

	Remove(name string) error
	RemoveAll(path string) error

	// Used to lay out fixtures
	MkdirAll(path string, perm fs.FileMode) error
	WriteFile(name string, data []byte, perm fs.FileMode) error
}

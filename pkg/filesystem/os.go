package filesystem

import (
	"io/fs"
	"os"

	"github.com/arthur-debert/sdkpack/pkg/types"
)

type osFS struct{}

// NewOS returns the real filesystem. os.ReadDir does not follow links, so
// a link to a directory is seen as a link.
func NewOS() types.FS {
	return osFS{}
}

func (osFS) ReadDir(name string) ([]fs.DirEntry, error) { return os.ReadDir(name) }
func (osFS) Lstat(name string) (fs.FileInfo, error) { return os.Lstat(name) }
func (osFS) Stat(name string) (fs.FileInfo, error) { return os.Stat(name) }
func (osFS) Remove(name string) error { return os.Remove(name) }
func (osFS) RemoveAll(path string) error { return os.RemoveAll(path) }
func (osFS) MkdirAll(path string, perm fs.FileMode) error { return os.MkdirAll(path, perm) }

func (osFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(name, data, perm)
}

package filesystem

import (
	"io/fs"
	"sort"

	"github.com/arthur-debert/sdkpack/pkg/types"
	"github.com/spf13/afero"
)

// aferoFS adapts an afero.Fs, typically a MemMapFs or a ReadOnlyFs in
// tests, to types.FS.
type aferoFS struct {
	afs afero.Fs
}

// NewAferoFS wraps afs
func NewAferoFS(afs afero.Fs) types.FS {
	return &aferoFS{afs: afs}
}

// ReadDir returns entries sorted by name, like os.ReadDir. Backends that
// support Lstat are listed without following links.
func (a *aferoFS) ReadDir(name string) ([]fs.DirEntry, error) {
	dir, err := a.afs.Open(name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = dir.Close() }()

	names, err := dir.Readdirnames(-1)
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	entries := make([]fs.DirEntry, 0, len(names))
	for _, n := range names {
		info, err := a.Lstat(name + "/" + n)
		if err != nil {
			return nil, err
		}
		entries = append(entries, fs.FileInfoToDirEntry(info))
	}
	return entries, nil
}

func (a *aferoFS) Lstat(name string) (fs.FileInfo, error) {
	if l, ok := a.afs.(afero.Lstater); ok {
		info, _, err := l.LstatIfPossible(name)
		return info, err
	}
	return a.afs.Stat(name)
}

func (a *aferoFS) Stat(name string) (fs.FileInfo, error) { return a.afs.Stat(name) }

func (a *aferoFS) Remove(name string) error { return a.afs.Remove(name) }
func (a *aferoFS) RemoveAll(path string) error { return a.afs.RemoveAll(path) }

func (a *aferoFS) MkdirAll(path string, perm fs.FileMode) error {
	return a.afs.MkdirAll(path, perm)
}

func (a *aferoFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return afero.WriteFile(a.afs, name, data, perm)
}

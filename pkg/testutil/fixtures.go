package testutil

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Tree describes a source tree written by SDKTree. Paths are relative to
// the tree root and slash-separated.
type Tree struct {
	Root     string
	Kept     []string
	Removed  []string
	Symlinks map[string]string
}

// SDKTree writes a small SDK source tree under root containing every kind
// of entry the default exclusion rules strip, next to entries that must
// survive packaging.
func SDKTree(t *testing.T, root string) *Tree {
	t.Helper()

	tree := &Tree{
		Root: root,
		Kept: []string{
			"README",
			"examples/hello_world/hello_world.c",
			"examples/hello_world/Makefile",
			"toolchain/bin/nacl-gcc",
			"third_party/zlib/zlib.h",
			"third_party/zlib/.gitignore",
		},
		Removed: []string{
			".DS_Store",
			"DEPS",
			"examples/._hello_world.c",
			"examples/hello_world/.DS_Store",
			"third_party/zlib/DEPS",
			".svn/entries",
			"toolchain/.svn/text-base/nacl-gcc.svn-base",
			"scons-out/dbg/obj/hello.o",
			"third_party/packages/zlib-1.2.3.tgz",
			"third_party/zlib/.download/zlib.tgz",
		},
		Symlinks: map[string]string{
			"toolchain/bin/gcc": "nacl-gcc",
		},
	}

	for _, rel := range append(append([]string(nil), tree.Kept...), tree.Removed...) {
		CreateFile(t, root, filepath.FromSlash(rel), "content of "+rel+"\n")
	}
	for link, target := range tree.Symlinks {
		CreateSymlink(t, target, filepath.Join(root, filepath.FromSlash(link)))
	}

	return tree
}

// RequireTar skips the test when tar is not on PATH.
func RequireTar(t *testing.T) {
	t.Helper()

	if _, err := exec.LookPath("tar"); err != nil {
		t.Skip("Test requires tar")
	}
}

// WriteFakeSVN writes an executable script into dir that behaves like
// `svn info` for a working copy at the given revision, and returns its path.
func WriteFakeSVN(t *testing.T, dir string, revision int) string {
	t.Helper()
	SkipOnWindows(t)

	script := fmt.Sprintf(`#!/bin/sh
if [ "$1" != "info" ]; then
  echo "unexpected command: $1" >&2
  exit 1
fi
echo "Path: ."
echo "URL: http://nativeclient-sdk.googlecode.com/svn/trunk/src"
echo "Revision: %d"
echo "Node Kind: directory"
`, revision)

	return writeScript(t, dir, "svn", script)
}

// WriteFailingSVN writes a script that fails like `svn info` outside a
// working copy, and returns its path.
func WriteFailingSVN(t *testing.T, dir string) string {
	t.Helper()
	SkipOnWindows(t)

	script := `#!/bin/sh
echo "svn: warning: '.' is not a working copy" >&2
exit 1
`
	return writeScript(t, dir, "svn-broken", script)
}

// WriteTarWrapper writes a script that runs the real tar and then, when the
// first argument is mode and tar succeeded, exits with status after
// printing a GNU-style warning. It returns the script's path.
func WriteTarWrapper(t *testing.T, dir, mode string, status int) string {
	t.Helper()
	SkipOnWindows(t)

	tar, err := exec.LookPath("tar")
	if err != nil {
		t.Skip("Test requires tar")
	}

	script := fmt.Sprintf(`#!/bin/sh
%q "$@"
rc=$?
if [ $rc -ne 0 ]; then
  exit $rc
fi
if [ "$1" = %q ]; then
  echo "tar: .: file changed as we read it" >&2
  exit %d
fi
exit 0
`, tar, mode, status)

	return writeScript(t, dir, "tar-wrapper", script)
}

func writeScript(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0755); err != nil {
		t.Fatalf("Failed to write script %s: %v", path, err)
	}
	return path
}

// InitGitRepo creates a git repository in dir with the given number of
// commits on HEAD.
func InitGitRepo(t *testing.T, dir string, commits int) {
	t.Helper()

	repo, err := gogit.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("Failed to init git repo in %s: %v", dir, err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Failed to open worktree: %v", err)
	}

	for i := 1; i <= commits; i++ {
		name := fmt.Sprintf("change-%d.txt", i)
		CreateFile(t, dir, name, fmt.Sprintf("change %d\n", i))

		if _, err := wt.Add(name); err != nil {
			t.Fatalf("Failed to add %s: %v", name, err)
		}

		_, err := wt.Commit(fmt.Sprintf("change %d", i), &gogit.CommitOptions{
			Author: &object.Signature{
				Name:  "SDK Builder",
				Email: "builder@example.com",
				When:  time.Date(2010, 6, 1, 12, i, 0, 0, time.UTC),
			},
		})
		if err != nil {
			t.Fatalf("Failed to commit %s: %v", name, err)
		}
	}
}

package verify

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/sdkpack/pkg/commands/build"
	"github.com/arthur-debert/sdkpack/pkg/config"
	"github.com/arthur-debert/sdkpack/pkg/errors"
	"github.com/arthur-debert/sdkpack/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeArchive writes a .tgz holding the given members. Names ending in
// "/" are directories, names with a "->" target are symlinks.
func writeArchive(t *testing.T, path string, members map[string]string) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)

	for name, target := range members {
		hdr := &tar.Header{Name: name, Mode: 0644, Typeflag: tar.TypeReg}
		switch {
		case name[len(name)-1] == '/':
			hdr.Typeflag = tar.TypeDir
			hdr.Mode = 0755
		case target != "":
			hdr.Typeflag = tar.TypeSymlink
			hdr.Linkname = target
		}
		require.NoError(t, tw.WriteHeader(hdr))
	}

	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
}

func TestVerify(t *testing.T) {
	t.Run("clean archive", func(t *testing.T) {
		workDir := t.TempDir()
		writeArchive(t, filepath.Join(workDir, "nacl-sdk.tgz"), map[string]string{
			"native_client_sdk_0_1_9_0/":                    "",
			"native_client_sdk_0_1_9_0/README":              "",
			"native_client_sdk_0_1_9_0/toolchain/bin/gcc":   "nacl-gcc",
			"native_client_sdk_0_1_9_0/third_party/DEPS.md": "",
		})

		result, err := Verify(VerifyOptions{WorkDir: workDir})

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(workDir, "nacl-sdk.tgz"), result.Archive)
		assert.Equal(t, 4, result.Entries)
		assert.True(t, result.OK())
		require.Len(t, result.Symlinks, 1)
		assert.Equal(t, "nacl-gcc", result.Symlinks[0].Linkname)
	})

	t.Run("reports excluded entries", func(t *testing.T) {
		archive := filepath.Join(t.TempDir(), "dirty.tgz")
		writeArchive(t, archive, map[string]string{
			"sdk/":                     "",
			"sdk/README":               "",
			"sdk/DEPS":                 "",
			"sdk/src/._main.c":         "",
			"sdk/src/.svn/":            "",
			"sdk/src/.svn/entries":     "",
			"sdk/scons-out/dbg/x.o":    "",
			"sdk/.DS_Store":            "",
			"sdk/packages":             "",
			"sdk/packages.txt":         "",
			"sdk/lib/libc.a":           "",
			"sdk/lib/.DS_Store-shadow": "",
		})

		result, err := Verify(VerifyOptions{Archive: archive})

		require.NoError(t, err)
		assert.False(t, result.OK())

		var names []string
		for _, v := range result.Violations {
			names = append(names, v.Name)
		}
		assert.ElementsMatch(t, []string{
			"sdk/DEPS",
			"sdk/src/._main.c",
			"sdk/src/.svn/",
			"sdk/src/.svn/entries",
			"sdk/scons-out/dbg/x.o",
			"sdk/.DS_Store",
			"sdk/lib/.DS_Store-shadow",
		}, names)
	})

	t.Run("links to directories are not violations", func(t *testing.T) {
		archive := filepath.Join(t.TempDir(), "links.tgz")
		writeArchive(t, archive, map[string]string{
			"sdk/":                 "",
			"sdk/toolchain/":       "",
			"sdk/toolchain/gcc":    "",
			"sdk/third_party/":     "",
			"sdk/third_party/DEPS": "../toolchain",
			"sdk/.svn":             "toolchain",
			"sdk/lib/DEPS":         "missing",
		})

		result, err := Verify(VerifyOptions{Archive: archive})

		require.NoError(t, err)
		require.Len(t, result.Violations, 1)
		assert.Equal(t, "sdk/lib/DEPS", result.Violations[0].Name)
		assert.Len(t, result.Symlinks, 3)
	})

	t.Run("top level directory is never a violation", func(t *testing.T) {
		archive := filepath.Join(t.TempDir(), "odd.tgz")
		writeArchive(t, archive, map[string]string{"packages/": "", "packages/README": ""})

		result, err := Verify(VerifyOptions{Archive: archive})

		require.NoError(t, err)
		assert.True(t, result.OK())
	})

	t.Run("missing archive", func(t *testing.T) {
		_, err := Verify(VerifyOptions{WorkDir: t.TempDir()})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
	})
}

func TestVerifyBuiltArchive(t *testing.T) {
	testutil.SkipOnWindows(t)
	testutil.RequireTar(t)

	workDir := t.TempDir()
	tree := testutil.SDKTree(t, filepath.Join(workDir, "src"))

	cfg := config.Default()
	cfg.VCS.Kind = config.VCSNone
	cfg.Staging.Dir = t.TempDir()

	_, err := build.Build(context.Background(), build.BuildOptions{
		WorkDir: workDir,
		Config:  cfg,
		Getenv:  func(string) string { return "" },
	})
	require.NoError(t, err)

	result, err := Verify(VerifyOptions{WorkDir: workDir, Config: cfg})

	require.NoError(t, err)
	assert.True(t, result.OK(), "violations: %v", result.Violations)
	assert.Len(t, result.Symlinks, len(tree.Symlinks))
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/sdkpack/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the XDG config lookup at an empty directory so a developer's
// own ~/.config/sdkpack/config.toml never leaks into the tests.
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("SDKPACK_CONFIG_DIR", filepath.Join(t.TempDir(), "config"))
	return t.TempDir()
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "native_client_sdk", cfg.Product.Prefix)
	assert.Equal(t, 0, cfg.Product.Major)
	assert.Equal(t, 1, cfg.Product.Minor)
	assert.Equal(t, "src", cfg.Source.Dir)
	assert.Equal(t, "nacl-sdk.tgz", cfg.Output.Archive)
	assert.Equal(t, "", cfg.Staging.Dir)
	assert.Equal(t, "BUILD_NUMBER", cfg.Build.NumberEnv)
	assert.Equal(t, VCSAuto, cfg.VCS.Kind)
	assert.Equal(t, []string{".svn", ".download", "scons-out", "packages"}, cfg.Exclude.Dirs)
	assert.Equal(t, []string{".DS_Store"}, cfg.Exclude.FilePrefixes)
	assert.Equal(t, []string{"._*"}, cfg.Exclude.FilePatterns)
	assert.Equal(t, []string{"DEPS"}, cfg.Exclude.FileNames)
	assert.Equal(t, "tar", cfg.Tools.Tar)
	assert.Equal(t, "svn", cfg.Tools.Svn)
	assert.Equal(t, `c:\cygwin\bin`, cfg.Tools.CygwinBin)
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	t.Run("defaults only", func(t *testing.T) {
		workDir := isolate(t)

		cfg, err := Load(LoadOptions{WorkDir: workDir})
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("local config overrides defaults", func(t *testing.T) {
		workDir := isolate(t)
		writeFile(t, filepath.Join(workDir, ".sdkpack.toml"), `
[output]
archive = "dist/sdk.tgz"

[exclude]
dirs = [".git"]
`)

		cfg, err := Load(LoadOptions{WorkDir: workDir})
		require.NoError(t, err)
		assert.Equal(t, "dist/sdk.tgz", cfg.Output.Archive)
		assert.Equal(t, []string{".git"}, cfg.Exclude.Dirs)
		// untouched keys keep their defaults
		assert.Equal(t, "src", cfg.Source.Dir)
		assert.Equal(t, []string{"DEPS"}, cfg.Exclude.FileNames)
	})

	t.Run("user config is below local config", func(t *testing.T) {
		workDir := isolate(t)
		writeFile(t, filepath.Join(os.Getenv("SDKPACK_CONFIG_DIR"), "config.toml"), `
[source]
dir = "sdk"

[output]
archive = "user.tgz"
`)
		writeFile(t, filepath.Join(workDir, ".sdkpack.toml"), `
[output]
archive = "local.tgz"
`)

		cfg, err := Load(LoadOptions{WorkDir: workDir})
		require.NoError(t, err)
		assert.Equal(t, "sdk", cfg.Source.Dir)
		assert.Equal(t, "local.tgz", cfg.Output.Archive)
	})

	t.Run("explicit config file", func(t *testing.T) {
		workDir := isolate(t)
		writeFile(t, filepath.Join(workDir, "ci.toml"), `
[vcs]
kind = "git"
`)

		cfg, err := Load(LoadOptions{WorkDir: workDir, ConfigFile: "ci.toml"})
		require.NoError(t, err)
		assert.Equal(t, VCSGit, cfg.VCS.Kind)
	})

	t.Run("missing explicit config file", func(t *testing.T) {
		workDir := isolate(t)

		_, err := Load(LoadOptions{WorkDir: workDir, ConfigFile: "nope.toml"})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
	})

	t.Run("malformed toml", func(t *testing.T) {
		workDir := isolate(t)
		writeFile(t, filepath.Join(workDir, ".sdkpack.toml"), "[output\narchive = ")

		_, err := Load(LoadOptions{WorkDir: workDir})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
	})

	t.Run("environment overrides files", func(t *testing.T) {
		workDir := isolate(t)
		writeFile(t, filepath.Join(workDir, ".sdkpack.toml"), `
[output]
archive = "local.tgz"
`)
		t.Setenv("SDKPACK_OUTPUT_ARCHIVE", "env.tgz")
		t.Setenv("SDKPACK_EXCLUDE_FILE_NAMES", "DEPS,Makefile.local")
		t.Setenv("SDKPACK_PRODUCT_MINOR", "2")

		cfg, err := Load(LoadOptions{WorkDir: workDir})
		require.NoError(t, err)
		assert.Equal(t, "env.tgz", cfg.Output.Archive)
		assert.Equal(t, []string{"DEPS", "Makefile.local"}, cfg.Exclude.FileNames)
		assert.Equal(t, 2, cfg.Product.Minor)
	})

	t.Run("invalid vcs kind", func(t *testing.T) {
		workDir := isolate(t)
		t.Setenv("SDKPACK_VCS_KIND", "cvs")

		_, err := Load(LoadOptions{WorkDir: workDir})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantKey string
	}{
		{"empty prefix", func(c *Config) { c.Product.Prefix = "" }, "product.prefix"},
		{"empty source", func(c *Config) { c.Source.Dir = " " }, "source.dir"},
		{"empty archive", func(c *Config) { c.Output.Archive = "" }, "output.archive"},
		{"empty tar", func(c *Config) { c.Tools.Tar = "" }, "tools.tar"},
		{"unknown vcs", func(c *Config) { c.VCS.Kind = "hg" }, "vcs.kind"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
			assert.Equal(t, tt.wantKey, errors.GetErrorDetails(err)["key"])
		})
	}

	t.Run("negative version", func(t *testing.T) {
		cfg := Default()
		cfg.Product.Major = -1
		assert.True(t, errors.IsErrorCode(cfg.Validate(), errors.ErrConfigValid))
	})
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "output.archive", envKey("SDKPACK_OUTPUT_ARCHIVE"))
	assert.Equal(t, "exclude.file_prefixes", envKey("SDKPACK_EXCLUDE_FILE_PREFIXES"))
	assert.Equal(t, "tools.cygwin_bin", envKey("SDKPACK_TOOLS_CYGWIN_BIN"))
	assert.Equal(t, "", envKey("SDKPACK_VERBOSE"))
	assert.Equal(t, "", envKey("SDKPACK_CONFIG_DIR"))
	assert.Equal(t, "", envKey("SDKPACK_STATE_DIR"))
}

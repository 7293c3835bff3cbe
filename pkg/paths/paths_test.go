package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		workDir  string
		envSetup map[string]string
		validate func(t *testing.T, p Paths)
	}{
		{
			name:    "explicit work dir",
			workDir: "/tmp/sdk",
			validate: func(t *testing.T, p Paths) {
				assert.Equal(t, "/tmp/sdk", p.WorkDir())
			},
		},
		{
			name: "current directory",
			validate: func(t *testing.T, p Paths) {
				cwd, err := os.Getwd()
				require.NoError(t, err)
				assert.Equal(t, cwd, p.WorkDir())
			},
		},
		{
			name:    "expand tilde in work dir",
			workDir: "~/sdk",
			validate: func(t *testing.T, p Paths) {
				assert.Equal(t, filepath.Join(xdg.Home, "sdk"), p.WorkDir())
			},
		},
		{
			name:    "custom override directories",
			workDir: "/tmp/sdk",
			envSetup: map[string]string{
				EnvSdkpackConfigDir: "/custom/config",
				EnvSdkpackStateDir:  "/custom/state",
			},
			validate: func(t *testing.T, p Paths) {
				assert.Equal(t, "/custom/config", p.ConfigDir())
				assert.Equal(t, "/custom/state", p.StateDir())
				assert.Equal(t, "/custom/config/config.toml", p.UserConfigPath())
				assert.Equal(t, "/custom/state/sdkpack.log", p.LogFilePath())
			},
		},
		{
			name:    "xdg directories",
			workDir: "/tmp/sdk",
			envSetup: map[string]string{
				"XDG_CONFIG_HOME": "/xdg/config",
				"XDG_STATE_HOME":  "/xdg/state",
			},
			validate: func(t *testing.T, p Paths) {
				assert.Equal(t, "/xdg/config/sdkpack", p.ConfigDir())
				assert.Equal(t, "/xdg/state/sdkpack/sdkpack.log", p.LogFilePath())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvSdkpackConfigDir, "")
			t.Setenv(EnvSdkpackStateDir, "")
			for k, v := range tt.envSetup {
				t.Setenv(k, v)
			}

			p, err := New(tt.workDir)
			require.NoError(t, err)
			tt.validate(t, p)
		})
	}
}

func TestResolve(t *testing.T) {
	p, err := New("/work/sdk")
	require.NoError(t, err)

	tests := []struct {
		name string
		path string
		want string
	}{
		{"relative source dir", DefaultSourceDir, "/work/sdk/src"},
		{"relative archive", DefaultArchiveName, "/work/sdk/nacl-sdk.tgz"},
		{"nested relative", "out/../dist/sdk.tgz", "/work/sdk/dist/sdk.tgz"},
		{"absolute path untouched", "/opt/out/sdk.tgz", "/opt/out/sdk.tgz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Resolve(tt.path))
		})
	}
}

func TestLocalConfigPath(t *testing.T) {
	p, err := New("/work/sdk")
	require.NoError(t, err)
	assert.Equal(t, "/work/sdk/.sdkpack.toml", p.LocalConfigPath())
}

func TestExpandHome(t *testing.T) {
	xdg.Reload()
	homeDir := xdg.Home

	assert.Equal(t, "", expandHome(""))
	assert.Equal(t, homeDir, expandHome("~"))
	assert.Equal(t, filepath.Join(homeDir, "x"), expandHome("~/x"))
	assert.Equal(t, "~other/x", expandHome("~other/x"))
	assert.Equal(t, "/abs", expandHome("/abs"))
}

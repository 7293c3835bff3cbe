package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/sdkpack/pkg/errors"
)

// Directory overrides, mostly for tests and CI sandboxes
const (
	EnvSdkpackConfigDir = "SDKPACK_CONFIG_DIR"
	EnvSdkpackStateDir  = "SDKPACK_STATE_DIR"
)

const (
	// AppDirName is sdkpack's directory under the XDG base dirs
	AppDirName = "sdkpack"

	UserConfigFile  = "config.toml"
	LocalConfigFile = ".sdkpack.toml"
	LogFileName     = "sdkpack.log"

	// DefaultSourceDir is the tree that gets packaged
	DefaultSourceDir = "src"

	// DefaultArchiveName is written into the invocation directory
	DefaultArchiveName = "nacl-sdk.tgz"

	// StagingPrefix prefixes every temporary staging directory
	StagingPrefix = "sdkpack-"
)

// Paths answers where sdkpack reads and writes. Every relative path is
// taken relative to the invocation directory.
type Paths interface {
	WorkDir() string
	Resolve(path string) string
	ConfigDir() string
	StateDir() string
	UserConfigPath() string
	LocalConfigPath() string
	LogFilePath() string
}

type paths struct {
	workDir   string
	configDir string
	stateDir  string
}

// New returns Paths for an invocation from workDir, or from the current
// directory when workDir is empty.
func New(workDir string) (Paths, error) {
	if workDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrFileAccess, "failed to get current directory")
		}
		workDir = cwd
	}

	abs, err := filepath.Abs(expandHome(workDir))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for %s", workDir).
			WithDetail("path", workDir)
	}

	// xdg caches the environment at init; tests change it with t.Setenv
	xdg.Reload()

	return &paths{
		workDir:   abs,
		configDir: appDir(EnvSdkpackConfigDir, xdg.ConfigHome),
		stateDir:  appDir(EnvSdkpackStateDir, xdg.StateHome),
	}, nil
}

// appDir prefers the override in env, else AppDirName under base
func appDir(env, base string) string {
	if dir := os.Getenv(env); dir != "" {
		return expandHome(dir)
	}
	return filepath.Join(base, AppDirName)
}

func (p *paths) WorkDir() string { return p.workDir }
func (p *paths) ConfigDir() string { return p.configDir }
func (p *paths) StateDir() string { return p.stateDir }

func (p *paths) Resolve(path string) string {
	path = expandHome(path)
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(p.workDir, path)
}

func (p *paths) UserConfigPath() string { return filepath.Join(p.configDir, UserConfigFile) }
func (p *paths) LocalConfigPath() string { return filepath.Join(p.workDir, LocalConfigFile) }
func (p *paths) LogFilePath() string { return filepath.Join(p.stateDir, LogFileName) }

// expandHome replaces a leading "~" or "~/" with the home directory.
// "~user" forms are left alone.
func expandHome(path string) string {
	switch {
	case path == "~":
		return xdg.Home
	case strings.HasPrefix(path, "~/"), strings.HasPrefix(path, "~"+string(filepath.Separator)):
		return filepath.Join(xdg.Home, path[2:])
	default:
		return path
	}
}

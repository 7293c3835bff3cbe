package versioning

import (
	"bytes"
	"context"
	"regexp"
	"testing"

	"github.com/arthur-debert/sdkpack/pkg/config"
	"github.com/arthur-debert/sdkpack/pkg/errors"
	"github.com/arthur-debert/sdkpack/pkg/testutil"
	"github.com/arthur-debert/sdkpack/pkg/tools"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var versionPattern = regexp.MustCompile(`^native_client_sdk_0_1_[0-9]+_[0-9]+$`)

func env(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestVersionString(t *testing.T) {
	v := Version{Prefix: "native_client_sdk", Major: 0, Minor: 1, Revision: 1234, Build: "56"}
	assert.Equal(t, "native_client_sdk_0_1_1234_56", v.String())

	v = Version{Prefix: "native_client_sdk", Major: 0, Minor: 1}
	v.Build = DefaultBuildNumber
	assert.Equal(t, "native_client_sdk_0_1_0_0", v.String())
}

func TestParseSVNRevision(t *testing.T) {
	tests := []struct {
		name   string
		info   string
		want   int
		wantOK bool
	}{
		{"standard output", "Path: .\nURL: http://x/svn/trunk\nRevision: 2451\nNode Kind: directory\n", 2451, true},
		{"first match wins", "Revision: 7\nLast Changed Rev: 5\nRevision: 9\n", 7, true},
		{"no revision line", "svn: '.' is not a working copy\n", 0, false},
		{"empty", "", 0, false},
		{"last changed rev only", "Last Changed Rev: 12\n", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSVNRevision(tt.info)
			assert.Equal(t, tt.wantOK, err == nil)
			assert.Equal(t, tt.want, got)
			if err != nil {
				assert.True(t, errors.IsErrorCode(err, errors.ErrRevision))
			}
		})
	}

	t.Run("out of range", func(t *testing.T) {
		var buf bytes.Buffer
		saved := log.Logger
		log.Logger = zerolog.New(&buf)
		defer func() { log.Logger = saved }()

		got, err := ParseSVNRevision("Revision: 99999999999999999999\n")

		require.Error(t, err)
		assert.Zero(t, got)
		assert.True(t, errors.IsErrorCode(err, errors.ErrRevision))
		assert.Contains(t, err.Error(), "out of range")
		assert.Equal(t, "99999999999999999999", errors.GetErrorDetails(err)["revision"])

		logged := buf.String()
		assert.Contains(t, logged, `"level":"warn"`)
		assert.Contains(t, logged, "99999999999999999999")
	})
}

func TestBuildNumber(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
		key  string
		want string
	}{
		{"set", map[string]string{"BUILD_NUMBER": "42"}, "BUILD_NUMBER", "42"},
		{"unset", map[string]string{}, "BUILD_NUMBER", "0"},
		{"empty", map[string]string{"BUILD_NUMBER": ""}, "BUILD_NUMBER", "0"},
		{"custom variable", map[string]string{"CI_BUILD": "7"}, "CI_BUILD", "7"},
		{"no variable name", map[string]string{"BUILD_NUMBER": "42"}, "", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildNumber(env(tt.vars), tt.key))
		})
	}

	t.Run("process environment", func(t *testing.T) {
		t.Setenv("BUILD_NUMBER", "99")
		assert.Equal(t, "99", BuildNumber(nil, "BUILD_NUMBER"))
	})
}

func TestSVNSource(t *testing.T) {
	binDir := t.TempDir()
	runner := tools.NewRunner("")

	t.Run("reads revision", func(t *testing.T) {
		src := &SVNSource{Runner: runner, Binary: testutil.WriteFakeSVN(t, binDir, 1234)}
		rev, err := src.Revision(context.Background(), t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, 1234, rev)
	})

	t.Run("not a working copy", func(t *testing.T) {
		src := &SVNSource{Runner: runner, Binary: testutil.WriteFailingSVN(t, binDir)}
		_, err := src.Revision(context.Background(), t.TempDir())
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrToolExecute))
	})

	t.Run("svn not installed", func(t *testing.T) {
		src := &SVNSource{Runner: runner, Binary: "sdkpack-missing-svn"}
		_, err := src.Revision(context.Background(), t.TempDir())
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrToolNotFound))
	})
}

func TestGitSource(t *testing.T) {
	t.Run("counts commits", func(t *testing.T) {
		dir := t.TempDir()
		testutil.InitGitRepo(t, dir, 3)

		rev, err := GitSource{}.Revision(context.Background(), dir)
		require.NoError(t, err)
		assert.Equal(t, 3, rev)
	})

	t.Run("finds repository from subdirectory", func(t *testing.T) {
		dir := t.TempDir()
		testutil.InitGitRepo(t, dir, 2)
		sub := testutil.CreateDir(t, dir, "src")

		rev, err := GitSource{}.Revision(context.Background(), sub)
		require.NoError(t, err)
		assert.Equal(t, 2, rev)
	})

	t.Run("not a repository", func(t *testing.T) {
		_, err := GitSource{}.Revision(context.Background(), t.TempDir())
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrRevision))
	})

	t.Run("empty repository", func(t *testing.T) {
		dir := t.TempDir()
		testutil.InitGitRepo(t, dir, 0)

		_, err := GitSource{}.Revision(context.Background(), dir)
		require.Error(t, err)
	})
}

func TestSources(t *testing.T) {
	runner := tools.NewRunner("")

	names := func(kind string) []string {
		var out []string
		for _, s := range Sources(kind, runner, "svn") {
			out = append(out, s.Name())
		}
		return out
	}

	assert.Equal(t, []string{"svn", "git"}, names(config.VCSAuto))
	assert.Equal(t, []string{"svn"}, names(config.VCSSvn))
	assert.Equal(t, []string{"git"}, names(config.VCSGit))
	assert.Nil(t, names(config.VCSNone))
}

func TestResolver(t *testing.T) {
	binDir := t.TempDir()

	t.Run("svn revision and build number", func(t *testing.T) {
		cfg := config.Default()
		cfg.Tools.Svn = testutil.WriteFakeSVN(t, binDir, 2451)

		r := NewResolver(cfg, tools.NewRunner(""), env(map[string]string{"BUILD_NUMBER": "17"}))
		v := r.Resolve(context.Background(), t.TempDir())

		assert.Equal(t, "native_client_sdk_0_1_2451_17", v.String())
		assert.Equal(t, 2451, v.Revision)
		assert.Equal(t, "17", v.Build)
	})

	t.Run("falls back to git in auto mode", func(t *testing.T) {
		dir := t.TempDir()
		testutil.InitGitRepo(t, dir, 4)

		cfg := config.Default()
		cfg.Tools.Svn = testutil.WriteFailingSVN(t, binDir)

		r := NewResolver(cfg, tools.NewRunner(""), env(nil))
		v := r.Resolve(context.Background(), dir)
		assert.Equal(t, "native_client_sdk_0_1_4_0", v.String())
	})

	t.Run("no working copy yields revision 0", func(t *testing.T) {
		cfg := config.Default()
		cfg.Tools.Svn = "sdkpack-missing-svn"

		r := NewResolver(cfg, tools.NewRunner(""), env(nil))
		v := r.Resolve(context.Background(), t.TempDir())

		assert.Equal(t, 0, v.Revision)
		assert.Equal(t, "0", v.Build)
		assert.Equal(t, "native_client_sdk_0_1_0_0", v.String())
		assert.Regexp(t, versionPattern, v.String())
	})

	t.Run("vcs none skips lookup", func(t *testing.T) {
		cfg := config.Default()
		cfg.VCS.Kind = config.VCSNone
		cfg.Tools.Svn = testutil.WriteFakeSVN(t, binDir, 99)

		r := NewResolver(cfg, tools.NewRunner(""), env(map[string]string{"BUILD_NUMBER": "3"}))
		v := r.Resolve(context.Background(), t.TempDir())
		assert.Equal(t, "native_client_sdk_0_1_0_3", v.String())
	})

	t.Run("product settings", func(t *testing.T) {
		cfg := config.Default()
		cfg.VCS.Kind = config.VCSNone
		cfg.Product = config.Product{Prefix: "pepper_sdk", Major: 2, Minor: 5}

		r := NewResolver(cfg, tools.NewRunner(""), env(nil))
		v := r.Resolve(context.Background(), t.TempDir())
		assert.Equal(t, "pepper_sdk_2_5_0_0", v.String())
	})
}

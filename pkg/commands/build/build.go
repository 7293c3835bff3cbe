package build

import (
	"context"
	"os"
	"time"

	"github.com/arthur-debert/sdkpack/pkg/archiver"
	"github.com/arthur-debert/sdkpack/pkg/cleaner"
	"github.com/arthur-debert/sdkpack/pkg/config"
	"github.com/arthur-debert/sdkpack/pkg/errors"
	"github.com/arthur-debert/sdkpack/pkg/filesystem"
	"github.com/arthur-debert/sdkpack/pkg/logging"
	"github.com/arthur-debert/sdkpack/pkg/paths"
	"github.com/arthur-debert/sdkpack/pkg/rules"
	"github.com/arthur-debert/sdkpack/pkg/stager"
	"github.com/arthur-debert/sdkpack/pkg/tools"
	"github.com/arthur-debert/sdkpack/pkg/types"
	"github.com/arthur-debert/sdkpack/pkg/versioning"
	"github.com/google/uuid"
)

// BuildOptions holds options for the build command
type BuildOptions struct {
	// WorkDir is the invocation directory. Empty means the process cwd.
	WorkDir string
	// Config is the effective configuration. Nil means the defaults.
	Config *config.Config
	// DryRun resolves the version and reports what would be removed from
	// the source tree without staging or archiving anything.
	DryRun bool
	// Getenv reads the build number variable. Nil means os.Getenv.
	Getenv func(string) string
}

// Build packages the source tree into the SDK archive
func Build(ctx context.Context, opts BuildOptions) (*types.BuildResult, error) {
	start := time.Now()
	runID := uuid.NewString()
	logger := logging.GetLogger("commands.build").With().Str("run", runID).Logger()

	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	set := rules.FromConfig(cfg.Exclude)
	if err := set.Validate(); err != nil {
		return nil, err
	}

	p, err := paths.New(opts.WorkDir)
	if err != nil {
		return nil, err
	}

	srcDir := p.Resolve(cfg.Source.Dir)
	info, err := os.Stat(srcDir)
	if err != nil || !info.IsDir() {
		return nil, errors.Newf(errors.ErrSourceNotFound, "source directory %s not found", srcDir).
			WithDetail("path", srcDir)
	}
	archivePath := p.Resolve(cfg.Output.Archive)

	logger.Info().
		Str("workDir", p.WorkDir()).
		Str("source", srcDir).
		Str("archive", archivePath).
		Bool("dryRun", opts.DryRun).
		Msg("Starting build")

	runner := tools.NewRunner(cfg.Tools.CygwinBin)
	version := versioning.NewResolver(cfg, runner, opts.Getenv).Resolve(ctx, srcDir)

	result := &types.BuildResult{
		Version:   version.String(),
		Revision:  version.Revision,
		Build:     version.Build,
		SourceDir: srcDir,
		Archive:   archivePath,
		DryRun:    opts.DryRun,
	}

	clean := cleaner.New(filesystem.NewOS(), set)

	if opts.DryRun {
		result.Clean = clean.Plan(srcDir)
		result.Duration = time.Since(start)
		logger.Info().
			Str("version", result.Version).
			Int("wouldRemove", result.Clean.Removed()).
			Msg("Dry run, nothing staged")
		return result, nil
	}

	stagingParent := ""
	if cfg.Staging.Dir != "" {
		stagingParent = p.Resolve(cfg.Staging.Dir)
	}
	stagingRoot, err := os.MkdirTemp(stagingParent, paths.StagingPrefix)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrDirCreate, "failed to create staging directory").
			WithDetail("parent", stagingParent)
	}
	result.StagingDir = stagingRoot

	defer func() {
		if err := os.RemoveAll(stagingRoot); err != nil {
			logger.Warn().Err(err).Str("dir", stagingRoot).Msg("Failed to remove staging directory")
			return
		}
		logger.Debug().Str("dir", stagingRoot).Msg("Removed staging directory")
	}()

	installerDir, err := stager.New(runner, cfg.Tools.Tar).Stage(ctx, srcDir, stagingRoot, result.Version)
	if err != nil {
		return nil, err
	}

	result.Clean = clean.Clean(installerDir)

	abs, err := archiver.New(runner, cfg.Tools.Tar).Compress(ctx, stagingRoot, result.Version, archivePath)
	if err != nil {
		return nil, err
	}
	result.Archive = abs
	result.Duration = time.Since(start)

	logger.Info().
		Str("version", result.Version).
		Str("archive", result.Archive).
		Int("removed", result.Clean.Removed()).
		Dur("duration", result.Duration).
		Msg("Build complete")
	return result, nil
}

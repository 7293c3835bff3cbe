package cleaner

import (
	"io/fs"
	"path"
	"path/filepath"

	"github.com/arthur-debert/sdkpack/pkg/logging"
	"github.com/arthur-debert/sdkpack/pkg/rules"
	"github.com/arthur-debert/sdkpack/pkg/types"
	"github.com/rs/zerolog"
)

// Cleaner removes excluded entries from a tree
type Cleaner struct {
	fs     types.FS
	rules  *rules.Set
	logger zerolog.Logger
}

// New creates a cleaner that applies set to trees on fsys
func New(fsys types.FS, set *rules.Set) *Cleaner {
	return &Cleaner{
		fs:     fsys,
		rules:  set,
		logger: logging.GetLogger("cleaner"),
	}
}

// Clean removes every excluded entry below root
func (c *Cleaner) Clean(root string) *types.CleanReport {
	return c.walk(root, true)
}

// Plan reports what Clean would remove below root without touching it
func (c *Cleaner) Plan(root string) *types.CleanReport {
	return c.walk(root, false)
}

func (c *Cleaner) walk(root string, remove bool) *types.CleanReport {
	report := &types.CleanReport{
		RemovedDirs:  []string{},
		RemovedFiles: []string{},
	}

	logger := c.logger.With().Str("root", root).Bool("dryRun", !remove).Logger()
	logger.Debug().Msg("Cleaning tree")

	c.visit(root, "", remove, report)

	logger.Info().
		Int("dirs", len(report.RemovedDirs)).
		Int("files", len(report.RemovedFiles)).
		Int("failures", len(report.Failures)).
		Msg("Cleaned tree")
	return report
}

// visit handles the directory at root/rel. rel is slash-separated and
// empty for root itself.
func (c *Cleaner) visit(root, rel string, remove bool, report *types.CleanReport) {
	dir := filepath.Join(root, filepath.FromSlash(rel))

	entries, err := c.fs.ReadDir(dir)
	if err != nil {
		c.fail(report, rel, err, "Failed to read directory")
		return
	}

	for _, entry := range entries {
		name := entry.Name()
		entryRel := path.Join(rel, name)
		entryPath := filepath.Join(dir, name)

		if entry.IsDir() {
			if !c.rules.ExcludesDir(name) {
				c.visit(root, entryRel, remove, report)
				continue
			}
			if remove {
				if err := c.fs.RemoveAll(entryPath); err != nil {
					c.fail(report, entryRel, err, "Failed to remove directory")
					continue
				}
			}
			c.logger.Debug().Str("path", entryRel).Msg("Removed directory")
			report.RemovedDirs = append(report.RemovedDirs, entryRel)
			continue
		}

		// Links to directories are neither followed nor matched against
		// either rule set.
		if entry.Type()&fs.ModeSymlink != 0 && c.linksToDir(entryPath) {
			c.logger.Debug().Str("path", entryRel).Msg("Keeping link to directory")
			continue
		}

		if !c.rules.ExcludesFile(name) {
			continue
		}
		if remove {
			if err := c.fs.Remove(entryPath); err != nil {
				c.fail(report, entryRel, err, "Failed to remove file")
				continue
			}
		}
		c.logger.Debug().Str("path", entryRel).Msg("Removed file")
		report.RemovedFiles = append(report.RemovedFiles, entryRel)
	}
}

// linksToDir reports whether the link at p resolves to a directory. A
// dangling link does not.
func (c *Cleaner) linksToDir(p string) bool {
	info, err := c.fs.Stat(p)
	return err == nil && info.IsDir()
}

func (c *Cleaner) fail(report *types.CleanReport, rel string, err error, msg string) {
	c.logger.Warn().Err(err).Str("path", rel).Msg(msg)
	report.Failures = append(report.Failures, types.CleanFailure{Path: rel, Error: err.Error()})
}

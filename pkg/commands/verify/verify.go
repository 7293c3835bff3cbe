package verify

import (
	"path"
	"strings"

	"github.com/arthur-debert/sdkpack/pkg/archiver"
	"github.com/arthur-debert/sdkpack/pkg/config"
	"github.com/arthur-debert/sdkpack/pkg/logging"
	"github.com/arthur-debert/sdkpack/pkg/paths"
	"github.com/arthur-debert/sdkpack/pkg/rules"
	"github.com/arthur-debert/sdkpack/pkg/types"
)

// VerifyOptions holds options for the verify command
type VerifyOptions struct {
	// Archive to inspect. Empty means the configured output archive.
	Archive string
	WorkDir string
	Config  *config.Config
}

// Verify lists an SDK archive and reports entries the exclusion rules
// should have removed
func Verify(opts VerifyOptions) (*types.VerifyResult, error) {
	logger := logging.GetLogger("commands.verify")

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

	archive := opts.Archive
	if archive == "" {
		archive = cfg.Output.Archive
	}
	archive = p.Resolve(archive)

	entries, err := archiver.List(archive)
	if err != nil {
		return nil, err
	}

	result := &types.VerifyResult{
		Archive:    archive,
		Entries:    len(entries),
		Symlinks:   []types.ArchiveEntry{},
		Violations: []types.ArchiveEntry{},
	}

	dirs := make(map[string]bool)
	for _, entry := range entries {
		if entry.Type == types.EntryDir {
			dirs[cleanName(entry.Name)] = true
		}
	}

	for _, entry := range entries {
		if entry.Type == types.EntrySymlink {
			result.Symlinks = append(result.Symlinks, entry)
			// The cleaner keeps links to directories whatever their name
			if linksToDir(entry, dirs) {
				continue
			}
		}
		if set.ExcludesPath(memberPath(entry.Name), entry.Type == types.EntryDir) {
			logger.Debug().Str("entry", entry.Name).Msg("Excluded entry in archive")
			result.Violations = append(result.Violations, entry)
		}
	}

	logger.Info().
		Str("archive", archive).
		Int("entries", result.Entries).
		Int("symlinks", len(result.Symlinks)).
		Int("violations", len(result.Violations)).
		Msg("Verified archive")
	return result, nil
}

func cleanName(name string) string {
	return strings.Trim(strings.TrimPrefix(name, "./"), "/")
}

// linksToDir reports whether a relative symlink entry points at a
// directory member of the same archive.
func linksToDir(entry types.ArchiveEntry, dirs map[string]bool) bool {
	if entry.Linkname == "" || path.IsAbs(entry.Linkname) {
		return false
	}
	target := path.Join(path.Dir(cleanName(entry.Name)), entry.Linkname)
	return dirs[target]
}

// memberPath drops the leading version directory from an archive member
// name, so rules are applied to paths inside the SDK tree only.
func memberPath(name string) string {
	name = strings.TrimPrefix(name, "./")
	if _, rest, found := strings.Cut(name, "/"); found {
		return rest
	}
	return ""
}

package genconfig

import (
	"os"
	"strings"

	"github.com/arthur-debert/sdkpack/pkg/config"
	"github.com/arthur-debert/sdkpack/pkg/errors"
	"github.com/arthur-debert/sdkpack/pkg/logging"
	"github.com/arthur-debert/sdkpack/pkg/paths"
	"github.com/arthur-debert/sdkpack/pkg/types"
	"github.com/pelletier/go-toml/v2"
)

const header = `# sdkpack configuration
#
# Every value below is commented out and shows the current effective
# setting. Uncomment a line to pin it for this directory.
`

// GenConfigOptions holds options for the gen-config command
type GenConfigOptions struct {
	WorkDir string
	// Config is rendered into the template. Nil means the defaults.
	Config *config.Config
	Write  bool
}

// GenConfig outputs or writes a commented configuration template
func GenConfig(opts GenConfigOptions) (*types.GenConfigResult, error) {
	logger := logging.GetLogger("commands.genconfig")

	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to render configuration")
	}

	content := header + "\n" + commentValues(string(data))
	result := &types.GenConfigResult{
		ConfigContent: content,
		FilesWritten:  []string{},
	}

	// If not writing, just return the content
	if !opts.Write {
		logger.Debug().Msg("Outputting config to stdout")
		return result, nil
	}

	p, err := paths.New(opts.WorkDir)
	if err != nil {
		return nil, err
	}
	targetPath := p.LocalConfigPath()

	if _, err := os.Stat(targetPath); err == nil {
		logger.Warn().Str("path", targetPath).Msg("Config file already exists, skipping")
		result.FilesSkipped = append(result.FilesSkipped, targetPath)
		return result, nil
	}

	if err := os.WriteFile(targetPath, []byte(content), 0644); err != nil {
		return result, errors.Wrapf(err, errors.ErrFileWrite, "failed to write config to %s", targetPath).
			WithDetail("path", targetPath)
	}

	logger.Info().Str("path", targetPath).Msg("Written config file")
	result.FilesWritten = append(result.FilesWritten, targetPath)
	return result, nil
}

// commentValues prefixes every key line with "# ", leaving table headers
// and blank lines alone.
func commentValues(doc string) string {
	lines := strings.Split(doc, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "[") || strings.HasPrefix(trimmed, "#") {
			continue
		}
		lines[i] = "# " + trimmed
	}
	return strings.Join(lines, "\n")
}

package rules

import (
	"github.com/arthur-debert/sdkpack/pkg/config"
	"github.com/arthur-debert/sdkpack/pkg/logging"
	sdkrules "github.com/arthur-debert/sdkpack/pkg/rules"
	"github.com/arthur-debert/sdkpack/pkg/types"
)

// RulesOptions holds options for the rules command
type RulesOptions struct {
	Config *config.Config
}

// Rules returns the effective exclusion rules
func Rules(opts RulesOptions) (*types.RulesResult, error) {
	logger := logging.GetLogger("commands.rules")

	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	set := sdkrules.FromConfig(cfg.Exclude)
	if err := set.Validate(); err != nil {
		return nil, err
	}

	logger.Debug().
		Strs("dirs", set.Dirs).
		Strs("filePatterns", set.FilePatterns).
		Msg("Listing exclusion rules")

	return &types.RulesResult{
		Dirs:         set.Dirs,
		FilePrefixes: set.FilePrefixes,
		FilePatterns: set.FilePatterns,
		FileNames:    set.FileNames,
		Markdown:     set.Markdown(),
	}, nil
}

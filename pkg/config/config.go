package config

import (
	"strings"

	"github.com/arthur-debert/sdkpack/pkg/errors"
)

// VCS kinds accepted in [vcs] kind
const (
	VCSAuto = "auto"
	VCSSvn  = "svn"
	VCSGit  = "git"
	VCSNone = "none"
)

// Config is the complete sdkpack configuration
type Config struct {
	Product Product `koanf:"product" toml:"product"`
	Source  Source  `koanf:"source" toml:"source"`
	Output  Output  `koanf:"output" toml:"output"`
	Staging Staging `koanf:"staging" toml:"staging"`
	Build   Build   `koanf:"build" toml:"build"`
	VCS     VCS     `koanf:"vcs" toml:"vcs"`
	Exclude Exclude `koanf:"exclude" toml:"exclude"`
	Tools   Tools   `koanf:"tools" toml:"tools"`
}

// Product holds the fixed parts of the version string
type Product struct {
	Prefix string `koanf:"prefix" toml:"prefix"`
	Major  int    `koanf:"major" toml:"major"`
	Minor  int    `koanf:"minor" toml:"minor"`
}

// Source locates the tree that gets packaged
type Source struct {
	Dir string `koanf:"dir" toml:"dir"`
}

// Output locates the archive that gets written
type Output struct {
	Archive string `koanf:"archive" toml:"archive"`
}

// Staging controls where the temporary staging directory is created
type Staging struct {
	Dir string `koanf:"dir" toml:"dir"`
}

// Build names the environment variable carrying the build number
type Build struct {
	NumberEnv string `koanf:"number_env" toml:"number_env"`
}

// VCS selects how the revision is looked up
type VCS struct {
	Kind string `koanf:"kind" toml:"kind"`
}

// Exclude lists what the cleaner strips from the staged tree
type Exclude struct {
	Dirs         []string `koanf:"dirs" toml:"dirs"`
	FilePrefixes []string `koanf:"file_prefixes" toml:"file_prefixes"`
	FilePatterns []string `koanf:"file_patterns" toml:"file_patterns"`
	FileNames    []string `koanf:"file_names" toml:"file_names"`
}

// Tools names the external binaries sdkpack runs
type Tools struct {
	Tar       string `koanf:"tar" toml:"tar"`
	Svn       string `koanf:"svn" toml:"svn"`
	CygwinBin string `koanf:"cygwin_bin" toml:"cygwin_bin"`
}

// Validate checks the settings that have no usable fallback
func (c *Config) Validate() error {
	required := map[string]string{
		"product.prefix": c.Product.Prefix,
		"source.dir":     c.Source.Dir,
		"output.archive": c.Output.Archive,
		"tools.tar":      c.Tools.Tar,
	}
	for key, value := range required {
		if strings.TrimSpace(value) == "" {
			return errors.Newf(errors.ErrConfigValid, "%s must not be empty", key).
				WithDetail("key", key)
		}
	}

	if c.Product.Major < 0 || c.Product.Minor < 0 {
		return errors.New(errors.ErrConfigValid, "product version numbers must not be negative")
	}

	switch c.VCS.Kind {
	case VCSAuto, VCSSvn, VCSGit, VCSNone:
	default:
		return errors.Newf(errors.ErrConfigValid, "unknown vcs kind %q", c.VCS.Kind).
			WithDetail("key", "vcs.kind")
	}

	return nil
}

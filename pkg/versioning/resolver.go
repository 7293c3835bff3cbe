package versioning

import (
	"context"

	"github.com/arthur-debert/sdkpack/pkg/config"
	"github.com/arthur-debert/sdkpack/pkg/logging"
	"github.com/arthur-debert/sdkpack/pkg/tools"
	"github.com/rs/zerolog"
)

// Resolver computes the version of the tree being packaged
type Resolver struct {
	logger   zerolog.Logger
	product  config.Product
	buildEnv string
	getenv   func(string) string
	sources  []RevisionSource
}

// NewResolver builds a resolver for cfg. getenv may be nil to read the
// process environment.
func NewResolver(cfg *config.Config, runner *tools.Runner, getenv func(string) string) *Resolver {
	return &Resolver{
		logger:   logging.GetLogger("versioning"),
		product:  cfg.Product,
		buildEnv: cfg.Build.NumberEnv,
		getenv:   getenv,
		sources:  Sources(cfg.VCS.Kind, runner, cfg.Tools.Svn),
	}
}

// Sources returns the revision sources tried, in order, for a vcs kind
func Sources(kind string, runner *tools.Runner, svnBinary string) []RevisionSource {
	svn := &SVNSource{Runner: runner, Binary: svnBinary}
	switch kind {
	case config.VCSSvn:
		return []RevisionSource{svn}
	case config.VCSGit:
		return []RevisionSource{GitSource{}}
	case config.VCSNone:
		return nil
	default:
		return []RevisionSource{svn, GitSource{}}
	}
}

// Resolve never fails: a revision that cannot be determined is 0.
func (r *Resolver) Resolve(ctx context.Context, dir string) Version {
	v := Version{
		Prefix:   r.product.Prefix,
		Major:    r.product.Major,
		Minor:    r.product.Minor,
		Revision: r.revision(ctx, dir),
		Build:    BuildNumber(r.getenv, r.buildEnv),
	}

	r.logger.Info().
		Str("version", v.String()).
		Int("revision", v.Revision).
		Str("build", v.Build).
		Msg("Resolved version")
	return v
}

func (r *Resolver) revision(ctx context.Context, dir string) int {
	for _, src := range r.sources {
		rev, err := src.Revision(ctx, dir)
		if err == nil {
			r.logger.Debug().Str("source", src.Name()).Int("revision", rev).Msg("Found revision")
			return rev
		}
		r.logger.Debug().Err(err).Str("source", src.Name()).Msg("Revision lookup failed")
	}

	if len(r.sources) > 0 {
		r.logger.Warn().Str("dir", dir).Msg("Could not determine revision, using 0")
	}
	return 0
}

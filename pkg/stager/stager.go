package stager

import (
	"context"
	"os"
	"path/filepath"

	"github.com/arthur-debert/sdkpack/pkg/logging"
	"github.com/arthur-debert/sdkpack/pkg/tools"
	"github.com/rs/zerolog"
)

// tar exit 1 means something like a file changing mid-read; the copy is
// still usable.
var tarWarnings = []int{tools.TarWarningExit}

// Stager copies source trees with tar
type Stager struct {
	runner *tools.Runner
	tar    string
	logger zerolog.Logger
}

// New creates a stager running the given tar binary through runner
func New(runner *tools.Runner, tar string) *Stager {
	return &Stager{
		runner: runner,
		tar:    tar,
		logger: logging.GetLogger("stager"),
	}
}

// Stage copies the contents of srcDir into stagingRoot/version and returns
// that directory. A failure to create it is only logged; the copy then
// fails on its own if the directory is really missing.
func (s *Stager) Stage(ctx context.Context, srcDir, stagingRoot, version string) (string, error) {
	done := logging.LogOperationStart(s.logger, "stage")
	defer done()

	installerDir := filepath.Join(stagingRoot, version)
	if err := os.MkdirAll(installerDir, 0755); err != nil {
		s.logger.Warn().Err(err).Str("dir", installerDir).Msg("Failed to create installer directory")
	}

	s.logger.Info().
		Str("source", srcDir).
		Str("target", installerDir).
		Msg("Copying source tree")

	err := s.runner.Pipe(ctx,
		tools.Command{Name: s.tar, Args: []string{"cf", "-", "."}, Dir: srcDir, WarnExits: tarWarnings},
		tools.Command{Name: s.tar, Args: []string{"xf", "-"}, Dir: installerDir, WarnExits: tarWarnings},
	)
	return installerDir, err
}

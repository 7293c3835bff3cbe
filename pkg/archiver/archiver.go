package archiver

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/arthur-debert/sdkpack/pkg/errors"
	"github.com/arthur-debert/sdkpack/pkg/logging"
	"github.com/arthur-debert/sdkpack/pkg/tools"
	"github.com/arthur-debert/sdkpack/pkg/types"
	"github.com/rs/zerolog"
)

// Archiver produces compressed tarballs with tar
type Archiver struct {
	runner *tools.Runner
	tar    string
	logger zerolog.Logger
}

// New creates an archiver running the given tar binary through runner
func New(runner *tools.Runner, tar string) *Archiver {
	return &Archiver{
		runner: runner,
		tar:    tar,
		logger: logging.GetLogger("archiver"),
	}
}

// Compress writes stagingRoot/version into archivePath, replacing any
// existing file there. It returns the absolute archive path.
func (a *Archiver) Compress(ctx context.Context, stagingRoot, version, archivePath string) (string, error) {
	done := logging.LogOperationStart(a.logger, "compress")
	defer done()

	abs, err := filepath.Abs(archivePath)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput, "bad archive path %s", archivePath)
	}

	a.logger.Info().
		Str("archive", abs).
		Str("member", version).
		Msg("Compressing staged tree")

	_, err = a.runner.Run(ctx, tools.Command{
		Name: a.tar,
		Args:      []string{"czf", abs, version},
		Dir:       stagingRoot,
		WarnExits: []int{tools.TarWarningExit},
	})
	return abs, err
}

// List returns the members of a gzip-compressed tarball in archive order
func List(archivePath string) ([]types.ArchiveEntry, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(err, errors.ErrNotFound, "archive %s not found", archivePath).
				WithDetail("path", archivePath)
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot open archive %s", archivePath).
			WithDetail("path", archivePath)
	}
	defer func() { _ = f.Close() }()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrArchiveRead, "%s is not gzip compressed", archivePath).
			WithDetail("path", archivePath)
	}
	defer func() { _ = gz.Close() }()

	var entries []types.ArchiveEntry
	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrArchiveRead, "failed to read %s", archivePath).
				WithDetail("path", archivePath)
		}
		entries = append(entries, entryFromHeader(hdr))
	}
	return entries, nil
}

func entryFromHeader(hdr *tar.Header) types.ArchiveEntry {
	entry := types.ArchiveEntry{Name: hdr.Name, Size: hdr.Size}
	switch hdr.Typeflag {
	case tar.TypeReg:
		entry.Type = types.EntryFile
	case tar.TypeDir:
		entry.Type = types.EntryDir
	case tar.TypeSymlink:
		entry.Type = types.EntrySymlink
		entry.Linkname = hdr.Linkname
	default:
		entry.Type = types.EntryOther
		entry.Linkname = hdr.Linkname
	}
	return entry
}

package versioning

import (
	"context"

	"github.com/arthur-debert/sdkpack/pkg/errors"
	"github.com/arthur-debert/sdkpack/pkg/tools"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// RevisionSource looks up the revision of a working copy
type RevisionSource interface {
	Name() string
	Revision(ctx context.Context, dir string) (int, error)
}

// SVNSource reads the revision from `svn info`
type SVNSource struct {
	Runner *tools.Runner
	Binary string
}

// Name returns the source name used in logs
func (s *SVNSource) Name() string { return "svn" }

// Revision runs `svn info` in dir and parses its Revision line
func (s *SVNSource) Revision(ctx context.Context, dir string) (int, error) {
	out, err := s.Runner.Run(ctx, tools.Command{Name: s.Binary, Args: []string{"info"}, Dir: dir})
	if err != nil {
		return 0, err
	}
	rev, err := ParseSVNRevision(out.Stdout)
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrRevision, "failed to read revision of %s", dir).
			WithDetail("dir", dir)
	}
	return rev, nil
}

// GitSource counts the commits reachable from HEAD. Git has no global
// revision number, so the commit count stands in for one: it grows by one
// per commit on a linear history, like an svn revision does.
type GitSource struct{}

// Name returns the source name used in logs
func (GitSource) Name() string { return "git" }

// Revision opens the repository containing dir and counts HEAD's ancestry
func (GitSource) Revision(ctx context.Context, dir string) (int, error) {
	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return 0, errors.Wrap(err, errors.ErrRevision, "not a git working copy").
			WithDetail("dir", dir)
	}

	head, err := repo.Head()
	if err != nil {
		return 0, errors.Wrap(err, errors.ErrRevision, "git repository has no HEAD")
	}

	commits, err := repo.Log(&gogit.LogOptions{From: head.Hash()})
	if err != nil {
		return 0, errors.Wrap(err, errors.ErrRevision, "failed to read git log")
	}
	defer commits.Close()

	count := 0
	err = commits.ForEach(func(*object.Commit) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		count++
		return nil
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return 0, ctxErr
		}
		return 0, errors.Wrap(err, errors.ErrRevision, "failed to walk git log")
	}
	return count, nil
}

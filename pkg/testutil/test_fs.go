package testutil

import (
	"github.com/arthur-debert/sdkpack/pkg/filesystem"
	"github.com/arthur-debert/sdkpack/pkg/types"
	"github.com/spf13/afero"
)

// NewTestFS returns an empty in-memory filesystem
func NewTestFS() types.FS {
	return filesystem.NewAferoFS(afero.NewMemMapFs())
}

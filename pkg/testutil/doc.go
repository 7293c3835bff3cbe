// Package testutil provides utilities for testing sdkpack components.
//
// Key components:
//   - file helpers: CreateFile, CreateDir, CreateSymlink and their checks
//   - SDKTree: a source tree seeded with every kind of excluded entry
//   - NewTestFS: in-memory afero filesystem for the cleaner
//   - WriteFakeSVN / InitGitRepo: version-control fixtures
//   - RequireTar: skips tests when tar is not installed
//
// All test data is defined inline, not in external files.
package testutil

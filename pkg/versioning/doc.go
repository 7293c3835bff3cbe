// Package versioning resolves the version string an SDK build is named
// after: a fixed product prefix and sub-version, the revision of the
// working copy, and the CI build number.
//
// Revision lookup is best effort. The svn source runs `svn info`; the git
// source reads the repository with go-git. When every source fails the
// revision is 0 and the build continues.
package versioning

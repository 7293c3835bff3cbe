// Package filesystem provides filesystem implementations for sdkpack.
//
// This package contains implementations of the types.FS interface: the
// standard OS filesystem used for real builds and an afero-backed
// filesystem used by tests to exercise the cleaner in memory.
package filesystem

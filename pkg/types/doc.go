// Package types defines the core types and interfaces shared by the sdkpack
// packages: the filesystem abstraction the cleaner runs against and the
// result structures the commands return to the CLI layer.
package types

// Package tools runs the external programs sdkpack depends on (tar and
// svn). It captures their output, logs each invocation, and turns failures
// into coded errors that carry the command line and stderr.
package tools

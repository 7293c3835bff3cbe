// Package stager copies an SDK source tree into a staging directory named
// after the build version.
//
// The copy is made by piping `tar cf - .` into `tar xf -` rather than by
// walking the tree in Go, so symbolic links, permissions and timestamps
// arrive exactly as tar records them.
package stager

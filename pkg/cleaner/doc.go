// Package cleaner strips version-control metadata, build output and
// platform junk from a staged SDK tree.
//
// The walk is top-down. A directory matching a dir rule is removed with
// everything beneath it and never descended into. Every other directory is
// descended into, and each non-directory entry (symlinks included, never
// followed) is deleted when its name matches a file rule.
//
// Removal failures do not stop the walk. They are logged, recorded in the
// returned report and otherwise ignored, so a partially cleaned tree still
// gets archived.
package cleaner

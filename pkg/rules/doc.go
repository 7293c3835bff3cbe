// Package rules decides which entries of a staged SDK tree are stripped
// before packaging.
//
// # Rule Kinds
//
//   - dirs: directory names removed whole (`.svn`, `scons-out`)
//   - file_prefixes: file names starting with the prefix (`.DS_Store`)
//   - file_patterns: glob on the base name (`._*` for AppleDouble files)
//   - file_names: exact file names (`DEPS`)
//
// Rules only ever look at a single path component, never at full paths.
// A directory name rule applies at every depth of the tree.
//
// # Configuration
//
//	[exclude]
//	dirs = [".svn", ".download", "scons-out", "packages"]
//	file_prefixes = [".DS_Store"]
//	file_patterns = ["._*"]
//	file_names = ["DEPS"]
package rules

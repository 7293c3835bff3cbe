package rules

import (
	"fmt"
	"path"
	"strings"

	"github.com/arthur-debert/sdkpack/pkg/config"
	"github.com/arthur-debert/sdkpack/pkg/errors"
)

// Set holds the exclusion rules applied to a staged tree
type Set struct {
	Dirs         []string
	FilePrefixes []string
	FilePatterns []string
	FileNames    []string
}

// Default returns the rules from the embedded configuration
func Default() *Set {
	return FromConfig(config.Default().Exclude)
}

// FromConfig builds a rule set from the [exclude] section
func FromConfig(ex config.Exclude) *Set {
	return &Set{
		Dirs:         append([]string(nil), ex.Dirs...),
		FilePrefixes: append([]string(nil), ex.FilePrefixes...),
		FilePatterns: append([]string(nil), ex.FilePatterns...),
		FileNames:    append([]string(nil), ex.FileNames...),
	}
}

// Validate rejects malformed glob patterns up front so matching never has
// to deal with path.ErrBadPattern.
func (s *Set) Validate() error {
	for _, pattern := range s.FilePatterns {
		if _, err := path.Match(pattern, ""); err != nil {
			return errors.Wrapf(err, errors.ErrConfigValid, "bad exclude pattern %q", pattern).
				WithDetail("key", "exclude.file_patterns")
		}
	}
	return nil
}

// ExcludesDir reports whether a directory with this name is pruned
func (s *Set) ExcludesDir(name string) bool {
	for _, dir := range s.Dirs {
		if name == dir {
			return true
		}
	}
	return false
}

// ExcludesFile reports whether a non-directory entry with this name is deleted
func (s *Set) ExcludesFile(name string) bool {
	for _, prefix := range s.FilePrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	for _, pattern := range s.FilePatterns {
		if matched, _ := path.Match(pattern, name); matched {
			return true
		}
	}
	for _, fileName := range s.FileNames {
		if name == fileName {
			return true
		}
	}
	return false
}

// ExcludesPath reports whether a slash-separated relative path would have
// been removed by the cleaner: either one of its parent directories is
// excluded, or the entry itself is.
func (s *Set) ExcludesPath(rel string, isDir bool) bool {
	rel = strings.Trim(strings.TrimPrefix(rel, "./"), "/")
	if rel == "" || rel == "." {
		return false
	}

	parts := strings.Split(rel, "/")
	for _, dir := range parts[:len(parts)-1] {
		if s.ExcludesDir(dir) {
			return true
		}
	}

	last := parts[len(parts)-1]
	if isDir {
		return s.ExcludesDir(last)
	}
	return s.ExcludesFile(last)
}

// Markdown renders the rule set as a markdown document
func (s *Set) Markdown() string {
	var b strings.Builder

	b.WriteString("# Exclusion rules\n\n")
	b.WriteString("Entries matching these rules are removed from the staged tree before it is archived.\n\n")

	section := func(title, help string, values []string) {
		fmt.Fprintf(&b, "## %s\n\n%s\n\n", title, help)
		if len(values) == 0 {
			b.WriteString("_none_\n\n")
			return
		}
		for _, v := range values {
			fmt.Fprintf(&b, "- `%s`\n", v)
		}
		b.WriteString("\n")
	}

	section("Directories", "Removed with everything beneath them, at any depth.", s.Dirs)
	section("File prefixes", "Files whose name starts with one of these.", s.FilePrefixes)
	section("File patterns", "Files whose name matches one of these globs.", s.FilePatterns)
	section("File names", "Files with exactly this name.", s.FileNames)

	return b.String()
}

package types

import "time"

// BuildResult holds the result of the 'build' command.
type BuildResult struct {
	Version    string        `json:"version"`
	Revision   int           `json:"revision"`
	Build      string        `json:"build"`
	SourceDir  string        `json:"sourceDir"`
	Archive    string        `json:"archive"`
	StagingDir string        `json:"stagingDir,omitempty"`
	Clean      *CleanReport  `json:"clean,omitempty"`
	DryRun     bool          `json:"dryRun"`
	Duration   time.Duration `json:"duration"`
}

// CleanReport lists what the cleaner removed from a staged tree. Paths are
// relative to the staged installer directory and use forward slashes.
type CleanReport struct {
	RemovedDirs  []string       `json:"removedDirs"`
	RemovedFiles []string       `json:"removedFiles"`
	Failures     []CleanFailure `json:"failures,omitempty"`
}

// CleanFailure records a removal the cleaner attempted and gave up on.
type CleanFailure struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// Removed returns the total number of removed entries.
func (r *CleanReport) Removed() int {
	if r == nil {
		return 0
	}
	return len(r.RemovedDirs) + len(r.RemovedFiles)
}

// EntryType classifies an archive member.
type EntryType string

const (
	EntryFile    EntryType = "file"
	EntryDir     EntryType = "dir"
	EntrySymlink EntryType = "symlink"
	EntryOther   EntryType = "other"
)

// ArchiveEntry is a single member of a tarball.
type ArchiveEntry struct {
	Name     string    `json:"name"`
	Type     EntryType `json:"type"`
	Linkname string    `json:"linkname,omitempty"`
	Size     int64     `json:"size"`
}

// VerifyResult holds the result of the 'verify' command.
type VerifyResult struct {
	Archive    string         `json:"archive"`
	Entries    int            `json:"entries"`
	Symlinks   []ArchiveEntry `json:"symlinks"`
	Violations []ArchiveEntry `json:"violations"`
}

// OK reports whether the archive contains no excluded entries.
func (r *VerifyResult) OK() bool {
	return len(r.Violations) == 0
}

// GenConfigResult holds the result of the 'genconfig' command.
type GenConfigResult struct {
	ConfigContent string   `json:"configContent"`
	FilesWritten  []string `json:"filesWritten"`
	// FilesSkipped are targets left alone because they already existed
	FilesSkipped []string `json:"filesSkipped,omitempty"`
}

// RulesResult holds the result of the 'rules' command.
type RulesResult struct {
	Dirs         []string `json:"dirs"`
	FilePrefixes []string `json:"filePrefixes"`
	FilePatterns []string `json:"filePatterns"`
	FileNames    []string `json:"fileNames"`
	Markdown     string   `json:"-"`
}

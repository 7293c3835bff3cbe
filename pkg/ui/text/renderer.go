// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/arthur-debert/sdkpack/pkg/errors"
	"github.com/arthur-debert/sdkpack/pkg/types"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) (*Renderer, error) {
	return &Renderer{output: output}, nil
}

// RenderResult renders any result type as plain text
func (r *Renderer) RenderResult(result interface{}) error {
	var b strings.Builder

	switch v := result.(type) {
	case *types.BuildResult:
		writeBuild(&b, v)
	case *types.VerifyResult:
		writeVerify(&b, v)
	case *types.GenConfigResult:
		b.WriteString(v.ConfigContent)
		if !strings.HasSuffix(v.ConfigContent, "\n") {
			b.WriteString("\n")
		}
		for _, path := range v.FilesWritten {
			fmt.Fprintf(&b, "Wrote %s\n", path)
		}
	case *types.RulesResult:
		b.WriteString(v.Markdown)
	default:
		// For unknown types, just print them
		fmt.Fprintf(&b, "%+v\n", result)
	}

	_, err := io.WriteString(r.output, b.String())
	return err
}

// RenderError renders an error as plain text. Coded errors already carry
// their code in the message; a failed tool's stderr follows, indented.
func (r *Renderer) RenderError(err error) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Error: %s\n", err)
	if stderr, _ := errors.GetErrorDetails(err)["stderr"].(string); stderr != "" {
		for _, line := range strings.Split(stderr, "\n") {
			fmt.Fprintf(&b, "  %s\n", line)
		}
	}
	_, werr := io.WriteString(r.output, b.String())
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}

func writeBuild(b *strings.Builder, res *types.BuildResult) {
	if res.DryRun {
		b.WriteString("Dry run: nothing was staged or archived\n")
	}
	fmt.Fprintf(b, "Version:   %s\n", res.Version)
	fmt.Fprintf(b, "Source:    %s\n", res.SourceDir)
	fmt.Fprintf(b, "Archive:   %s\n", res.Archive)

	if res.Clean != nil {
		verb := "Removed"
		if res.DryRun {
			verb = "Excluded"
		}
		fmt.Fprintf(b, "%-10s %d directories, %d files\n", verb+":",
			len(res.Clean.RemovedDirs), len(res.Clean.RemovedFiles))
		for _, f := range res.Clean.Failures {
			fmt.Fprintf(b, "  not removed: %s (%s)\n", f.Path, f.Error)
		}
	}

	if !res.DryRun {
		fmt.Fprintf(b, "Duration:  %s\n", res.Duration.Round(time.Millisecond))
	}
}

func writeVerify(b *strings.Builder, res *types.VerifyResult) {
	fmt.Fprintf(b, "Archive:    %s\n", res.Archive)
	fmt.Fprintf(b, "Entries:    %d\n", res.Entries)
	fmt.Fprintf(b, "Symlinks:   %d\n", len(res.Symlinks))
	for _, s := range res.Symlinks {
		fmt.Fprintf(b, "  %s -> %s\n", s.Name, s.Linkname)
	}
	fmt.Fprintf(b, "Violations: %d\n", len(res.Violations))
	for _, v := range res.Violations {
		fmt.Fprintf(b, "  %s\n", v.Name)
	}
	if res.OK() {
		b.WriteString("OK\n")
	} else {
		b.WriteString("FAILED\n")
	}
}

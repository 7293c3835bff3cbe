// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/arthur-debert/sdkpack/pkg/errors"
	"github.com/arthur-debert/sdkpack/pkg/types"
	"github.com/arthur-debert/sdkpack/pkg/ui/markdown"
	"github.com/arthur-debert/sdkpack/pkg/ui/styles"
	"github.com/pterm/pterm"
)

// Renderer provides rich terminal output using pterm, lipgloss styles and
// glamour
type Renderer struct {
	output   io.Writer
	markdown *markdown.GlamourRenderer
}

// New creates a new terminal renderer
func New(w io.Writer) (*Renderer, error) {
	return &Renderer{
		output:   w,
		markdown: markdown.NewGlamourRenderer(),
	}, nil
}

// RenderResult renders any result type with rich terminal formatting
func (r *Renderer) RenderResult(result interface{}) error {
	var (
		out string
		err error
	)

	switch v := result.(type) {
	case *types.BuildResult:
		out, err = r.build(v)
	case *types.VerifyResult:
		out, err = r.verify(v)
	case *types.GenConfigResult:
		out = r.genConfig(v)
	case *types.RulesResult:
		out = r.markdown.Render(v.Markdown)
	default:
		// For unknown types, just print them
		out = fmt.Sprintf("%+v\n", result)
	}
	if err != nil {
		return err
	}

	_, err = io.WriteString(r.output, out)
	return err
}

// RenderError renders an error, followed by a tool's stderr when the
// error carries one
func (r *Renderer) RenderError(err error) error {
	if err == nil {
		return nil
	}

	msg := err.Error()
	if stderr, _ := errors.GetErrorDetails(err)["stderr"].(string); stderr != "" {
		msg += "\n" + styles.Render(styles.Muted, stderr)
	}
	_, werr := fmt.Fprintln(r.output, strings.TrimRight(pterm.Error.Sprint(msg), "\n"))
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprint(r.output, pterm.Info.Sprintln(msg))
	return err
}

func (r *Renderer) build(res *types.BuildResult) (string, error) {
	var b strings.Builder

	if res.DryRun {
		b.WriteString(styles.Render(styles.DryRunBanner, "DRY RUN") + " nothing was staged or archived\n\n")
	}

	data := pterm.TableData{
		{styles.Render(styles.Label, "Version"), styles.Render(styles.Version, res.Version)},
		{styles.Render(styles.Label, "Source"), styles.Render(styles.FilePath, res.SourceDir)},
		{styles.Render(styles.Label, "Archive"), styles.Render(styles.FilePath, res.Archive)},
	}
	if res.Clean != nil {
		label := "Removed"
		if res.DryRun {
			label = "Excluded"
		}
		data = append(data, []string{
			styles.Render(styles.Label, label),
			fmt.Sprintf("%d directories, %d files", len(res.Clean.RemovedDirs), len(res.Clean.RemovedFiles)),
		})
	}
	if !res.DryRun {
		data = append(data, []string{styles.Render(styles.Label, "Duration"), styles.Render(styles.Muted, res.Duration.Round(time.Millisecond).String())})
	}

	table, err := pterm.DefaultTable.WithData(data).Srender()
	if err != nil {
		return "", err
	}
	b.WriteString(table + "\n")

	if res.Clean != nil {
		for _, f := range res.Clean.Failures {
			b.WriteString(pterm.Warning.Sprintf("not removed: %s (%s)", f.Path, f.Error))
			b.WriteString("\n")
		}
	}

	if !res.DryRun {
		b.WriteString(pterm.Success.Sprintln("Archive written"))
	}
	return b.String(), nil
}

func (r *Renderer) verify(res *types.VerifyResult) (string, error) {
	var b strings.Builder

	b.WriteString(styles.Render(styles.Header, "Archive "+res.Archive) + "\n")

	data := pterm.TableData{
		{styles.Render(styles.Label, "Entries"), strconv.Itoa(res.Entries)},
		{styles.Render(styles.Label, "Symlinks"), strconv.Itoa(len(res.Symlinks))},
		{styles.Render(styles.Label, "Violations"), strconv.Itoa(len(res.Violations))},
	}
	table, err := pterm.DefaultTable.WithData(data).Srender()
	if err != nil {
		return "", err
	}
	b.WriteString(table + "\n")

	for _, s := range res.Symlinks {
		fmt.Fprintf(&b, "  %s -> %s\n", styles.Render(styles.FilePath, s.Name), styles.Render(styles.Muted, s.Linkname))
	}

	if res.OK() {
		b.WriteString(pterm.Success.Sprintln("No excluded entries found"))
		return b.String(), nil
	}

	b.WriteString(pterm.Error.Sprintf("%d excluded entries found", len(res.Violations)))
	b.WriteString("\n")
	for _, v := range res.Violations {
		fmt.Fprintf(&b, "  %s\n", styles.Render(styles.Error, v.Name))
	}
	return b.String(), nil
}

func (r *Renderer) genConfig(res *types.GenConfigResult) string {
	var b strings.Builder
	b.WriteString(res.ConfigContent)
	if !strings.HasSuffix(res.ConfigContent, "\n") {
		b.WriteString("\n")
	}
	for _, path := range res.FilesWritten {
		b.WriteString(pterm.Success.Sprintf("Wrote %s", styles.Render(styles.FilePath, path)))
		b.WriteString("\n")
	}
	return b.String()
}

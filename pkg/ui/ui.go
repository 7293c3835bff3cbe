// Package ui turns command results into output for the sdkpack CLI. The
// renderer is picked from the --format flag.
package ui

import (
	"io"
	"os"

	"github.com/arthur-debert/sdkpack/pkg/errors"
	"github.com/arthur-debert/sdkpack/pkg/ui/json"
	"github.com/arthur-debert/sdkpack/pkg/ui/terminal"
	"github.com/arthur-debert/sdkpack/pkg/ui/text"
)

// Renderer writes results of the build, verify, rules and genconfig
// commands, errors, and one-line messages.
type Renderer interface {
	RenderResult(result interface{}) error
	RenderError(err error) error
	RenderMessage(msg string) error
}

// NewRenderer returns the renderer for format writing to output.
// FormatAuto inspects output: a color terminal gets rich output, anything
// else gets plain text.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		if file, ok := output.(*os.File); ok {
			return NewRenderer(DetectFormat(file), output)
		}
		return NewRenderer(FormatText, output)
	case FormatTerminal:
		return terminal.New(output)
	case FormatText:
		return text.New(output)
	case FormatJSON:
		return json.New(output)
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown format: %v", format)
	}
}

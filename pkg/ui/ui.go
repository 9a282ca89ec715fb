// Package ui renders run progress, reports and host listings in the
// terminal (rich), text (plain), JSON and YAML formats.
package ui

import (
	"io"
	"os"

	"github.com/wzhd/rotor/pkg/errors"
	"github.com/wzhd/rotor/pkg/host"
	"github.com/wzhd/rotor/pkg/runner"
	"github.com/wzhd/rotor/pkg/ui/json"
	"github.com/wzhd/rotor/pkg/ui/terminal"
	"github.com/wzhd/rotor/pkg/ui/text"
	"github.com/wzhd/rotor/pkg/ui/yaml"
)

// Renderer is the common interface for all output renderers. It
// receives run progress as a runner.Reporter.
type Renderer interface {
	runner.Reporter

	// RenderReport renders the outcome of a finished run
	RenderReport(report *runner.Report) error

	// RenderPairs renders the configured users at hosts
	RenderPairs(pairs []host.Pair) error

	// RenderMessage renders a simple message
	RenderMessage(msg string) error

	// RenderError renders an error with appropriate formatting
	RenderError(err error) error
}

// NewRenderer creates a new renderer based on the specified format.
// It automatically detects terminal capabilities when format is Auto.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		if file, ok := output.(*os.File); ok {
			return NewRenderer(DetectFormat(file), output)
		}
		return NewRenderer(FormatText, output)
	case FormatTerminal:
		return terminal.New(output), nil
	case FormatText:
		return text.New(output), nil
	case FormatJSON:
		return json.New(output), nil
	case FormatYAML:
		return yaml.New(output), nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown format: %v", format)
	}
}

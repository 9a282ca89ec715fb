// Package json provides machine-readable JSON output
package json

import (
	"encoding/json"
	"io"

	"github.com/wzhd/rotor/pkg/host"
	"github.com/wzhd/rotor/pkg/runner"
)

// Renderer provides JSON output for machine consumption. Progress is
// not streamed; the report is written once the run has finished.
type Renderer struct {
	runner.NopReporter
	encoder *json.Encoder
}

// New creates a new JSON renderer
func New(output io.Writer) *Renderer {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	return &Renderer{encoder: encoder}
}

func (r *Renderer) RenderReport(report *runner.Report) error {
	return r.encoder.Encode(report)
}

func (r *Renderer) RenderPairs(pairs []host.Pair) error {
	if pairs == nil {
		pairs = []host.Pair{}
	}
	return r.encoder.Encode(pairs)
}

// RenderError renders an error as JSON
func (r *Renderer) RenderError(err error) error {
	return r.encoder.Encode(map[string]string{"error": err.Error()})
}

// RenderMessage renders a simple message as JSON
func (r *Renderer) RenderMessage(msg string) error {
	return r.encoder.Encode(map[string]string{"message": msg})
}

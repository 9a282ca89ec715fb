// Package yaml provides machine-readable YAML output
package yaml

import (
	"io"

	"github.com/wzhd/rotor/pkg/host"
	"github.com/wzhd/rotor/pkg/runner"
	"gopkg.in/yaml.v3"
)

// Renderer writes one YAML document per rendered value
type Renderer struct {
	runner.NopReporter
	w io.Writer
}

// New creates a new YAML renderer
func New(w io.Writer) *Renderer {
	return &Renderer{w: w}
}

func (r *Renderer) encode(v interface{}) error {
	enc := yaml.NewEncoder(r.w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func (r *Renderer) RenderReport(report *runner.Report) error {
	return r.encode(report)
}

func (r *Renderer) RenderPairs(pairs []host.Pair) error {
	if pairs == nil {
		pairs = []host.Pair{}
	}
	return r.encode(pairs)
}

func (r *Renderer) RenderError(err error) error {
	return r.encode(map[string]string{"error": err.Error()})
}

func (r *Renderer) RenderMessage(msg string) error {
	return r.encode(map[string]string{"message": msg})
}

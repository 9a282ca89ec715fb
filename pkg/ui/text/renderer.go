// Package text provides plain text output. The terminal renderer reuses
// it with a styling Painter.
package text

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/wzhd/rotor/pkg/host"
	"github.com/wzhd/rotor/pkg/runner"
	"github.com/wzhd/rotor/pkg/textutil"
)

// Painter decorates the parts of a progress line
type Painter interface {
	Counter(s string) string
	Outcome(o runner.Outcome, s string) string
	Applying(s string) string
	DiffLine(line string) string
	Heading(s string) string
}

// Plain leaves every part undecorated
type Plain struct{}

func (Plain) Counter(s string) string { return s }
func (Plain) Outcome(_ runner.Outcome, s string) string { return s }
func (Plain) Applying(s string) string { return s }
func (Plain) DiffLine(line string) string { return line }
func (Plain) Heading(s string) string { return s }

// Renderer writes one line per progress event
type Renderer struct {
	w     io.Writer
	paint Painter
}

// New creates a plain text renderer
func New(w io.Writer) *Renderer {
	return NewWithPainter(w, Plain{})
}

// NewWithPainter creates a text renderer that decorates with p
func NewWithPainter(w io.Writer, p Painter) *Renderer {
	return &Renderer{w: w, paint: p}
}

// Writer returns the destination of the output
func (r *Renderer) Writer() io.Writer {
	return r.w
}

func (r *Renderer) Start(target string, total int) {
	noun := "properties"
	if total == 1 {
		noun = "property"
	}
	fmt.Fprintln(r.w, r.paint.Heading(fmt.Sprintf("%s: %d %s", target, total, noun)))
}

func (r *Renderer) Progress(e runner.Event) {
	prefix := fmt.Sprintf("%s %s: ", r.paint.Counter(fmt.Sprintf("[%d/%d]", e.Index, e.Total)), e.Description)
	if e.Stage == runner.StageApplying {
		fmt.Fprintln(r.w, prefix+r.paint.Applying("applying"))
		return
	}

	status := string(e.Outcome)
	if e.Outcome == runner.OutcomeFailed && e.Err != nil {
		status += ": " + e.Err.Error()
	}
	fmt.Fprintln(r.w, prefix+r.paint.Outcome(e.Outcome, status))

	for _, line := range textutil.SplitLines(e.Diff) {
		fmt.Fprintln(r.w, "    "+r.paint.DiffLine(line))
	}
}

func (r *Renderer) Finish(report *runner.Report) {
	fmt.Fprintln(r.w, Summary(report))
}

// Summary is the closing line of a run
func Summary(report *runner.Report) string {
	switch {
	case report.Failed > 0:
		return fmt.Sprintf("%d out of %d properties failed", report.Failed, report.Total)
	case report.CheckOnly:
		return fmt.Sprintf("%d of %d properties would be applied", report.Pending, report.Total)
	default:
		return fmt.Sprintf("%d properties satisfied, %d applied", report.Total, report.Applied)
	}
}

// RenderReport does nothing: the report was streamed as progress
func (r *Renderer) RenderReport(*runner.Report) error {
	return nil
}

// RenderPairs writes aligned columns of target, capability and
// property count.
func (r *Renderer) RenderPairs(pairs []host.Pair) error {
	if len(pairs) == 0 {
		_, err := fmt.Fprintln(r.w, "No users configured")
		return err
	}
	tw := tabwriter.NewWriter(r.w, 0, 4, 2, ' ', 0)
	for _, p := range pairs {
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%d\n", p.Target(), p.Capability, p.Properties); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.w, strings.TrimRight(msg, "\n"))
	return err
}

func (r *Renderer) RenderError(err error) error {
	_, werr := fmt.Fprintf(r.w, "Error: %v\n", err)
	return werr
}

// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/wzhd/rotor/pkg/host"
	"github.com/wzhd/rotor/pkg/runner"
	"github.com/wzhd/rotor/pkg/style"
	"github.com/wzhd/rotor/pkg/ui/text"
)

// painter styles progress lines with lipgloss
type painter struct{}

func (painter) Counter(s string) string { return style.CounterStyle.Render(s) }
func (painter) Applying(s string) string { return style.ApplyingStyle.Render(s) }
func (painter) DiffLine(line string) string { return style.DiffLine(line) }
func (painter) Heading(s string) string { return style.TitleStyle.Render(s) }

func (painter) Outcome(o runner.Outcome, s string) string {
	switch o {
	case runner.OutcomeApplied:
		return style.AppliedStyle.Render(s)
	case runner.OutcomeFailed:
		return style.FailedStyle.Render(s)
	case runner.OutcomeWouldApply:
		return style.PendingStyle.Render(s)
	default:
		return style.SatisfiedStyle.Render(s)
	}
}

// Renderer streams styled progress and draws tables with pterm
type Renderer struct {
	*text.Renderer
}

// New creates a new terminal renderer
func New(w io.Writer) *Renderer {
	return &Renderer{Renderer: text.NewWithPainter(w, painter{})}
}

func (r *Renderer) Finish(report *runner.Report) {
	summary := text.Summary(report)
	if report.Failed > 0 {
		summary = style.FailedStyle.Render(summary)
	} else {
		summary = style.TitleStyle.Render(summary)
	}
	fmt.Fprintln(r.Writer(), summary)
}

// RenderPairs draws a table of the configured users at hosts
func (r *Renderer) RenderPairs(pairs []host.Pair) error {
	if len(pairs) == 0 {
		return r.RenderMessage(style.MutedStyle.Render("No users configured"))
	}
	data := pterm.TableData{{"Target", "OS", "Properties"}}
	for _, p := range pairs {
		data = append(data, []string{
			style.PathStyle.Render(p.Target().String()),
			p.Capability.String(),
			strconv.Itoa(p.Properties),
		})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(r.Writer(), table)
	return err
}

func (r *Renderer) RenderError(err error) error {
	_, werr := fmt.Fprintln(r.Writer(), style.FailedStyle.Render("Error: "+err.Error()))
	return werr
}

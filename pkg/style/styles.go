// Package style holds the lipgloss styles of rotor's terminal output.
package style

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(HeadingColor).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	// CounterStyle renders the [i/total] prefix of progress lines
	CounterStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	PathStyle = lipgloss.NewStyle().
			Foreground(PathColor)
)

// Outcome styles
var (
	SatisfiedStyle = lipgloss.NewStyle().
			Foreground(SatisfiedColor)

	AppliedStyle = lipgloss.NewStyle().
			Foreground(AppliedColor).
			Bold(true)

	FailedStyle = lipgloss.NewStyle().
			Foreground(FailedColor).
			Bold(true)

	PendingStyle = lipgloss.NewStyle().
			Foreground(PendingColor).
			Bold(true)

	ApplyingStyle = lipgloss.NewStyle().
			Foreground(ApplyingColor)
)

// Diff line styles
var (
	AddedStyle = lipgloss.NewStyle().
			Foreground(AppliedColor)

	RemovedStyle = lipgloss.NewStyle().
			Foreground(FailedColor)
)

// DiffLine styles one line of a diff by its prefix
func DiffLine(line string) string {
	switch {
	case len(line) > 0 && line[0] == '+':
		return AddedStyle.Render(line)
	case len(line) > 0 && line[0] == '-':
		return RemovedStyle.Render(line)
	default:
		return MutedStyle.Render(line)
	}
}

package testutil

import (
	"github.com/wzhd/rotor/pkg/command"
)

// FakeResult is the scripted outcome of one command line
type FakeResult struct {
	Stdout   []byte
	ExitCode int
	Err      error
}

// FakeRunner is a command.Runner that records every call and answers
// from scripted results keyed by command line. Unscripted commands
// succeed with no output.
type FakeRunner struct {
	results map[string]FakeResult
	Calls   []command.Cmd
}

func NewFakeRunner() *FakeRunner {
	return &FakeRunner{results: make(map[string]FakeResult)}
}

// On scripts the result for the command line cmdline
func (f *FakeRunner) On(cmdline string, result FakeResult) *FakeRunner {
	f.results[cmdline] = result
	return f
}

func (f *FakeRunner) Output(c command.Cmd) ([]byte, int, error) {
	f.Calls = append(f.Calls, c)
	r := f.results[c.String()]
	return r.Stdout, r.ExitCode, r.Err
}

func (f *FakeRunner) Run(c command.Cmd) (int, error) {
	f.Calls = append(f.Calls, c)
	r := f.results[c.String()]
	return r.ExitCode, r.Err
}

// CommandLines returns the recorded calls as command lines
func (f *FakeRunner) CommandLines() []string {
	lines := make([]string, len(f.Calls))
	for i, c := range f.Calls {
		lines[i] = c.String()
	}
	return lines
}

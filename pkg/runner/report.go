package runner

import "time"

// Outcome is the final state of one property in a run
type Outcome string

const (
	OutcomeSatisfied  Outcome = "already satisfied"
	OutcomeApplied    Outcome = "applied"
	OutcomeFailed     Outcome = "failed"
	OutcomeWouldApply Outcome = "would apply"
)

// Stage says whether an Event announces work or reports its result
type Stage int

const (
	// StageApplying is emitted after a check returned false, before Apply
	StageApplying Stage = iota
	// StageDone carries the final outcome
	StageDone
)

// Event is one progress notification
type Event struct {
	Index       int // 1-based position in the list
	Total       int
	Description string
	Stage       Stage
	Outcome     Outcome
	Err         error
	Diff        string
}

// Result is the recorded outcome of one property
type Result struct {
	Index       int     `json:"index" yaml:"index"`
	Description string  `json:"description" yaml:"description"`
	Outcome     Outcome `json:"outcome" yaml:"outcome"`
	Error       string  `json:"error,omitempty" yaml:"error,omitempty"`
	Diff        string  `json:"diff,omitempty" yaml:"diff,omitempty"`
}

// Report summarises a run
type Report struct {
	RunID     string        `json:"run_id" yaml:"run_id"`
	Target    string        `json:"target" yaml:"target"`
	CheckOnly bool          `json:"check_only" yaml:"check_only"`
	Total     int           `json:"total" yaml:"total"`
	Satisfied int           `json:"satisfied" yaml:"satisfied"`
	Applied   int           `json:"applied" yaml:"applied"`
	Pending   int           `json:"pending" yaml:"pending"`
	Failed    int           `json:"failed" yaml:"failed"`
	Duration  time.Duration `json:"duration" yaml:"duration"`
	Results   []Result      `json:"results" yaml:"results"`
}

// Succeeded reports whether no property failed
func (r *Report) Succeeded() bool {
	return r.Failed == 0
}

// Reporter receives progress while a run is in flight
type Reporter interface {
	Start(target string, total int)
	Progress(e Event)
	Finish(r *Report)
}

// NopReporter discards all progress
type NopReporter struct{}

func (NopReporter) Start(string, int) {}
func (NopReporter) Progress(Event)    {}
func (NopReporter) Finish(*Report)    {}

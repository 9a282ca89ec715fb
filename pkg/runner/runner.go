package runner

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/wzhd/rotor/pkg/errors"
	"github.com/wzhd/rotor/pkg/logging"
	"github.com/wzhd/rotor/pkg/property"
)

// Runner executes property lists sequentially
type Runner struct {
	logger   zerolog.Logger
	reporter Reporter
}

// New creates a runner delivering progress to reporter. A nil reporter
// discards progress.
func New(reporter Reporter) *Runner {
	if reporter == nil {
		reporter = NopReporter{}
	}
	return &Runner{
		logger:   logging.GetLogger("runner"),
		reporter: reporter,
	}
}

// Apply checks every property of list in order and applies the ones
// whose condition does not hold. The report is non-nil for any non-nil
// list; the error is then non-nil iff at least one property failed. A
// nil list is an INVALID_INPUT error with no report.
func (r *Runner) Apply(target string, list *property.List) (*Report, error) {
	return r.run(target, list, false)
}

// Check only checks every property, reporting the ones Apply would
// change. Nothing on the system is modified.
func (r *Runner) Check(target string, list *property.List) (*Report, error) {
	return r.run(target, list, true)
}

func (r *Runner) run(target string, list *property.List, checkOnly bool) (*Report, error) {
	if list == nil {
		return nil, errors.Newf(errors.ErrInvalidInput, "no property list for %s", target).
			WithDetail("target", target)
	}
	props := list.Properties()
	report := &Report{
		RunID:     uuid.NewString(),
		Target:    target,
		CheckOnly: checkOnly,
		Total:     len(props),
		Results:   make([]Result, 0, len(props)),
	}
	logger := r.logger.With().
		Str("run", report.RunID).
		Str("target", target).
		Bool("checkOnly", checkOnly).
		Logger()

	start := time.Now()
	logger.Info().Int("total", report.Total).Msg("Starting run")
	r.reporter.Start(target, report.Total)

	for i, p := range props {
		res := r.reconcile(logger, p, i+1, report.Total, checkOnly)
		switch res.Outcome {
		case OutcomeSatisfied:
			report.Satisfied++
		case OutcomeApplied:
			report.Applied++
		case OutcomeWouldApply:
			report.Pending++
		case OutcomeFailed:
			report.Failed++
		}
		report.Results = append(report.Results, res)
	}

	report.Duration = time.Since(start)
	logger.Info().
		Int("failed", report.Failed).
		Int("applied", report.Applied).
		Int("satisfied", report.Satisfied).
		Dur("duration", report.Duration).
		Msg("Run completed")
	r.reporter.Finish(report)

	if report.Failed > 0 {
		return report, errors.Newf(errors.ErrAggregateFailure,
			"%d out of %d properties failed", report.Failed, report.Total).
			WithDetail("failed", report.Failed).
			WithDetail("total", report.Total)
	}
	return report, nil
}

// reconcile drives one property through check and, if needed, apply.
func (r *Runner) reconcile(logger zerolog.Logger, p property.Property, index, total int, checkOnly bool) Result {
	desc := p.String()
	logger = logger.With().Int("index", index).Str("property", desc).Logger()
	res := Result{Index: index, Description: desc}

	done := func(outcome Outcome, err error, diff string) Result {
		res.Outcome = outcome
		res.Diff = diff
		if err != nil {
			res.Error = err.Error()
		}
		r.reporter.Progress(Event{
			Index:       index,
			Total:       total,
			Description: desc,
			Stage:       StageDone,
			Outcome:     outcome,
			Err:         err,
			Diff:        diff,
		})
		return res
	}

	ok, err := p.Check()
	if err != nil {
		logger.Error().Err(err).Msg("Check failed")
		return done(OutcomeFailed, err, "")
	}
	if ok {
		logger.Debug().Msg("Already satisfied")
		return done(OutcomeSatisfied, nil, "")
	}

	if checkOnly {
		logger.Info().Msg("Would apply")
		return done(OutcomeWouldApply, nil, r.diff(logger, p))
	}

	r.reporter.Progress(Event{
		Index:       index,
		Total:       total,
		Description: desc,
		Stage:       StageApplying,
	})
	logger.Info().Msg("Applying")
	if err := p.Apply(); err != nil {
		logger.Error().Err(err).Msg("Apply failed")
		return done(OutcomeFailed, err, "")
	}
	logger.Info().Msg("Applied")
	return done(OutcomeApplied, nil, "")
}

func (r *Runner) diff(logger zerolog.Logger, p property.Property) string {
	d, ok := p.(property.Differ)
	if !ok {
		return ""
	}
	diff, err := d.Diff()
	if err != nil {
		logger.Warn().Err(err).Msg("Could not compute diff")
		return ""
	}
	return diff
}

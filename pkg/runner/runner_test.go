package runner_test

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wzhd/rotor/pkg/capability"
	"github.com/wzhd/rotor/pkg/errors"
	"github.com/wzhd/rotor/pkg/property"
	"github.com/wzhd/rotor/pkg/runner"
	"github.com/wzhd/rotor/pkg/testutil"
)

type recordingReporter struct {
	started  bool
	events   []runner.Event
	finished *runner.Report
}

func (r *recordingReporter) Start(string, int)            { r.started = true }
func (r *recordingReporter) Progress(e runner.Event)      { r.events = append(r.events, e) }
func (r *recordingReporter) Finish(report *runner.Report) { r.finished = report }

type diffingProperty struct {
	*testutil.FakeProperty
}

func (diffingProperty) Diff() (string, error) {
	return "-old\n+new\n", nil
}

func newList(t *testing.T, props ...property.Property) *property.List {
	t.Helper()
	list := property.NewList(capability.Any)
	require.NoError(t, list.Add(props...))
	return list
}

func TestApplyAllSucceed(t *testing.T) {
	satisfied := testutil.NewFakeProperty("satisfied")
	satisfied.Satisfied = true
	pending := testutil.NewFakeProperty("pending")

	rec := &recordingReporter{}
	report, err := runner.New(rec).Apply("user@host", newList(t, satisfied, pending))

	require.NoError(t, err)
	assert.True(t, report.Succeeded())
	assert.Equal(t, 2, report.Total)
	assert.Equal(t, 1, report.Satisfied)
	assert.Equal(t, 1, report.Applied)
	assert.NotEmpty(t, report.RunID)

	assert.Equal(t, 0, satisfied.Applies, "satisfied property must not be applied")
	assert.Equal(t, 1, pending.Applies)

	assert.True(t, rec.started)
	assert.Same(t, report, rec.finished)
	require.Len(t, rec.events, 3)
	assert.Equal(t, runner.OutcomeSatisfied, rec.events[0].Outcome)
	assert.Equal(t, runner.StageApplying, rec.events[1].Stage)
	assert.Equal(t, 2, rec.events[1].Index)
	assert.Equal(t, runner.OutcomeApplied, rec.events[2].Outcome)
}

func TestApplyAggregatesFailures(t *testing.T) {
	tests := []struct {
		name    string
		failing []int // positions whose apply fails
		total   int
	}{
		{"none", nil, 4},
		{"first", []int{0}, 4},
		{"last", []int{3}, 4},
		{"middle_two", []int{1, 2}, 4},
		{"all", []int{0, 1, 2, 3}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fakes := make([]*testutil.FakeProperty, tt.total)
			props := make([]property.Property, tt.total)
			for i := range fakes {
				fakes[i] = testutil.NewFakeProperty("p")
				props[i] = fakes[i]
			}
			for _, i := range tt.failing {
				fakes[i].ApplyErr = stderrors.New("mirror down")
			}

			report, err := runner.New(nil).Apply("u@h", newList(t, props...))

			assert.Equal(t, len(tt.failing), report.Failed)
			assert.Equal(t, tt.total-len(tt.failing), report.Applied)
			if len(tt.failing) == 0 {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, errors.ErrAggregateFailure))
				details := errors.GetErrorDetails(err)
				assert.Equal(t, len(tt.failing), details["failed"])
				assert.Equal(t, tt.total, details["total"])
			}

			for _, f := range fakes {
				assert.Equal(t, 1, f.Applies, "every property is attempted regardless of earlier failures")
			}
		})
	}
}

func TestCheckErrorSkipsApply(t *testing.T) {
	broken := testutil.NewFakeProperty("broken")
	broken.CheckErr = stderrors.New("permission denied")
	next := testutil.NewFakeProperty("next")

	rec := &recordingReporter{}
	report, err := runner.New(rec).Apply("u@h", newList(t, broken, next))

	require.Error(t, err)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 0, broken.Applies)
	assert.Equal(t, 1, next.Applies)
	assert.Equal(t, "permission denied", report.Results[0].Error)
	assert.Equal(t, runner.OutcomeFailed, rec.events[0].Outcome)
}

func TestRerunIsIdempotent(t *testing.T) {
	a := testutil.NewFakeProperty("a")
	b := testutil.NewFakeProperty("b")
	list := newList(t, a, b)
	r := runner.New(nil)

	_, err := r.Apply("u@h", list)
	require.NoError(t, err)

	report, err := r.Apply("u@h", list)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Satisfied)
	assert.Equal(t, 1, a.Applies)
	assert.Equal(t, 1, b.Applies)
}

func TestCheckOnlyNeverApplies(t *testing.T) {
	plain := testutil.NewFakeProperty("plain")
	diffing := diffingProperty{testutil.NewFakeProperty("diffing")}

	report, err := runner.New(nil).Check("u@h", newList(t, plain, diffing))

	require.NoError(t, err)
	assert.True(t, report.CheckOnly)
	assert.Equal(t, 2, report.Pending)
	assert.Equal(t, 0, plain.Applies)
	assert.Equal(t, 0, diffing.Applies)
	assert.Empty(t, report.Results[0].Diff)
	assert.Equal(t, "-old\n+new\n", report.Results[1].Diff)
}

func TestEmptyList(t *testing.T) {
	report, err := runner.New(nil).Apply("u@h", property.NewList(capability.Any))
	require.NoError(t, err)
	assert.Equal(t, 0, report.Total)
}

func TestNilList(t *testing.T) {
	rec := &recordingReporter{}
	r := runner.New(rec)

	report, err := r.Apply("user@host", nil)
	assert.Nil(t, report)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	report, err = r.Check("user@host", nil)
	assert.Nil(t, report)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	assert.False(t, rec.started)
}

package schedules

import (
	"github.com/joeycumines/logiface"
)

// TraceActions wraps a schedule so that every action emitted by Next is
// logged at trace level, with the action in both positional and structured
// form. A nil logger returns the schedule unwrapped.
func TraceActions[E logiface.Event](schedule Schedule, logger *logiface.Logger[E]) Schedule {
	if logger == nil {
		return schedule
	}
	return &traceSchedule[E]{inner: schedule, logger: logger}
}

type traceSchedule[E logiface.Event] struct {
	inner  Schedule
	logger *logiface.Logger[E]
}

func (x *traceSchedule[E]) Next() (Action, error) {
	action, err := x.inner.Next()
	if err != nil {
		x.logger.Trace().
			Err(err).
			Log(`checkpoint schedule: no next action`)
		return action, err
	}
	x.logger.Trace().
		Str(`action`, action.String()).
		RawJSON(`detail`, action.AppendJSON(nil)).
		Log(`checkpoint schedule: next action`)
	return action, nil
}

func (x *traceSchedule[E]) Finalize(n1 int64) error {
	err := x.inner.Finalize(n1)
	x.logger.Trace().
		Int64(`n1`, n1).
		Err(err).
		Log(`checkpoint schedule: finalize`)
	return err
}

func (x *traceSchedule[E]) MaxN() int64 { return x.inner.MaxN() }

func (x *traceSchedule[E]) UsesDiskStorage() bool { return x.inner.UsesDiskStorage() }

func (x *traceSchedule[E]) IsExhausted() bool { return x.inner.IsExhausted() }

package deployment

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Report lists the steps of an operation that completed, in order. Operations
// stop at the first failing step and never undo completed steps, so after a
// failure the report tells how far the operation went.
type Report struct {
	Operation string   `json:"operation"`
	Completed []string `json:"completed"`
}

// StepError is returned when a step of an operation fails.
type StepError struct {
	Operation string
	Step      string
	Completed []string
	Err       error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %s: %v (completed: [%s])",
		e.Operation, e.Step, e.Err, strings.Join(e.Completed, ", "))
}

func (e *StepError) Unwrap() error {
	return e.Err
}

type step struct {
	name string
	do   func(context.Context) error
}

type saga struct {
	operation string
	steps     []step
}

func newSaga(operation string) *saga {
	return &saga{operation: operation}
}

func (s *saga) add(name string, do func(context.Context) error) {
	s.steps = append(s.steps, step{name: name, do: do})
}

func (s *saga) run(ctx context.Context, logger *zap.Logger) (Report, error) {
	logger = logger.With(zap.String("operation", s.operation))
	report := Report{
		Operation: s.operation,
		Completed: make([]string, 0, len(s.steps)),
	}
	for _, st := range s.steps {
		err := ctx.Err()
		if err == nil {
			err = st.do(ctx)
		}
		if err != nil {
			logger.Error("step failed",
				zap.String("step", st.name),
				zap.Strings("completed", report.Completed),
				zap.Error(err),
			)
			return report, &StepError{
				Operation: s.operation,
				Step:      st.name,
				Completed: append([]string(nil), report.Completed...),
				Err:       err,
			}
		}
		logger.Debug("step done", zap.String("step", st.name))
		report.Completed = append(report.Completed, st.name)
	}
	return report, nil
}

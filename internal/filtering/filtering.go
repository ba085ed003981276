package filtering

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Filter represents a single filtering step applied to a fetched list.
type Filter[T any] interface {
	Name() string
	IsEnabled() bool

	Validate() error
	Apply(ctx context.Context, items []T) ([]T, Step, error)
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Status represents runtime information about a filter.
type Status struct {
	Name    string
	Enabled bool
	Details map[string]string
}

// statusProvider is implemented by filters that can supply detailed status information.
type statusProvider interface {
	Status() Status
}

type Filtering[T any] struct {
	steps  []Filter[T]
	logger *zap.Logger
}

func New[T any](steps []Filter[T], logger *zap.Logger) *Filtering[T] {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Filtering[T]{
		steps:  steps,
		logger: logger,
	}
}

// Run executes the enabled steps in order. Every step keeps the relative
// order of the items it does not drop.
func (f *Filtering[T]) Run(ctx context.Context, items []T) ([]T, error) {
	for _, step := range f.steps {
		if !step.IsEnabled() {
			continue
		}
		if err := step.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}
	}

	for _, step := range f.steps {
		if !step.IsEnabled() {
			f.logger.Debug("filter disabled", zap.String("name", step.Name()))
			continue
		}

		next, info, err := step.Apply(ctx, items)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		f.logger.Debug("filter step",
			zap.String("name", step.Name()),
			zap.Int("initial", info.Initial),
			zap.Int("dropped", info.Dropped),
			zap.Int("left", info.Left),
		)

		items = next
	}

	return items, nil
}

// Describe returns status entries for the configured filters.
func (f *Filtering[T]) Describe() []Status {
	statuses := make([]Status, 0, len(f.steps))
	for _, step := range f.steps {
		if reporter, ok := step.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}

		statuses = append(statuses, Status{
			Name:    step.Name(),
			Enabled: step.IsEnabled(),
		})
	}
	return statuses
}

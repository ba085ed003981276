package filtering

import (
	"context"
	"strings"
)

// predicateFilter keeps the items for which keep returns true. It is
// disabled when built from empty criteria.
type predicateFilter[T any] struct {
	name     string
	enabled  bool
	details  map[string]string
	validate func() error
	keep     func(T) bool
}

func (f *predicateFilter[T]) Name() string { return f.name }

func (f *predicateFilter[T]) IsEnabled() bool { return f.enabled }

func (f *predicateFilter[T]) Validate() error {
	if f.validate == nil {
		return nil
	}
	return f.validate()
}

func (f *predicateFilter[T]) Apply(_ context.Context, items []T) ([]T, Step, error) {
	initial := len(items)
	kept := make([]T, 0, initial)
	for _, item := range items {
		if f.keep(item) {
			kept = append(kept, item)
		}
	}

	return kept, Step{Initial: initial, Dropped: initial - len(kept), Left: len(kept)}, nil
}

func (f *predicateFilter[T]) Status() Status {
	return Status{Name: f.name, Enabled: f.enabled, Details: f.details}
}

type limitFilter[T any] struct {
	limit int
}

// NewLimit keeps at most limit leading items. A non-positive limit disables it.
func NewLimit[T any](limit int) Filter[T] {
	return &limitFilter[T]{limit: limit}
}

func (f *limitFilter[T]) Name() string { return "limit" }

func (f *limitFilter[T]) IsEnabled() bool { return f.limit > 0 }

func (f *limitFilter[T]) Validate() error { return nil }

func (f *limitFilter[T]) Apply(_ context.Context, items []T) ([]T, Step, error) {
	initial := len(items)
	if initial > f.limit {
		items = items[:f.limit]
	}
	return items, Step{Initial: initial, Dropped: initial - len(items), Left: len(items)}, nil
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func normalizeTerms(terms []string) []string {
	normalized := make([]string, 0, len(terms))
	for _, term := range terms {
		if term = strings.TrimSpace(term); term != "" {
			normalized = append(normalized, term)
		}
	}
	return normalized
}

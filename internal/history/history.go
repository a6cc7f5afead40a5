// Package history keeps the bounded list of recently generated plans.
package history

import (
	"context"
	"fmt"

	"github.com/abhisek/lessonplan/internal/lessonplan"
)

// MaxEntries is the number of plans kept. Older plans are evicted.
const MaxEntries = 20

// Store persists lesson plans most-recent-first.
type Store interface {
	// Save inserts plan at the front, replacing any entry with the same
	// ID, and drops entries beyond the capacity. It returns once the
	// list has been persisted.
	Save(ctx context.Context, plan lessonplan.LessonPlan) error

	// Delete removes the plan with the given ID. Unknown IDs are ignored.
	Delete(ctx context.Context, id string) error

	// LoadAll returns every stored plan, most recent first. The result
	// is empty, never nil, when nothing is stored.
	LoadAll(ctx context.Context) ([]lessonplan.LessonPlan, error)

	// Clear removes every stored plan.
	Clear(ctx context.Context) error
}

// StorageError wraps a failure to read or write the persisted list.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("history %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Option configures a Store implementation.
type Option func(*options)

type options struct {
	maxEntries int
}

// WithMaxEntries overrides the capacity. Values below 1 are ignored.
func WithMaxEntries(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxEntries = n
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{maxEntries: MaxEntries}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// upsert returns a new list with plan at the front, no other entry
// sharing its ID, truncated to max.
func upsert(list []lessonplan.LessonPlan, plan lessonplan.LessonPlan, max int) []lessonplan.LessonPlan {
	out := make([]lessonplan.LessonPlan, 0, min(len(list)+1, max))
	out = append(out, plan.Clone())
	for _, p := range list {
		if len(out) == max {
			break
		}
		if p.ID == plan.ID {
			continue
		}
		out = append(out, p)
	}
	return out
}

// remove returns list without the entry for id and whether it was found.
func remove(list []lessonplan.LessonPlan, id string) ([]lessonplan.LessonPlan, bool) {
	out := make([]lessonplan.LessonPlan, 0, len(list))
	found := false
	for _, p := range list {
		if p.ID == id {
			found = true
			continue
		}
		out = append(out, p)
	}
	return out, found
}

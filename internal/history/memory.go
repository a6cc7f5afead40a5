package history

import (
	"context"
	"sync"

	"github.com/abhisek/lessonplan/internal/lessonplan"
)

// MemoryStore is an in-process Store, used in tests and when no
// database is configured.
type MemoryStore struct {
	opts options

	mu    sync.Mutex
	plans []lessonplan.LessonPlan
	err   error
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory history.
func NewMemoryStore(opts ...Option) *MemoryStore {
	return &MemoryStore{opts: buildOptions(opts)}
}

func (s *MemoryStore) Save(_ context.Context, plan lessonplan.LessonPlan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return &StorageError{Op: "save", Err: s.err}
	}
	plan.Normalize()
	s.plans = upsert(s.plans, plan, s.opts.maxEntries)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return &StorageError{Op: "delete", Err: s.err}
	}
	s.plans, _ = remove(s.plans, id)
	return nil
}

func (s *MemoryStore) LoadAll(_ context.Context) ([]lessonplan.LessonPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]lessonplan.LessonPlan, len(s.plans))
	for i, p := range s.plans {
		out[i] = p.Clone()
	}
	return out, nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return &StorageError{Op: "clear", Err: s.err}
	}
	s.plans = nil
	return nil
}

// SetErr makes subsequent writes fail with err. Pass nil to recover.
func (s *MemoryStore) SetErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

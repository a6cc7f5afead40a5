package history

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/abhisek/lessonplan/internal/lessonplan"
	"github.com/abhisek/lessonplan/internal/store"
)

// Key is the key-value entry that holds the serialized history.
const Key = "lesson_history"

// KVStore keeps the whole history as one JSON array under Key. Every
// write replaces the array.
type KVStore struct {
	repo store.KVRepo
	opts options

	mu sync.Mutex
}

var _ Store = (*KVStore)(nil)

// NewKVStore creates a history backed by repo.
func NewKVStore(repo store.KVRepo, opts ...Option) *KVStore {
	return &KVStore{repo: repo, opts: buildOptions(opts)}
}

func (s *KVStore) Save(ctx context.Context, plan lessonplan.LessonPlan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.read(ctx)
	if err != nil {
		return &StorageError{Op: "save", Err: err}
	}
	plan.Normalize()
	if err := s.write(ctx, upsert(list, plan, s.opts.maxEntries)); err != nil {
		return &StorageError{Op: "save", Err: err}
	}
	return nil
}

func (s *KVStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.read(ctx)
	if err != nil {
		return &StorageError{Op: "delete", Err: err}
	}
	list, found := remove(list, id)
	if !found {
		return nil
	}
	if err := s.write(ctx, list); err != nil {
		return &StorageError{Op: "delete", Err: err}
	}
	return nil
}

func (s *KVStore) LoadAll(ctx context.Context) ([]lessonplan.LessonPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.read(ctx)
	if err != nil {
		return nil, &StorageError{Op: "load", Err: err}
	}
	return list, nil
}

func (s *KVStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Delete(ctx, Key); err != nil {
		return &StorageError{Op: "clear", Err: err}
	}
	return nil
}

func (s *KVStore) read(ctx context.Context) ([]lessonplan.LessonPlan, error) {
	raw, ok, err := s.repo.Get(ctx, Key)
	if err != nil {
		return nil, err
	}
	list := []lessonplan.LessonPlan{}
	if !ok || len(raw) == 0 {
		return list, nil
	}
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, err
	}
	if list == nil {
		list = []lessonplan.LessonPlan{}
	}
	for i := range list {
		list[i].Normalize()
	}
	return list, nil
}

func (s *KVStore) write(ctx context.Context, list []lessonplan.LessonPlan) error {
	raw, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return s.repo.Put(ctx, Key, raw)
}

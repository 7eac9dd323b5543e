// Package store owns the session's ordered task list and mirrors it to a
// key-value backend after every mutation.
package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/idilsaglam/simpletodo/internal/codec"
	"github.com/idilsaglam/simpletodo/internal/model"
)

const (
	// TasksKey is the backend key holding the serialized list.
	TasksKey = "tasks"
	// CorruptKey receives a copy of stored text that failed to decode.
	CorruptKey = "tasks.corrupt"
)

// Backend is a string key-value store. filekv, sqlitekv and memkv implement it.
type Backend interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Store is the in-memory owner of the task list. It is not safe for
// concurrent use; callers run on a single goroutine.
type Store struct {
	backend   Backend
	log       *zap.Logger
	tasks     []model.Task
	recovered bool
}

// Open loads the list from backend. A missing key is an empty list.
// Undecodable data is copied to CorruptKey and replaced by an empty list.
func Open(ctx context.Context, backend Backend, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{
		backend: backend,
		log:     log.With(zap.String("component", "store")),
	}
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload replaces the in-memory list with the backend copy. IDs are
// regenerated, so any state keyed by ID starts over.
func (s *Store) Reload(ctx context.Context) error {
	raw, ok, err := s.backend.Get(ctx, TasksKey)
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}
	s.recovered = false
	if !ok {
		s.tasks = []model.Task{}
		s.log.Debug("no stored tasks")
		return nil
	}

	tasks, err := codec.Decode([]byte(raw))
	if err != nil {
		if !errors.Is(err, codec.ErrMalformed) {
			return fmt.Errorf("decode tasks: %w", err)
		}
		s.log.Warn("stored tasks are malformed; starting with an empty list",
			zap.Error(err), zap.String("backup_key", CorruptKey))
		if err := s.backend.Set(ctx, CorruptKey, raw); err != nil {
			s.log.Error("failed to back up malformed tasks", zap.Error(err))
		}
		s.tasks = []model.Task{}
		s.recovered = true
		return nil
	}
	s.tasks = tasks
	s.log.Debug("tasks loaded", zap.Int("count", len(tasks)))
	return nil
}

// Recovered reports whether the last load discarded malformed data.
func (s *Store) Recovered() bool { return s.recovered }

// Tasks returns a copy of the current list.
func (s *Store) Tasks() []model.Task { return slices.Clone(s.tasks) }

// Len returns the number of tasks.
func (s *Store) Len() int { return len(s.tasks) }

// At returns the task at index.
func (s *Store) At(index int) (model.Task, error) {
	if err := s.checkIndex(index); err != nil {
		return model.Task{}, err
	}
	return s.tasks[index], nil
}

// Find returns the position and value of the task with id.
func (s *Store) Find(id string) (int, model.Task, error) {
	i := slices.IndexFunc(s.tasks, func(t model.Task) bool { return t.ID == id })
	if i < 0 {
		return -1, model.Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	return i, s.tasks[i], nil
}

// Add appends a task with trimmed title and description. A blank title
// returns ErrEmptyTitle and changes nothing.
func (s *Store) Add(ctx context.Context, title, description string) (model.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Task{}, ErrEmptyTitle
	}
	task := model.New(title, strings.TrimSpace(description))

	next := make([]model.Task, 0, len(s.tasks)+1)
	next = append(next, s.tasks...)
	next = append(next, task)
	return task, s.commit(ctx, next, "add")
}

// Update replaces the task at index, keeping its ID. The same title rule
// as Add applies. An update that changes nothing is not written.
func (s *Store) Update(ctx context.Context, index int, title, description string) (model.Task, error) {
	if err := s.checkIndex(index); err != nil {
		return model.Task{}, err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Task{}, ErrEmptyTitle
	}
	task := model.Task{
		ID:          s.tasks[index].ID,
		Title:       title,
		Description: strings.TrimSpace(description),
	}
	if task.Equal(s.tasks[index]) {
		return task, nil
	}

	next := slices.Clone(s.tasks)
	next[index] = task
	return task, s.commit(ctx, next, "update")
}

// UpdateByID is Update addressed by task ID.
func (s *Store) UpdateByID(ctx context.Context, id, title, description string) (model.Task, error) {
	i, _, err := s.Find(id)
	if err != nil {
		return model.Task{}, err
	}
	return s.Update(ctx, i, title, description)
}

// Remove deletes the task at index; later tasks shift down by one.
func (s *Store) Remove(ctx context.Context, index int) (model.Task, error) {
	if err := s.checkIndex(index); err != nil {
		return model.Task{}, err
	}
	removed := s.tasks[index]

	next := make([]model.Task, 0, len(s.tasks)-1)
	next = append(next, s.tasks[:index]...)
	next = append(next, s.tasks[index+1:]...)
	return removed, s.commit(ctx, next, "remove")
}

// RemoveByID is Remove addressed by task ID.
func (s *Store) RemoveByID(ctx context.Context, id string) (model.Task, error) {
	i, _, err := s.Find(id)
	if err != nil {
		return model.Task{}, err
	}
	return s.Remove(ctx, i)
}

func (s *Store) checkIndex(index int) error {
	if index < 0 || index >= len(s.tasks) {
		return fmt.Errorf("%w: have %d, got %d", ErrIndexOutOfRange, len(s.tasks), index)
	}
	return nil
}

// commit installs next as the current snapshot, then overwrites the
// backend copy. A failed write keeps the new snapshot and returns ErrPersist.
func (s *Store) commit(ctx context.Context, next []model.Task, op string) error {
	s.tasks = next

	data, err := codec.Encode(next)
	if err != nil {
		s.log.Error("encode failed", zap.String("op", op), zap.Error(err))
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	if err := s.backend.Set(ctx, TasksKey, string(data)); err != nil {
		s.log.Error("save failed", zap.String("op", op), zap.Error(err))
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	s.log.Debug("tasks saved", zap.String("op", op), zap.Int("count", len(next)))
	return nil
}

// Close releases the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

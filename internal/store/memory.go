package store

import (
	"context"
	"sync"
	"time"

	"hydro-bot/internal/models"
)

// MemoryStore держит все записи в памяти процесса; после перезапуска данные теряются.
type MemoryStore struct {
	keys    *keyedMutex
	mu      sync.RWMutex
	records map[int64]*models.UserRecord
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		keys:    newKeyedMutex(),
		records: make(map[int64]*models.UserRecord),
		now:     time.Now,
	}
}

func (s *MemoryStore) load(userID int64) *models.UserRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records[userID]
}

func (s *MemoryStore) save(rec *models.UserRecord) {
	s.mu.Lock()
	s.records[rec.UserID] = rec
	s.mu.Unlock()
}

func (s *MemoryStore) Get(ctx context.Context, userID int64) (*models.UserRecord, error) {
	unlock := s.keys.Lock(userID)
	defer unlock()

	rec := s.load(userID)
	if rec == nil {
		return nil, ErrNotFound
	}
	return rec.Clone(), nil
}

func (s *MemoryStore) Update(ctx context.Context, userID int64, fn MutateFunc) error {
	return s.mutate(ctx, userID, false, fn)
}

func (s *MemoryStore) Upsert(ctx context.Context, userID int64, fn MutateFunc) error {
	return s.mutate(ctx, userID, true, fn)
}

func (s *MemoryStore) mutate(ctx context.Context, userID int64, create bool, fn MutateFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	unlock := s.keys.Lock(userID)
	defer unlock()

	current := s.load(userID)
	if current == nil {
		if !create {
			return ErrNotFound
		}
		current = models.NewUserRecord(userID)
	}

	draft := current.Clone()
	if err := fn(draft); err != nil {
		return err
	}
	draft.UpdatedAt = s.now()
	s.save(draft)
	return nil
}

func (s *MemoryStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, rec := range s.records {
		if rec.Configured() {
			n++
		}
	}
	return n, nil
}

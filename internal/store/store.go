// Package store хранит записи пользователей и сериализует операции над
// записью одного пользователя.
package store

import (
	"context"
	"errors"
	"sync"

	"hydro-bot/internal/models"
)

var ErrNotFound = errors.New("user record not found")

// MutateFunc изменяет копию записи. Если функция вернула ошибку, изменения отбрасываются.
type MutateFunc func(rec *models.UserRecord) error

type Store interface {
	// Get возвращает копию записи или ErrNotFound.
	Get(ctx context.Context, userID int64) (*models.UserRecord, error)
	// Update изменяет существующую запись под блокировкой пользователя.
	Update(ctx context.Context, userID int64, fn MutateFunc) error
	// Upsert как Update, но создаёт пустую запись для нового пользователя.
	Upsert(ctx context.Context, userID int64, fn MutateFunc) error
	// Count возвращает число пользователей с рассчитанными нормами.
	Count(ctx context.Context) (int, error)
}

// keyedMutex выдаёт отдельный мьютекс на каждого пользователя.
// Записи никогда не удаляются, поэтому мьютексы тоже не освобождаются.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[int64]*sync.Mutex)}
}

func (k *keyedMutex) Lock(id int64) func() {
	k.mu.Lock()
	l, ok := k.locks[id]
	if !ok {
		l = &sync.Mutex{}
		k.locks[id] = l
	}
	k.mu.Unlock()

	l.Lock()
	return l.Unlock
}

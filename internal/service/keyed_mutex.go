package service

import (
	"sync"

	"github.com/google/uuid"
)

// keyedMutex сериализует критические секции по идентификатору сущности.
// Ключи не вычищаются: их число ограничено числом караванов и броней.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[uuid.UUID]*sync.Mutex)}
}

// Lock захватывает мьютекс для ключа и возвращает функцию освобождения.
func (k *keyedMutex) Lock(key uuid.UUID) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}

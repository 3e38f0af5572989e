package service

import (
	"fmt"
	"sync"
)

// submitLocks выдаёт мьютекс на пару (сотрудник, дата), чтобы чтение
// существующих смен и вставка новой шли как одна операция. Без этого две
// почти одновременные заявки одного сотрудника могут обе пройти проверку
// пересечений до того, как хоть одна будет сохранена.
type submitLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newSubmitLocks() *submitLocks {
	return &submitLocks{locks: make(map[string]*sync.Mutex)}
}

// acquire блокирует пару (submitterID, date) и возвращает её мьютекс.
// Снять блокировку обязан вызывающий.
func (l *submitLocks) acquire(submitterID int64, date string) *sync.Mutex {
	key := fmt.Sprintf("%d|%s", submitterID, date)

	l.mu.Lock()
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m
}

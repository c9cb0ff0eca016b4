package repo

import (
	"context"
	"sync"

	"github.com/yourname/putget/internal/models"
)

// MemoryJournal хранит журнал только в оперативной памяти; удобно для тестов и dev-режима.
type MemoryJournal struct {
	mu      sync.RWMutex
	entries map[string]models.JournalEntry
}

// NewMemoryJournal создаёт пустой in-memory журнал.
func NewMemoryJournal() *MemoryJournal {
	return &MemoryJournal{entries: map[string]models.JournalEntry{}}
}

// Record записывает (или заменяет) запись о пути.
func (j *MemoryJournal) Record(_ context.Context, e models.JournalEntry) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries[e.Path] = e
	return nil
}

// Last возвращает последнюю запись о пути или models.ErrNotFound.
func (j *MemoryJournal) Last(_ context.Context, path string) (models.JournalEntry, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	e, ok := j.entries[path]
	if !ok {
		return models.JournalEntry{}, models.ErrNotFound
	}
	return e, nil
}

func (j *MemoryJournal) Close() {}

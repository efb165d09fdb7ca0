package service

import (
	"sync"

	"leadverify/internal/verification/domain"
)

// JobStore holds live verification jobs by ID.
type JobStore interface {
	Put(job *domain.Job)
	Get(id string) (*domain.Job, bool)
	Remove(id string)
}

// MemoryStore is the in-process JobStore. Jobs stay resident until the
// cleanup scheduler evicts them, or forever when no scheduler is configured.
type MemoryStore struct {
	mu   sync.RWMutex
	jobs map[string]*domain.Job
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{jobs: make(map[string]*domain.Job)}
}

// Put registers a job under its ID.
func (s *MemoryStore) Put(job *domain.Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

// Get returns the job with the given ID.
func (s *MemoryStore) Get(id string) (*domain.Job, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[id]
	return job, ok
}

// Remove evicts the job with the given ID. Removing an unknown ID is a no-op.
func (s *MemoryStore) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.jobs, id)
}

var _ JobStore = (*MemoryStore)(nil)

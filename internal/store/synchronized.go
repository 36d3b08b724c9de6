package store

import (
	"sync"

	"github.com/hyperjump/docstore/internal/models"
)

// Synchronized serializes access to a DocumentStore with a single mutex held for
// the whole of each operation.
type Synchronized struct {
	mu    sync.Mutex
	inner *DocumentStore
}

// NewSynchronized wraps s. Callers must not use s directly afterwards.
func NewSynchronized(s *DocumentStore) *Synchronized {
	return &Synchronized{inner: s}
}

// Save takes the lock and calls DocumentStore.Save.
func (s *Synchronized) Save(doc *models.Document) (*models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Save(doc)
}

// Search takes the lock and calls DocumentStore.Search.
func (s *Synchronized) Search(req *models.SearchRequest) []*models.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Search(req)
}

// FindByID takes the lock and calls DocumentStore.FindByID.
func (s *Synchronized) FindByID(id string) (*models.Document, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.FindByID(id)
}

// Len takes the lock and calls DocumentStore.Len.
func (s *Synchronized) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Len()
}

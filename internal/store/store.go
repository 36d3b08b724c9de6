// Package store provides the in-memory document store: upsert with content
// deduplication, exact id lookup, and multi-criteria search.
package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hyperjump/docstore/internal/models"
	"go.uber.org/zap"
)

// ErrInvalidDocument indicates a document that cannot be saved (nil, or missing its author).
var ErrInvalidDocument = errors.New("invalid document")

// Repository is the call surface shared by DocumentStore and Synchronized.
type Repository interface {
	Save(doc *models.Document) (*models.Document, error)
	Search(req *models.SearchRequest) []*models.Document
	FindByID(id string) (*models.Document, bool)
	Len() int
}

// DocumentStore holds documents keyed by id.
//
// It is not safe for concurrent use; wrap it with NewSynchronized when more than
// one goroutine calls it. Every save and every search scans all stored documents.
type DocumentStore struct {
	docs  map[string]*models.Document
	order []string // ids in first-insertion order

	now    func() time.Time
	newID  func() string
	logger *zap.Logger
}

// Option configures a DocumentStore.
type Option func(*DocumentStore)

// WithClock sets the clock used to stamp Created on first save.
func WithClock(now func() time.Time) Option {
	return func(s *DocumentStore) { s.now = now }
}

// WithIDGenerator sets the generator used for documents saved without an id.
func WithIDGenerator(newID func() string) Option {
	return func(s *DocumentStore) { s.newID = newID }
}

// WithLogger sets a logger for debug output (dedup hits, assigned ids).
func WithLogger(l *zap.Logger) Option {
	return func(s *DocumentStore) { s.logger = l }
}

// New creates an empty store.
func New(opts ...Option) *DocumentStore {
	s := &DocumentStore{
		docs:   make(map[string]*models.Document),
		now:    time.Now,
		newID:  func() string { return uuid.New().String() },
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save upserts doc and returns the stored document.
//
// If a stored document already has the same author, content, created timestamp
// and title, that document is returned and the store is left unchanged. Otherwise
// doc gets a fresh id when it has none and the current time when Created is zero,
// and is stored under its id, replacing any document with that id. doc is
// modified in place and the same pointer is returned.
func (s *DocumentStore) Save(doc *models.Document) (*models.Document, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}
	if doc.Author == nil {
		return nil, fmt.Errorf("%w: author is nil", ErrInvalidDocument)
	}

	for _, id := range s.order {
		existing := s.docs[id]
		if existing.SameContent(doc) {
			s.logger.Debug("save matched existing document", zap.String("id", existing.ID))
			return existing, nil
		}
	}

	if !doc.HasID() {
		doc.ID = s.newID()
		s.logger.Debug("assigned document id", zap.String("id", doc.ID))
	}
	if !doc.HasCreated() {
		doc.Created = s.now()
	}

	if _, ok := s.docs[doc.ID]; !ok {
		s.order = append(s.order, doc.ID)
	} else {
		s.logger.Debug("overwriting document", zap.String("id", doc.ID))
	}
	s.docs[doc.ID] = doc
	return doc, nil
}

// FindByID returns the document stored under id, if any.
func (s *DocumentStore) FindByID(id string) (*models.Document, bool) {
	doc, ok := s.docs[id]
	return doc, ok
}

// Len returns the number of stored documents.
func (s *DocumentStore) Len() int {
	return len(s.docs)
}

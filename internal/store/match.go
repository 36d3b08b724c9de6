package store

import (
	"slices"
	"strings"

	"github.com/hyperjump/docstore/internal/models"
)

// Search returns every stored document that satisfies req, in first-insertion order.
// A nil request matches every document.
func (s *DocumentStore) Search(req *models.SearchRequest) []*models.Document {
	out := make([]*models.Document, 0)
	for _, id := range s.order {
		if doc := s.docs[id]; Matches(doc, req) {
			out = append(out, doc)
		}
	}
	return out
}

// Matches reports whether doc satisfies every present criterion of req.
// Absent (nil) criteria impose no constraint; present but empty lists match nothing.
func Matches(doc *models.Document, req *models.SearchRequest) bool {
	if req == nil {
		return true
	}
	if req.TitlePrefixes != nil && !slices.ContainsFunc(req.TitlePrefixes, func(p string) bool {
		return strings.HasPrefix(doc.Title, p)
	}) {
		return false
	}
	if req.ContainsContents != nil && !slices.ContainsFunc(req.ContainsContents, func(sub string) bool {
		return strings.Contains(doc.Content, sub)
	}) {
		return false
	}
	if req.AuthorIDs != nil && (doc.Author == nil || !slices.Contains(req.AuthorIDs, doc.Author.ID)) {
		return false
	}
	if req.CreatedFrom != nil && doc.Created.Before(*req.CreatedFrom) {
		return false
	}
	if req.CreatedTo != nil && doc.Created.After(*req.CreatedTo) {
		return false
	}
	return true
}

// Package models defines the value types exchanged with the document store.
package models

import "time"

// Author identifies who wrote a document. Two authors are equal when all fields are equal.
type Author struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Document is a stored record. ID and Created are unset (empty / zero) until the first save.
type Document struct {
	ID      string    `json:"id,omitempty"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
	Author  *Author   `json:"author"`
	Created time.Time `json:"created,omitzero"`
}

// HasID reports whether an identifier has been assigned.
func (d *Document) HasID() bool {
	return d.ID != ""
}

// HasCreated reports whether a creation timestamp has been assigned.
func (d *Document) HasCreated() bool {
	return !d.Created.IsZero()
}

// SameContent reports whether d and other carry the same author, content, created timestamp and title.
// Documents without an author never compare equal.
func (d *Document) SameContent(other *Document) bool {
	if d.Author == nil || other.Author == nil {
		return false
	}
	return *d.Author == *other.Author &&
		d.Content == other.Content &&
		d.Created.Equal(other.Created) &&
		d.Title == other.Title
}

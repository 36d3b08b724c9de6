package models

import "time"

// SearchRequest is a conjunction of optional criteria.
//
// A nil slice means the criterion is absent and imposes no constraint. A non-nil
// empty slice is present and can never be satisfied. The slices carry no omitempty
// tag so that distinction survives a JSON round trip ([] versus null).
type SearchRequest struct {
	TitlePrefixes    []string   `json:"title_prefixes"`
	ContainsContents []string   `json:"contains_contents"`
	AuthorIDs        []string   `json:"author_ids"`
	CreatedFrom      *time.Time `json:"created_from,omitempty"` // inclusive
	CreatedTo        *time.Time `json:"created_to,omitempty"`   // inclusive
}

// NewSearchRequest returns a request with every criterion absent.
func NewSearchRequest() *SearchRequest {
	return &SearchRequest{}
}

// WithTitlePrefixes sets the title prefix criterion. Calling it with no arguments
// makes the criterion present but empty.
func (r *SearchRequest) WithTitlePrefixes(prefixes ...string) *SearchRequest {
	r.TitlePrefixes = present(prefixes)
	return r
}

// WithContainsContents sets the content substring criterion.
func (r *SearchRequest) WithContainsContents(substrings ...string) *SearchRequest {
	r.ContainsContents = present(substrings)
	return r
}

// WithAuthorIDs sets the author criterion.
func (r *SearchRequest) WithAuthorIDs(ids ...string) *SearchRequest {
	r.AuthorIDs = present(ids)
	return r
}

// WithCreatedFrom sets the inclusive lower bound on Created.
func (r *SearchRequest) WithCreatedFrom(t time.Time) *SearchRequest {
	r.CreatedFrom = &t
	return r
}

// WithCreatedTo sets the inclusive upper bound on Created.
func (r *SearchRequest) WithCreatedTo(t time.Time) *SearchRequest {
	r.CreatedTo = &t
	return r
}

// present copies values into a non-nil slice, so that an empty variadic call still
// yields a present criterion.
func present(values []string) []string {
	out := make([]string, len(values))
	copy(out, values)
	return out
}

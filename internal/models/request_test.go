package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestSearchRequest_Builders(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)
	req := NewSearchRequest().
		WithTitlePrefixes("Report").
		WithContainsContents("budget", "plan").
		WithAuthorIDs().
		WithCreatedFrom(from).
		WithCreatedTo(to)

	if len(req.TitlePrefixes) != 1 || req.TitlePrefixes[0] != "Report" {
		t.Errorf("TitlePrefixes = %v", req.TitlePrefixes)
	}
	if len(req.ContainsContents) != 2 {
		t.Errorf("ContainsContents = %v", req.ContainsContents)
	}
	if req.AuthorIDs == nil || len(req.AuthorIDs) != 0 {
		t.Errorf("AuthorIDs should be present and empty, got %#v", req.AuthorIDs)
	}
	if req.CreatedFrom == nil || !req.CreatedFrom.Equal(from) {
		t.Errorf("CreatedFrom = %v", req.CreatedFrom)
	}
	if req.CreatedTo == nil || !req.CreatedTo.Equal(to) {
		t.Errorf("CreatedTo = %v", req.CreatedTo)
	}
}

func TestSearchRequest_JSONKeepsEmptyDistinctFromAbsent(t *testing.T) {
	var req SearchRequest
	if err := json.Unmarshal([]byte(`{"author_ids": [], "title_prefixes": null}`), &req); err != nil {
		t.Fatal(err)
	}
	if req.AuthorIDs == nil {
		t.Error("author_ids: [] should decode to a non-nil empty slice")
	}
	if req.TitlePrefixes != nil {
		t.Error("title_prefixes: null should decode to nil")
	}
	if req.ContainsContents != nil {
		t.Error("missing contains_contents should decode to nil")
	}

	data, err := json.Marshal(&req)
	if err != nil {
		t.Fatal(err)
	}
	var back SearchRequest
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back.AuthorIDs == nil || back.TitlePrefixes != nil {
		t.Errorf("round trip lost presence: %s", data)
	}
}

func TestDocument_SameContent(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	base := func() *Document {
		return &Document{
			Title:   "Memo",
			Content: "body",
			Author:  &Author{ID: "u1", Name: "Ann"},
			Created: created,
		}
	}
	tests := []struct {
		name   string
		mutate func(d *Document)
		want   bool
	}{
		{"identical", func(d *Document) {}, true},
		{"id ignored", func(d *Document) { d.ID = "other" }, true},
		{"same instant other zone", func(d *Document) { d.Created = created.In(time.FixedZone("X", 3600)) }, true},
		{"different title", func(d *Document) { d.Title = "Memo 2" }, false},
		{"different content", func(d *Document) { d.Content = "other" }, false},
		{"different author name", func(d *Document) { d.Author = &Author{ID: "u1", Name: "Bob"} }, false},
		{"different created", func(d *Document) { d.Created = created.Add(time.Second) }, false},
		{"unset created", func(d *Document) { d.Created = time.Time{} }, false},
		{"nil author", func(d *Document) { d.Author = nil }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other := base()
			tt.mutate(other)
			if got := base().SameContent(other); got != tt.want {
				t.Errorf("SameContent() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDocument_JSONOmitsUnsetFields(t *testing.T) {
	data, err := json.Marshal(&Document{Title: "t", Content: "c", Author: &Author{ID: "u"}})
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	if _, ok := raw["id"]; ok {
		t.Errorf("unset id should be omitted: %s", data)
	}
	if _, ok := raw["created"]; ok {
		t.Errorf("zero created should be omitted: %s", data)
	}
}

// Package cli provides output formatting and an HTTP client for the docstore CLI.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/hyperjump/docstore/internal/models"
)

// OutputFormat is the format for document output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputCompact prints one document per line.
	OutputCompact OutputFormat = "compact"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// ParseOutputFormat validates a -output flag value.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(s); f {
	case OutputText, OutputCompact, OutputJSON:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q; use text, compact, or json", s)
}

// WriteDocuments writes a list of documents to w in the given format.
func WriteDocuments(w io.Writer, docs []*models.Document, format OutputFormat) error {
	switch format {
	case OutputJSON:
		if docs == nil {
			docs = []*models.Document{}
		}
		return WriteJSON(w, docs)
	case OutputCompact:
		for _, d := range docs {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", d.ID, formatTime(d.Created), authorID(d), d.Title)
		}
		return nil
	default:
		fmt.Fprintf(w, "\nFound %d documents\n\n", len(docs))
		for _, d := range docs {
			writeDocumentText(w, d)
		}
		return nil
	}
}

// WriteDocument writes a single document to w. Compact output is the same as text.
func WriteDocument(w io.Writer, doc *models.Document, format OutputFormat) error {
	if format == OutputJSON {
		return WriteJSON(w, doc)
	}
	writeDocumentText(w, doc)
	return nil
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeDocumentText(w io.Writer, d *models.Document) {
	fmt.Fprintf(w, "─────────────────────────────────────────────────────────\n")
	fmt.Fprintf(w, "ID: %s\n", d.ID)
	if d.Title != "" {
		fmt.Fprintf(w, "Title: %s\n", d.Title)
	}
	if d.Author != nil {
		fmt.Fprintf(w, "Author: %s (%s)\n", d.Author.Name, d.Author.ID)
	}
	fmt.Fprintf(w, "Created: %s\n", formatTime(d.Created))
	fmt.Fprintf(w, "\n%s\n\n", Truncate(d.Content, 200))
}

func authorID(d *models.Document) string {
	if d.Author == nil {
		return "-"
	}
	return d.Author.ID
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(time.RFC3339)
}

// Truncate truncates s to maxLen bytes and appends "..." if truncated.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}


// Package core defines the shared types and interfaces for babelpipe.
// Each stage (transport, extraction, chunking, rendering) is a small,
// testable interface.
package core

import (
	"context"
	"net/url"

	"github.com/gaurav-prasanna/babelpipe/core/address"
)

// Archive endpoints, relative to the configured base URL.
const (
	PageEndpoint   = "book.cgi"
	SearchEndpoint = "search.cgi"
)

// Page is one fetched archive page with its text normalized to a single line.
type Page struct {
	Coordinate address.Coordinate `json:"coordinate"`
	Title      string             `json:"title,omitempty"`
	Text       string             `json:"text"`
}

// SearchResult is the exact match reported for one chunk of a search query.
// Coordinate.Page is kept as the text token the archive returned. Chunk
// numbers start at 1, the same numbering error messages use.
type SearchResult struct {
	address.Coordinate
	Title     string `json:"title,omitempty"`
	PageLabel string `json:"page_label,omitempty"`
	Chunk     int    `json:"chunk"`
}

// Transport posts a form to an archive endpoint and returns the raw body.
type Transport interface {
	Post(ctx context.Context, endpoint string, form url.Values) (string, error)
}

// PageExtractor recovers page text from a page-fetch response.
type PageExtractor interface {
	Extract(html string) (string, error)
}

// ResultExtractor recovers the exact-match coordinate from a search response.
type ResultExtractor interface {
	Extract(html string) (SearchResult, error)
}

// Renderer converts a fetched page into a final output format.
type Renderer interface {
	Render(page Page) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".md", ".pdf").
	Extension() string
}

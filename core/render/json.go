// Package render — JSON renderer.
// Builds the structured JSON output for pages and search results.
package render

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/gaurav-prasanna/babelpipe/core"
	"github.com/gaurav-prasanna/babelpipe/core/address"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// PageMetadata describes where and when a page was fetched.
type PageMetadata struct {
	Coordinate address.Coordinate `json:"coordinate"`
	Location   string             `json:"location"`
	Title      string             `json:"title"`
	FetchedAt  string             `json:"fetched_at"` // ISO8601
}

// PageContent holds the page text.
type PageContent struct {
	Text   string `json:"text"`
	Length int    `json:"length"`
}

// PageJSON is the complete JSON output for a single page.
type PageJSON struct {
	Metadata PageMetadata `json:"metadata"`
	Content  PageContent  `json:"content"`
}

// SearchJSON is the JSON output of a search.
type SearchJSON struct {
	Query   string              `json:"query"`
	Results []core.SearchResult `json:"results"`
}

// JSONRenderer produces structured JSON output.
type JSONRenderer struct {
	now func() time.Time
}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{now: time.Now}
}

// Render converts a page into PageJSON.
func (r *JSONRenderer) Render(page core.Page) ([]byte, error) {
	out := PageJSON{
		Metadata: PageMetadata{
			Coordinate: page.Coordinate,
			Location:   page.Coordinate.Location(),
			Title:      page.Title,
			FetchedAt:  r.now().UTC().Format(time.RFC3339),
		},
		Content: PageContent{
			Text:   page.Text,
			Length: utf8.RuneCountInString(page.Text),
		},
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// RenderResults converts search results into SearchJSON.
func (r *JSONRenderer) RenderResults(query string, results []core.SearchResult) ([]byte, error) {
	if results == nil {
		results = []core.SearchResult{}
	}
	data, err := json.MarshalIndent(SearchJSON{Query: query, Results: results}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}

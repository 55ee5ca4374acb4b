// Package archive is the archive client: page fetches and chunked searches
// over an injected Transport.
//
// A Client keeps no per-call state. Each Search owns its result slice, and
// chunks are submitted strictly one after another: a chunk's round trip and
// extraction finish before the next chunk is sent, and the first failure
// ends the search.
package archive

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/gaurav-prasanna/babelpipe/core"
	"github.com/gaurav-prasanna/babelpipe/core/address"
	"github.com/gaurav-prasanna/babelpipe/core/chunk"
	"github.com/gaurav-prasanna/babelpipe/core/extract"
	"go.uber.org/zap"
)

// Client fetches pages from, and searches, the archive.
type Client struct {
	transport     core.Transport
	pages         *extract.PageText
	results       core.ResultExtractor
	chunker       *chunk.Chunker
	includeHidden bool
	logger        *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithChunkSize sets the search chunk size. Values outside
// (0, chunk.MaxChunkSize] fall back to chunk.MaxChunkSize.
func WithChunkSize(n int) Option {
	return func(c *Client) { c.chunker = chunk.New(n) }
}

// WithHiddenField controls whether searches carry the site's hidden
// method=x field. It is on by default.
func WithHiddenField(include bool) Option {
	return func(c *Client) { c.includeHidden = include }
}

// New creates a Client that talks to the archive through t.
func New(t core.Transport, opts ...Option) *Client {
	c := &Client{
		transport:     t,
		pages:         extract.NewPageText(),
		results:       extract.NewSearchResult(),
		chunker:       chunk.New(0),
		includeHidden: true,
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// PageHTML returns the raw page-fetch response for coord.
func (c *Client) PageHTML(ctx context.Context, coord address.Coordinate) (string, error) {
	c.logger.Debug("Fetching page", zap.String("location", coord.Location()))

	html, err := c.transport.Post(ctx, core.PageEndpoint, coord.Form())
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", coord, err)
	}
	return html, nil
}

// PageText returns the text of the page at coord as a single line.
func (c *Client) PageText(ctx context.Context, coord address.Coordinate) (string, error) {
	page, err := c.Page(ctx, coord)
	if err != nil {
		return "", err
	}
	return page.Text, nil
}

// Page fetches the page at coord along with its book title.
func (c *Client) Page(ctx context.Context, coord address.Coordinate) (core.Page, error) {
	html, err := c.PageHTML(ctx, coord)
	if err != nil {
		return core.Page{}, err
	}
	text, err := c.pages.Extract(html)
	if err != nil {
		c.logger.Warn("Page text not found", zap.String("location", coord.Location()), zap.Int("bytes", len(html)))
		return core.Page{}, fmt.Errorf("extract %s: %w", coord, err)
	}
	return core.Page{
		Coordinate: coord,
		Title:      c.pages.Title(html),
		Text:       text,
	}, nil
}

type searchOptions struct {
	autoSplit bool
}

// SearchOption configures a single Search call.
type SearchOption func(*searchOptions)

// WithAutoSplit controls chunking. With it off the text is sent as one
// chunk and must fit in the chunk size.
func WithAutoSplit(enabled bool) SearchOption {
	return func(o *searchOptions) { o.autoSplit = enabled }
}

// Search locates text in the archive, one exact match per chunk, in chunk
// order. Input errors are reported before anything is sent. Any chunk
// failure aborts the search and no partial results are returned.
func (c *Client) Search(ctx context.Context, text string, opts ...SearchOption) ([]core.SearchResult, error) {
	o := searchOptions{autoSplit: true}
	for _, opt := range opts {
		opt(&o)
	}

	chunks, err := c.chunker.Split(text, o.autoSplit)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	results := make([]core.SearchResult, 0, len(chunks))
	for i, chunkText := range chunks {
		c.logger.Debug("Searching chunk",
			zap.Int("chunk", i+1),
			zap.Int("chunks", len(chunks)),
			zap.Int("length", utf8.RuneCountInString(chunkText)))

		result, err := c.searchChunk(ctx, chunkText)
		if err != nil {
			return nil, fmt.Errorf("search chunk %d/%d: %w", i+1, len(chunks), err)
		}
		result.Chunk = i + 1
		results = append(results, result)
	}
	return results, nil
}

func (c *Client) searchChunk(ctx context.Context, text string) (core.SearchResult, error) {
	html, err := c.transport.Post(ctx, core.SearchEndpoint, c.SearchForm(text))
	if err != nil {
		return core.SearchResult{}, err
	}
	return c.results.Extract(html)
}

// SearchForm returns the search form fields for one chunk.
func (c *Client) SearchForm(text string) url.Values {
	form := url.Values{}
	form.Set("find", text)
	if c.includeHidden {
		form.Set("method", "x")
	}
	return form
}

// Verify fetches the page a result points at and reports whether its text
// contains chunkText.
func (c *Client) Verify(ctx context.Context, result core.SearchResult, chunkText string) (bool, error) {
	text, err := c.PageText(ctx, result.Coordinate)
	if err != nil {
		return false, err
	}
	return strings.Contains(text, extract.Clean(chunkText)), nil
}

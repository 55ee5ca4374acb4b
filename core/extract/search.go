package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/babelpipe/core"
	"github.com/gaurav-prasanna/babelpipe/core/address"
)

// Exact match markers of the search response.
const (
	exactMatchHeading = `<h3>exact match:</h3>`
	exactMatchEnd     = `</PRE>`
	locationCall      = `postform(`
	locationCallEnd   = `)`
)

// argCount is the number of pieces a quoted 5-tuple splits into on "'":
// five values with a "," between each pair.
const argCount = 9

// SearchResult extracts the exact-match coordinate from search responses.
type SearchResult struct{}

var _ core.ResultExtractor = (*SearchResult)(nil)

// NewSearchResult creates a SearchResult extractor.
func NewSearchResult() *SearchResult {
	return &SearchResult{}
}

// Extract returns the coordinate embedded in the exact-match block.
// The page stays the text token the archive used. Any deviation from the
// expected shape yields a *core.NoExactMatchError carrying the document.
func (e *SearchResult) Extract(html string) (core.SearchResult, error) {
	noMatch := &core.NoExactMatchError{Document: html}

	region, ok := between(html, exactMatchHeading, exactMatchEnd)
	if !ok {
		return core.SearchResult{}, noMatch
	}
	args, ok := between(region, locationCall, locationCallEnd)
	if !ok {
		return core.SearchResult{}, noMatch
	}

	// The argument list must be wrapped in a matching pair of quotes.
	args = strings.TrimSpace(args)
	if len(args) < 2 {
		return core.SearchResult{}, noMatch
	}
	quote, last := args[0], args[len(args)-1]
	if (quote != '\'' && quote != '"') || last != quote {
		return core.SearchResult{}, noMatch
	}
	args = args[1 : len(args)-1]

	parts := strings.Split(args, "'")
	if len(parts) != argCount {
		return core.SearchResult{}, noMatch
	}
	for i := 1; i < argCount; i += 2 {
		if parts[i] != "," {
			return core.SearchResult{}, noMatch
		}
	}

	title, pageLabel := labels(region)
	return core.SearchResult{
		Coordinate: address.Coordinate{
			Hex:    parts[0],
			Wall:   parts[2],
			Shelf:  parts[4],
			Volume: parts[6],
			Page:   parts[8],
		},
		Title:     title,
		PageLabel: pageLabel,
	}, nil
}

// labels reads the "Title: <b>..</b> Page: <b>..</b>" pair of a match block.
func labels(region string) (title, page string) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(region))
	if err != nil {
		return "", ""
	}
	bold := doc.Find("b")
	if bold.Length() > 0 {
		title = strings.TrimSpace(bold.Eq(0).Text())
	}
	if bold.Length() > 1 {
		page = strings.TrimSpace(bold.Eq(1).Text())
	}
	return title, page
}

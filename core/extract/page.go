// Package extract recovers structured data from archive HTML responses.
//
// Both response shapes are decoded with fixed-marker scans rather than a
// full DOM walk: the payload begins immediately after an opening marker and
// ends immediately before a closing marker. goquery is only used for the
// descriptive labels around that payload.
package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/babelpipe/core"
)

// Page text markers of the page-fetch response.
const (
	textOpenMarker  = `<PRE id = "textblock">`
	textCloseMarker = `</PRE></div>`
)

// lineBreaks strips the display wrapping the archive stores pages with.
var lineBreaks = strings.NewReplacer("\r", "", "\n", "")

// PageText extracts page text from page-fetch responses.
type PageText struct{}

var _ core.PageExtractor = (*PageText)(nil)

// NewPageText creates a PageText extractor.
func NewPageText() *PageText {
	return &PageText{}
}

// Extract returns the page text as a single line.
func (e *PageText) Extract(html string) (string, error) {
	raw, err := e.Raw(html)
	if err != nil {
		return "", err
	}
	return Clean(raw), nil
}

// Raw returns the text block exactly as stored, line breaks included.
// A document without the text block yields a *core.MalformedDocumentError.
func (e *PageText) Raw(html string) (string, error) {
	payload, ok := between(html, textOpenMarker, textCloseMarker)
	if !ok {
		return "", &core.MalformedDocumentError{Document: html}
	}
	return payload, nil
}

// Title returns the book title shown above the text block, or "" if the
// page has none.
func (e *PageText) Title(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	for _, sel := range []string{"#title", "h3"} {
		if s := doc.Find(sel).First(); s.Length() > 0 {
			if title := strings.TrimSpace(s.Text()); title != "" {
				return title
			}
		}
	}
	return ""
}

// Clean removes every carriage return and line feed.
func Clean(text string) string {
	return lineBreaks.Replace(text)
}

// between returns the text strictly between the first open marker and the
// first close marker after it.
func between(s, open, close string) (string, bool) {
	start := strings.Index(s, open)
	if start == -1 {
		return "", false
	}
	start += len(open)
	end := strings.Index(s[start:], close)
	if end == -1 {
		return "", false
	}
	return s[start : start+end], true
}

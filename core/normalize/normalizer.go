// Package normalize turns a raw archive response into readable Markdown.
// It is used to show what the archive actually returned when a response
// does not have the expected shape (an error page, a "no results" page).
package normalize

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
)

// noiseSelectors are elements removed before conversion.
var noiseSelectors = []string{
	"script", "style", "noscript",
	"nav", "footer", "header",
	"img", "picture", "svg", "canvas", "iframe",
	"form", "button", "input", "select", "textarea",
}

// Describer converts diagnostic HTML documents into Markdown.
type Describer struct {
	MaxLength int // characters kept; 0 means unlimited
}

// New creates a Describer that keeps at most maxLength characters.
func New(maxLength int) *Describer {
	return &Describer{MaxLength: maxLength}
}

// Describe strips noise from html and converts what is left to Markdown.
func (d *Describer) Describe(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}
	for _, sel := range noiseSelectors {
		doc.Find(sel).Remove()
	}

	body, err := goquery.OuterHtml(doc.Find("body").First())
	if err != nil {
		return "", fmt.Errorf("serializing content: %w", err)
	}

	markdown, err := htmltomarkdown.ConvertString(body)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	markdown = strings.TrimSpace(markdown)

	if d.MaxLength > 0 {
		if runes := []rune(markdown); len(runes) > d.MaxLength {
			markdown = string(runes[:d.MaxLength]) + "…"
		}
	}
	return markdown, nil
}

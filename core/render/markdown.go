// Package render provides output renderers for fetched archive pages.
// This file implements the Markdown renderer.
package render

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/babelpipe/core"
)

// LineWidth is the column width the archive displays pages at.
const LineWidth = 80

// MarkdownRenderer writes a page as a titled Markdown document with the
// text in a fenced block, re-wrapped at LineWidth.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render formats the page as Markdown.
func (r *MarkdownRenderer) Render(page core.Page) ([]byte, error) {
	var b strings.Builder
	title := page.Title
	if title == "" {
		title = page.Coordinate.Book().Location()
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "Location: `%s`\n\n", page.Coordinate.Location())
	b.WriteString("```\n")
	for _, line := range Wrap(page.Text, LineWidth) {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString("```\n")
	return []byte(b.String()), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}

// Wrap cuts text into lines of at most width characters.
func Wrap(text string, width int) []string {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}
	lines := make([]string, 0, (len(runes)+width-1)/width)
	for i := 0; i < len(runes); i += width {
		end := i + width
		if end > len(runes) {
			end = len(runes)
		}
		lines = append(lines, string(runes[i:end]))
	}
	return lines
}

package render

import "github.com/gaurav-prasanna/babelpipe/core"

// TextRenderer writes the page text as one line.
type TextRenderer struct{}

// NewTextRenderer creates a TextRenderer.
func NewTextRenderer() *TextRenderer {
	return &TextRenderer{}
}

// Render returns the page text followed by a newline.
func (r *TextRenderer) Render(page core.Page) ([]byte, error) {
	return []byte(page.Text + "\n"), nil
}

// Extension returns the file extension for text output.
func (r *TextRenderer) Extension() string {
	return ".txt"
}

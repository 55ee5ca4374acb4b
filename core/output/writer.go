// Package output handles file naming and writing for rendered pages.
// A single page is named after its coordinate (e.g., a_w3_s2_v29_p1.md).
// Pages of a book walk go into a directory named after the volume.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gaurav-prasanna/babelpipe/core/address"
)

// Writer writes rendered output to disk.
type Writer struct {
	OutputDir string
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir}, nil
}

// WritePage writes a single page as <slug><ext>.
func (w *Writer) WritePage(c address.Coordinate, data []byte, ext string) (string, error) {
	path := filepath.Join(w.OutputDir, c.Slug()+ext)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// WriteBookPage writes a page of a book walk as <book slug>/p<page><ext>.
func (w *Writer) WriteBookPage(c address.Coordinate, data []byte, ext string) (string, error) {
	dir := filepath.Join(w.OutputDir, c.Book().Slug())
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", dir, err)
	}

	name := strings.TrimPrefix(c.Slug(), c.Book().Slug()+"_")
	path := filepath.Join(dir, name+ext)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

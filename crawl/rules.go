// Package crawl — page range rules.
package crawl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gaurav-prasanna/babelpipe/core/address"
)

// DefaultRange returns the page range of a whole volume.
func DefaultRange() (from, to int) {
	return address.FirstPage, address.LastPage
}

// ValidateRange checks that [from, to] is a non-empty range of positive
// pages. The upper end is not capped: the archive decides what exists.
func ValidateRange(from, to int) error {
	if from < address.FirstPage {
		return fmt.Errorf("first page must be >= %d, got %d", address.FirstPage, from)
	}
	if to < from {
		return fmt.Errorf("last page %d is before first page %d", to, from)
	}
	return nil
}

// Range expands [from, to] into a page list.
func Range(from, to int) []int {
	pages := make([]int, 0, to-from+1)
	for p := from; p <= to; p++ {
		pages = append(pages, p)
	}
	return pages
}

// ParsePages parses a page list such as "1-3,7,7,10" into pages in the
// order given. Repeats are kept; the walk drops them.
func ParsePages(list string) ([]int, error) {
	var pages []int
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		lo, hi, isRange := strings.Cut(part, "-")
		from, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return nil, fmt.Errorf("invalid page %q in %q", part, list)
		}
		to := from
		if isRange {
			if to, err = strconv.Atoi(strings.TrimSpace(hi)); err != nil {
				return nil, fmt.Errorf("invalid page range %q in %q", part, list)
			}
		}
		if err := ValidateRange(from, to); err != nil {
			return nil, fmt.Errorf("page range %q: %w", part, err)
		}
		pages = append(pages, Range(from, to)...)
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("no pages in %q", list)
	}
	return pages, nil
}

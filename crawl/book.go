// Package crawl walks the pages of a volume in order.
// Walking is kept separate from the archive client: it only decides which
// pages to visit and in what order, and tolerates individual page failures.
package crawl

import (
	"context"
	"fmt"

	"github.com/gaurav-prasanna/babelpipe/core"
	"github.com/gaurav-prasanna/babelpipe/core/address"
	"go.uber.org/zap"
)

// FetchFunc fetches one page.
type FetchFunc func(ctx context.Context, c address.Coordinate) (core.Page, error)

// VisitFunc receives each page that was fetched successfully.
type VisitFunc func(page core.Page) error

// PageError records a page that could not be fetched.
type PageError struct {
	Coordinate address.Coordinate
	Err        error
}

func (e PageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Coordinate, e.Err)
}

// Summary reports the outcome of a walk.
type Summary struct {
	Visited    int
	Duplicates int // repeated pages that were not fetched again
	Failed     []PageError
}

// Walker visits the pages of a volume one at a time.
type Walker struct {
	fetch  FetchFunc
	logger *zap.Logger
}

// NewWalker creates a Walker. A nil logger discards output.
func NewWalker(fetch FetchFunc, logger *zap.Logger) *Walker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Walker{fetch: fetch, logger: logger}
}

// Walk fetches pages from through to of book's volume in order.
func (w *Walker) Walk(ctx context.Context, book address.Coordinate, from, to int, visit VisitFunc) (Summary, error) {
	if err := ValidateRange(from, to); err != nil {
		return Summary{}, err
	}
	return w.WalkPages(ctx, book, Range(from, to), visit)
}

// WalkPages fetches the listed pages of book's volume in list order, each
// page at most once. A page that fails to fetch is recorded in the summary
// and skipped; an error from visit or a done context stops the walk.
func (w *Walker) WalkPages(ctx context.Context, book address.Coordinate, pages []int, visit VisitFunc) (Summary, error) {
	var summary Summary

	queue := NewQueue(book)
	for _, p := range pages {
		if p < address.FirstPage {
			return summary, fmt.Errorf("page must be >= %d, got %d", address.FirstPage, p)
		}
		queue.Add(p)
	}
	summary.Duplicates = queue.Duplicates()
	if summary.Duplicates > 0 {
		w.logger.Debug("Dropped repeated pages", zap.Int("duplicates", summary.Duplicates), zap.Int("pages", queue.Len()))
	}

	for queue.HasNext() {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		c := queue.Next()

		page, err := w.fetch(ctx, c)
		if err != nil {
			w.logger.Warn("Skipping page", zap.String("location", c.Location()), zap.Error(err))
			summary.Failed = append(summary.Failed, PageError{Coordinate: c, Err: err})
			continue
		}

		if err := visit(page); err != nil {
			return summary, fmt.Errorf("visiting %s: %w", c, err)
		}
		summary.Visited++
	}
	return summary, nil
}

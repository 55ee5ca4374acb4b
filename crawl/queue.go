// Page queue for one volume.
// Pages are queued in request order; asking for the same page again is
// counted and dropped, so a page list like "1,5,5" fetches page 5 once.

package crawl

import "github.com/gaurav-prasanna/babelpipe/core/address"

// Queue holds the pages of a single volume still to be fetched.
type Queue struct {
	book       address.Coordinate
	pages      []int
	queued     map[int]bool
	next       int
	duplicates int
}

// NewQueue creates an empty Queue for book's volume.
func NewQueue(book address.Coordinate) *Queue {
	return &Queue{
		book:   book.Book(),
		queued: make(map[int]bool),
	}
}

// Add queues page and reports whether it was new.
func (q *Queue) Add(page int) bool {
	if q.queued[page] {
		q.duplicates++
		return false
	}
	q.queued[page] = true
	q.pages = append(q.pages, page)
	return true
}

// HasNext returns true if there are pages left.
func (q *Queue) HasNext() bool {
	return q.next < len(q.pages)
}

// Next returns the coordinate of the next page and advances the queue.
func (q *Queue) Next() address.Coordinate {
	page := q.pages[q.next]
	q.next++
	return q.book.WithPage(page)
}

// Len returns the number of distinct pages queued.
func (q *Queue) Len() int {
	return len(q.pages)
}

// Duplicates returns how many Add calls were dropped as repeats.
func (q *Queue) Duplicates() int {
	return q.duplicates
}

// Package carousel implements circular, index-addressed browsing over a
// fixed list of cards, and the drag gesture that steers it.
package carousel

import (
	"errors"

	"github.com/hammamikhairi/healthmate/internal/domain"
)

// ErrEmpty is returned by New when there is nothing to browse. Callers show
// a "no content" state instead of building a carousel.
var ErrEmpty = errors.New("carousel: no items")

// Carousel holds the current position in a non-empty list. The index is
// always in [0, Len()) and wraps in both directions.
type Carousel[T any] struct {
	items []T
	index int
}

// New creates a carousel positioned on the first item.
func New[T any](items []T) (*Carousel[T], error) {
	if len(items) == 0 {
		return nil, ErrEmpty
	}
	return &Carousel[T]{items: items}, nil
}

// Advance moves forward one item, wrapping from last to first.
func (c *Carousel[T]) Advance() {
	c.index = (c.index + 1) % len(c.items)
}

// Retreat moves back one item, wrapping from first to last.
func (c *Carousel[T]) Retreat() {
	n := len(c.items)
	c.index = (c.index - 1 + n) % n
}

// Apply maps a navigation intent onto the carousel. IntentNext advances and
// IntentPrevious retreats; anything else is ignored and reported as false.
func (c *Carousel[T]) Apply(intent domain.IntentType) bool {
	switch intent {
	case domain.IntentNext:
		c.Advance()
	case domain.IntentPrevious:
		c.Retreat()
	default:
		return false
	}
	return true
}

// Current returns the item under the cursor.
func (c *Carousel[T]) Current() T { return c.items[c.index] }

// Index returns the current position.
func (c *Carousel[T]) Index() int { return c.index }

// Len returns the number of items.
func (c *Carousel[T]) Len() int { return len(c.items) }

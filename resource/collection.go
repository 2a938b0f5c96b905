package resource

import (
	"context"
	"fmt"
	"iter"

	"github.com/rs/zerolog"
)

// FetchFunc loads the page that starts at cursor.
type FetchFunc[E any] func(ctx context.Context, cursor uint64) ([]E, error)

// AdvanceFunc computes the cursor of the page after a non-empty page.
type AdvanceFunc[E any] func(cursor uint64, page []E) uint64

// ByLastID advances to the identifier of the last entity on the page.
func ByLastID[E any](id func(E) uint64) AdvanceFunc[E] {
	return func(_ uint64, page []E) uint64 {
		return id(page[len(page)-1])
	}
}

// ByPage advances to the next page index, ignoring the page contents.
func ByPage[E any]() AdvanceFunc[E] {
	return func(cursor uint64, _ []E) uint64 {
		return cursor + 1
	}
}

type page[H any] struct {
	handles []H
	next    uint64
}

// Collection is a lazy, cached sequence of handles over a paginated
// endpoint. It is not safe for concurrent traversal.
type Collection[E, H any] struct {
	name    string
	fetch   FetchFunc[E]
	wrap    func(E) H
	advance AdvanceFunc[E]
	logger  zerolog.Logger

	pages     map[uint64]page[H]
	exhausted bool
}

// NewCollection builds a collection. wrap is applied once per entity when
// its page is first fetched.
func NewCollection[E, H any](name string, logger zerolog.Logger, fetch FetchFunc[E], wrap func(E) H, advance AdvanceFunc[E]) *Collection[E, H] {
	return &Collection[E, H]{
		name:    name,
		fetch:   fetch,
		wrap:    wrap,
		advance: advance,
		logger:  logger.With().Str("collection", name).Logger(),
		pages:   make(map[uint64]page[H]),
	}
}

// All yields every handle in order, starting from the first page. A fetch
// error is yielded once and ends the sequence; pages fetched before it stay
// cached. Breaking out early leaves the collection resumable.
func (c *Collection[E, H]) All(ctx context.Context) iter.Seq2[H, error] {
	return func(yield func(H, error) bool) {
		var zero H
		visited := make(map[uint64]struct{})
		cursor := uint64(0)

		for {
			if _, ok := visited[cursor]; ok {
				yield(zero, fmt.Errorf("%s at cursor %d: %w", c.name, cursor, ErrStalledCursor))
				return
			}
			visited[cursor] = struct{}{}

			p, err := c.load(ctx, cursor)
			if err != nil {
				yield(zero, err)
				return
			}
			if len(p.handles) == 0 {
				return
			}

			for _, h := range p.handles {
				if !yield(h, nil) {
					return
				}
			}
			cursor = p.next
		}
	}
}

// First returns up to n handles, fetching only the pages needed to reach them.
func (c *Collection[E, H]) First(ctx context.Context, n int) ([]H, error) {
	if n <= 0 {
		return []H{}, nil
	}

	out := make([]H, 0, n)
	for h, err := range c.All(ctx) {
		if err != nil {
			return out, err
		}
		out = append(out, h)
		if len(out) == n {
			break
		}
	}
	return out, nil
}

// Exhausted reports whether an empty page has been seen.
func (c *Collection[E, H]) Exhausted() bool {
	return c.exhausted
}

// CachedPages returns the number of cursors with a cached page, the
// terminating empty page included.
func (c *Collection[E, H]) CachedPages() int {
	return len(c.pages)
}

func (c *Collection[E, H]) load(ctx context.Context, cursor uint64) (page[H], error) {
	if p, ok := c.pages[cursor]; ok {
		c.logger.Trace().Uint64("cursor", cursor).Msg("Page served from cache")
		return p, nil
	}
	// The cache is frozen once exhausted.
	if c.exhausted {
		return page[H]{}, nil
	}

	entities, err := c.fetch(ctx, cursor)
	if err != nil {
		c.logger.Debug().Err(err).Uint64("cursor", cursor).Msg("Page fetch failed")
		return page[H]{}, fmt.Errorf("fetching %s page at cursor %d: %w", c.name, cursor, err)
	}

	p := page[H]{handles: make([]H, 0, len(entities))}
	for _, e := range entities {
		p.handles = append(p.handles, c.wrap(e))
	}
	if len(entities) > 0 {
		p.next = c.advance(cursor, entities)
	} else {
		c.exhausted = true
	}
	c.pages[cursor] = p

	c.logger.Debug().
		Uint64("cursor", cursor).
		Int("size", len(entities)).
		Bool("exhausted", c.exhausted).
		Msg("Fetched page")

	return p, nil
}

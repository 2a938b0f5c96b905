package resource

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	id uint64
}

// pagedSource serves fixed pages keyed by cursor and records each fetch
type pagedSource struct {
	pages   map[uint64][]item
	failAt  map[uint64]error
	fetched []uint64
}

func (s *pagedSource) fetch(_ context.Context, cursor uint64) ([]item, error) {
	s.fetched = append(s.fetched, cursor)
	if err, ok := s.failAt[cursor]; ok {
		return nil, err
	}
	return s.pages[cursor], nil
}

type wrapped struct {
	item
	parent string
}

func newItemCollection(src *pagedSource, advance AdvanceFunc[item]) *Collection[item, *wrapped] {
	wrap := func(i item) *wrapped { return &wrapped{item: i, parent: "root"} }
	return NewCollection("items", zerolog.Nop(), src.fetch, wrap, advance)
}

func collect(t *testing.T, c *Collection[item, *wrapped]) ([]uint64, error) {
	t.Helper()
	var ids []uint64
	for w, err := range c.All(context.Background()) {
		if err != nil {
			return ids, err
		}
		ids = append(ids, w.id)
	}
	return ids, nil
}

func byID(i item) uint64 { return i.id }

func TestCollection_All(t *testing.T) {
	src := &pagedSource{pages: map[uint64][]item{
		0: {{id: 1}, {id: 2}},
		2: {{id: 3}},
		3: {},
	}}
	c := newItemCollection(src, ByLastID(byID))

	ids, err := collect(t, c)
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2, 3}, ids)
	assert.Equal(t, []uint64{0, 2, 3}, src.fetched)
	assert.Equal(t, 3, c.CachedPages())
	assert.True(t, c.Exhausted())

	// A second traversal replays the cache.
	ids, err = collect(t, c)
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2, 3}, ids)
	assert.Equal(t, []uint64{0, 2, 3}, src.fetched)
}

func TestCollection_EmptyFirstPage(t *testing.T) {
	src := &pagedSource{pages: map[uint64][]item{}}
	c := newItemCollection(src, ByLastID(byID))

	ids, err := collect(t, c)
	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.True(t, c.Exhausted())
	assert.Equal(t, 1, c.CachedPages())

	_, err = collect(t, c)
	require.NoError(t, err)
	assert.Len(t, src.fetched, 1)
}

func TestCollection_HandlesAreStable(t *testing.T) {
	src := &pagedSource{pages: map[uint64][]item{
		0: {{id: 5}},
	}}
	c := newItemCollection(src, ByLastID(byID))

	var first, second *wrapped
	for w, err := range c.All(context.Background()) {
		require.NoError(t, err)
		first = w
	}
	for w, err := range c.All(context.Background()) {
		require.NoError(t, err)
		second = w
	}
	assert.Same(t, first, second)
	assert.Equal(t, "root", second.parent)
}

func TestCollection_FetchError(t *testing.T) {
	boom := errors.New("boom")
	src := &pagedSource{
		pages: map[uint64][]item{
			0: {{id: 1}, {id: 2}},
			2: {{id: 3}},
			3: {},
		},
		failAt: map[uint64]error{2: boom},
	}
	c := newItemCollection(src, ByLastID(byID))

	ids, err := collect(t, c)
	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "fetching items page at cursor 2")
	assert.Equal(t, []uint64{1, 2}, ids)
	assert.Equal(t, 1, c.CachedPages())
	assert.False(t, c.Exhausted())

	// Recovery only fetches the page that failed and the ones after it.
	delete(src.failAt, 2)
	ids, err = collect(t, c)
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2, 3}, ids)
	assert.Equal(t, []uint64{0, 2, 2, 3}, src.fetched)
	assert.True(t, c.Exhausted())
}

func TestCollection_ByPage(t *testing.T) {
	src := &pagedSource{pages: map[uint64][]item{
		0: {{id: 10}, {id: 11}},
		1: {{id: 12}},
		2: {},
	}}
	c := newItemCollection(src, ByPage[item]())

	ids, err := collect(t, c)
	require.NoError(t, err)
	assert.Equal(t, []uint64{10, 11, 12}, ids)
	assert.Equal(t, []uint64{0, 1, 2}, src.fetched)
}

func TestCollection_StalledCursor(t *testing.T) {
	src := &pagedSource{pages: map[uint64][]item{
		0: {{id: 7}},
		7: {{id: 7}},
	}}
	c := newItemCollection(src, ByLastID(byID))

	ids, err := collect(t, c)
	assert.ErrorIs(t, err, ErrStalledCursor)
	assert.Equal(t, []uint64{7, 7}, ids)
	assert.Equal(t, []uint64{0, 7}, src.fetched)
}

func TestCollection_First(t *testing.T) {
	src := &pagedSource{pages: map[uint64][]item{
		0: {{id: 1}, {id: 2}},
		2: {{id: 3}, {id: 4}},
		4: {},
	}}
	c := newItemCollection(src, ByLastID(byID))

	got, err := c.First(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, uint64(3), got[2].id)
	assert.Equal(t, []uint64{0, 2}, src.fetched)
	assert.False(t, c.Exhausted())

	got, err = c.First(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = c.First(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, got, 4)
	assert.True(t, c.Exhausted())
}

func TestCollection_BreakIsResumable(t *testing.T) {
	src := &pagedSource{pages: map[uint64][]item{
		0: {{id: 1}, {id: 2}},
		2: {},
	}}
	c := newItemCollection(src, ByLastID(byID))

	for range c.All(context.Background()) {
		break
	}
	assert.Equal(t, []uint64{0}, src.fetched)

	ids, err := collect(t, c)
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2}, ids)
	assert.Equal(t, []uint64{0, 2}, src.fetched)
}

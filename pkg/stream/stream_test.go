package stream

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

type pageSource struct {
	pages   [][]string
	fetched int
	failAt  int
}

func (ps *pageSource) fetch(context.Context) ([]string, bool, error) {
	if ps.failAt > 0 && ps.fetched == ps.failAt {
		return nil, false, errors.New("page fetch failed")
	}
	page := ps.pages[ps.fetched]
	ps.fetched++
	return page, ps.fetched < len(ps.pages), nil
}

func TestFromPagesYieldsInPageOrder(t *testing.T) {
	source := &pageSource{pages: [][]string{{"a", "b"}, {"c", "d"}, {"e"}}}

	items, err := FromPages(source.fetch).Collect(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c", "d", "e"}, items)
	require.Equal(t, 3, source.fetched)
}

func TestFromPagesIsLazy(t *testing.T) {
	ctx := context.Background()
	source := &pageSource{pages: [][]string{{"a", "b"}, {"c", "d"}, {"e"}}}
	s := FromPages(source.fetch)
	require.Equal(t, 0, source.fetched)

	first, err := s.Limit(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, first)
	require.Equal(t, 1, source.fetched)

	third, ok, err := s.Next(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "c", third)
	require.Equal(t, 2, source.fetched)
}

func TestFromPagesSkipsEmptyPages(t *testing.T) {
	source := &pageSource{pages: [][]string{{}, {"a"}, {}, {"b"}}}

	items, err := FromPages(source.fetch).Collect(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, items)
}

func TestStreamIsNotRestartable(t *testing.T) {
	ctx := context.Background()
	s := Of(1, 2, 3)

	var firstPass []int
	for item, err := range s.All(ctx) {
		require.NoError(t, err)
		firstPass = append(firstPass, item)
	}
	require.Equal(t, []int{1, 2, 3}, firstPass)

	secondPass, err := s.Collect(ctx)
	require.NoError(t, err)
	require.Empty(t, secondPass)
}

func TestPageFailureKeepsYieldedItems(t *testing.T) {
	ctx := context.Background()
	source := &pageSource{pages: [][]string{{"a", "b"}, {"c"}}, failAt: 1}
	s := FromPages(source.fetch)

	yielded, err := s.Limit(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, yielded)

	_, ok, err := s.Next(ctx)
	require.False(t, ok)
	require.ErrorContains(t, err, "page fetch failed")

	// The failure is sticky and never retried.
	_, _, err = s.Next(ctx)
	require.ErrorContains(t, err, "page fetch failed")
	require.Equal(t, 1, source.fetched)
}

func TestMapAndFlatMap(t *testing.T) {
	ctx := context.Background()
	pages := Of([]int{1, 2}, []int{}, []int{3})

	flattened := FlatMap(pages, func(page []int) []int { return page })
	mapped := Map(flattened, strconv.Itoa)

	items, err := mapped.Collect(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"1", "2", "3"}, items)
}

func TestMapErrStopsAtFirstFailure(t *testing.T) {
	ctx := context.Background()
	s := MapErr(Of("1", "x", "3"), strconv.Atoi)

	first, ok, err := s.Next(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 1, first)

	_, err = s.Collect(ctx)
	require.Error(t, err)
}

func TestFlatMapStreamAndConcat(t *testing.T) {
	ctx := context.Background()
	s := FlatMapStream(Of(2, 0, 3), func(n int) *Stream[int] {
		items := make([]int, 0, n)
		for i := range n {
			items = append(items, n*10+i)
		}
		return FromSlice(items)
	})

	items, err := Concat(s, Of(99)).Collect(ctx)
	require.NoError(t, err)
	require.Equal(t, []int{20, 21, 30, 31, 32, 99}, items)
}

func TestFilterFirstAndForEach(t *testing.T) {
	ctx := context.Background()
	evens := Filter(Of(1, 2, 3, 4, 5, 6), func(n int) bool { return n%2 == 0 })

	first, ok, err := evens.First(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 2, first)

	var rest []int
	require.NoError(t, evens.ForEach(ctx, func(n int) error {
		rest = append(rest, n)
		return nil
	}))
	require.Equal(t, []int{4, 6}, rest)

	_, ok, err = Empty[int]().First(ctx)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestLimitWithoutPositiveCountPullsNothing(t *testing.T) {
	ctx := context.Background()
	source := &pageSource{pages: [][]string{{"a", "b"}, {"c"}}}
	s := FromPages(source.fetch)

	for _, n := range []int{-1, 0} {
		items, err := s.Limit(ctx, n)
		require.NoError(t, err)
		require.Empty(t, items)
	}
	require.Equal(t, 0, source.fetched)

	rest, err := s.Collect(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c"}, rest)
}

func TestForEachPropagatesCallbackError(t *testing.T) {
	stop := errors.New("stop")
	seen := 0
	err := Of(1, 2, 3).ForEach(context.Background(), func(int) error {
		seen++
		return stop
	})
	require.ErrorIs(t, err, stop)
	require.Equal(t, 1, seen)
}

func TestFailed(t *testing.T) {
	boom := errors.New("boom")
	_, err := Failed[int](boom).Collect(context.Background())
	require.ErrorIs(t, err, boom)
}

func TestFromPagesPreservesOrderProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		pages := rapid.SliceOf(rapid.SliceOf(rapid.Int())).Draw(t, "pages")
		if len(pages) == 0 {
			pages = [][]int{{}}
		}

		var expected []int
		for _, page := range pages {
			expected = append(expected, page...)
		}

		fetched := 0
		s := FromPages(func(context.Context) ([]int, bool, error) {
			page := pages[fetched]
			fetched++
			return page, fetched < len(pages), nil
		})

		items, err := s.Collect(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(items) != len(expected) {
			t.Fatalf("expected %d items, got %d", len(expected), len(items))
		}
		for i := range expected {
			if items[i] != expected[i] {
				t.Fatalf("item %d: expected %d, got %d", i, expected[i], items[i])
			}
		}
		if fetched != len(pages) {
			t.Fatalf("expected %d fetches, got %d", len(pages), fetched)
		}
	})
}

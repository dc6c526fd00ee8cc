package stream

import (
	"context"
	"iter"
)

// PullFunc produces the next item of a stream. It returns ok=false once the
// stream is exhausted.
type PullFunc[T any] func(ctx context.Context) (item T, ok bool, err error)

// PageFunc fetches the next page of a paginated stream, returning the items of
// the page and whether further pages may follow.
type PageFunc[T any] func(ctx context.Context) (page []T, more bool, err error)

// Stream is a lazy, non-restartable sequence of items.
type Stream[T any] struct {
	pull PullFunc[T]
	done bool
	err  error
}

// New returns a stream pulling its items from the given function.
func New[T any](pull PullFunc[T]) *Stream[T] {
	return &Stream[T]{pull: pull}
}

// Of returns a stream over the given items.
func Of[T any](items ...T) *Stream[T] {
	return FromSlice(items)
}

// FromSlice returns a stream over the items of the given slice.
func FromSlice[T any](items []T) *Stream[T] {
	index := 0
	return New(func(context.Context) (T, bool, error) {
		if index >= len(items) {
			var zero T
			return zero, false, nil
		}
		item := items[index]
		index++
		return item, true, nil
	})
}

// Empty returns a stream without items.
func Empty[T any]() *Stream[T] {
	return FromSlice[T](nil)
}

// Failed returns a stream whose first pull fails with the given error.
func Failed[T any](err error) *Stream[T] {
	return New(func(context.Context) (T, bool, error) {
		var zero T
		return zero, false, err
	})
}

// FromPages returns a stream wrapping a paginated source. The first page is
// fetched on the first pull; each later page is fetched only once the items of
// the previous page have all been yielded.
func FromPages[T any](fetch PageFunc[T]) *Stream[T] {
	var buffer []T
	more := true
	return New(func(ctx context.Context) (T, bool, error) {
		var zero T
		for len(buffer) == 0 {
			if !more {
				return zero, false, nil
			}

			page, hasMore, err := fetch(ctx)
			if err != nil {
				return zero, false, err
			}
			buffer, more = page, hasMore
		}

		item := buffer[0]
		var cleared T
		buffer[0] = cleared
		buffer = buffer[1:]
		return item, true, nil
	})
}

// Next pulls the next item. ok is false once the stream is exhausted. After an
// error has been returned, every later call returns the same error.
func (s *Stream[T]) Next(ctx context.Context) (item T, ok bool, err error) {
	var zero T
	if s.err != nil {
		return zero, false, s.err
	}
	if s.done {
		return zero, false, nil
	}

	item, ok, err = s.pull(ctx)
	if err != nil {
		s.err = err
		s.done = true
		return zero, false, err
	}
	if !ok {
		s.done = true
		return zero, false, nil
	}
	return item, true, nil
}

// All returns an iterator over the remaining items. An error is yielded at
// most once and ends the iteration.
func (s *Stream[T]) All(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for {
			item, ok, err := s.Next(ctx)
			if err != nil {
				var zero T
				yield(zero, err)
				return
			}
			if !ok {
				return
			}
			if !yield(item, nil) {
				return
			}
		}
	}
}

// Collect drains the stream into a slice.
func (s *Stream[T]) Collect(ctx context.Context) ([]T, error) {
	var out []T
	for item, err := range s.All(ctx) {
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

// Limit pulls at most n items. A non-positive n pulls nothing.
func (s *Stream[T]) Limit(ctx context.Context, n int) ([]T, error) {
	out := make([]T, 0, max(n, 0))
	for len(out) < n {
		item, ok, err := s.Next(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		out = append(out, item)
	}
	return out, nil
}

// First returns the first remaining item, if any.
func (s *Stream[T]) First(ctx context.Context) (T, bool, error) {
	return s.Next(ctx)
}

// ForEach invokes fn with every remaining item, stopping at the first error.
func (s *Stream[T]) ForEach(ctx context.Context, fn func(T) error) error {
	for item, err := range s.All(ctx) {
		if err != nil {
			return err
		}
		if err := fn(item); err != nil {
			return err
		}
	}
	return nil
}
